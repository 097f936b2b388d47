package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	window   string
	category string
	matchID  string
	playerID string
	inning   int
	seq      int
	outcome  string
	rbi      int
)

func init() {
	rankingsCmd.Flags().StringVar(&window, "window", "all", "Match window: month, fiscal-year or all")
	rankingsCmd.Flags().StringVar(&category, "category", "batting-average", "Ranking category")
	totalsCmd.Flags().StringVar(&window, "window", "all", "Match window: month, fiscal-year or all")

	recordCmd.Flags().StringVar(&matchID, "match", "", "Match id")
	recordCmd.Flags().StringVar(&playerID, "player", "", "Player id")
	recordCmd.Flags().IntVar(&inning, "inning", 1, "Inning number")
	recordCmd.Flags().IntVar(&seq, "seq", 1, "At-bat number within the inning")
	recordCmd.Flags().StringVar(&outcome, "outcome", "", "At-bat outcome")
	recordCmd.Flags().IntVar(&rbi, "rbi", 0, "Runs batted in (out-rbi only)")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(totalsCmd)
	rootCmd.AddCommand(rankingsCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players in the league store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List the stored matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches")
	},
}

var totalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Show aggregated player totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/totals?window=" + url.QueryEscape(window))
	},
}

var rankingsCmd = &cobra.Command{
	Use:   "rankings",
	Short: "Show the leaderboard for a category",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{"window": {window}, "category": {category}}
		return performGetRequest("/rankings?" + query.Encode())
	},
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record an at-bat outcome",
	RunE: func(cmd *cobra.Command, args []string) error {
		body := fmt.Sprintf(`{"match_id":%q,"player_id":%q,"inning":%d,"seq":%d,"outcome":%q,"rbi":%d}`,
			matchID, playerID, inning, seq, outcome, rbi)
		return performPostRequest("/match/record-outcome", body)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint, body string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
