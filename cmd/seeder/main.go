package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sandlotstats/scorebook/internal/scorebook"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

var outcomes = []scorebook.Outcome{
	scorebook.OutcomeOut,
	scorebook.OutcomeOut,
	scorebook.OutcomeOut,
	scorebook.OutcomeSingle,
	scorebook.OutcomeSingle,
	scorebook.OutcomeDouble,
	scorebook.OutcomeTriple,
	scorebook.OutcomeHomeRun,
	scorebook.OutcomeWalk,
	scorebook.OutcomeDeadBall,
	scorebook.OutcomeSacrificeBunt,
	scorebook.OutcomeSacrificeFly,
	scorebook.OutcomeError,
}

var opponents = []string{
	"River Hawks", "North End Brewers", "Maple Street Nine",
	"Dockside Sluggers", "Hilltop Royals", "Eastgate Owls",
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	// A nine-player lineup plus two bench players
	roster := make([]scorebook.Player, 0, 11)
	for i := 1; i <= 11; i++ {
		order := i
		if i > 9 {
			order = 0 // bench
		}
		roster = append(roster, scorebook.Player{
			ID:           fmt.Sprintf("player-%d", i),
			Name:         fmt.Sprintf("Seeder Player %c", 'A'+i-1),
			BattingOrder: order,
		})
	}

	for _, p := range roster {
		_, err := db.Exec("INSERT OR IGNORE INTO players (id, name, batting_order) VALUES (?, ?, ?)", p.ID, p.Name, p.BattingOrder)
		if err != nil {
			log.Fatalf("Failed to insert dummy player %s: %s", p.Name, err)
		}
	}
	log.Info("Ensured dummy players exist.")

	const batchSize = 25
	const numMatches = 200

	log.Info("Preparing to insert dummy matches...", "total", numMatches, "batch_size", batchSize)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	valueStrings := make([]string, 0, batchSize)
	valueArgs := make([]interface{}, 0, batchSize*7) // 7 columns per match

	for i := 0; i < numMatches; i++ {
		matchDate := time.Now().AddDate(0, 0, -rand.Intn(365))
		match := simulateMatch(matchDate, roster)

		playersJSON, _ := json.Marshal(match.Players)
		recordsJSON, _ := json.Marshal(match.Records)
		subsJSON, _ := json.Marshal(match.Substitutes)

		valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?, ?)")
		valueArgs = append(valueArgs,
			match.ID,
			match.Date,
			match.Opponent,
			playersJSON,
			recordsJSON,
			subsJSON,
			matchDate.Unix(),
		)

		if (i+1)%batchSize == 0 || (i+1) == numMatches {
			stmt := fmt.Sprintf(`
				INSERT INTO matches (id, match_date, opponent, players_json, records_json, substitutes_json, created_at)
				VALUES %s;`, strings.Join(valueStrings, ","))

			_, err := tx.Exec(stmt, valueArgs...)
			if err != nil {
				tx.Rollback()
				log.Fatalf("Failed to execute batch insert: %s", err)
			}

			// Reset for the next batch
			valueStrings = make([]string, 0, batchSize)
			valueArgs = make([]interface{}, 0, batchSize*7)
			log.Info("Inserted batch", "completed", i+1, "total", numMatches)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all dummy matches.", "duration", duration)
}

// simulateMatch scores a seven-inning game through the real scoring engine so
// the seeded records obey the same shape rules as live data.
func simulateMatch(date time.Time, roster []scorebook.Player) *scorebook.Match {
	match := scorebook.NewMatch(
		uuid.NewString(),
		date.Format("2006-01-02"),
		opponents[rand.Intn(len(opponents))],
		roster,
	)
	session := scorebook.NewSession(match)

	for inning := 1; inning <= 7; inning++ {
		for _, p := range match.StartingLineup() {
			if session.OutsInInning(inning) >= 3 {
				break
			}
			outcome := outcomes[rand.Intn(len(outcomes))]
			rbi := 0
			if outcome == scorebook.OutcomeOut && rand.Intn(5) == 0 {
				outcome = scorebook.OutcomeOutRBI
				rbi = 1
			}
			if err := session.RecordOutcome(p.ID, inning, 1, outcome, rbi); err != nil {
				log.Fatalf("Failed to record seeded outcome: %s", err)
			}
		}
	}
	return match
}
