package main

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/futi-app/phase-explorer/internal/phases"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

const numTeams = 16

var teamNames = []string{
	"Aalborg", "Brøndby", "Copenhagen", "Esbjerg", "Fredericia", "Herning",
	"Horsens", "Kolding", "Lyngby", "Midtjylland", "Nordsjælland", "Odense",
	"Randers", "Silkeborg", "Vejle", "Viborg",
}

// Simplified config loading for the script
func loadConfig() string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	dataDir, ok := os.LookupEnv("DATA_DIR")
	if !ok {
		log.Fatalf("Error: Required environment variable DATA_DIR is not set.")
	}
	return dataDir
}

func main() {
	log.Info("Starting CSV seeder...")
	dataDir := loadConfig()

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %s", err)
	}

	teamIDs := make([]string, numTeams)
	for i := range teamIDs {
		teamIDs[i] = uuid.NewString()
	}

	if err := writeTeams(filepath.Join(dataDir, "teams.csv"), teamIDs); err != nil {
		log.Fatalf("Failed to write teams.csv: %s", err)
	}
	if err := writePhases(filepath.Join(dataDir, "phases.csv"), teamIDs); err != nil {
		log.Fatalf("Failed to write phases.csv: %s", err)
	}

	log.Info("Seed data written.", "dir", dataDir, "teams", numTeams, "records", numTeams*len(phases.Catalogue)*len(phases.Metrics))
}

func writeTeams(path string, teamIDs []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"team_id", "name", "logo_ref"}); err != nil {
		return err
	}
	for i, id := range teamIDs {
		name := teamNames[i%len(teamNames)]
		logo := fmt.Sprintf("logos/%s.png", id)
		if err := w.Write([]string{id, name, logo}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writePhases(path string, teamIDs []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"team_id", "phase_name", "metric_name", "raw_value"}); err != nil {
		return err
	}

	for _, id := range teamIDs {
		for _, p := range phases.Catalogue {
			for _, m := range phases.Metrics {
				var v float64
				switch m {
				case phases.MetricCount:
					// Season totals; the server divides by games played.
					v = float64(rand.Intn(30*phases.GamesPlayed)) + 1
				default:
					v = rand.Float64() * 100
				}
				row := []string{id, p.Name, string(m), strconv.FormatFloat(v, 'f', 1, 64)}
				if err := w.Write(row); err != nil {
					return err
				}
			}
		}
	}

	w.Flush()
	return w.Error()
}
