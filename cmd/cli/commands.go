package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/futi-app/phase-explorer/internal/explorer"
	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	viewTeam     string
	viewCategory string
	viewMode     string
	exportOut    string
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(phasesCmd)
	rootCmd.AddCommand(reloadCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(exportCmd)

	for _, cmd := range []*cobra.Command{viewCmd, exportCmd} {
		cmd.Flags().StringVar(&viewTeam, "team", "", "Filter to a single team ID")
		cmd.Flags().StringVar(&viewCategory, "category", "", "Filter to a phase category")
		cmd.Flags().StringVar(&viewMode, "mode", "", "Display mode: raw or percentile")
	}
	exportCmd.Flags().StringVar(&exportOut, "out", "futi_phases.csv", "Path to write the exported CSV to")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the teams in the league store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/teams")
	},
}

var phasesCmd = &cobra.Command{
	Use:   "phases",
	Short: "List the phase catalogue",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/phases")
	},
}

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Trigger a reload of the source CSV files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/reload")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Fetch the phase table and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := fetch("/view/snapshot" + viewQuery())
		if err != nil {
			return err
		}

		var vm explorer.ViewModel
		if err := msgpack.Unmarshal(body, &vm); err != nil {
			return fmt.Errorf("failed to decode snapshot: %w", err)
		}

		printViewModel(&vm)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the phase table as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := fetch("/view/export" + viewQuery())
		if err != nil {
			return err
		}

		if err := os.WriteFile(exportOut, body, 0o644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Printf("Wrote %d bytes to %s\n", len(body), exportOut)
		return nil
	},
}

// viewQuery builds the query string from the shared view flags.
func viewQuery() string {
	q := url.Values{}
	if viewTeam != "" {
		q.Set("team", viewTeam)
	}
	if viewCategory != "" {
		q.Set("category", viewCategory)
	}
	if viewMode != "" {
		q.Set("mode", viewMode)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// printViewModel renders the table with one row per team and one column per
// (phase, metric) pair.
func printViewModel(vm *explorer.ViewModel) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	cols := vm.Columns()
	header := make([]string, 0, len(cols)+1)
	header = append(header, "Team")
	for _, col := range cols {
		header = append(header, col.Label)
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, row := range vm.Rows {
		fields := make([]string, 0, len(cols)+1)
		fields = append(fields, row.TeamName)
		for _, cell := range row.Cells {
			if !cell.Valid {
				fields = append(fields, "-")
				continue
			}
			if vm.Request.Mode == explorer.ModePercentile {
				fields = append(fields, fmt.Sprintf("%.0f", cell.Value))
			} else {
				fields = append(fields, fmt.Sprintf("%.1f", cell.Value))
			}
		}
		fmt.Fprintln(w, strings.Join(fields, "\t"))
	}
	w.Flush()
}

func fetch(endpoint string) ([]byte, error) {
	url := host + endpoint

	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
