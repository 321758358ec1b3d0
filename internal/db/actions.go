package db

import (
	"fmt"
	"strings"

	dbpkg "github.com/dtnitsch/wordbucket/pkg/db"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// Flags returns the flags of the history commands.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "history-db", Usage: "run history database path"},
	}
}

func openDatabase(c *cli.Context) (*dbpkg.DB, error) {
	database, err := dbpkg.OpenPath(c.String("history-db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

// RunsAction lists the most recent runs.
func RunsAction(c *cli.Context) error {
	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	limit := c.Int("limit")
	runs, err := database.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	w := c.App.Writer
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found")
		return nil
	}

	// Print table header
	fmt.Fprintf(w, "%-36s %-20s %-6s %-8s %-9s %-8s %-8s %s\n",
		"Run", "Created", "Files", "Tokens", "Distinct", "Excluded", "Lang", "Input Dir")
	fmt.Fprintln(w, strings.Repeat("-", 130))

	for _, r := range runs {
		lang := r.Language
		if lang == "" {
			lang = "-"
		}
		fmt.Fprintf(w, "%-36s %-20s %-6d %-8d %-9d %-8d %-8s %s\n",
			r.RunID,
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.FileCount,
			r.TokenCount,
			r.DistinctWords,
			r.ExcludedCount,
			lang,
			r.InputDir,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d runs\n", len(runs))
	fmt.Fprintf(w, "\nTip: Use 'wordbucket history show <run>' to see details\n")

	return nil
}

// RunAction prints one run, the latest when no ID is given, as YAML.
func RunAction(c *cli.Context) error {
	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRun(runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	yamlBytes, err := yaml.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}
	_, err = c.App.Writer.Write(yamlBytes)
	return err
}

// DeleteRunAction removes a run from the history.
func DeleteRunAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("run ID is required")
	}

	database, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runID := c.Args().First()
	if err := database.DeleteRun(runID); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Deleted run %s\n", runID)
	return nil
}
