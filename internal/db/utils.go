package db

import (
	"fmt"
	"strings"

	dbpkg "github.com/dtnitsch/wordbucket/pkg/db"
	"github.com/urfave/cli/v2"
)

// GetRunIDOrLatest returns the run ID from args, or the latest run if not provided
func GetRunIDOrLatest(c *cli.Context, database *dbpkg.DB) (string, error) {
	if c.NArg() > 0 {
		if id := strings.TrimSpace(c.Args().First()); id != "" {
			return id, nil
		}
	}

	runs, err := database.ListRuns(1)
	if err != nil {
		return "", fmt.Errorf("failed to get latest run: %w", err)
	}
	if len(runs) == 0 {
		return "", fmt.Errorf("no runs found. Run 'wordbucket <dir>' first")
	}
	return runs[0].RunID, nil
}
