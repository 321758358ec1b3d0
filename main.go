package main

import (
	"log"
	"os"

	"github.com/dtnitsch/wordbucket/internal/count"
	dbactions "github.com/dtnitsch/wordbucket/internal/db"
	"github.com/urfave/cli/v2"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("wordbucket: %v", err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "wordbucket",
		Usage:     "count words across the files of a directory and write one file per first letter",
		ArgsUsage: "<dir>",
		Description: "Every regular file in <dir> except the excluded file is tokenized. Words listed in\n" +
			"the excluded file are dropped, the rest are counted case-insensitively and written\n" +
			"to <dir>/out/<LETTER> as \"WORD COUNT\" lines, plus out/excluded_count.",
		Flags:  count.Flags(),
		Action: count.CountAction,
		Commands: []*cli.Command{
			{
				Name:      "count",
				Usage:     "count the words of a directory (same as the default action)",
				ArgsUsage: "<dir>",
				Flags:     count.Flags(),
				Action:    count.CountAction,
			},
			{
				Name:   "history",
				Usage:  "list recorded runs",
				Flags:  append(dbactions.Flags(), &cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 10, Usage: "number of runs to list"}),
				Action: dbactions.RunsAction,
				Subcommands: []*cli.Command{
					{
						Name:      "show",
						Usage:     "show one run (latest when no ID is given)",
						ArgsUsage: "[run-id]",
						Flags:     dbactions.Flags(),
						Action:    dbactions.RunAction,
					},
					{
						Name:      "delete",
						Usage:     "delete a run from the history",
						ArgsUsage: "<run-id>",
						Flags:     dbactions.Flags(),
						Action:    dbactions.DeleteRunAction,
					},
				},
			},
		},
	}
}
