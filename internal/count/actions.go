package count

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dtnitsch/wordbucket/models"
	"github.com/dtnitsch/wordbucket/pkg/buckets"
	"github.com/dtnitsch/wordbucket/pkg/db"
	"github.com/dtnitsch/wordbucket/pkg/detector"
	"github.com/dtnitsch/wordbucket/pkg/storage"
	"github.com/dtnitsch/wordbucket/pkg/tokenizer"
	"github.com/dtnitsch/wordbucket/pkg/wordcount"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
)

// Flags returns the flags shared by the root action and the count command.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML or TOML config file"},
		&cli.StringFlag{Name: "alphabet", Usage: "letters that get an output file"},
		&cli.StringFlag{Name: "excluded", Usage: "name of the file holding excluded words"},
		&cli.StringFlag{Name: "out", Usage: "output subdirectory inside the input directory"},
		&cli.StringFlag{Name: "tokenizer", Usage: "token policy: fields or nonword"},
		&cli.BoolFlag{Name: "no-trailing-newline", Usage: "do not terminate bucket files with a newline"},
		&cli.BoolFlag{Name: "no-html", Usage: "read .html files as plain text"},
		&cli.StringFlag{Name: "history-db", Usage: "run history database path"},
		&cli.BoolFlag{Name: "no-history", Usage: "do not record the run"},
		&cli.BoolFlag{Name: "no-detect-language", Usage: "skip corpus language detection"},
		&cli.StringFlag{Name: "summary", Value: "auto", Usage: "summary format: auto, table, yaml or none"},
		&cli.IntFlag{Name: "top", Usage: "number of top words in the summary"},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
		&cli.BoolFlag{Name: "verbose", Usage: "log debug details"},
	}
}

// NewLogger builds the JSON stderr logger used by every action.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	} else if c.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// CountAction counts the words of every file in the directory argument and
// writes one file per letter to the output subdirectory.
func CountAction(c *cli.Context) error {
	if c.NArg() == 0 {
		// Missing directory is reported with usage and a zero exit status.
		return cli.ShowAppHelp(c)
	}

	logger := NewLogger(c)

	cfg, err := ConfigFromContext(c)
	if err != nil {
		return err
	}

	summary, err := Execute(cfg, c.Args().First(), logger)
	if err != nil {
		return err
	}

	return WriteSummary(os.Stdout, summary, c.String("summary"))
}

// ConfigFromContext loads the --config file, if any, and applies flag overrides.
func ConfigFromContext(c *cli.Context) (*models.Config, error) {
	cfg := models.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := models.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.IsSet("alphabet") {
		cfg.Alphabet = c.String("alphabet")
	}
	if c.IsSet("excluded") {
		cfg.ExcludedFile = c.String("excluded")
	}
	if c.IsSet("out") {
		cfg.OutputDir = c.String("out")
	}
	if c.IsSet("tokenizer") {
		cfg.Tokenizer = c.String("tokenizer")
	}
	if c.Bool("no-trailing-newline") {
		cfg.TrailingNewline = false
	}
	if c.Bool("no-html") {
		cfg.HTML = false
	}
	if c.IsSet("history-db") {
		cfg.HistoryDB = c.String("history-db")
	}
	if c.Bool("no-history") {
		cfg.History = false
	}
	if c.Bool("no-detect-language") {
		cfg.DetectLanguage = false
	}
	if c.IsSet("top") {
		cfg.Top = c.Int("top")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Execute runs one counting pass over dir: read, count, write, record.
// Nothing is written when reading fails.
func Execute(cfg *models.Config, dir string, logger *slog.Logger) (*models.RunSummary, error) {
	startTime := time.Now()

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve input directory: %w", err)
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", absDir)
	}

	policy, err := tokenizer.ParsePolicy(cfg.Tokenizer)
	if err != nil {
		return nil, err
	}

	store := storage.New(tokenizer.New(policy), logger)
	if !cfg.HTML {
		store.Parser = nil
	}

	logger.Info("reading input directory", "dir", absDir, "excluded_file", cfg.ExcludedFile, "tokenizer", policy)
	allWords, readStats, err := store.ReadWordsFromDirectory(absDir, cfg.ExcludedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read input files: %w", err)
	}
	excludedWords, err := store.ReadExcludedWords(absDir, cfg.ExcludedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read excluded words: %w", err)
	}

	service := &wordcount.Service{
		Alphabet:         cfg.Alphabet,
		Render:           buckets.RenderOptions{TrailingNewline: cfg.TrailingNewline},
		ExcludedCountKey: cfg.ExcludedCountKey,
	}
	result := service.Run(allWords, excludedWords)
	excludedCount := service.CountExcluded(allWords, excludedWords)

	files := result.OutputMap
	service.MergeExcludedCount(files, excludedCount)

	if err := store.WriteWordCounts(absDir, cfg.OutputDir, files); err != nil {
		return nil, fmt.Errorf("failed to write word counts: %w", err)
	}

	summary := BuildSummary(cfg, result, readStats, excludedCount)
	summary.RunID = uuid.NewString()
	summary.InputDir = absDir
	summary.OutputDir = filepath.Join(absDir, cfg.OutputDir)
	summary.Tokenizer = string(policy)
	summary.Stats.FilesWritten = len(files)

	if cfg.DetectLanguage {
		summary.Language = detector.New().Detect(allWords)
	}

	summary.Stats.TotalTimeSeconds = time.Since(startTime).Seconds()

	if cfg.History {
		if err := recordRun(cfg, summary, time.Since(startTime)); err != nil {
			// The output files are already written; a history failure is not fatal.
			logger.Warn("failed to record run history", "error", err)
		}
	}

	logger.Info("word counts written",
		"run_id", summary.RunID,
		"output_dir", summary.OutputDir,
		"distinct_words", summary.Stats.DistinctWords,
		"excluded_count", excludedCount,
	)
	return summary, nil
}

func recordRun(cfg *models.Config, summary *models.RunSummary, elapsed time.Duration) error {
	database, err := db.OpenPath(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer database.Close()

	return database.InsertRun(ToHistoryRun(summary, elapsed))
}
