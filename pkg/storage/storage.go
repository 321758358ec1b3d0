// Package storage reads word tokens from the files of an input directory and
// writes rendered buckets back to an output subdirectory.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dtnitsch/wordbucket/pkg/parser"
	"github.com/dtnitsch/wordbucket/pkg/tokenizer"
	"github.com/gofrs/flock"
)

// lockPath returns the lock file guarding dir/subPath. It sits beside the
// output directory so only rendered files end up inside it.
func lockPath(dir, subPath string) string {
	return filepath.Join(dir, "."+filepath.Base(subPath)+".lock")
}

// ErrOutputLocked is returned when another run holds the output directory.
var ErrOutputLocked = errors.New("output directory is locked by another run")

type Storage struct {
	Tokenizer *tokenizer.Tokenizer
	// Parser extracts text from HTML inputs. Nil reads HTML as plain text.
	Parser *parser.Parser
	Logger *slog.Logger
}

// New returns a Storage using tok, HTML extraction and logger.
func New(tok *tokenizer.Tokenizer, logger *slog.Logger) *Storage {
	if logger == nil {
		logger = slog.Default()
	}
	return &Storage{
		Tokenizer: tok,
		Parser:    &parser.Parser{},
		Logger:    logger,
	}
}

// ReadStats describes what ReadWordsFromDirectory consumed.
type ReadStats struct {
	Files     []string
	Bytes     int64
	HTMLFiles int
}

// ReadWordsFromDirectory tokenizes every regular file directly inside dir
// except excludedName. os.ReadDir yields entries in name order, so the token
// order is stable across runs. Subdirectories are skipped.
func (s *Storage) ReadWordsFromDirectory(dir, excludedName string) ([]string, *ReadStats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading directory: %w", err)
	}

	stats := &ReadStats{}
	var allWords []string
	for _, entry := range entries {
		if entry.Name() == excludedName {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		// Stat follows symlinks, so a link to a regular file is read and a
		// dangling link is not a regular file.
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			s.Logger.Debug("skipping dangling entry", "path", path)
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("error reading file info: %w", err)
		}
		if !info.Mode().IsRegular() {
			s.Logger.Debug("skipping non-regular entry", "path", path)
			continue
		}

		words, html, err := s.readWords(path)
		if err != nil {
			return nil, nil, err
		}
		s.Logger.Debug("read input file", "path", path, "tokens", len(words), "html", html)

		stats.Files = append(stats.Files, entry.Name())
		stats.Bytes += info.Size()
		if html {
			stats.HTMLFiles++
		}
		allWords = append(allWords, words...)
	}

	return allWords, stats, nil
}

// ReadWordsFromFile tokenizes a single file inside dir.
func (s *Storage) ReadWordsFromFile(dir, fileName string) ([]string, error) {
	words, _, err := s.readWords(filepath.Join(dir, fileName))
	return words, err
}

// ReadExcludedWords is ReadWordsFromFile, except a missing file yields an
// empty exclusion list.
func (s *Storage) ReadExcludedWords(dir, fileName string) ([]string, error) {
	words, err := s.ReadWordsFromFile(dir, fileName)
	if errors.Is(err, fs.ErrNotExist) {
		s.Logger.Warn("excluded file not found, nothing will be excluded", "path", filepath.Join(dir, fileName))
		return []string{}, nil
	}
	return words, err
}

func (s *Storage) readWords(path string) ([]string, bool, error) {
	data, err := s.ReadFile(path)
	if err != nil {
		return nil, false, err
	}

	if s.Parser != nil && parser.IsHTML(path) {
		lines, err := s.Parser.ExtractText(data, path)
		if err != nil {
			return nil, true, fmt.Errorf("error extracting text from %s: %w", path, err)
		}
		return s.Tokenizer.Tokenize(lines), true, nil
	}

	return s.Tokenizer.Tokenize(strings.Split(string(data), "\n")), false, nil
}

// WriteWordCounts writes one file per key of files into dir/subPath, holding
// an exclusive lock on the output directory while doing so. The lock file is
// removed again once the files are written.
func (s *Storage) WriteWordCounts(dir, subPath string, files map[string]string) error {
	outDir := filepath.Join(dir, subPath)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	lock := flock.New(lockPath(dir, subPath))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("error locking output directory: %w", err)
	}
	if !locked {
		return fmt.Errorf("%s: %w", outDir, ErrOutputLocked)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, name := range keys {
		if name == "" || filepath.Base(name) != name || name == "." || name == ".." {
			return fmt.Errorf("invalid output file name %q", name)
		}
		if err := s.SaveFile(filepath.Join(outDir, name), []byte(files[name])); err != nil {
			return err
		}
	}
	s.Logger.Debug("wrote output files", "dir", outDir, "count", len(keys))
	return nil
}

func (s *Storage) SaveFile(filePath string, content []byte) error {
	err := os.WriteFile(filePath, content, 0644)
	if err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}

	return nil
}

func (s *Storage) ReadFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return data, nil
}
