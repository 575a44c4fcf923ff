package store

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/worldcup/stats-api/internal/models"
)

// FileSource reads the tables from CSV or JSON files; the format follows the extension.
type FileSource struct {
	matchesPath     string
	tournamentsPath string
	logger          *zap.SugaredLogger
}

func NewFileSource(opts Options) (*FileSource, error) {
	dir := opts.DataDir
	if dir == "" {
		dir = "data"
	}
	s := &FileSource{
		matchesPath:     resolvePath(dir, opts.MatchesFile, "matches.csv"),
		tournamentsPath: resolvePath(dir, opts.TournamentsFile, "tournaments.csv"),
		logger:          opts.logger(),
	}
	for _, p := range []string{s.matchesPath, s.tournamentsPath} {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("data file: %w", err)
		}
	}
	return s, nil
}

func resolvePath(dir, name, fallback string) string {
	if name == "" {
		name = fallback
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

func (s *FileSource) Name() string {
	return "file:" + filepath.Dir(s.matchesPath)
}

func (s *FileSource) ReadMatches(ctx context.Context) ([]models.Match, error) {
	rows, err := readFile[models.Match](s.matchesPath)
	if err != nil {
		return nil, err
	}
	s.logger.Debugw("read matches file", "path", s.matchesPath, "rows", len(rows))
	return rows, nil
}

func (s *FileSource) ReadTournaments(ctx context.Context) ([]models.Tournament, error) {
	rows, err := readFile[models.Tournament](s.tournamentsPath)
	if err != nil {
		return nil, err
	}
	s.logger.Debugw("read tournaments file", "path", s.tournamentsPath, "rows", len(rows))
	return rows, nil
}

func (s *FileSource) Close() error { return nil }

func readFile[T any](path string) ([]T, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return readJSON[T](path)
	case ".csv", ".txt":
		return readCSV[T](path)
	default:
		return nil, fmt.Errorf("%s: unsupported file type", path)
	}
}

func readJSON[T any](path string) ([]T, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rows []T
	if err := json.Unmarshal(content, &rows); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

func readCSV[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: empty file", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	var rows []T
	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		var row T
		if err := models.DecodeRecord(&row, header, record); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
