package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"logreader/internal/app/errors"
	"logreader/internal/app/logs"
	"logreader/internal/app/settings"
	"logreader/internal/config/logger"
)

const maxLineSize = 1024 * 1024

// FileSource reads rows from the log files of a directory
type FileSource struct {
	name    string
	dir     string
	matcher Matcher
	parser  lineParser
	log     logger.Logger
	*fileListener
}

// NewFileSource validates the repository settings and builds a file source
func NewFileSource(repo settings.Repository, log logger.Logger) (*FileSource, error) {
	dir := os.ExpandEnv(repo.Dir)
	if dir == "" {
		return nil, fmt.Errorf("%w: repository '%s' has no dir", errors.ErrInvalidSource, repo.Name)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidSource, err)
	}

	m, err := NewMatcher(repo.Include, repo.Ignore)
	if err != nil {
		return nil, err
	}

	parser, err := newLineParser(repo.Format, repo.Pattern, repo.TimeLayout)
	if err != nil {
		return nil, err
	}

	src := &FileSource{
		name:    repo.Name,
		dir:     absDir,
		matcher: m,
		parser:  parser,
		log:     log,
	}
	src.fileListener = newFileListener(absDir, m, log)

	return src, nil
}

// GetDays returns the distinct days found in the matching files
func (s *FileSource) GetDays(ctx context.Context, order logs.OrderBy) ([]logs.Day, error) {
	if !order.Valid() {
		return nil, &logs.UnsupportedOrderError{Order: order}
	}

	rows, err := s.readAll(ctx)
	if err != nil {
		return nil, err
	}

	return logs.SortDays(logs.UniqueDays(rows), order)
}

// GetLogs returns the rows of day across all matching files
func (s *FileSource) GetLogs(ctx context.Context, day logs.Day, order logs.OrderBy) ([]logs.Row, error) {
	if !order.Valid() {
		return nil, &logs.UnsupportedOrderError{Order: order}
	}

	rows, err := s.readAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]logs.Row, 0, len(rows))
	for _, row := range rows {
		if logs.DayOf(row.Time) == day {
			result = append(result, row)
		}
	}

	return logs.SortRows(result, order)
}

// files lists the matching files below dir in lexical order
func (s *FileSource) files() ([]string, error) {
	var files []string

	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(s.dir, path)
		if err != nil {
			return err
		}

		if d.IsDir() {
			if rel != "." && s.matcher.SkipDir(rel) {
				return filepath.SkipDir
			}

			return nil
		}

		if s.matcher.Match(rel) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToOpenLog, err)
	}

	return files, nil
}

func (s *FileSource) readAll(ctx context.Context) ([]logs.Row, error) {
	files, err := s.files()
	if err != nil {
		return nil, err
	}

	var rows []logs.Row

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fileRows, err := s.readFile(path)
		if err != nil {
			return nil, err
		}

		rows = append(rows, fileRows...)
	}

	s.log.Debug().Msgf("Read %d rows from %d files in '%s'", len(rows), len(files), s.dir)

	return rows, nil
}

func (s *FileSource) readFile(path string) ([]logs.Row, error) {
	r, err := openLog(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errors.ErrFailedToOpenLog, path, err)
	}
	defer r.Close()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var rows []logs.Row

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		if row, ok := s.parser.parse(line); ok {
			rows = append(rows, row)
			continue
		}

		if s.parser.continuation() && len(rows) > 0 {
			last := &rows[len(rows)-1]
			last.Message += "\n" + line
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errors.ErrFailedToOpenLog, path, err)
	}

	return rows, nil
}

// openLog opens path, transparently decompressing .gz and .zst files
func openLog(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}

		return &stackedReader{Reader: gz, closers: []func() error{gz.Close, f.Close}}, nil
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}

		return &stackedReader{Reader: dec, closers: []func() error{func() error { dec.Close(); return nil }, f.Close}}, nil
	default:
		return f, nil
	}
}

// stackedReader closes a decompressor before its underlying file
type stackedReader struct {
	io.Reader
	closers []func() error
}

func (r *stackedReader) Close() error {
	var first error

	for _, c := range r.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}

	return first
}
