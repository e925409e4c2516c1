package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/gofrs/flock"

	amanerrors "github.com/Aman-CERP/amangrep/internal/errors"
	"github.com/Aman-CERP/amangrep/internal/search"
)

// SaveReport writes report to path as indented JSON. Concurrent runs
// writing the same path are serialised by an exclusive lock kept in the
// system temp directory, and the file is replaced atomically so readers
// never see a partial report.
func SaveReport(path string, report *search.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return amanerrors.New(amanerrors.ErrCodeReportWrite, "failed to encode report", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return reportWriteError(path, err)
	}

	lock := flock.New(lockPath(path))
	if err := lock.Lock(); err != nil {
		return reportWriteError(path, fmt.Errorf("failed to acquire lock: %w", err))
	}
	defer func() {
		_ = lock.Unlock()
	}()

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return reportWriteError(path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return reportWriteError(path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return reportWriteError(path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return reportWriteError(path, err)
	}

	return nil
}

// LoadReport reads a report written by SaveReport.
func LoadReport(path string) (*search.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, amanerrors.New(amanerrors.ErrCodeFileNotFound,
				fmt.Sprintf("report %s not found", path), err).
				WithDetail("path", path).
				WithSuggestion("Run a search with -b or --report to create it")
		case errors.Is(err, fs.ErrPermission):
			return nil, amanerrors.New(amanerrors.ErrCodeFilePermission,
				fmt.Sprintf("cannot read report %s", path), err).
				WithDetail("path", path)
		default:
			return nil, amanerrors.New(amanerrors.ErrCodeInvalidPath,
				fmt.Sprintf("cannot read report %s", path), err).
				WithDetail("path", path)
		}
	}

	var report search.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, amanerrors.ValidationError(fmt.Sprintf("%s is not a search report", path), err).
			WithDetail("path", path)
	}
	return &report, nil
}

// lockPath names the lock file for a report. It lives outside the report
// directory so nothing is left beside the report, and is keyed by the
// absolute report path so every writer of one report shares it.
func lockPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("amangrep-report-%016x.lock", xxhash.Sum64String(path)))
}

func reportWriteError(path string, cause error) error {
	return amanerrors.New(amanerrors.ErrCodeReportWrite,
		fmt.Sprintf("cannot write report to %s", path), cause).
		WithDetail("path", path).
		WithSuggestion("Choose a writable location with --report")
}
