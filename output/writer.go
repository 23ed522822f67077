package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

type Writer interface {
	Write(path string, df dataframe.DataFrame) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{Separator: ';'}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Extension returns the file extension used for an output format.
func Extension(format string) (string, error) {
	switch normalizeFormat(format) {
	case "csv":
		return ".csv", nil
	case "excel", "xlsx":
		return ".xlsx", nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

// ResultPath names the export file for a source: <dir>/<base>_sorted.<ext>.
func ResultPath(dir, source, format string) (string, error) {
	return exportPath(dir, source, "sorted", format)
}

// SummaryPath names the summary export file for a source.
func SummaryPath(dir, source, format string) (string, error) {
	return exportPath(dir, source, "summary", format)
}

func exportPath(dir, source, suffix, format string) (string, error) {
	ext, err := Extension(format)
	if err != nil {
		return "", err
	}
	name := filepath.Base(source)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if name == "" || name == "." {
		name = "dataset"
	}
	return filepath.Join(dir, name+"_"+suffix+ext), nil
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}
