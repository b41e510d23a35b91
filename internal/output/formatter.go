package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/itrgo/internal/compare"
)

// Formatter renders a report into bytes
type Formatter interface {
	Name() string
	Format(report *compare.Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *compare.Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *compare.Report) ([]byte, error) { return f.F(report) }

var formatters = map[string]Formatter{
	"console":      ConsoleFormatter{},
	"console-lite": ConsoleLiteFormatter{},
	"json":         JSONFormatter{Pretty: true},
	"csv":          CSVFormatter{},
	"html":         HTMLFormatter{},
	"pdf":          PDFFormatter{},
	"xlsx":         XLSXFormatter{},
}

var aliases = map[string]string{
	"verbose":         "console",
	"console-verbose": "console",
	"text":            "console",
	"lite":            "console-lite",
	"summary":         "console-lite",
	"excel":           "xlsx",
}

var extensions = map[string]string{
	"console":      "txt",
	"console-lite": "txt",
	"json":         "json",
	"csv":          "csv",
	"html":         "html",
	"pdf":          "pdf",
	"xlsx":         "xlsx",
}

// GetFormatterByName resolves a formatter or alias; nil when unknown
func GetFormatterByName(name string) Formatter {
	key := strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[key]; ok {
		key = target
	}
	return formatters[key]
}

// FormatterNames lists the canonical formatter names
func FormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExtensionFor returns the file extension conventionally used for a formatter
func ExtensionFor(f Formatter) string {
	if ext, ok := extensions[f.Name()]; ok {
		return ext
	}
	return "txt"
}

// WriteFormatted renders the report and writes it to path. An empty path
// writes tax_report_<timestamp>.<ext> in the working directory. Returns
// the path written.
func WriteFormatted(f Formatter, report *compare.Report, path string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", fmt.Errorf("failed to format report as %s: %w", f.Name(), err)
	}

	if path == "" {
		path = fmt.Sprintf("tax_report_%s.%s", time.Now().Format("20060102_150405"), ExtensionFor(f))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return path, nil
}
