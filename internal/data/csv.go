package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

var separators = []rune{',', ';', '\t', '|'}

// ReadCsvFile reads a whole CSV file into records, sniffing the separator:
// each candidate is tried in order and the first one producing at least two
// columns on the header row wins. A UTF-8 BOM is stripped.
func ReadCsvFile(path string) ([][]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}
	text := strings.TrimPrefix(string(raw), "\ufeff")

	var last_err error
	for _, sep := range separators {
		r := csv.NewReader(strings.NewReader(text))
		r.Comma = sep
		r.FieldsPerRecord = -1
		r.LazyQuotes = true
		records, err := r.ReadAll()
		if err != nil {
			last_err = err
			continue
		}
		if len(records) > 0 && len(records[0]) > 1 {
			return records, nil
		}
		if last_err == nil && len(records) > 0 {
			last_err = fmt.Errorf("only one column with separator %q", sep)
		}
	}

	// single-column files are still valid when no separator matched
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		if last_err != nil {
			return nil, fmt.Errorf("cannot parse %s: %w", path, last_err)
		}
		return nil, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	return records, nil
}
