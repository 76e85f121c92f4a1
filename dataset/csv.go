package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions controls how a cleaned indicator CSV is read.
type CSVOptions struct {
	DateColumn   string // column holding the monthly period (default "date")
	TargetColumn string // designated modeling target
	DateFormats  []string
}

// DefaultCSVOptions returns options for the standard export layout.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DateColumn:  "date",
		DateFormats: []string{"2006-01", "2006-01-02", "01/2006"},
	}
}

// LoadCSV reads a monthly indicator table from a file. See LoadCSVFromReader.
func LoadCSV(filename string, opts *CSVOptions) (*Series, *TabularDataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()
	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader parses a header CSV with one date column and numeric
// indicator columns. Rows whose target value is missing or non-numeric are
// dropped before the data enters the pipeline; any other unparseable cell
// fails the load. It returns both views of the data: the target as a
// monthly Series and the full table as a TabularDataset.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, *TabularDataset, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}
	if opts.TargetColumn == "" {
		return nil, nil, fmt.Errorf("target column not configured")
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	dateIdx, targetIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case opts.DateColumn:
			dateIdx = i
		case opts.TargetColumn:
			targetIdx = i
		}
	}
	if dateIdx < 0 {
		return nil, nil, fmt.Errorf("date column %q not found", opts.DateColumn)
	}
	if targetIdx < 0 {
		return nil, nil, fmt.Errorf("target column %q not found", opts.TargetColumn)
	}

	columns := make(map[string][]float64, len(header)-1)
	var months []Month

	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", row, err)
		}
		row++

		// Rows without a usable target are excluded, not repaired.
		if _, err := parseCell(record[targetIdx]); err != nil {
			continue
		}

		period, err := parseMonth(record[dateIdx], opts.DateFormats)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", row, err)
		}
		months = append(months, period)

		for i, name := range header {
			if i == dateIdx {
				continue
			}
			v, err := parseCell(record[i])
			if err != nil {
				return nil, nil, fmt.Errorf("row %d column %q: %w", row, name, err)
			}
			columns[strings.TrimSpace(name)] = append(columns[strings.TrimSpace(name)], v)
		}
	}

	if len(months) == 0 {
		return nil, nil, fmt.Errorf("no rows with a valid target value")
	}
	for i := 1; i < len(months); i++ {
		if months[i-1].MonthsUntil(months[i]) != 1 {
			return nil, nil, fmt.Errorf("gap in monthly cadence between %s and %s", months[i-1], months[i])
		}
	}

	series, err := NewSeries(opts.TargetColumn, months[0], columns[opts.TargetColumn])
	if err != nil {
		return nil, nil, err
	}
	table, err := NewTabularDataset(columns, opts.TargetColumn)
	if err != nil {
		return nil, nil, err
	}
	return series, table, nil
}

func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "na") || strings.EqualFold(s, "nan") {
		return 0, fmt.Errorf("missing value")
	}
	return strconv.ParseFloat(s, 64)
}

func parseMonth(s string, formats []string) (Month, error) {
	s = strings.TrimSpace(s)
	for _, layout := range formats {
		if t, err := time.Parse(layout, s); err == nil {
			return MonthOf(t), nil
		}
	}
	return Month{}, fmt.Errorf("unparseable date %q", s)
}
