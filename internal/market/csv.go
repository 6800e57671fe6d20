package market

import (
	"encoding/csv"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/statarb-lab/pairtrade/pkg/errors"
)

// csv date layouts accepted by LoadCSV, tried in order.
var csvDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// LoadCSV reads a wide price matrix from a CSV file: a header row of
// "date,SYM1,SYM2,..." followed by one row per timestep. Empty cells are
// gaps and get filled during table construction.
func LoadCSV(path string) (*PriceTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeEmptyPriceTable, err, "failed to open price file %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeEmptyPriceTable, err, "failed to parse price file %s", path)
	}

	if len(records) < 2 {
		return nil, errors.Newf(errors.ErrCodeEmptyPriceTable, "price file %s has no data rows", path)
	}

	header := records[0]
	if len(header) < 3 || !strings.EqualFold(strings.TrimSpace(header[0]), "date") {
		return nil, errors.Newf(errors.ErrCodeMissingColumn, "price file %s must start with a date column followed by at least 2 symbols", path)
	}

	symbols := make([]string, len(header)-1)
	for i, name := range header[1:] {
		symbols[i] = strings.TrimSpace(name)
	}

	dates := make([]time.Time, 0, len(records)-1)

	series := make(map[string][]float64, len(symbols))
	for _, symbol := range symbols {
		series[symbol] = make([]float64, 0, len(records)-1)
	}

	for line, record := range records[1:] {
		if len(record) != len(header) {
			return nil, errors.Newf(errors.ErrCodeLengthMismatch, "price file %s line %d has %d fields, want %d", path, line+2, len(record), len(header))
		}

		date, err := parseCSVDate(strings.TrimSpace(record[0]))
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidTimeIndex, err, "price file %s line %d", path, line+2)
		}

		dates = append(dates, date)

		for i, symbol := range symbols {
			cell := strings.TrimSpace(record[i+1])
			if cell == "" {
				series[symbol] = append(series[symbol], math.NaN())
				continue
			}

			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "price file %s line %d symbol %s", path, line+2, symbol)
			}

			series[symbol] = append(series[symbol], value)
		}
	}

	return NewPriceTable(dates, series)
}

func parseCSVDate(s string) (time.Time, error) {
	var lastErr error

	for _, layout := range csvDateLayouts {
		date, err := time.Parse(layout, s)
		if err == nil {
			return date, nil
		}

		lastErr = err
	}

	return time.Time{}, lastErr
}
