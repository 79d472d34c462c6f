package catalog

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// LoadJSONL reads cruise records from a JSON-lines file. Blank lines are
// skipped; a malformed line aborts the load with its line number. A
// missing file yields an empty dataset, callers decide whether to warn.
func LoadJSONL(path string) ([]Cruise, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var records []Cruise
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var c Cruise
		if err := json.Unmarshal([]byte(line), &c); err != nil {
			return nil, fmt.Errorf("catalog: %s line %d: %w", path, lineNo, err)
		}
		records = append(records, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// LoadPricingCSV reads pricing rows from a CSV file with a header line of
// cruise_id,starting_price. Column order follows the header. A missing
// file yields an empty dataset.
func LoadPricingCSV(path string) ([]Pricing, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: read header: %w", path, err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(strings.ToLower(name))] = i
	}
	idIdx, ok := idx["cruise_id"]
	if !ok {
		return nil, fmt.Errorf("catalog: %s: missing cruise_id column", path)
	}
	priceIdx, ok := idx["starting_price"]
	if !ok {
		return nil, fmt.Errorf("catalog: %s: missing starting_price column", path)
	}
	var records []Pricing
	for lineNo := 2; ; lineNo++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: %s line %d: %w", path, lineNo, err)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(row[priceIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("catalog: %s line %d: bad starting_price: %w", path, lineNo, err)
		}
		records = append(records, Pricing{
			CruiseID:      strings.TrimSpace(row[idIdx]),
			StartingPrice: price,
		})
	}
	return records, nil
}

// Report collects the outcome of a dataset validation pass.
type Report struct {
	Records  int      `json:"records"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (r *Report) OK() bool { return len(r.Errors) == 0 }

const maxReportedIssues = 10

// Validate checks cruise records for structural problems before they are
// loaded: missing required fields, negative prices and duplicate IDs.
// Only the first few issues of each kind are reported.
func Validate(records []Cruise) *Report {
	report := &Report{Records: len(records)}
	seen := make(map[string]struct{}, len(records))
	for i := range records {
		c := &records[i]
		if err := validate.Struct(c); err != nil {
			if len(report.Errors) < maxReportedIssues {
				report.Errors = append(report.Errors, fmt.Sprintf("record %d (%s): %v", i, c.CruiseID, err))
			}
			continue
		}
		if _, dup := seen[c.CruiseID]; dup {
			if len(report.Errors) < maxReportedIssues {
				report.Errors = append(report.Errors, fmt.Sprintf("record %d: duplicate cruise_id %s", i, c.CruiseID))
			}
			continue
		}
		seen[c.CruiseID] = struct{}{}
		if c.Description == "" && len(report.Warnings) < maxReportedIssues {
			report.Warnings = append(report.Warnings, fmt.Sprintf("record %d (%s): empty description weakens semantic search", i, c.CruiseID))
		}
	}
	return report
}
