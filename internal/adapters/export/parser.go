package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParsedRow is one boat's line read back from a result table. It carries
// everything the formatter can emit; it is intentionally not a
// model.ResultRow because the text form does not round-trip boat names.
type ParsedRow struct {
	Rank        int
	RankDisplay string
	SailNumber  string
	Cells       []ParsedCell
	Total       float64
	Net         float64
}

// ParsedCell is one race cell read back from a result table.
type ParsedCell struct {
	Points    float64
	Discarded bool
	// Tag is the suffix after the value: a penalty code, "DNC", or "".
	Tag string
}

// ParseTable reads a result table previously produced by WriteTable. It
// returns the race ids from the header and one ParsedRow per boat line.
func ParseTable(r io.Reader) ([]string, []ParsedRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // validated against the header below

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: missing header: %v", ErrMalformedTable, err)
	}
	if len(header) < 4 || header[0] != "RANK" || header[1] != "Sail Number" ||
		header[len(header)-2] != "TOTAL" || header[len(header)-1] != "NET" {
		return nil, nil, fmt.Errorf("%w: unexpected header %q", ErrMalformedTable, header)
	}
	raceIDs := make([]string, 0, len(header)-4)
	for _, col := range header[2 : len(header)-2] {
		id, ok := strings.CutPrefix(col, "R")
		if !ok {
			return nil, nil, fmt.Errorf("%w: race column %q lacks R prefix", ErrMalformedTable, col)
		}
		raceIDs = append(raceIDs, id)
	}

	var rows []ParsedRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrMalformedTable, err)
		}
		if len(record) != len(header) {
			return nil, nil, fmt.Errorf("%w: row has %d fields, header has %d",
				ErrMalformedTable, len(record), len(header))
		}

		row := ParsedRow{
			RankDisplay: record[0],
			SailNumber:  record[1],
			Cells:       make([]ParsedCell, 0, len(raceIDs)),
		}
		if row.Rank, err = parseRank(record[0]); err != nil {
			return nil, nil, err
		}
		for _, field := range record[2 : len(record)-2] {
			cell, err := parseCell(field)
			if err != nil {
				return nil, nil, err
			}
			row.Cells = append(row.Cells, cell)
		}
		if row.Total, err = parseFloat(record[len(record)-2]); err != nil {
			return nil, nil, err
		}
		if row.Net, err = parseFloat(record[len(record)-1]); err != nil {
			return nil, nil, err
		}
		rows = append(rows, row)
	}
	return raceIDs, rows, nil
}

// parseRank strips the ordinal suffix from a rank display like "21st".
func parseRank(display string) (int, error) {
	digits := strings.TrimRight(display, "stndrh")
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: bad rank %q", ErrMalformedTable, display)
	}
	return n, nil
}

func parseCell(field string) (ParsedCell, error) {
	var cell ParsedCell
	value := field
	if i := strings.IndexByte(value, ' '); i >= 0 {
		cell.Tag = value[i+1:]
		value = value[:i]
	}
	if strings.HasPrefix(value, "(") && strings.HasSuffix(value, ")") {
		cell.Discarded = true
		value = value[1 : len(value)-1]
	}
	points, err := parseFloat(value)
	if err != nil {
		return ParsedCell{}, fmt.Errorf("%w: bad cell %q", ErrMalformedTable, field)
	}
	cell.Points = points
	return cell, nil
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad number %q", ErrMalformedTable, s)
	}
	return f, nil
}
