// Package export renders ranked series results to the canonical tabular text
// form and parses the form back for round-trip verification.
//
// The table is RFC 4180 CSV: a header line
// RANK, Sail Number, R<id>..., TOTAL, NET followed by one line per boat.
// A race cell is the numeric score ("5.0"), wrapped in parentheses when
// discarded ("(3.0)"), with the penalty code or DNC marker appended after the
// value ("5.0 OCS", "(5.0) DNC"). Sail numbers containing the delimiter are
// quoted by the CSV layer, never mis-split.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/okian/regatta/internal/domain/model"
	"github.com/okian/regatta/pkg/metrics"
)

// WriteTable writes the result table for rows to w. raceIDs must be in the
// event's race order and match the length of every row's score list.
func WriteTable(w io.Writer, rows []model.ResultRow, raceIDs []string) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(raceIDs)+4)
	header = append(header, "RANK", "Sail Number")
	for _, id := range raceIDs {
		header = append(header, "R"+id)
	}
	header = append(header, "TOTAL", "NET")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range rows {
		if len(row.Scores) != len(raceIDs) {
			return fmt.Errorf("%w: sail %q has %d scores for %d races",
				ErrShapeMismatch, row.SailNumber, len(row.Scores), len(raceIDs))
		}
		record := make([]string, 0, len(raceIDs)+4)
		record = append(record, row.RankDisplay, row.SailNumber)
		for _, cell := range row.Scores {
			record = append(record, FormatCell(cell))
		}
		record = append(record, formatPoints(row.Total), formatPoints(row.Net))
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row for sail %q: %w", row.SailNumber, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}
	return nil
}

// FormatTable renders the result table to a string.
func FormatTable(rows []model.ResultRow, raceIDs []string) (string, error) {
	var sb strings.Builder
	if err := WriteTable(&sb, rows, raceIDs); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteTableFile writes the result table to a UTF-8 text file at path.
func WriteTableFile(path string, rows []model.ResultRow, raceIDs []string) error {
	f, err := os.Create(path)
	if err != nil {
		metrics.RecordExportError()
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteTable(f, rows, raceIDs); err != nil {
		metrics.RecordExportError()
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		metrics.RecordExportError()
		return fmt.Errorf("close %s: %w", path, err)
	}
	metrics.RecordExport()
	return nil
}

// FormatCell renders one score cell: points to one decimal, parenthesized
// when discarded, outcome tag appended after the value.
func FormatCell(cell model.ScoreCell) string {
	s := formatPoints(cell.Points)
	if cell.Discarded {
		s = "(" + s + ")"
	}
	if tag := cell.Outcome.Tag(); tag != "" {
		s += " " + tag
	}
	return s
}

func formatPoints(p float64) string {
	return fmt.Sprintf("%.1f", p)
}
