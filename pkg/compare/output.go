package compare

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// Report output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// IdenticalMessage is printed in table mode when nothing differs
const IdenticalMessage = "Files are identical"

// Write prints report to w in the given output format
func Write(w io.Writer, report *Report, format string) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, report)
	case FormatTable, "":
		return WriteTable(w, report)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteTable prints report as a human-readable table
func WriteTable(w io.Writer, report *Report) error {
	if report.Identical() {
		_, err := fmt.Fprintln(w, IdenticalMessage)
		return err
	}

	if report.CountMismatch() {
		if _, err := fmt.Fprintf(w, "The count of transactions isn't equal: %d vs %d\n",
			report.LeftCount, report.RightCount); err != nil {
			return err
		}
	}

	if len(report.Diffs) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RECORD\tFIELD\tFILE1\tFILE2")
	for _, d := range report.Diffs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", d.Record, d.Field, d.Left, d.Right)
	}
	return tw.Flush()
}

type jsonReport struct {
	Identical  bool        `json:"identical"`
	LeftCount  int         `json:"left_count"`
	RightCount int         `json:"right_count"`
	Diffs      []FieldDiff `json:"diffs"`
}

// WriteJSON prints report as indented JSON
func WriteJSON(w io.Writer, report *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(jsonReport{
		Identical:  report.Identical(),
		LeftCount:  report.LeftCount,
		RightCount: report.RightCount,
		Diffs:      report.Diffs,
	})
}
