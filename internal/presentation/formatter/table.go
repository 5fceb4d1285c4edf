package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-stampwatch/internal/core/model"
	"github.com/penwyp/go-stampwatch/internal/util"
)

type TableFormatter struct {
	headers []string
}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		headers: []string{"#", "Time", "Since Previous", "Unix"},
	}
}

func (f *TableFormatter) Format(w io.Writer, listing Listing) error {
	records := make([][]string, 0, len(listing.Rows))
	for _, row := range listing.Rows {
		records = append(records, f.record(row))
	}

	widths := f.calculateColumnWidths(records)

	var b strings.Builder
	f.printBorder(&b, widths, "top")
	f.printRow(&b, f.headers, widths)
	f.printBorder(&b, widths, "middle")
	for _, record := range records {
		f.printRow(&b, record, widths)
	}
	f.printBorder(&b, widths, "bottom")
	fmt.Fprintf(&b, "%s timestamps\n", util.FormatCounter(len(listing.Rows), listing.Capacity))

	_, err := io.WriteString(w, b.String())
	return err
}

func (f *TableFormatter) record(row model.Row) []string {
	since := "Initial"
	if !row.Initial {
		since = util.FormatElapsed(row.Elapsed)
	}
	return []string{
		fmt.Sprintf("%d", row.Index+1),
		row.Title,
		since,
		fmt.Sprintf("%d", row.Timestamp),
	}
}

// calculateColumnWidths determines the width of each column based on content
func (f *TableFormatter) calculateColumnWidths(records [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = util.GetDisplayWidth(header)
	}
	for _, record := range records {
		for i, value := range record {
			if w := util.GetDisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// printBorder prints a table border line
func (f *TableFormatter) printBorder(b *strings.Builder, widths []int, position string) {
	var left, middle, right string
	switch position {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	default:
		left, middle, right = "└", "┴", "┘"
	}

	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	b.WriteString("\n")
}

// printRow prints a row; the first and last columns are right-aligned
func (f *TableFormatter) printRow(b *strings.Builder, values []string, widths []int) {
	b.WriteString("│")
	for i, value := range values {
		pad := strings.Repeat(" ", widths[i]-util.GetDisplayWidth(value))
		if i == 0 || i == len(values)-1 {
			b.WriteString(" " + pad + value + " │")
		} else {
			b.WriteString(" " + value + pad + " │")
		}
	}
	b.WriteString("\n")
}
