package formatter

import (
	"fmt"
	"io"
	"time"

	"github.com/penwyp/go-stampwatch/internal/core/model"
)

// Listing is the input of every formatter: rows newest first
type Listing struct {
	Rows     []model.Row
	Capacity int
	Location *time.Location
}

type Formatter interface {
	Format(w io.Writer, listing Listing) error
}

// New returns the formatter for an --output value
func New(output string) (Formatter, error) {
	switch output {
	case "", "table":
		return NewTableFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	case "csv":
		return NewCSVFormatter(), nil
	case "summary":
		return NewSummaryFormatter(), nil
	}
	return nil, fmt.Errorf("invalid output format '%s': must be one of table, json, csv, summary", output)
}

func elapsedText(row model.Row) string {
	if row.Initial {
		return "Initial"
	}
	return fmt.Sprintf("%d", row.Elapsed)
}

func localTime(ts int64, loc *time.Location) time.Time {
	t := time.Unix(ts, 0)
	if loc != nil {
		t = t.In(loc)
	}
	return t
}
