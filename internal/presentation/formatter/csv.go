package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Format(w io.Writer, listing Listing) error {
	cw := csv.NewWriter(w)

	headers := []string{"Position", "Timestamp", "Time", "Elapsed Seconds", "Subtitle"}
	if err := cw.Write(headers); err != nil {
		return err
	}

	for _, row := range listing.Rows {
		record := []string{
			fmt.Sprintf("%d", row.Index+1),
			fmt.Sprintf("%d", row.Timestamp),
			localTime(row.Timestamp, listing.Location).Format(time.RFC3339),
			elapsedText(row),
			row.Subtitle,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
