package formatter

import (
	"io"
	"time"

	"github.com/bytedance/sonic"
)

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type jsonRow struct {
	Position       int    `json:"position"`
	Timestamp      int64  `json:"timestamp"`
	Time           string `json:"time"`
	Title          string `json:"title"`
	Subtitle       string `json:"subtitle"`
	ElapsedSeconds int64  `json:"elapsed_seconds"`
	Initial        bool   `json:"initial"`
}

type jsonListing struct {
	Count    int       `json:"count"`
	Capacity int       `json:"capacity"`
	Rows     []jsonRow `json:"rows"`
}

func (f *JSONFormatter) Format(w io.Writer, listing Listing) error {
	out := jsonListing{
		Count:    len(listing.Rows),
		Capacity: listing.Capacity,
		Rows:     make([]jsonRow, 0, len(listing.Rows)),
	}
	for _, row := range listing.Rows {
		out.Rows = append(out.Rows, jsonRow{
			Position:       row.Index + 1,
			Timestamp:      row.Timestamp,
			Time:           localTime(row.Timestamp, listing.Location).Format(time.RFC3339),
			Title:          row.Title,
			Subtitle:       row.Subtitle,
			ElapsedSeconds: row.Elapsed,
			Initial:        row.Initial,
		})
	}

	data, err := sonic.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
