package formatter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/penwyp/go-stampwatch/internal/util"
)

// SummaryFormatter prints interval statistics over the recorded timestamps
type SummaryFormatter struct{}

func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

// Summary holds interval statistics over a listing
type Summary struct {
	Count    int
	Capacity int
	First    int64
	Last     int64
	Span     time.Duration
	Average  time.Duration
	Shortest time.Duration
	Longest  time.Duration
}

// Summarize computes statistics over the intervals between rows
func Summarize(listing Listing) Summary {
	s := Summary{Count: len(listing.Rows), Capacity: listing.Capacity}
	if s.Count == 0 {
		return s
	}

	// Rows are newest first
	s.Last = listing.Rows[0].Timestamp
	s.First = listing.Rows[s.Count-1].Timestamp
	s.Span = time.Duration(s.Last-s.First) * time.Second

	intervals := 0
	for _, row := range listing.Rows {
		if row.Initial {
			continue
		}
		d := time.Duration(row.Elapsed) * time.Second
		if intervals == 0 || d < s.Shortest {
			s.Shortest = d
		}
		if d > s.Longest {
			s.Longest = d
		}
		intervals++
	}
	if intervals > 0 {
		s.Average = s.Span / time.Duration(intervals)
	}
	return s
}

func (f *SummaryFormatter) Format(w io.Writer, listing Listing) error {
	s := Summarize(listing)

	var b strings.Builder
	b.WriteString(strings.Repeat("=", 50) + "\n")
	b.WriteString("Timestamp Summary\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	fmt.Fprintf(&b, "Entries:  %s\n", util.FormatCounter(s.Count, s.Capacity))
	if s.Count == 0 {
		b.WriteString("\nNo timestamps recorded\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	layout := "2006-01-02 15:04:05"
	fmt.Fprintf(&b, "First:    %s\n", localTime(s.First, listing.Location).Format(layout))
	fmt.Fprintf(&b, "Last:     %s\n", localTime(s.Last, listing.Location).Format(layout))
	fmt.Fprintf(&b, "Span:     %s\n", util.FormatDuration(s.Span))
	if s.Count > 1 {
		b.WriteString("\nIntervals:\n")
		fmt.Fprintf(&b, "  Average:  %s\n", util.FormatDuration(s.Average))
		fmt.Fprintf(&b, "  Shortest: %s\n", util.FormatDuration(s.Shortest))
		fmt.Fprintf(&b, "  Longest:  %s\n", util.FormatDuration(s.Longest))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
