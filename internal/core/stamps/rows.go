package stamps

import (
	"fmt"
	"time"

	"github.com/penwyp/go-stampwatch/internal/core/model"
	"github.com/penwyp/go-stampwatch/internal/util"
)

// Title layouts, equivalent to "%e.%m. %H:%M:%S" and "%m/%e %I:%M:%S %p"
const (
	Title24hLayout = "_2.01. 15:04:05"
	Title12hLayout = "01/_2 03:04:05 PM"
)

// InitialSubtitle marks the oldest entry, which has no predecessor
const InitialSubtitle = "Initial"

// Rows returns the rendered list, newest first
func (l *Log) Rows(clock model.ClockStyle, loc *time.Location) []model.Row {
	entries := l.Entries()
	rows := make([]model.Row, 0, len(entries))
	for r := range entries {
		item := len(entries) - r - 1
		rows = append(rows, BuildRow(entries, item, l.capacity, clock, loc))
	}
	return rows
}

// BuildRow renders the entry at item within entries
func BuildRow(entries []int64, item, capacity int, clock model.ClockStyle, loc *time.Location) model.Row {
	ts := entries[item]
	row := model.Row{
		Index:     item,
		Timestamp: ts,
		Title:     FormatTitle(time.Unix(ts, 0), clock, loc),
		Subtitle:  InitialSubtitle,
		Initial:   item == 0,
	}
	if item > 0 {
		row.Elapsed = ts - entries[item-1]
		row.Subtitle = FormatSubtitle(row.Elapsed, item+1, capacity)
	}
	return row
}

// FormatTitle formats the time of day for a row
func FormatTitle(t time.Time, clock model.ClockStyle, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	if clock == model.Clock12h {
		return t.Format(Title12hLayout)
	}
	return t.Format(Title24hLayout)
}

// FormatSubtitle formats the elapsed time and the position counter
func FormatSubtitle(elapsed int64, position, capacity int) string {
	return fmt.Sprintf("%s     [%d/%d]", util.FormatElapsed(elapsed), position, capacity)
}
