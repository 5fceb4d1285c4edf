package model

import (
	"fmt"
	"strings"
)

// ClockStyle selects how row titles render the time of day
type ClockStyle int

const (
	Clock24h ClockStyle = iota
	Clock12h
)

// ParseClockStyle parses "24h" or "12h"
func ParseClockStyle(s string) (ClockStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "24h":
		return Clock24h, nil
	case "12h":
		return Clock12h, nil
	default:
		return Clock24h, fmt.Errorf("invalid time format '%s': must be either '12h' or '24h'", s)
	}
}

func (c ClockStyle) String() string {
	if c == Clock12h {
		return "12h"
	}
	return "24h"
}

// OverflowPolicy decides what happens when the timestamp log is full
type OverflowPolicy int

const (
	OverflowDrop   OverflowPolicy = iota // Refuse new entries
	OverflowRotate                       // Discard the oldest entry
)

// ParseOverflowPolicy parses "drop" or "rotate"
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "drop":
		return OverflowDrop, nil
	case "rotate", "ring":
		return OverflowRotate, nil
	default:
		return OverflowDrop, fmt.Errorf("invalid overflow policy '%s': must be 'drop' or 'rotate'", s)
	}
}

func (p OverflowPolicy) String() string {
	if p == OverflowRotate {
		return "rotate"
	}
	return "drop"
}

// Row is one rendered list entry
type Row struct {
	Index     int    `json:"index"`    // Position in the log, 0 is the oldest
	Timestamp int64  `json:"timestamp"` // Unix seconds
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Elapsed   int64  `json:"elapsed_seconds"` // Seconds since the previous entry, 0 for the first
	Initial   bool   `json:"initial"`
}
