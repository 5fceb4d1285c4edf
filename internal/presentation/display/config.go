package display

import (
	"time"

	"github.com/penwyp/go-stampwatch/internal/core/model"
)

type DisplayConfig struct {
	TimeFormat model.ClockStyle
	Location   *time.Location
	Color      bool
	Policy     model.OverflowPolicy
}
