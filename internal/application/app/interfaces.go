package app

import (
	"github.com/penwyp/go-stampwatch/internal/core/model"
	"github.com/penwyp/go-stampwatch/internal/presentation/display"
	"github.com/penwyp/go-stampwatch/internal/presentation/interaction"
)

// DisplayController handles terminal display operations
type DisplayController interface {
	// EnterAlternateScreen switches to alternate terminal screen
	EnterAlternateScreen()
	// ExitAlternateScreen returns to normal terminal screen
	ExitAlternateScreen()
	// Render draws the list for the given interaction state
	Render(frame display.Frame, state model.InteractionState)
	// VisibleRows is the number of list rows that fit on screen
	VisibleRows() int
	// Bell rings the terminal bell
	Bell()
}

// InputHandler processes keyboard input events
type InputHandler interface {
	// Events returns a channel of keyboard events
	Events() <-chan interaction.KeyEvent
	// Close cleans up input handler resources
	Close() error
}

// FileMonitor watches the store file for changes
type FileMonitor interface {
	// Events returns a channel of file change events
	Events() <-chan model.FileEvent
	// Close stops monitoring and cleans up resources
	Close() error
}
