package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/penwyp/go-stampwatch/internal/core/model"
	"github.com/penwyp/go-stampwatch/internal/data/watcher"
	"github.com/penwyp/go-stampwatch/internal/presentation/display"
	"github.com/penwyp/go-stampwatch/internal/presentation/interaction"
	"github.com/penwyp/go-stampwatch/internal/util"
)

// Orchestrator coordinates all components of the interactive list
type Orchestrator struct {
	config *AppConfig

	tracker      *Tracker
	stateManager *StateManager

	// UI components
	display  DisplayController
	keyboard InputHandler

	// Store file monitoring, nil when unavailable
	watcher FileMonitor

	clock func() time.Time
}

// NewOrchestrator creates a new Orchestrator instance
func NewOrchestrator(config *AppConfig) (*Orchestrator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Orchestrator{
		config:       config,
		stateManager: NewStateManager(),
	}, nil
}

// Run starts the orchestrator main loop. It returns when ctx is cancelled
// or the user quits; the log is saved either way.
func (o *Orchestrator) Run(ctx context.Context) error {
	util.LogInfo("Starting stamp list...")

	if err := util.InitializeTimeProvider(o.config.Timezone); err != nil {
		return fmt.Errorf("failed to initialize timezone: %w", err)
	}

	if o.tracker == nil {
		tracker, err := OpenTracker(o.config, o.now())
		if err != nil {
			return err
		}
		o.tracker = tracker
	}
	defer func() {
		if err := o.tracker.Close(); err != nil {
			util.LogError(fmt.Sprintf("Failed to save on exit: %v", err))
		}
	}()

	if o.keyboard == nil {
		keyboard, err := interaction.NewKeyboardReader()
		if err != nil {
			return fmt.Errorf("failed to initialize keyboard: %w", err)
		}
		o.keyboard = keyboard
	}
	defer o.keyboard.Close()

	if o.display == nil {
		o.display = display.NewTerminalDisplay(&display.DisplayConfig{
			TimeFormat: o.config.TimeFormat,
			Location:   o.tracker.Location(),
			Color:      o.config.Color,
			Policy:     o.config.Overflow,
		}, nil)
	}
	o.display.EnterAlternateScreen()
	defer o.display.ExitAlternateScreen()

	o.startWatcher()
	defer o.closeWatcher()

	ticker := time.NewTicker(o.config.TickInterval)
	defer ticker.Stop()

	o.updateDisplay()

	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Shutting down stamp list...")
			return nil

		case <-ticker.C:
			o.updateDisplay()

		case event := <-o.fileEvents():
			o.handleFileChange(event)
			o.updateDisplay()

		case keyEvent, ok := <-o.keyboard.Events():
			if !ok {
				return nil
			}
			if o.handleKeyboard(keyEvent) {
				return nil
			}
			o.updateDisplay()
		}
	}
}

func (o *Orchestrator) now() time.Time {
	if o.clock != nil {
		return o.clock()
	}
	return util.GetTimeProvider().Now()
}

// fileEvents returns a nil channel when no watcher runs, which blocks forever
func (o *Orchestrator) fileEvents() <-chan model.FileEvent {
	if o.watcher == nil {
		return nil
	}
	return o.watcher.Events()
}

// startWatcher watches the store file; the list still works without it
func (o *Orchestrator) startWatcher() {
	if o.watcher != nil {
		return
	}
	w, err := watcher.NewFileWatcher(o.tracker.StorePath())
	if err != nil {
		util.LogWarn("Store file watcher unavailable", util.F("error", err.Error()))
		return
	}
	o.watcher = w
}

func (o *Orchestrator) closeWatcher() {
	if o.watcher == nil {
		return
	}
	if err := o.watcher.Close(); err != nil {
		util.LogError(fmt.Sprintf("Failed to close file watcher: %v", err))
	}
}

// updateDisplay renders the current log and interaction state
func (o *Orchestrator) updateDisplay() {
	o.clampSelection()
	o.display.Render(o.frame(), o.stateManager.GetInteractionState())
}

func (o *Orchestrator) frame() display.Frame {
	rows, capacity, full, last, hasLast := o.tracker.Snapshot()
	f := display.Frame{
		Rows:     rows,
		Capacity: capacity,
		Full:     full,
		HasLast:  hasLast,
	}
	if hasLast {
		f.Since = o.now().Sub(last)
	}
	return f
}

func (o *Orchestrator) clampSelection() {
	rows := o.tracker.Len()
	visible := o.display.VisibleRows()
	o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
		interaction.Clamp(s, rows, visible)
	})
}

// handleKeyboard handles keyboard events and reports whether to quit
func (o *Orchestrator) handleKeyboard(event interaction.KeyEvent) bool {
	state := o.stateManager.GetInteractionState()

	// Handle confirm dialog inputs first
	if state.ConfirmDialog != nil {
		switch interaction.DialogActionFor(event) {
		case interaction.ActionConfirm:
			if state.ConfirmDialog.OnConfirm != nil {
				state.ConfirmDialog.OnConfirm()
			}
		case interaction.ActionCancel:
			if state.ConfirmDialog.OnCancel != nil {
				state.ConfirmDialog.OnCancel()
			}
		}
		return false
	}

	action := interaction.ActionFor(event)

	// Escape closes help before it quits
	if state.ShowHelp && (action == interaction.ActionHelp || event.Type == interaction.KeyEscape) {
		o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
			s.ShowHelp = false
		})
		return false
	}

	switch action {
	case interaction.ActionQuit:
		return true
	case interaction.ActionStamp:
		o.stamp()
	case interaction.ActionReset:
		if o.config.ConfirmReset {
			o.confirmReset()
		} else {
			o.reset()
		}
	case interaction.ActionHelp:
		o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
			s.ShowHelp = true
		})
	case interaction.ActionUp, interaction.ActionDown, interaction.ActionTop,
		interaction.ActionBottom, interaction.ActionPageUp, interaction.ActionPageDown:
		rows := o.tracker.Len()
		visible := o.display.VisibleRows()
		o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
			interaction.Navigate(s, action, rows, visible)
		})
	}
	return false
}

// stamp is the short press: record the current time
func (o *Orchestrator) stamp() {
	row, err := o.tracker.Stamp(o.now())
	if err != nil {
		if IsFull(err) {
			o.stateManager.SetStatus(fmt.Sprintf("already enough timestamps (%s)",
				util.FormatCounter(o.tracker.Len(), o.config.Capacity)))
			return
		}
		util.LogError(fmt.Sprintf("Failed to record timestamp: %v", err))
		o.stateManager.SetStatus("save failed: " + err.Error())
		return
	}

	o.afterChange("Recorded " + row.Title)
}

// reset is the long press: start over with one timestamp
func (o *Orchestrator) reset() {
	row, err := o.tracker.Reset(o.now())
	if err != nil {
		util.LogError(fmt.Sprintf("Failed to reset timestamps: %v", err))
		o.stateManager.SetStatus("save failed: " + err.Error())
		return
	}

	o.afterChange("Reset at " + row.Title)
}

func (o *Orchestrator) afterChange(status string) {
	o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
		s.Selected = 0
		s.Offset = 0
		s.StatusMessage = status
	})
	if o.config.Bell {
		o.display.Bell()
	}
}

// confirmReset asks before discarding the log
func (o *Orchestrator) confirmReset() {
	closeDialog := func() {
		o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
			s.ConfirmDialog = nil
		})
	}
	o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
		s.ConfirmDialog = &model.ConfirmDialog{
			Title:   "Reset Timestamps",
			Message: fmt.Sprintf("This will discard all %d timestamps and record the current time. Continue?", o.tracker.Len()),
			OnConfirm: func() {
				closeDialog()
				o.reset()
			},
			OnCancel: func() {
				closeDialog()
				o.stateManager.SetStatus("Reset cancelled")
			},
		}
	})
}

// handleFileChange reloads the log after another process wrote the store
func (o *Orchestrator) handleFileChange(event model.FileEvent) {
	util.LogDebug(fmt.Sprintf("Store file changed: %s (%s)", event.Path, event.Operation))

	changed, err := o.tracker.Reload(o.now())
	if errors.Is(err, ErrUnsavedChanges) {
		o.stateManager.SetStatus("external change ignored, unsaved local changes")
		return
	}
	if err != nil {
		util.LogError(fmt.Sprintf("Failed to reload store: %v", err))
		o.stateManager.SetStatus("reload failed: " + err.Error())
		return
	}
	if changed {
		o.stateManager.SetStatus("Reloaded external change")
	}
}
