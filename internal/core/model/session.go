package model

// FileEvent represents a file system event
type FileEvent struct {
	Path      string
	Operation string
}

// InteractionState represents the current UI interaction state
type InteractionState struct {
	Selected      int // Index into the rendered rows, 0 is the newest
	Offset        int // First visible row
	ShowHelp      bool
	StatusMessage string // Status message to display
	ConfirmDialog *ConfirmDialog
}

// ConfirmDialog represents a confirmation dialog
type ConfirmDialog struct {
	Title     string
	Message   string
	OnConfirm func()
	OnCancel  func()
}

// DisplayMode represents which screen the display is showing
type DisplayMode int

const (
	ModeNormal DisplayMode = iota
	ModeHelp
	ModeDialog
)
