package interaction

// Action is what a key press asks the application to do
type Action int

const (
	ActionNone Action = iota
	ActionStamp
	ActionReset
	ActionUp
	ActionDown
	ActionTop
	ActionBottom
	ActionPageUp
	ActionPageDown
	ActionHelp
	ActionQuit
	ActionConfirm
	ActionCancel
)

func (a Action) String() string {
	switch a {
	case ActionStamp:
		return "stamp"
	case ActionReset:
		return "reset"
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionTop:
		return "top"
	case ActionBottom:
		return "bottom"
	case ActionPageUp:
		return "page-up"
	case ActionPageDown:
		return "page-down"
	case ActionHelp:
		return "help"
	case ActionQuit:
		return "quit"
	case ActionConfirm:
		return "confirm"
	case ActionCancel:
		return "cancel"
	}
	return "none"
}

// ActionFor maps a key to its list action. Enter and space are the short
// press, 'r' the long press.
func ActionFor(ev KeyEvent) Action {
	switch ev.Type {
	case KeyEnter:
		return ActionStamp
	case KeyEscape:
		return ActionQuit
	case KeyUp:
		return ActionUp
	case KeyDown:
		return ActionDown
	case KeyHome:
		return ActionTop
	case KeyEnd:
		return ActionBottom
	case KeyPageUp:
		return ActionPageUp
	case KeyPageDown:
		return ActionPageDown
	}

	switch ev.Key {
	case ' ':
		return ActionStamp
	case 'r', 'R':
		return ActionReset
	case 'k':
		return ActionUp
	case 'j':
		return ActionDown
	case 'g':
		return ActionTop
	case 'G':
		return ActionBottom
	case 'h', 'H', '?':
		return ActionHelp
	case 'q', 'Q', keyCtrlC:
		return ActionQuit
	}
	return ActionNone
}

// DialogActionFor maps a key while a confirmation dialog is open
func DialogActionFor(ev KeyEvent) Action {
	switch ev.Type {
	case KeyEnter:
		return ActionConfirm
	case KeyEscape:
		return ActionCancel
	}
	switch ev.Key {
	case 'y', 'Y':
		return ActionConfirm
	case 'n', 'N', 'q', 'Q', keyCtrlC:
		return ActionCancel
	}
	return ActionNone
}
