package interaction

import "github.com/penwyp/go-stampwatch/internal/core/model"

// Navigate applies a movement action to the selection. rows is the number
// of list rows, visible how many fit on screen. Offset is adjusted so the
// selection stays in view.
func Navigate(state *model.InteractionState, action Action, rows, visible int) {
	if visible < 1 {
		visible = 1
	}

	switch action {
	case ActionUp:
		state.Selected--
	case ActionDown:
		state.Selected++
	case ActionTop:
		state.Selected = 0
	case ActionBottom:
		state.Selected = rows - 1
	case ActionPageUp:
		state.Selected -= visible
	case ActionPageDown:
		state.Selected += visible
	}

	Clamp(state, rows, visible)
}

// Clamp keeps selection and offset within bounds after the row count or
// the screen height changed.
func Clamp(state *model.InteractionState, rows, visible int) {
	if visible < 1 {
		visible = 1
	}
	if rows <= 0 {
		state.Selected = 0
		state.Offset = 0
		return
	}

	if state.Selected >= rows {
		state.Selected = rows - 1
	}
	if state.Selected < 0 {
		state.Selected = 0
	}

	if state.Selected < state.Offset {
		state.Offset = state.Selected
	}
	if state.Selected >= state.Offset+visible {
		state.Offset = state.Selected - visible + 1
	}
	if maxOffset := rows - visible; state.Offset > maxOffset {
		state.Offset = max(maxOffset, 0)
	}
	if state.Offset < 0 {
		state.Offset = 0
	}
}
