package ui

import "github.com/gdamore/tcell/v2"

// Action is what a key asks the viewer to do
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionPause
	ActionStep
	ActionRestart
)

// KeyToAction converts a key event to a viewer action
func KeyToAction(key tcell.Key, r rune) Action {
	if IsQuitKey(key, r) {
		return ActionQuit
	}
	if key != tcell.KeyRune {
		return ActionNone
	}
	switch r {
	case ' ':
		return ActionPause
	case 'n', 'N':
		return ActionStep
	case 'r', 'R':
		return ActionRestart
	}
	return ActionNone
}

// IsQuitKey returns true if the key should quit the application
func IsQuitKey(key tcell.Key, r rune) bool {
	if key == tcell.KeyEscape || key == tcell.KeyCtrlC {
		return true
	}
	if key == tcell.KeyRune && (r == 'q' || r == 'Q') {
		return true
	}
	return false
}
