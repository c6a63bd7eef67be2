package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestKeyToAction(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		rune rune
		want Action
	}{
		{tcell.KeyRune, ' ', ActionPause},
		{tcell.KeyRune, 'n', ActionStep},
		{tcell.KeyRune, 'N', ActionStep},
		{tcell.KeyRune, 'r', ActionRestart},
		{tcell.KeyRune, 'R', ActionRestart},
		{tcell.KeyRune, 'q', ActionQuit},
		{tcell.KeyEscape, 0, ActionQuit},
		{tcell.KeyRune, 'x', ActionNone},
		{tcell.KeyEnter, 0, ActionNone},
	}

	for _, tt := range tests {
		got := KeyToAction(tt.key, tt.rune)
		if got != tt.want {
			t.Errorf("KeyToAction(%v, %q) = %v, want %v", tt.key, tt.rune, got, tt.want)
		}
	}
}

func TestIsQuitKey(t *testing.T) {
	if !IsQuitKey(tcell.KeyRune, 'q') {
		t.Error("'q' should be quit key")
	}
	if !IsQuitKey(tcell.KeyRune, 'Q') {
		t.Error("'Q' should be quit key")
	}
	if !IsQuitKey(tcell.KeyEscape, 0) {
		t.Error("Escape should be quit key")
	}
	if !IsQuitKey(tcell.KeyCtrlC, 0) {
		t.Error("Ctrl+C should be quit key")
	}
	if IsQuitKey(tcell.KeyRune, 'x') {
		t.Error("'x' should not be quit key")
	}
}
