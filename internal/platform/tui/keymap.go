package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sweet-swap/internal/core"
)

// gameKeys binds key names to board actions. Arrows and WASD both move the
// cursor; while a piece is selected they pick the swap direction.
var gameKeys = map[string]core.Action{
	"ctrl+c": core.ActionQuit,
	"q":      core.ActionQuit,
	"up":     core.ActionUp,
	"w":      core.ActionUp,
	"k":      core.ActionUp,
	"down":   core.ActionDown,
	"s":      core.ActionDown,
	"j":      core.ActionDown,
	"left":   core.ActionLeft,
	"a":      core.ActionLeft,
	"h":      core.ActionLeft,
	"right":  core.ActionRight,
	"d":      core.ActionRight,
	"l":      core.ActionRight,
	" ":      core.ActionSelect,
	"enter":  core.ActionConfirm,
	"esc":    core.ActionBack,
	"b":      core.ActionBack,
	"p":      core.ActionPause,
	"r":      core.ActionRestart,
}

// KeyMapper translates Bubble Tea key messages to game and menu actions.
type KeyMapper struct {
	game map[string]core.Action
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{game: gameKeys}
}

// MapKey translates a key message to a game action and reports whether it
// asks to quit. Unbound keys map to ActionNone.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	action = km.game[msg.String()]
	return action, action == core.ActionQuit
}

// MapKeyToFrame queues the action of msg in frame and reports whether the
// key was a quit request. Quit is never queued.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction is a menu or scoreboard action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action. Space selects in
// menus, unlike on the board where it picks up a piece.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch km.game[msg.String()] {
	case core.ActionQuit:
		return MenuActionQuit
	case core.ActionUp:
		return MenuActionUp
	case core.ActionDown:
		return MenuActionDown
	case core.ActionSelect, core.ActionConfirm:
		return MenuActionSelect
	case core.ActionBack:
		return MenuActionBack
	}
	if msg.String() == "tab" {
		return MenuActionScoreboard
	}
	return MenuActionNone
}
