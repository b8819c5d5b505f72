package core

// Action is a semantic input, decoupled from the physical key that produced it.
type Action int

const (
	ActionNone        Action = iota
	ActionLeft               // A, Left arrow - move along the surface backward
	ActionRight              // D, Right arrow - move along the surface forward
	ActionUp                 // W, Up arrow - climb while stuck to a wall
	ActionDown               // S, Down arrow - descend while stuck to a wall
	ActionJump               // Space - jump away from the surface
	ActionToggleBoots        // M, E - switch the magnetic boots on or off
	ActionPause              // P, Escape - pause/unpause
	ActionRestart            // R - restart the level
	ActionConfirm            // Enter - continue after a level is complete
	ActionBack               // B - return to the level list
	ActionQuit               // Q, Ctrl+C - exit
)

var actionNames = map[Action]string{
	ActionNone:        "None",
	ActionLeft:        "Left",
	ActionRight:       "Right",
	ActionUp:          "Up",
	ActionDown:        "Down",
	ActionJump:        "Jump",
	ActionToggleBoots: "ToggleBoots",
	ActionPause:       "Pause",
	ActionRestart:     "Restart",
	ActionConfirm:     "Confirm",
	ActionBack:        "Back",
	ActionQuit:        "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// ParseAction resolves a name produced by String. It is case sensitive.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name && a != ActionNone {
			return a, true
		}
	}
	return ActionNone, false
}

// InputFrame is the set of actions active during one simulation tick.
// Movement actions stay set while their key is held; the others are set
// only on the tick the key was pressed.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame(actions ...Action) InputFrame {
	f := InputFrame{Actions: make(map[Action]bool, len(actions))}
	for _, a := range actions {
		f.Actions[a] = true
	}
	return f
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Empty reports whether no action is active.
func (f InputFrame) Empty() bool {
	for _, on := range f.Actions {
		if on {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
