package core

// RuntimeConfig is what the platform passes to a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in cells
	ScreenH  int   // Screen height in cells
	TickRate int   // Simulation ticks per second
	Seed     int64 // Reserved for randomized content; the simulation itself is deterministic
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// TickDuration returns the simulated seconds per tick.
func (c RuntimeConfig) TickDuration() float64 {
	if c.TickRate <= 0 {
		return 1.0 / float64(DefaultConfig().TickRate)
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is the per-tick status a game reports to the platform.
type GameState struct {
	LevelID  string
	Score    int  // Score of the last completed level
	Ticks    int  // Ticks spent in the current attempt
	Deaths   int  // Deaths in the current attempt
	Jumps    int  // Jumps in the current attempt
	Won      bool // Current level's goal reached
	Complete bool // Last level of the campaign finished
	Paused   bool
	GameOver bool // The player asked to leave
}

// Event is something notable that happened during a tick.
type Event int

const (
	EventNone Event = iota
	EventJump
	EventBootsToggled
	EventStuck
	EventLanded
	EventDied
	EventLevelComplete
	EventCampaignComplete
)

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether e occurred during the tick.
func (r StepResult) Has(e Event) bool {
	for _, got := range r.Events {
		if got == e {
			return true
		}
	}
	return false
}
