package magboots

import "github.com/vovakirdan/magboots/internal/config"

// BaseScore is awarded for every completed level.
const BaseScore = 1000

// Score rates a completed level: BaseScore, plus one point per tick left
// under par, minus the death penalty. It never goes below zero.
func Score(cfg config.ScoringConfig, ticks, deaths int) int {
	score := BaseScore
	if ticks < cfg.ParTicks {
		score += cfg.ParTicks - ticks
	}
	score -= deaths * cfg.DeathPenalty
	return max(score, 0)
}
