package core

const (
	// CascadeCellPoints is awarded per piece cleared by a special effect
	// beyond the original match cells.
	CascadeCellPoints = 10
	// ComboStepBonus is awarded per chain step after the first.
	ComboStepBonus = 50
)

// MatchPoints returns the points for a single match of length n.
func MatchPoints(n int) int {
	switch n {
	case 3:
		return 30
	case 4:
		return 60
	case 5:
		return 100
	default:
		return n * 25
	}
}

// ComboBonus returns the bonus for a move that reached chainDepth.
func ComboBonus(chainDepth int) int {
	if chainDepth <= 1 {
		return 0
	}
	return ComboStepBonus * (chainDepth - 1)
}

// TargetScore returns the cumulative score needed to complete level.
func TargetScore(level int) int {
	return level*500 + 200*(level-1)*level/2
}
