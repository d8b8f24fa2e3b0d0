// Package audio turns game events into short synthesized sound cues.
// Games only name cues; a Cues implementation decides whether and how
// they are heard.
package audio

// Cue names emitted by the game.
const (
	CueClick             = "click"
	CueSwapSuccess       = "swapSuccess"
	CueSwapFail          = "swapFail"
	CueMatch             = "match"
	CueChain             = "chain"
	CueSpecialActivation = "specialActivation"
	CueCombo             = "combo"
	CueLevelUp           = "levelUp"
	CueGameOver          = "gameOver"
)

// AllCues lists every cue name in a stable order.
var AllCues = []string{
	CueClick, CueSwapSuccess, CueSwapFail, CueMatch, CueChain,
	CueSpecialActivation, CueCombo, CueLevelUp, CueGameOver,
}

// Cues plays named sound cues. Play must not block.
type Cues interface {
	Play(cue string)
	Close()
}

// Muted discards every cue.
type Muted struct{}

func (Muted) Play(string) {}
func (Muted) Close()      {}
