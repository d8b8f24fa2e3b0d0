package sweetswap

import (
	"fmt"

	"github.com/vovakirdan/sweet-swap/internal/core"
	engine "github.com/vovakirdan/sweet-swap/internal/games/sweetswap/core"
)

const (
	cellWidth = 3 // "[●]" with the cursor, " ● " without
	hudHeight = 4
)

var pieceColors = map[engine.Color]core.Color{
	engine.ColorRed:    core.ColorBrightRed,
	engine.ColorOrange: core.ColorOrange,
	engine.ColorYellow: core.ColorBrightYellow,
	engine.ColorGreen:  core.ColorBrightGreen,
	engine.ColorBlue:   core.ColorBrightBlue,
	engine.ColorPurple: core.ColorBrightMagenta,
}

// boardSize returns the board's outer size including the border.
func boardSize(r engine.Rules) (w, h int) {
	return r.Width*cellWidth + 2, r.Height + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := boardSize(g.rules)
	boardX := (g.screenW - boardW) / 2
	if g.shake > 0 {
		boardX += []int{-1, 1}[g.shake%2]
	}
	boardY := hudHeight

	g.renderHUD(dst, (g.screenW-boardW)/2, boardW)
	g.renderBoard(dst, core.NewRect(boardX, boardY, boardW, boardH))
	g.renderFooter(dst, boardY+boardH)
	g.renderOverlays(dst, core.NewRect((g.screenW-boardW)/2, boardY, boardW, boardH))
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorGray)
}

func (g *Game) renderHUD(dst *core.Screen, x, w int) {
	title := "SWEET SWAP"
	dst.DrawTextColor(x+(w-len(title))/2, 0, title, core.ColorPink)

	dst.DrawText(x, 1, fmt.Sprintf("Score %d/%d", g.sess.Score(), g.sess.TargetScore()))
	right := fmt.Sprintf("Lv %d  Moves %d", g.sess.Level(), g.sess.MovesRemaining())
	dst.DrawText(max(x, x+w-len(right)), 1, right)

	if g.combo > 1 {
		combo := fmt.Sprintf("COMBO x%d", g.combo)
		dst.DrawTextColor(x+(w-len(combo))/2, 2, combo, core.ColorBrightYellow)
	} else if g.board != nil {
		dst.DrawTextColor(x+(w-len(g.board.Name))/2, 2, g.board.Name, core.ColorGray)
	}
}

func (g *Game) renderBoard(dst *core.Screen, r core.Rect) {
	frame := core.ColorGray
	if g.shake > 0 {
		frame = core.ColorRed
	}
	dst.DrawBox(r, frame)

	for y := 0; y < g.shown.H; y++ {
		for x := 0; x < g.shown.W; x++ {
			c := engine.C(x, y)
			px := r.X + 1 + x*cellWidth
			py := r.Y + 1 + y

			if p, ok := g.shown.Piece(c); ok {
				dst.SetColor(px+1, py, glyph(p), colorOf(p))
			}

			if c == g.cursor && len(g.pending) == 0 {
				open, closing, col := '[', ']', core.ColorBrightWhite
				if g.selected {
					open, closing, col = '<', '>', core.ColorBrightCyan
				}
				dst.SetColor(px, py, open, col)
				dst.SetColor(px+2, py, closing, col)
			}
		}
	}
}

func glyph(p engine.Piece) rune {
	if p.Special == engine.SpecialNone {
		return '●'
	}
	return p.Char()
}

func colorOf(p engine.Piece) core.Color {
	switch p.Special {
	case engine.SpecialRainbow:
		return core.ColorPink
	case engine.SpecialBomb:
		return core.ColorBrightWhite
	}
	if c, ok := pieceColors[p.Color]; ok {
		return c
	}
	return core.ColorDefault
}

func (g *Game) renderFooter(dst *core.Screen, y int) {
	if g.message != "" {
		dst.DrawTextCentered(y, g.message, core.ColorRed)
	}
	dst.DrawTextCentered(y+1, "arrows move  space select  p pause  q quit", core.ColorGray)
}

func (g *Game) renderOverlays(dst *core.Screen, r core.Rect) {
	switch {
	case g.paused:
		drawOverlay(dst, r, "PAUSED", "Press P to resume")
	case len(g.pending) > 0:
	case g.sess.GameOver():
		drawOverlay(dst, r, "GAME OVER", fmt.Sprintf("Score: %d", g.sess.Score()), "Press R to restart")
	case g.sess.LevelComplete():
		drawOverlay(dst, r, "LEVEL COMPLETE", fmt.Sprintf("Enter: level %d", g.sess.Level()+1))
	}
}

// drawOverlay draws a boxed message centered over r.
func drawOverlay(dst *core.Screen, r core.Rect, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	box := r.Centered(width+4, len(lines)+2)

	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, core.ColorBrightWhite)
	for i, l := range lines {
		x := box.X + (box.W-len([]rune(l)))/2
		dst.DrawTextColor(x, box.Y+1+i, l, core.ColorBrightWhite)
	}
}
