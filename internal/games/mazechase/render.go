package mazechase

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/game"
	"github.com/vovakirdan/mazechase/internal/world"
)

// Each tile is drawn two columns wide so the maze keeps its proportions.
const cellW = 2

var ghostColors = [game.NumGhosts]core.Color{
	core.ColorRed, core.ColorPink, core.ColorCyan, core.ColorOrange,
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.model == nil || g.model.Level() == nil {
		msg := "No level"
		if g.err != nil {
			msg = g.err.Error()
		}
		dst.DrawTextCentered(dst.Height()/2, msg, core.ColorRed)
		return
	}
	lvl := g.model.Level()
	w := lvl.World()
	if dst.Width() < w.NumCols()*cellW || dst.Height() < w.NumRows() {
		dst.DrawTextCentered(dst.Height()/2, "Window too small", core.ColorWhite)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Resize to %dx%d", w.NumCols()*cellW, w.NumRows()), core.ColorGray)
		return
	}
	offX := (dst.Width() - w.NumCols()*cellW) / 2

	g.renderHUD(dst, offX, w.NumCols()*cellW)
	g.renderMaze(dst, lvl, offX)
	if g.phase != PhaseLevelComplete {
		g.renderBonus(dst, lvl, offX)
		g.renderGhosts(dst, lvl, offX)
	}
	g.renderPac(dst, lvl, offX)
	g.renderFooter(dst, lvl, offX, w.NumRows()-1)

	msgY := int(lvl.World().Map().BonusPos.Y) / core.TileSize
	switch {
	case g.paused:
		dst.DrawTextCentered(msgY, "PAUSED", core.ColorWhite)
	case g.phase == PhaseReady:
		dst.DrawTextCentered(msgY, "READY!", core.ColorYellow)
	case g.phase == PhaseGameOver:
		dst.DrawTextCentered(msgY, "GAME  OVER", core.ColorRed)
	case g.demo:
		dst.DrawTextCentered(msgY, "DEMO", core.ColorGray)
	}
}

func (g *Game) renderHUD(dst *core.Screen, offX, width int) {
	sc := g.model.Score()
	dst.DrawTextColored(offX, 0, "SCORE", core.ColorBrightWhite)
	dst.DrawTextColored(offX, 1, fmt.Sprintf("%6d", sc.Score().Points), core.ColorWhite)
	high := "HIGH SCORE"
	dst.DrawTextColored(offX+(width-len(high))/2, 0, high, core.ColorBrightWhite)
	hs := fmt.Sprintf("%d", sc.HighScore().Points)
	dst.DrawTextColored(offX+(width-len(hs))/2, 1, hs, core.ColorWhite)
	lvl := fmt.Sprintf("LEVEL %d", g.model.Level().Number())
	dst.DrawTextColored(offX+width-len(lvl), 0, lvl, core.ColorBrightWhite)
}

func (g *Game) renderMaze(dst *core.Screen, lvl *game.GameLevel, offX int) {
	w := lvl.World()
	m := w.Map()
	flash := g.phase == PhaseLevelComplete && (g.phaseTicks/15)%2 == 1
	wallColor := core.ColorBrightBlue
	if flash {
		wallColor = core.ColorBrightWhite
	}
	blinkOff := g.phase == PhaseHunting && (g.tick/10)%2 == 1

	for y := 0; y < w.NumRows(); y++ {
		for x := 0; x < w.NumCols(); x++ {
			t := core.Tile{X: x, Y: y}
			sx := offX + x*cellW
			switch m.Content(t) {
			case world.Wall:
				dst.SetColored(sx, y, '█', wallColor)
				dst.SetColored(sx+1, y, '█', wallColor)
			case world.Door:
				dst.SetColored(sx, y, '─', core.ColorPink)
				dst.SetColored(sx+1, y, '─', core.ColorPink)
			case world.Pellet:
				if w.HasFoodAt(t) {
					dst.SetColored(sx, y, '·', core.ColorWhite)
				}
			case world.Energizer:
				if w.HasFoodAt(t) && !blinkOff {
					dst.SetColored(sx, y, '●', core.ColorWhite)
				}
			}
		}
	}
}

// cellOf maps a pixel position to a screen cell, or false if off screen.
func cellOf(dst *core.Screen, offX int, center core.Vector2f) (int, int, bool) {
	x := offX + int(math.Floor(center.X*cellW/core.TileSize))
	y := int(math.Floor(center.Y / core.TileSize))
	if x < 0 || x >= dst.Width() || y < 0 || y >= dst.Height() {
		return 0, 0, false
	}
	return x, y, true
}

func (g *Game) renderPac(dst *core.Screen, lvl *game.GameLevel, offX int) {
	pac := lvl.Pac()
	x, y, ok := cellOf(dst, offX, pac.Center())
	if !ok {
		return
	}
	r := 'ᗧ'
	switch pac.MoveDir() {
	case core.DirLeft:
		r = 'ᗤ'
	case core.DirUp:
		r = 'ᗢ'
	case core.DirDown:
		r = 'ᗣ'
	}
	if pac.IsDead() {
		r = '✱'
	}
	dst.SetColored(x, y, r, core.ColorYellow)
}

func (g *Game) renderGhosts(dst *core.Screen, lvl *game.GameLevel, offX int) {
	fading := lvl.Pac().IsPowered() && lvl.Pac().PowerRemaining() <= game.PowerFadingTicks
	for _, gh := range lvl.Ghosts() {
		x, y, ok := cellOf(dst, offX, gh.Center())
		if !ok {
			continue
		}
		switch gh.State() {
		case game.GhostEaten:
			pts := []string{"200", "400", "800", "1600"}[core.Clamp(gh.KillIndex(), 0, 3)]
			dst.DrawTextColored(x, y, pts, core.ColorCyan)
		case game.GhostReturningHome, game.GhostEnteringHouse:
			dst.SetColored(x, y, '"', core.ColorWhite)
		case game.GhostFrightened:
			c := core.ColorBlue
			if fading && (g.tick/8)%2 == 0 {
				c = core.ColorBrightWhite
			}
			dst.SetColored(x, y, 'ᗣ', c)
		default:
			dst.SetColored(x, y, 'ᗣ', ghostColors[gh.ID()])
		}
	}
}

func (g *Game) renderBonus(dst *core.Screen, lvl *game.GameLevel, offX int) {
	b := lvl.Bonus()
	x, y, ok := cellOf(dst, offX, b.Center())
	if !ok {
		return
	}
	switch b.State() {
	case game.BonusEdible:
		dst.SetColored(x, y, '%', core.ColorBrightMagenta)
	case game.BonusEaten:
		dst.DrawTextColored(x, y, fmt.Sprintf("%d", b.Points()), core.ColorPink)
	}
}

func (g *Game) renderFooter(dst *core.Screen, lvl *game.GameLevel, offX, y int) {
	lives := g.model.Lives()
	if g.phase == PhaseReady || g.phase == PhaseHunting {
		lives-- // the life in play is not shown
	}
	dst.DrawTextColored(offX, y, strings.Repeat("ᗤ ", core.Max(lives, 0)), core.ColorYellow)

	symbols := lvl.BonusSymbols()
	label := symbols[0].String()
	if symbols[1] != symbols[0] {
		label += " " + symbols[1].String()
	}
	x := offX + lvl.World().NumCols()*cellW - len(label)
	dst.DrawTextColored(x, y, label, core.ColorBrightMagenta)
}
