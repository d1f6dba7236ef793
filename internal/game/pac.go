package game

import (
	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/timer"
)

const (
	pelletRestTicks    = 1
	energizerRestTicks = 3
)

// Pac is the player-controlled actor.
type Pac struct {
	creature

	dead          bool
	restingTicks  int
	starvingTicks int
	powerTimer    *timer.TickTimer
}

func newPac() *Pac {
	return &Pac{powerTimer: timer.New("pac-power")}
}

func (p *Pac) reset(pos core.Vector2f) {
	p.placeAt(pos, core.DirLeft)
	p.dead = false
	p.restingTicks = 0
	p.starvingTicks = 0
	p.powerTimer.Reset(0)
}

// SetWishDir requests a direction change at the next possible tile center.
// A reversal is taken immediately on the next move.
func (p *Pac) SetWishDir(d core.Direction) {
	p.wishDir = d
}

// IsDead reports whether Pac was killed this life.
func (p *Pac) IsDead() bool {
	return p.dead
}

// IsPowered reports whether the power timer is running.
func (p *Pac) IsPowered() bool {
	return p.powerTimer.IsRunning()
}

// PowerRemaining returns the ticks of power left.
func (p *Pac) PowerRemaining() int64 {
	if !p.IsPowered() {
		return 0
	}
	return p.powerTimer.Remaining()
}

// StarvingTicks returns the ticks since Pac last ate.
func (p *Pac) StarvingTicks() int {
	return p.starvingTicks
}

// RestingTicks returns the ticks Pac still pauses after eating.
func (p *Pac) RestingTicks() int {
	return p.restingTicks
}

// IsStuck reports whether Pac stands in front of a wall.
func (p *Pac) IsStuck() bool {
	return p.stuck
}

func (p *Pac) endStarving() {
	p.starvingTicks = 0
}

func (p *Pac) onFoodEaten(energizer bool) {
	p.starvingTicks = 0
	if energizer {
		p.restingTicks = energizerRestTicks
	} else {
		p.restingTicks = pelletRestTicks
	}
}

func (p *Pac) onStarving() {
	p.starvingTicks++
}

func (p *Pac) die() {
	p.dead = true
	p.speed = 0
	p.powerTimer.Reset(0)
}

func (p *Pac) update(lvl *GameLevel) {
	if p.dead {
		return
	}
	if p.restingTicks > 0 {
		p.restingTicks--
		return
	}
	p.speed = lvl.pacSpeed()
	p.move(lvl.world, lvl.mazeAccess, true)
}
