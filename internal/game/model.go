// Package game is the deterministic simulation core: a level of the maze
// chase advanced one tick at a time, reporting what happened in a Step.
package game

import (
	"fmt"

	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/timer"
	"github.com/vovakirdan/mazechase/internal/world"
)

// GameModel owns the running game: rules, lives, score and the current level.
type GameModel struct {
	rules     GameRules
	ctx       *SimulationContext
	level     *GameLevel
	lives     int
	score     *ScoreManager
	steering  Steering
	autopilot Steering
	step      Step
}

// Option configures a GameModel.
type Option func(*GameModel)

// WithSteering sets how Pac is steered in regular levels.
func WithSteering(s Steering) Option {
	return func(m *GameModel) {
		m.steering = s
	}
}

// NewGameModel creates a model for the rules. Without WithSteering Pac is
// driven by the autopilot.
func NewGameModel(rules GameRules, ctx *SimulationContext, opts ...Option) *GameModel {
	m := &GameModel{
		rules:     rules,
		ctx:       ctx,
		score:     NewScoreManager(rules.ExtraLifeScores),
		autopilot: &AutoSteering{},
		step:      Step{Events: make([]Event, 0, 16)},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.steering == nil {
		m.steering = m.autopilot
	}
	return m
}

// Rules returns the variant rules.
func (m *GameModel) Rules() *GameRules { return &m.rules }

// Context returns the simulation context.
func (m *GameModel) Context() *SimulationContext { return m.ctx }

// Level returns the current level, or nil.
func (m *GameModel) Level() *GameLevel { return m.level }

// Lives returns the remaining lives.
func (m *GameModel) Lives() int { return m.lives }

// Score returns the score manager.
func (m *GameModel) Score() *ScoreManager { return m.score }

// PrepareForNewGame discards the level and restores lives and score.
func (m *GameModel) PrepareForNewGame() {
	m.level = nil
	m.lives = m.rules.InitialLives
	m.score.Reset()
	m.score.SetEnabled(true)
	m.ctx.Log.Info("new game", "variant", m.rules.Variant, "lives", m.lives)
}

// BuildLevel creates level n from the map resource.
func (m *GameModel) BuildLevel(n int) error {
	return m.buildLevel(n, false)
}

// BuildDemoLevel creates the attract-mode level. Scoring is off and Pac
// runs on autopilot.
func (m *GameModel) BuildDemoLevel() error {
	return m.buildLevel(1, true)
}

func (m *GameModel) buildLevel(n int, demo bool) error {
	if err := ValidateLevelNumber(n); err != nil {
		return fmt.Errorf("game: build level: %w", err)
	}
	m.level = nil
	mp, err := world.LoadMap(m.rules.MapPath)
	if err != nil {
		return fmt.Errorf("game: build level %d: %w", n, err)
	}
	m.level = newLevel(n, demo, &m.rules, mp, m.ctx)
	m.score.SetEnabled(!demo)
	m.ctx.Log.Info("level built", "level", n, "demo", demo, "map", mp.ID,
		"bonus", m.level.bonusSymbols[0].String())
	return nil
}

// StartLevel starts the first hunting phase of the built level.
func (m *GameModel) StartLevel() error {
	lvl := m.level
	if lvl == nil {
		return fmt.Errorf("game: start level: %w", ErrNoLevel)
	}
	lvl.hunting.StartFirstPhase(lvl.number)
	lvl.started = true
	m.ctx.Log.Info("level started", "level", lvl.number)
	return nil
}

// LetsGetReady puts the actors back on their start positions after Pac
// lost a life and restarts the hunting phases.
func (m *GameModel) LetsGetReady() error {
	lvl := m.level
	if lvl == nil {
		return fmt.Errorf("game: resume level: %w", ErrNoLevel)
	}
	lvl.resetActors()
	lvl.hunting.StartFirstPhase(lvl.number)
	lvl.started = true
	return nil
}

// EndLevel stops all level timers.
func (m *GameModel) EndLevel() {
	lvl := m.level
	if lvl == nil {
		return
	}
	lvl.hunting.Stop()
	lvl.pac.powerTimer.Reset(0)
	lvl.bonus.setInactive()
	lvl.started = false
	m.ctx.Log.Info("level ended", "level", lvl.number, "ticks", lvl.ticks)
}

// NextLevel builds and starts the level after the current one.
func (m *GameModel) NextLevel() error {
	n := 1
	if m.level != nil {
		n = m.level.number + 1
	}
	if err := m.BuildLevel(n); err != nil {
		return err
	}
	return m.StartLevel()
}

// IsLevelComplete reports whether all food of the current level is eaten.
func (m *GameModel) IsLevelComplete() bool {
	return m.level != nil && m.level.world.UneatenFoodCount() == 0
}

// IsGameOver reports whether Pac has no lives left.
func (m *GameModel) IsGameOver() bool {
	return m.lives <= 0
}

// AddLives adds n lives.
func (m *GameModel) AddLives(n int) {
	m.lives += n
}

// LoseLife takes one life. Losing a life with none left is logged and ignored.
func (m *GameModel) LoseLife() {
	if m.lives <= 0 {
		m.ctx.Log.Error("cannot lose a life", "lives", m.lives)
		return
	}
	m.lives--
}

// OnPacKilled kills Pac and applies the consequences to the level.
func (m *GameModel) OnPacKilled() {
	lvl := m.level
	if lvl == nil || lvl.pac.dead {
		return
	}
	lvl.pac.die()
	lvl.gateKeeper.OnPacDeath()
	lvl.elroyEnabled = false
	lvl.bonus.setInactive()
	lvl.hunting.Stop()
	m.ctx.Log.Info("pac killed", "level", lvl.number, "tick", m.ctx.Tick())
}

// LoadHighScore reads the stored high score. Failures are logged and fall
// back to a zero score.
func (m *GameModel) LoadHighScore(store HighScoreStore) {
	if store == nil {
		return
	}
	s, err := store.LoadHighScore(m.rules.Variant)
	if err != nil {
		m.ctx.Log.Warn("high score not loaded", "variant", m.rules.Variant, "error", err)
		s = Score{}
	}
	m.score.setPersistedHighScore(s)
}

// SaveHighScore writes the high score if it beats the stored one.
func (m *GameModel) SaveHighScore(store HighScoreStore) {
	if store == nil || !m.score.newRecord() {
		return
	}
	hs := m.score.HighScore()
	if err := store.SaveHighScore(m.rules.Variant, hs); err != nil {
		m.ctx.Log.Warn("high score not saved", "variant", m.rules.Variant, "error", err)
		return
	}
	m.score.markPersisted()
	m.ctx.Log.Info("new high score", "variant", m.rules.Variant, "points", hs.Points)
}

// Update advances the level by one tick and returns what happened. The
// returned Step is reused by the next call.
func (m *GameModel) Update() *Step {
	m.step.reset(m.ctx.advance())
	lvl := m.level
	if lvl == nil || !lvl.started || lvl.completed || lvl.pac.dead {
		return &m.step
	}
	lvl.ticks++

	m.updateHunting(lvl)
	starved := m.releaseGhost(lvl)
	m.eatFood(lvl, starved)
	if lvl.completed {
		return &m.step
	}
	// Actors have not moved yet, so collisions use last tick's positions.
	m.checkCollisions(lvl)
	if lvl.pac.dead {
		return &m.step
	}

	steering := m.steering
	if lvl.demo {
		steering = m.autopilot
	}
	steering.Steer(lvl, lvl.pac)
	lvl.pac.update(lvl)
	for _, g := range lvl.ghosts {
		g.update(lvl, m.ctx)
	}
	m.updateBonus(lvl)
	m.updatePower(lvl)
	return &m.step
}

func (m *GameModel) scorePoints(lvl *GameLevel, points int) {
	for n := m.score.Add(points, lvl.number); n > 0; n-- {
		m.lives++
		m.step.add(Event{Kind: EventExtraLife})
		m.ctx.Log.Info("extra life", "lives", m.lives)
	}
}

func (m *GameModel) updateHunting(lvl *GameLevel) {
	if !lvl.hunting.Update() {
		return
	}
	for _, g := range lvl.ghosts {
		switch g.state {
		case GhostHuntingPac, GhostLocked, GhostLeavingHouse:
			g.requestReversal()
		}
	}
	idx := lvl.hunting.PhaseIndex()
	m.step.add(Event{Kind: EventHuntingPhaseStarted, Value: idx})
	m.ctx.Log.Debug("hunting phase", "index", idx, "phase", lvl.hunting.Phase().String())
}

// releaseGhost lets at most one ghost out and reports whether Pac's
// starving made it happen.
func (m *GameModel) releaseGhost(lvl *GameLevel) bool {
	r, ok := lvl.gateKeeper.CheckRelease(lvl)
	if !ok {
		return false
	}
	g := lvl.Ghost(r.Ghost)
	g.revived = false
	if lvl.world.InsideHouse(g.Tile()) {
		g.setState(GhostLeavingHouse)
	} else {
		g.setDirs(core.DirLeft)
		if lvl.pac.IsPowered() && !lvl.isVictim(g.id) {
			g.setState(GhostFrightened)
		} else {
			g.setState(GhostHuntingPac)
		}
	}
	if r.Ghost == GhostOrange && !lvl.elroyEnabled {
		lvl.elroyEnabled = true
	}
	m.step.add(Event{Kind: EventGhostReleased, Ghost: r.Ghost, Reason: r.Reason})
	m.ctx.Log.Debug("ghost released", "ghost", r.Ghost.String(), "reason", r.Reason.String())
	return r.Reason == ReleaseStarving
}

// eatFood checks Pac's tile for food. The starving count stays at zero on
// the tick a starvation release reset it.
func (m *GameModel) eatFood(lvl *GameLevel, starved bool) {
	pac := lvl.pac
	tile := pac.Tile()
	if !lvl.world.HasFoodAt(tile) {
		if !starved {
			pac.onStarving()
		}
		return
	}
	energizer := lvl.world.IsEnergizerTile(tile)
	lvl.world.EatFoodAt(tile)
	pac.onFoodEaten(energizer)
	lvl.gateKeeper.OnFoodEaten(lvl)

	if energizer {
		m.step.add(Event{Kind: EventEnergizerFound, Tile: tile})
		m.scorePoints(lvl, m.rules.EnergizerPoints)
		lvl.victims = lvl.victims[:0]
		for _, g := range lvl.ghosts {
			g.killIndex = -1
		}
		m.powerUp(lvl)
	} else {
		m.step.add(Event{Kind: EventFoodFound, Tile: tile})
		m.scorePoints(lvl, m.rules.PelletPoints)
	}

	m.checkCruiseElroy(lvl)
	m.checkBonusSpawn(lvl)

	if lvl.world.UneatenFoodCount() == 0 {
		lvl.completed = true
		m.step.add(Event{Kind: EventLevelCompleted})
		m.ctx.Log.Info("level completed", "level", lvl.number, "ticks", lvl.ticks)
	}
}

func (m *GameModel) powerUp(lvl *GameLevel) {
	secs := lvl.params.PacPowerSeconds
	if secs <= 0 {
		for _, g := range lvl.ghosts {
			if g.state == GhostHuntingPac {
				g.requestReversal()
			}
		}
		return
	}
	lvl.hunting.Stop()
	lvl.pac.powerTimer.Restart(timer.SecToTicks(float64(secs)))
	lvl.powerFade = false
	for _, g := range lvl.ghosts {
		if g.state == GhostHuntingPac {
			g.setState(GhostFrightened)
		}
		if g.state == GhostFrightened {
			g.requestReversal()
		}
	}
	m.step.add(Event{Kind: EventPowerGained})
	m.ctx.Log.Debug("power gained", "seconds", secs)
}

func (m *GameModel) checkCruiseElroy(lvl *GameLevel) {
	uneaten := lvl.world.UneatenFoodCount()
	mode := 0
	switch uneaten {
	case lvl.params.Elroy1DotsLeft:
		mode = 1
	case lvl.params.Elroy2DotsLeft:
		mode = 2
	default:
		return
	}
	lvl.elroyMode = mode
	m.step.add(Event{Kind: EventCruiseElroy, Value: mode})
	m.ctx.Log.Debug("cruise elroy", "mode", mode, "enabled", lvl.elroyEnabled)
}

func (m *GameModel) checkBonusSpawn(lvl *GameLevel) {
	if lvl.nextBonus >= len(m.rules.BonusFoodThresholds) {
		return
	}
	if lvl.world.EatenFoodCount() != m.rules.BonusFoodThresholds[lvl.nextBonus] {
		return
	}
	i := lvl.nextBonus
	lvl.nextBonus++
	if lvl.bonus.IsActive() {
		m.ctx.Log.Debug("bonus skipped, previous still active", "index", i)
		return
	}
	symbol := lvl.bonusSymbols[i]
	points := m.rules.BonusValue(symbol)
	switch m.rules.BonusStyle {
	case BonusMoving:
		if !lvl.bonus.activateMoving(symbol, points, lvl.world, m.ctx) {
			return
		}
	default:
		ticks := m.ctx.randomInt(staticBonusMinTicks, staticBonusMaxTicks+1)
		lvl.bonus.activateStatic(symbol, points, lvl.world.Map().BonusPos, ticks)
	}
	m.step.add(Event{Kind: EventBonusActivated, Value: int(symbol)})
	m.ctx.Log.Debug("bonus activated", "symbol", symbol.String(), "points", points)
}

func (m *GameModel) pacKillable(lvl *GameLevel) bool {
	if m.rules.PacImmune {
		return false
	}
	return !lvl.demo || lvl.ticks >= int64(m.rules.DemoMinTicks)
}

func (m *GameModel) checkCollisions(lvl *GameLevel) {
	pacTile := lvl.pac.Tile()
	var killed []GhostID
	points := 0
	for _, g := range lvl.ghosts {
		if g.state == GhostFrightened && g.Tile() == pacTile {
			points += m.killGhost(lvl, g)
			killed = append(killed, g.id)
		}
	}
	if len(killed) > 0 {
		m.step.add(Event{Kind: EventGhostsKilled, Ghosts: killed, Points: points})
	}

	if !m.pacKillable(lvl) {
		return
	}
	for _, g := range lvl.ghosts {
		if g.state == GhostHuntingPac && g.Tile() == pacTile {
			m.OnPacKilled()
			m.step.add(Event{Kind: EventPacKilled, Ghost: g.id})
			return
		}
	}
}

// killGhost eats a frightened ghost and returns the points scored for it.
func (m *GameModel) killGhost(lvl *GameLevel, g *Ghost) int {
	idx := core.Min(len(lvl.victims), len(ghostKillPoints)-1)
	g.killIndex = idx
	g.setState(GhostEaten)
	lvl.victims = append(lvl.victims, g.id)
	lvl.ghostsKilled++

	points := ghostKillPoints[idx]
	m.scorePoints(lvl, points)
	if lvl.ghostsKilled == AllGhostsKilledThreshold && !lvl.allGhostsBonusAwarded {
		lvl.allGhostsBonusAwarded = true
		m.scorePoints(lvl, m.rules.AllGhostsKilledPoints)
		points += m.rules.AllGhostsKilledPoints
	}
	m.ctx.Log.Debug("ghost killed", "ghost", g.id.String(), "points", ghostKillPoints[idx])
	return points
}

func (m *GameModel) updateBonus(lvl *GameLevel) {
	b := lvl.bonus
	if b.state == BonusEdible && b.Tile() == lvl.pac.Tile() {
		b.eat()
		m.scorePoints(lvl, b.points)
		m.step.add(Event{Kind: EventBonusEaten, Points: b.points, Value: int(b.symbol)})
		return
	}
	if b.update(lvl) {
		m.step.add(Event{Kind: EventBonusExpired, Value: int(b.symbol)})
	}
}

func (m *GameModel) updatePower(lvl *GameLevel) {
	pt := lvl.pac.powerTimer
	if !pt.IsRunning() {
		return
	}
	pt.Tick()
	if !lvl.powerFade && pt.Remaining() <= PowerFadingTicks {
		lvl.powerFade = true
		m.step.add(Event{Kind: EventPowerFading})
	}
	if !pt.HasExpired() {
		return
	}
	pt.Reset(0)
	for _, g := range lvl.ghosts {
		if g.state == GhostFrightened {
			g.setState(GhostHuntingPac)
		}
	}
	lvl.hunting.Start()
	m.step.add(Event{Kind: EventPowerLost})
	m.ctx.Log.Debug("power lost")
}
