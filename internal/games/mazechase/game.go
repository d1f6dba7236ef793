// Package mazechase turns the simulation core into a playable game: it
// runs the ready, hunting, dying and level complete pauses around
// game.GameModel and registers the variants with the platform.
package mazechase

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mazechase/internal/config"
	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/game"
	"github.com/vovakirdan/mazechase/internal/registry"
)

// Phase is the game flow state around the simulation.
type Phase string

const (
	PhaseReady         Phase = "ready"
	PhaseHunting       Phase = "hunting"
	PhasePacDying      Phase = "pac_dying"
	PhaseLevelComplete Phase = "level_complete"
	PhaseGameOver      Phase = "game_over"
)

const (
	readyTicks         = 120
	dyingTicks         = 90
	levelCompleteTicks = 120
)

var (
	overridesMu sync.RWMutex
	overrides   = config.DefaultConfig()
)

// Configure sets the configuration used by games reset afterwards.
func Configure(cfg config.Config) {
	overridesMu.Lock()
	defer overridesMu.Unlock()
	overrides = cfg
}

func variantConfig(variant string) config.VariantConfig {
	overridesMu.RLock()
	defer overridesMu.RUnlock()
	return overrides.Variant(variant)
}

func init() {
	for _, variant := range game.Variants() {
		rules, err := game.RulesFor(variant)
		if err != nil {
			panic(err)
		}
		registry.Register(registry.GameInfo{ID: variant, Title: rules.Title, Variant: variant},
			func() registry.Game { return New(variant, false) })
		registry.Register(registry.GameInfo{ID: variant + "_demo", Title: rules.Title + " (Demo)", Variant: variant, Demo: true},
			func() registry.Game { return New(variant, true) })
	}
}

// Game is one playable variant.
type Game struct {
	variant string
	demo    bool
	title   string

	model  *game.GameModel
	steer  *game.ManualSteering
	store  game.HighScoreStore
	logger *log.Logger
	err    error

	phase      Phase
	phaseTicks int
	paused     bool
	tick       uint64
	seed       int64

	screenW int
	screenH int
}

// New creates a game of the variant. Demo games run on autopilot and
// end when Pac dies or clears the level.
func New(variant string, demo bool) *Game {
	g := &Game{variant: variant, demo: demo, steer: &game.ManualSteering{}}
	if rules, err := game.RulesFor(variant); err == nil {
		g.title = rules.Title
	} else {
		g.title = variant
	}
	if demo {
		g.title += " (Demo)"
	}
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.demo {
		return g.variant + "_demo"
	}
	return g.variant
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// SetHighScoreStore implements registry.ScoreKeeper.
func (g *Game) SetHighScoreStore(s game.HighScoreStore) {
	g.store = s
}

// SetLogger replaces the logger handed to the simulation.
func (g *Game) SetLogger(l *log.Logger) {
	g.logger = l
}

// Model returns the simulation, or nil before the first Reset.
func (g *Game) Model() *game.GameModel {
	return g.model
}

// Err returns the error that stopped the game, if any.
func (g *Game) Err() error {
	return g.err
}

// Reset starts a new game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.seed = cfg.Seed
	g.paused = false
	g.err = nil
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.steer = &game.ManualSteering{}

	rules, err := game.RulesFor(g.variant)
	if err != nil {
		g.fail(err)
		return
	}
	vc := variantConfig(g.variant)
	vc.Apply(&rules)

	logger := g.logger
	if logger == nil {
		logger = log.Default().WithPrefix(g.ID())
	}
	g.model = game.NewGameModel(rules, game.NewSimulationContext(cfg.Seed, logger), game.WithSteering(g.steer))
	g.model.PrepareForNewGame()
	g.model.LoadHighScore(g.store)

	if g.demo {
		err = g.model.BuildDemoLevel()
	} else {
		err = g.model.BuildLevel(vc.FirstLevel())
	}
	if err != nil {
		g.fail(err)
		return
	}
	g.enter(PhaseReady)
}

func (g *Game) fail(err error) {
	g.err = err
	g.phase = PhaseGameOver
	log.Error("game stopped", "game", g.ID(), "error", err)
}

func (g *Game) enter(p Phase) {
	g.phase = p
	g.phaseTicks = 0
	if p == PhaseGameOver && g.model != nil {
		g.model.SaveHighScore(g.store)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionRestart) && g.phase == PhaseGameOver {
		seed := g.seed + 1
		if g.model != nil {
			seed = g.model.Context().Rand.Int63()
		}
		g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: g.screenW, ScreenH: g.screenH})
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) && g.phase != PhaseGameOver {
		g.paused = !g.paused
	}
	if g.paused || g.phase == PhaseGameOver {
		return core.StepResult{State: g.State()}
	}
	if d, ok := in.SteerDirection(); ok {
		g.steer.SetDirection(d)
	}

	g.phaseTicks++
	switch g.phase {
	case PhaseReady:
		if g.phaseTicks >= readyTicks {
			if err := g.model.StartLevel(); err != nil {
				g.fail(err)
				break
			}
			g.enter(PhaseHunting)
		}
	case PhaseHunting:
		step := g.model.Update()
		switch {
		case step.Has(game.EventLevelCompleted):
			g.model.EndLevel()
			g.enter(PhaseLevelComplete)
		case step.Has(game.EventPacKilled):
			g.enter(PhasePacDying)
		}
	case PhasePacDying:
		if g.phaseTicks >= dyingTicks {
			g.afterDeath()
		}
	case PhaseLevelComplete:
		if g.phaseTicks >= levelCompleteTicks {
			if g.demo {
				g.enter(PhaseGameOver)
				break
			}
			if err := g.model.NextLevel(); err != nil {
				g.fail(err)
				break
			}
			// NextLevel starts the hunting timer; Ready restarts it.
			g.enter(PhaseReady)
		}
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) afterDeath() {
	if g.demo {
		g.enter(PhaseGameOver)
		return
	}
	g.model.LoseLife()
	if g.model.IsGameOver() {
		g.model.EndLevel()
		g.enter(PhaseGameOver)
		return
	}
	if err := g.model.LetsGetReady(); err != nil {
		g.fail(err)
		return
	}
	g.enter(PhaseReady)
}

// Phase returns the current flow state.
func (g *Game) Phase() Phase {
	return g.phase
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		GameOver: g.phase == PhaseGameOver,
		Paused:   g.paused,
	}
	if g.model != nil {
		st.Score = g.model.Score().Score().Points
		if lvl := g.model.Level(); lvl != nil {
			st.Level = lvl.Number()
		}
	}
	return st
}
