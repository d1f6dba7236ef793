package mazechase

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mazechase/internal/game"
)

// HeadlessOptions configures a simulation without a screen.
type HeadlessOptions struct {
	Variant   string
	Seed      int64
	MaxTicks  int // 0 means until game over
	MaxLevels int // stop after completing this many levels; 0 means no limit
	Store     game.HighScoreStore
	Logger    *log.Logger
	OnEvent   func(tick uint64, e game.Event)
}

// HeadlessResult summarises a headless run.
type HeadlessResult struct {
	Ticks          uint64
	Score          int
	HighScore      int
	Level          int
	LevelsComplete int
	Lives          int
	Deaths         int
	GhostsEaten    int
	GameOver       bool
}

// RunHeadless plays a game on autopilot as fast as possible. Phase pauses
// of the interactive game are skipped; a death or level change takes
// effect on the next tick.
func RunHeadless(opts HeadlessOptions) (HeadlessResult, error) {
	rules, err := game.RulesFor(opts.Variant)
	if err != nil {
		return HeadlessResult{}, err
	}
	vc := variantConfig(opts.Variant)
	vc.Apply(&rules)

	logger := opts.Logger
	if logger == nil {
		logger = log.Default().WithPrefix(opts.Variant)
	}
	model := game.NewGameModel(rules, game.NewSimulationContext(opts.Seed, logger),
		game.WithSteering(game.AutoSteering{}))
	model.PrepareForNewGame()
	model.LoadHighScore(opts.Store)

	if err := model.BuildLevel(vc.FirstLevel()); err != nil {
		return HeadlessResult{}, err
	}
	if err := model.StartLevel(); err != nil {
		return HeadlessResult{}, err
	}

	var res HeadlessResult
	for opts.MaxTicks <= 0 || res.Ticks < uint64(opts.MaxTicks) {
		step := model.Update()
		res.Ticks = step.Tick
		if opts.OnEvent != nil {
			for _, e := range step.Events {
				opts.OnEvent(step.Tick, e)
			}
		}
		res.GhostsEaten += len(step.KilledGhosts())

		if step.Has(game.EventLevelCompleted) {
			model.EndLevel()
			res.LevelsComplete++
			if opts.MaxLevels > 0 && res.LevelsComplete >= opts.MaxLevels {
				break
			}
			if err := model.NextLevel(); err != nil {
				return res, fmt.Errorf("next level: %w", err)
			}
			continue
		}
		if step.Has(game.EventPacKilled) {
			res.Deaths++
			model.LoseLife()
			if model.IsGameOver() {
				model.EndLevel()
				res.GameOver = true
				break
			}
			if err := model.LetsGetReady(); err != nil {
				return res, fmt.Errorf("resume level: %w", err)
			}
		}
	}

	model.SaveHighScore(opts.Store)
	res.Score = model.Score().Score().Points
	res.HighScore = model.Score().HighScore().Points
	res.Lives = model.Lives()
	if lvl := model.Level(); lvl != nil {
		res.Level = lvl.Number()
	}
	return res, nil
}
