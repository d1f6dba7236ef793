package game

import (
	"errors"
	"testing"

	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/timer"
)

func immuneRules(r GameRules) GameRules {
	r.PacImmune = true
	return r
}

func TestBuildLevelErrors(t *testing.T) {
	m := NewGameModel(PacManArcade(), NewSimulationContext(1, nil))
	if err := m.BuildLevel(0); !errors.Is(err, ErrInvalidLevelNumber) {
		t.Errorf("BuildLevel(0) error = %v, expected ErrInvalidLevelNumber", err)
	}
	if err := m.StartLevel(); !errors.Is(err, ErrNoLevel) {
		t.Errorf("StartLevel() error = %v, expected ErrNoLevel", err)
	}
	if err := m.LetsGetReady(); !errors.Is(err, ErrNoLevel) {
		t.Errorf("LetsGetReady() error = %v, expected ErrNoLevel", err)
	}

	rules := PacManArcade()
	rules.MapPath = "/nonexistent/maze.yaml"
	broken := NewGameModel(rules, NewSimulationContext(1, nil))
	if err := broken.BuildLevel(1); err == nil {
		t.Error("BuildLevel with a missing map succeeded")
	}
	if broken.Level() != nil {
		t.Error("level should stay nil after a failed build")
	}
	if step := broken.Update(); len(step.Events) != 0 {
		t.Errorf("update without level produced %v", step.Events)
	}
}

func TestLivesBookkeeping(t *testing.T) {
	m := NewGameModel(PacManArcade(), NewSimulationContext(1, nil))
	m.PrepareForNewGame()
	if m.Lives() != 3 {
		t.Fatalf("lives = %d, expected 3", m.Lives())
	}
	m.AddLives(2)
	for i := 0; i < 5; i++ {
		m.LoseLife()
	}
	if !m.IsGameOver() {
		t.Fatal("expected game over")
	}
	m.LoseLife()
	if m.Lives() != 0 {
		t.Errorf("lives = %d after losing a life at zero", m.Lives())
	}
}

func TestNewGameRestoresFood(t *testing.T) {
	m := newTestModel(t, PacManArcade(), 1)
	eatAllBut(m.Level(), 100)

	m.PrepareForNewGame()
	if m.Level() != nil {
		t.Fatal("PrepareForNewGame should discard the level")
	}
	if err := m.BuildLevel(1); err != nil {
		t.Fatal(err)
	}
	w := m.Level().World()
	if w.UneatenFoodCount() != w.TotalFoodCount() || w.TotalFoodCount() != 244 {
		t.Errorf("food %d/%d after rebuild", w.UneatenFoodCount(), w.TotalFoodCount())
	}
	if m.Score().Score().Points != 0 {
		t.Errorf("score = %d", m.Score().Score().Points)
	}
}

func TestPowerTimeline(t *testing.T) {
	m := newTestModel(t, immuneRules(PacManArcade()), 1)
	lvl := m.Level()
	putOnTile(&lvl.pac.creature, core.Tile{X: 1, Y: 6}, core.DirUp)
	parkGhosts(lvl)

	var fading, lost uint64
	for i := 0; i < 400 && lost == 0; i++ {
		step := m.Update()
		if step.Has(EventPowerGained) && step.Tick != 1 {
			t.Fatalf("power gained again at tick %d", step.Tick)
		}
		if step.Has(EventPowerFading) {
			if fading != 0 {
				t.Fatal("fading reported twice")
			}
			fading = step.Tick
		}
		if step.Has(EventPowerLost) {
			lost = step.Tick
		}
		if i == 0 && !lvl.hunting.IsStopped() {
			t.Fatal("hunting timer runs during power")
		}
	}
	power := uint64(timer.SecToTicks(6))
	if lost != power {
		t.Fatalf("power lost at tick %d, expected %d", lost, power)
	}
	if fading != power-PowerFadingTicks {
		t.Errorf("power fading at tick %d, expected %d", fading, power-PowerFadingTicks)
	}
	if lvl.hunting.IsStopped() {
		t.Error("hunting timer should resume after power")
	}
	for _, g := range lvl.Ghosts() {
		if g.State() == GhostFrightened {
			t.Errorf("%s still frightened", g.ID())
		}
	}
}

func TestZeroPowerOnlyReverses(t *testing.T) {
	m := newTestModel(t, immuneRules(PacManArcade()), 17)
	lvl := m.Level()
	if lvl.Params().PacPowerSeconds != 0 {
		t.Fatalf("level 17 power = %d", lvl.Params().PacPowerSeconds)
	}
	putOnTile(&lvl.pac.creature, core.Tile{X: 1, Y: 6}, core.DirUp)
	parkGhosts(lvl)

	step := m.Update()
	if !step.Has(EventEnergizerFound) || step.Has(EventPowerGained) {
		t.Fatalf("events = %v", step.Events)
	}
	if lvl.pac.IsPowered() {
		t.Error("pac powered without power time")
	}
	for _, g := range lvl.Ghosts() {
		if g.State() != GhostHuntingPac {
			t.Errorf("%s is %s", g.ID(), g.State())
		}
	}
}

func TestPacKilled(t *testing.T) {
	m := newTestModel(t, PacManArcade(), 1)
	lvl := m.Level()
	lvl.elroyMode = 1
	parkGhosts(lvl)
	red := lvl.Ghost(GhostRed)
	putOnTile(&red.creature, lvl.pac.Tile(), core.DirLeft)

	step := m.Update()
	e, ok := step.Find(EventPacKilled)
	if !ok || e.Ghost != GhostRed {
		t.Fatalf("events = %v", step.Events)
	}
	if !lvl.pac.IsDead() {
		t.Fatal("pac alive")
	}
	if _, on := lvl.gateKeeper.GlobalCounter(); !on {
		t.Error("global counter not enabled")
	}
	if lvl.CruiseElroy() != 0 {
		t.Error("elroy should be suspended")
	}
	if !lvl.hunting.IsStopped() {
		t.Error("hunting timer should stop")
	}
	if step := m.Update(); len(step.Events) != 0 {
		t.Errorf("dead pac level produced %v", step.Events)
	}

	m.LoseLife()
	if err := m.LetsGetReady(); err != nil {
		t.Fatal(err)
	}
	if lvl.pac.IsDead() || lvl.pac.Position() != lvl.World().Map().PacStart {
		t.Error("pac not reset")
	}
	if red.State() != GhostLocked || lvl.hunting.PhaseIndex() != 0 || lvl.hunting.IsStopped() {
		t.Error("level not ready to resume")
	}

	for _, g := range lvl.Ghosts()[:3] {
		g.setState(GhostHuntingPac)
	}
	lvl.Ghost(GhostOrange).revived = true
	m.releaseGhost(lvl)
	if lvl.CruiseElroy() != 1 {
		t.Errorf("elroy = %d after orange left, expected 1", lvl.CruiseElroy())
	}
}

func TestPacImmuneAndFrightenedGhostsDoNotKill(t *testing.T) {
	tests := []struct {
		name   string
		rules  GameRules
		state  GhostState
		killed bool
	}{
		{"hunting ghost kills", PacManArcade(), GhostHuntingPac, true},
		{"immune pac survives", immuneRules(PacManArcade()), GhostHuntingPac, false},
		{"returning eyes are harmless", PacManArcade(), GhostReturningHome, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestModel(t, tc.rules, 1)
			lvl := m.Level()
			parkGhosts(lvl)
			g := lvl.Ghost(GhostCyan)
			putOnTile(&g.creature, lvl.pac.Tile(), core.DirLeft)
			g.setState(tc.state)
			m.Update()
			if lvl.pac.IsDead() != tc.killed {
				t.Errorf("pac dead = %v, expected %v", lvl.pac.IsDead(), tc.killed)
			}
		})
	}
}

func TestDemoGracePeriod(t *testing.T) {
	m := NewGameModel(PacManArcade(), NewSimulationContext(1, nil))
	m.PrepareForNewGame()
	if err := m.BuildDemoLevel(); err != nil {
		t.Fatal(err)
	}
	if err := m.StartLevel(); err != nil {
		t.Fatal(err)
	}
	lvl := m.Level()
	if !lvl.IsDemo() || m.Score().Enabled() {
		t.Fatal("demo level should disable scoring")
	}
	parkGhosts(lvl)
	red := lvl.Ghost(GhostRed)
	putOnTile(&red.creature, lvl.pac.Tile(), core.DirLeft)
	m.Update()
	if lvl.pac.IsDead() {
		t.Fatal("pac killed during the demo grace period")
	}

	lvl.ticks = int64(m.rules.DemoMinTicks)
	putOnTile(&red.creature, lvl.pac.Tile(), core.DirLeft)
	red.setState(GhostHuntingPac)
	m.Update()
	if !lvl.pac.IsDead() {
		t.Error("pac should be killable after the grace period")
	}
	if m.Score().Score().Points != 0 {
		t.Errorf("demo scored %d points", m.Score().Score().Points)
	}
}

func TestLevelCompleted(t *testing.T) {
	m := newTestModel(t, immuneRules(PacManArcade()), 1)
	lvl := m.Level()
	parkGhosts(lvl)
	eatAllBut(lvl, 1)
	putOnTile(&lvl.pac.creature, firstFoodTile(t, lvl, false), core.DirLeft)

	step := m.Update()
	if !step.Has(EventFoodFound) || !step.Has(EventLevelCompleted) {
		t.Fatalf("events = %v", step.Events)
	}
	if !m.IsLevelComplete() || !lvl.IsCompleted() {
		t.Fatal("level not complete")
	}
	if step := m.Update(); len(step.Events) != 0 {
		t.Errorf("completed level produced %v", step.Events)
	}

	m.EndLevel()
	if err := m.NextLevel(); err != nil {
		t.Fatal(err)
	}
	if m.Level().Number() != 2 || m.Level().World().UneatenFoodCount() != 244 {
		t.Errorf("next level = %d with %d food", m.Level().Number(), m.Level().World().UneatenFoodCount())
	}
}

func TestStaticBonus(t *testing.T) {
	m := newTestModel(t, immuneRules(PacManArcade()), 1)
	lvl := m.Level()
	parkGhosts(lvl)
	eatAllBut(lvl, lvl.World().TotalFoodCount()-69)
	putOnTile(&lvl.pac.creature, firstFoodTile(t, lvl, false), core.DirLeft)

	step := m.Update()
	e, ok := step.Find(EventBonusActivated)
	if !ok || BonusSymbol(e.Value) != Cherries {
		t.Fatalf("events = %v", step.Events)
	}
	b := lvl.Bonus()
	if b.State() != BonusEdible || b.Points() != 100 || b.IsMoving() {
		t.Fatalf("bonus = %s %d moving=%v", b.State(), b.Points(), b.IsMoving())
	}
	if b.Tile() != (core.Tile{X: 14, Y: 20}) {
		t.Errorf("bonus tile = %v", b.Tile())
	}

	before := m.Score().Score().Points
	putOnTile(&lvl.pac.creature, b.Tile(), core.DirLeft)
	lvl.pac.restingTicks = 0
	step = m.Update()
	if e, ok := step.Find(EventBonusEaten); !ok || e.Points != 100 {
		t.Fatalf("events = %v", step.Events)
	}
	if got := m.Score().Score().Points - before; got != 100 {
		t.Errorf("bonus scored %d", got)
	}
}

func TestStaticBonusExpires(t *testing.T) {
	m := newTestModel(t, immuneRules(PacManArcade()), 1)
	lvl := m.Level()
	parkGhosts(lvl)
	eatAllBut(lvl, lvl.World().TotalFoodCount()-69)
	putOnTile(&lvl.pac.creature, firstFoodTile(t, lvl, false), core.DirLeft)

	var activated, expired uint64
	for i := 0; i < 700 && expired == 0; i++ {
		step := m.Update()
		if step.Has(EventBonusActivated) && activated == 0 {
			activated = step.Tick
		}
		if step.Has(EventBonusExpired) {
			expired = step.Tick
		}
		if step.Has(EventBonusEaten) {
			t.Fatal("pac walked into the bonus")
		}
	}
	if activated == 0 || expired == 0 {
		t.Fatalf("activated %d expired %d", activated, expired)
	}
	if d := expired - activated + 1; d < staticBonusMinTicks || d > staticBonusMaxTicks {
		t.Errorf("bonus lasted %d ticks", d)
	}
}

func TestSecondBonusSkippedWhileFirstActive(t *testing.T) {
	m := newTestModel(t, immuneRules(PacManArcade()), 1)
	lvl := m.Level()
	parkGhosts(lvl)
	eatAllBut(lvl, lvl.World().TotalFoodCount()-169)
	lvl.nextBonus = 1
	lvl.bonus.activateStatic(Cherries, 100, lvl.World().Map().BonusPos, 600)
	putOnTile(&lvl.pac.creature, firstFoodTile(t, lvl, false), core.DirLeft)

	step := m.Update()
	if step.Has(EventBonusActivated) {
		t.Fatal("second bonus activated while first was active")
	}
	if lvl.nextBonus != 2 {
		t.Errorf("next bonus index = %d, expected 2", lvl.nextBonus)
	}
}

func TestSecondBonusReplacesPointsDisplay(t *testing.T) {
	m := newTestModel(t, immuneRules(PacManArcade()), 1)
	lvl := m.Level()
	parkGhosts(lvl)
	eatAllBut(lvl, lvl.World().TotalFoodCount()-169)
	lvl.nextBonus = 1
	lvl.bonus.activateStatic(Cherries, 100, lvl.World().Map().BonusPos, 600)
	lvl.bonus.eat()
	putOnTile(&lvl.pac.creature, firstFoodTile(t, lvl, false), core.DirLeft)

	step := m.Update()
	e, ok := step.Find(EventBonusActivated)
	if !ok || BonusSymbol(e.Value) != lvl.bonusSymbols[1] {
		t.Fatalf("events = %v", step.Events)
	}
	if lvl.Bonus().State() != BonusEdible {
		t.Errorf("bonus state = %s, expected edible", lvl.Bonus().State())
	}
}

func TestStarvationReleaseLeavesCounterAtZero(t *testing.T) {
	m := newTestModel(t, immuneRules(PacManArcade()), 3)
	lvl := m.Level()
	lvl.gateKeeper.OnPacDeath()
	if step := m.Update(); !step.Has(EventGhostReleased) {
		t.Fatalf("red not released, events = %v", step.Events)
	}

	lvl.World().EatFoodAt(lvl.pac.Tile())
	lvl.pac.starvingTicks = 240
	step := m.Update()
	e, ok := step.Find(EventGhostReleased)
	if !ok || e.Ghost != GhostPink || e.Reason != ReleaseStarving {
		t.Fatalf("events = %v", step.Events)
	}
	if n := lvl.pac.StarvingTicks(); n != 0 {
		t.Errorf("starving ticks = %d after release, expected 0", n)
	}
}

func TestMovingBonus(t *testing.T) {
	m := newTestModel(t, immuneRules(MsPacManArcade()), 1)
	lvl := m.Level()
	parkGhosts(lvl)
	eatAllBut(lvl, lvl.World().TotalFoodCount()-63)
	putOnTile(&lvl.pac.creature, firstFoodTile(t, lvl, false), core.DirLeft)

	step := m.Update()
	if !step.Has(EventBonusActivated) {
		t.Fatalf("events = %v", step.Events)
	}
	b := lvl.Bonus()
	route := b.Route()
	if !b.IsMoving() || len(route) != 4 {
		t.Fatalf("moving = %v route = %v", b.IsMoving(), route)
	}
	entry := lvl.World().HouseEntryTile()
	if route[0] != entry || route[1] != (core.Tile{X: entry.X, Y: 20}) || route[2] != entry {
		t.Errorf("route = %v", route)
	}

	expired := false
	for i := 0; i < 4000 && !expired; i++ {
		step := m.Update()
		if step.Has(EventBonusEaten) {
			t.Fatal("pac ate the moving bonus")
		}
		expired = step.Has(EventBonusExpired)
		if x := b.Position().X; x < -2*core.TileSize || x > float64((lvl.World().NumCols()+1)*core.TileSize) {
			t.Fatalf("bonus left the maze at x=%v", x)
		}
	}
	if !expired {
		t.Fatalf("moving bonus never reached its exit, stuck at %v", b.Tile())
	}
}

func TestCruiseElroy(t *testing.T) {
	m := newTestModel(t, immuneRules(PacManArcade()), 1)
	lvl := m.Level()
	parkGhosts(lvl)
	eatAllBut(lvl, 21)
	putOnTile(&lvl.pac.creature, firstFoodTile(t, lvl, false), core.DirLeft)

	step := m.Update()
	if e, ok := step.Find(EventCruiseElroy); !ok || e.Value != 1 {
		t.Fatalf("events = %v", step.Events)
	}
	red := lvl.Ghost(GhostRed)
	if got, expected := lvl.ghostSpeed(red), speedPct(lvl.Params().Elroy1Speed); got != expected && !lvl.World().IsTunnel(red.Tile()) {
		t.Errorf("red speed = %v, expected %v", got, expected)
	}

	eatAllBut(lvl, 11)
	lvl.pac.restingTicks = 0
	putOnTile(&lvl.pac.creature, firstFoodTile(t, lvl, false), core.DirLeft)
	step = m.Update()
	if e, ok := step.Find(EventCruiseElroy); !ok || e.Value != 2 {
		t.Fatalf("events = %v", step.Events)
	}
	if lvl.CruiseElroy() != 2 {
		t.Errorf("elroy = %d", lvl.CruiseElroy())
	}
}

func TestPhaseChangeRequestsReversal(t *testing.T) {
	m := newTestModel(t, immuneRules(PacManArcade()), 1)
	lvl := m.Level()
	lvl.hunting.durations[0] = 1
	if err := lvl.hunting.StartPhase(0); err != nil {
		t.Fatal(err)
	}

	step := m.Update()
	if e, ok := step.Find(EventHuntingPhaseStarted); !ok || e.Value != 1 {
		t.Fatalf("events = %v", step.Events)
	}
	for _, id := range []GhostID{GhostCyan, GhostOrange} {
		if !lvl.Ghost(id).ReverseRequested() {
			t.Errorf("%s has no reversal pending", id)
		}
	}
}

func TestPacRestsAfterEating(t *testing.T) {
	tests := []struct {
		name string
		tile core.Tile
		dir  core.Direction
		rest int
	}{
		{"pellet", core.Tile{X: 3, Y: 4}, core.DirLeft, 1},
		{"energizer", core.Tile{X: 1, Y: 6}, core.DirUp, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestModel(t, immuneRules(PacManArcade()), 1)
			lvl := m.Level()
			parkGhosts(lvl)
			putOnTile(&lvl.pac.creature, tc.tile, tc.dir)
			start := lvl.pac.Position()
			for i := 0; i < tc.rest; i++ {
				m.Update()
				if lvl.pac.Position() != start {
					t.Fatalf("pac moved during rest tick %d", i+1)
				}
			}
			m.Update()
			if lvl.pac.Position() == start {
				t.Error("pac did not move after resting")
			}
		})
	}
}

func TestManualSteeringTurns(t *testing.T) {
	steer := &ManualSteering{}
	m := NewGameModel(immuneRules(PacManArcade()), NewSimulationContext(1, nil), WithSteering(steer))
	m.PrepareForNewGame()
	if err := m.BuildLevel(1); err != nil {
		t.Fatal(err)
	}
	if err := m.StartLevel(); err != nil {
		t.Fatal(err)
	}
	lvl := m.Level()
	parkGhosts(lvl)
	// (6,8) is a crossing; Pac arrives from the right.
	putOnTile(&lvl.pac.creature, core.Tile{X: 8, Y: 8}, core.DirLeft)
	lvl.World().EatFoodAt(core.Tile{X: 7, Y: 8})
	lvl.World().EatFoodAt(core.Tile{X: 8, Y: 8})
	steer.SetDirection(core.DirDown)

	for i := 0; i < 40 && lvl.pac.MoveDir() != core.DirDown; i++ {
		m.Update()
	}
	if lvl.pac.MoveDir() != core.DirDown {
		t.Fatalf("pac still moving %s at %v", lvl.pac.MoveDir(), lvl.pac.Tile())
	}
	if lvl.pac.Position().X != 6*core.TileSize {
		t.Errorf("turn off center: x=%v", lvl.pac.Position().X)
	}
}

func TestDeterminism(t *testing.T) {
	run := func(seed int64, variant string) ([]Step, *GameModel) {
		rules, err := RulesFor(variant)
		if err != nil {
			t.Fatal(err)
		}
		m := NewGameModel(rules, NewSimulationContext(seed, nil))
		m.PrepareForNewGame()
		if err := m.BuildLevel(1); err != nil {
			t.Fatal(err)
		}
		if err := m.StartLevel(); err != nil {
			t.Fatal(err)
		}
		steps := make([]Step, 0, 3000)
		for i := 0; i < 3000; i++ {
			steps = append(steps, m.Update().Clone())
		}
		return steps, m
	}

	for _, variant := range Variants() {
		t.Run(variant, func(t *testing.T) {
			a, ma := run(7, variant)
			b, mb := run(7, variant)
			for i := range a {
				if len(a[i].Events) != len(b[i].Events) {
					t.Fatalf("tick %d: %v vs %v", i, a[i].Events, b[i].Events)
				}
				for j := range a[i].Events {
					if a[i].Events[j].String() != b[i].Events[j].String() {
						t.Fatalf("tick %d: %v vs %v", i, a[i].Events[j], b[i].Events[j])
					}
				}
			}
			if ma.Score().Score().Points != mb.Score().Score().Points {
				t.Errorf("scores differ: %d vs %d", ma.Score().Score().Points, mb.Score().Score().Points)
			}
			if ma.Score().Score().Points == 0 {
				t.Error("autopilot scored nothing")
			}
			for i, g := range ma.Level().Ghosts() {
				if g.Position() != mb.Level().Ghosts()[i].Position() {
					t.Errorf("%s at %v vs %v", g.ID(), g.Position(), mb.Level().Ghosts()[i].Position())
				}
			}
		})
	}
}

func TestRulesFor(t *testing.T) {
	if _, err := RulesFor("galaga"); err == nil {
		t.Error("unknown variant accepted")
	}
	names := Variants()
	if len(names) != 2 || names[0] != "mspacman" || names[1] != "pacman" {
		t.Errorf("Variants() = %v", names)
	}
}
