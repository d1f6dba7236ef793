package game

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/mazechase/internal/core"
)

// EventKind identifies something that happened during a tick.
type EventKind int

const (
	EventFoodFound EventKind = iota
	EventEnergizerFound
	EventPowerGained
	EventPowerFading
	EventPowerLost
	EventBonusActivated
	EventBonusEaten
	EventBonusExpired
	EventGhostsKilled
	EventPacKilled
	EventExtraLife
	EventGhostReleased
	EventHuntingPhaseStarted
	EventCruiseElroy
	EventLevelCompleted
)

var eventNames = [...]string{
	EventFoodFound:           "food-found",
	EventEnergizerFound:      "energizer-found",
	EventPowerGained:         "power-gained",
	EventPowerFading:         "power-fading",
	EventPowerLost:           "power-lost",
	EventBonusActivated:      "bonus-activated",
	EventBonusEaten:          "bonus-eaten",
	EventBonusExpired:        "bonus-expired",
	EventGhostsKilled:        "ghosts-killed",
	EventPacKilled:           "pac-killed",
	EventExtraLife:           "extra-life",
	EventGhostReleased:       "ghost-released",
	EventHuntingPhaseStarted: "hunting-phase-started",
	EventCruiseElroy:         "cruise-elroy",
	EventLevelCompleted:      "level-completed",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is one entry of a Step. Only the fields relevant to Kind are set.
type Event struct {
	Kind   EventKind
	Tile   core.Tile     // food, energizer
	Ghost  GhostID       // ghost-released
	Ghosts []GhostID     // ghosts-killed, in kill order
	Reason ReleaseReason // ghost-released
	Points int           // bonus-eaten, ghosts-killed
	Value  int           // bonus symbol, phase index, elroy mode
}

func (e Event) String() string {
	switch e.Kind {
	case EventFoodFound, EventEnergizerFound:
		return fmt.Sprintf("%s %v", e.Kind, e.Tile)
	case EventGhostReleased:
		return fmt.Sprintf("%s %s (%s)", e.Kind, e.Ghost, e.Reason)
	case EventGhostsKilled:
		names := make([]string, len(e.Ghosts))
		for i, g := range e.Ghosts {
			names[i] = g.String()
		}
		return fmt.Sprintf("%s [%s] +%d", e.Kind, strings.Join(names, ","), e.Points)
	case EventBonusActivated:
		return fmt.Sprintf("%s %s", e.Kind, BonusSymbol(e.Value))
	case EventBonusEaten:
		return fmt.Sprintf("%s +%d", e.Kind, e.Points)
	case EventHuntingPhaseStarted, EventCruiseElroy:
		return fmt.Sprintf("%s %d", e.Kind, e.Value)
	default:
		return e.Kind.String()
	}
}

// Step is the ordered record of everything that happened in one tick.
// The record returned by GameModel.Update is reused; it is valid until the
// next call.
type Step struct {
	Tick   uint64
	Events []Event
}

func (s *Step) reset(tick uint64) {
	s.Tick = tick
	s.Events = s.Events[:0]
}

func (s *Step) add(e Event) {
	s.Events = append(s.Events, e)
}

// Has reports whether an event of the kind happened.
func (s *Step) Has(kind EventKind) bool {
	_, ok := s.Find(kind)
	return ok
}

// Find returns the first event of the kind.
func (s *Step) Find(kind EventKind) (Event, bool) {
	for _, e := range s.Events {
		if e.Kind == kind {
			return e, true
		}
	}
	return Event{}, false
}

// Count returns the number of events of the kind.
func (s *Step) Count(kind EventKind) int {
	n := 0
	for _, e := range s.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// KilledGhosts returns the ghosts eaten this tick.
func (s *Step) KilledGhosts() []GhostID {
	if e, ok := s.Find(EventGhostsKilled); ok {
		return e.Ghosts
	}
	return nil
}

// Clone returns a copy safe to keep after the next update.
func (s *Step) Clone() Step {
	c := Step{Tick: s.Tick, Events: make([]Event, len(s.Events))}
	copy(c.Events, s.Events)
	return c
}
