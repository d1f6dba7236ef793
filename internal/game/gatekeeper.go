package game

// ReleaseReason says why the gate keeper let a ghost out.
type ReleaseReason int

const (
	ReleaseImmediately ReleaseReason = iota
	ReleaseRevived
	ReleasePrivateCounter
	ReleaseGlobalCounter
	ReleaseStarving
)

func (r ReleaseReason) String() string {
	switch r {
	case ReleaseImmediately:
		return "immediately"
	case ReleaseRevived:
		return "revived"
	case ReleasePrivateCounter:
		return "private dot counter"
	case ReleaseGlobalCounter:
		return "global dot counter"
	case ReleaseStarving:
		return "pac starving"
	default:
		return "unknown"
	}
}

const (
	globalCounterResetValue = 32
	noLimit                 = -1
)

// globalDotLimits apply while the global counter is enabled, indexed by ghost.
var globalDotLimits = [NumGhosts]int{noLimit, 7, 17, noLimit}

// Release describes a ghost let out of the house.
type Release struct {
	Ghost  GhostID
	Reason ReleaseReason
}

// GateKeeper decides when locked ghosts may leave the house. It counts the
// food Pac eats, either per ghost or, after Pac lost a life, with one
// global counter, and forces a release when Pac stops eating for too long.
type GateKeeper struct {
	privateLimits   [NumGhosts]int
	privateCounters [NumGhosts]int
	globalCounter   int
	globalEnabled   bool
	starvingLimit   int
}

// NewGateKeeper returns a gate keeper initialized for level 1.
func NewGateKeeper() *GateKeeper {
	k := &GateKeeper{}
	k.Init(1)
	return k
}

// Init resets all counters and loads the limits of level n.
func (k *GateKeeper) Init(levelNumber int) {
	mustValidLevel(levelNumber)
	switch levelNumber {
	case 1:
		k.privateLimits = [NumGhosts]int{0, 0, 30, 60}
	case 2:
		k.privateLimits = [NumGhosts]int{0, 0, 0, 50}
	default:
		k.privateLimits = [NumGhosts]int{0, 0, 0, 0}
	}
	if levelNumber < 5 {
		k.starvingLimit = 240
	} else {
		k.starvingLimit = 180
	}
	k.privateCounters = [NumGhosts]int{}
	k.globalCounter = 0
	k.globalEnabled = false
}

// OnPacDeath switches to the global counter.
func (k *GateKeeper) OnPacDeath() {
	k.globalCounter = 0
	k.globalEnabled = true
}

// OnFoodEaten counts one eaten pellet or energizer.
func (k *GateKeeper) OnFoodEaten(lvl *GameLevel) {
	if k.globalEnabled {
		if lvl.Ghost(GhostOrange).State() == GhostLocked && k.globalCounter == globalCounterResetValue {
			k.globalCounter = 0
			k.globalEnabled = false
			return
		}
		k.globalCounter++
		return
	}
	if g := preferredLockedGhostInHouse(lvl); g != nil {
		k.privateCounters[g.ID()]++
	}
}

// CheckRelease returns the ghost to release this tick, if any. At most one
// ghost is released per call.
func (k *GateKeeper) CheckRelease(lvl *GameLevel) (Release, bool) {
	var prisoner *Ghost
	for _, g := range lvl.ghosts {
		if g.State() == GhostLocked {
			prisoner = g
			break
		}
	}
	if prisoner == nil {
		return Release{}, false
	}
	id := prisoner.ID()
	if id == GhostRed {
		return Release{Ghost: id, Reason: ReleaseImmediately}, true
	}
	if prisoner.revived {
		return Release{Ghost: id, Reason: ReleaseRevived}, true
	}
	if !k.globalEnabled && k.privateCounters[id] >= k.privateLimits[id] {
		return Release{Ghost: id, Reason: ReleasePrivateCounter}, true
	}
	if k.globalEnabled && globalDotLimits[id] != noLimit && k.globalCounter >= globalDotLimits[id] {
		return Release{Ghost: id, Reason: ReleaseGlobalCounter}, true
	}
	if lvl.pac.starvingTicks >= k.starvingLimit {
		lvl.pac.endStarving()
		return Release{Ghost: id, Reason: ReleaseStarving}, true
	}
	return Release{}, false
}

// GlobalCounter returns the global counter and whether it is in use.
func (k *GateKeeper) GlobalCounter() (int, bool) {
	return k.globalCounter, k.globalEnabled
}

// PrivateCounter returns the dot counter of ghost id.
func (k *GateKeeper) PrivateCounter(id GhostID) int {
	return k.privateCounters[mustGhostIndex(id)]
}

// StarvingLimit returns the ticks without food that force a release.
func (k *GateKeeper) StarvingLimit() int {
	return k.starvingLimit
}

func preferredLockedGhostInHouse(lvl *GameLevel) *Ghost {
	for _, id := range []GhostID{GhostPink, GhostCyan, GhostOrange} {
		g := lvl.Ghost(id)
		if g.State() == GhostLocked && lvl.world.InsideHouse(g.Tile()) {
			return g
		}
	}
	return nil
}
