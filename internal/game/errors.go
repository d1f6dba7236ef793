package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGhostID is returned for ghost ids outside 0..3.
	ErrInvalidGhostID = errors.New("invalid ghost id")
	// ErrInvalidLevelNumber is returned for level numbers below 1.
	ErrInvalidLevelNumber = errors.New("invalid level number")
	// ErrInvalidPhaseIndex is returned for hunting phase indices outside 0..7.
	ErrInvalidPhaseIndex = errors.New("invalid hunting phase index")
	// ErrNoLevel is returned by operations that need a built level.
	ErrNoLevel = errors.New("no level built")
)

// ValidateGhostID checks that id names one of the four ghosts.
func ValidateGhostID(id GhostID) error {
	if id < GhostRed || id > GhostOrange {
		return fmt.Errorf("%w: %d", ErrInvalidGhostID, int(id))
	}
	return nil
}

// ValidateLevelNumber checks that n is a playable level number.
func ValidateLevelNumber(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidLevelNumber, n)
	}
	return nil
}

func mustValidLevel(n int) {
	if err := ValidateLevelNumber(n); err != nil {
		panic(err)
	}
}
