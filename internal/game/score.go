package game

import (
	"sort"
	"time"
)

// Score is a point total with the level it was reached in.
type Score struct {
	Points      int
	LevelNumber int
	Date        time.Time
}

// HighScoreStore persists the best score of each variant.
type HighScoreStore interface {
	LoadHighScore(variant string) (Score, error)
	SaveHighScore(variant string, s Score) error
}

// ScoreManager tracks the running score, the session high score and the
// extra life thresholds.
type ScoreManager struct {
	score           Score
	highScore       Score
	persistedPoints int
	extraLifeScores []int
	awarded         []bool
	enabled         bool
	now             func() time.Time
}

// NewScoreManager creates a manager awarding a life at each threshold.
func NewScoreManager(extraLifeScores []int) *ScoreManager {
	thresholds := append([]int(nil), extraLifeScores...)
	sort.Ints(thresholds)
	return &ScoreManager{
		extraLifeScores: thresholds,
		awarded:         make([]bool, len(thresholds)),
		enabled:         true,
		now:             time.Now,
	}
}

// Reset zeroes the running score and re-arms the extra life thresholds.
func (m *ScoreManager) Reset() {
	m.score = Score{}
	for i := range m.awarded {
		m.awarded[i] = false
	}
}

// SetEnabled turns scoring on or off. Demo levels disable it.
func (m *ScoreManager) SetEnabled(enabled bool) {
	m.enabled = enabled
}

// Enabled reports whether points are counted.
func (m *ScoreManager) Enabled() bool {
	return m.enabled
}

// Score returns the running score.
func (m *ScoreManager) Score() Score {
	return m.score
}

// HighScore returns the best score known this session.
func (m *ScoreManager) HighScore() Score {
	return m.highScore
}

// Add scores points reached in the given level and returns the number of
// extra lives earned by crossing thresholds.
func (m *ScoreManager) Add(points, levelNumber int) int {
	if !m.enabled || points <= 0 {
		return 0
	}
	old := m.score.Points
	m.score.Points += points
	m.score.LevelNumber = levelNumber
	if m.score.Points > m.highScore.Points {
		m.highScore = Score{Points: m.score.Points, LevelNumber: levelNumber, Date: m.now()}
	}

	lives := 0
	for i, threshold := range m.extraLifeScores {
		if !m.awarded[i] && old < threshold && m.score.Points >= threshold {
			m.awarded[i] = true
			lives++
		}
	}
	return lives
}

// setPersistedHighScore installs the high score read from the store.
func (m *ScoreManager) setPersistedHighScore(s Score) {
	m.highScore = s
	m.persistedPoints = s.Points
}

// newRecord reports whether the session high score beats the stored one.
func (m *ScoreManager) newRecord() bool {
	return m.highScore.Points > m.persistedPoints
}

func (m *ScoreManager) markPersisted() {
	m.persistedPoints = m.highScore.Points
}
