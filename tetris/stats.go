package tetris

import "time"

// basePoints is the score for clearing 1 to 4 lines at once, multiplied by level+1.
var basePoints = [...]int{1: 40, 2: 100, 3: 300, 4: 1200}

// levelSpeed is the time between automatic drops for each level.
// Levels past the end of the table use the last entry.
var levelSpeed = [...]time.Duration{
	1000 * time.Millisecond,
	900 * time.Millisecond,
	800 * time.Millisecond,
	700 * time.Millisecond,
	600 * time.Millisecond,
	500 * time.Millisecond,
	400 * time.Millisecond,
	300 * time.Millisecond,
	200 * time.Millisecond,
	100 * time.Millisecond,
	75 * time.Millisecond,
	50 * time.Millisecond,
	25 * time.Millisecond,
}

// Stats holds the score bookkeeping of a game.
type Stats struct {
	Level        int
	LinesCleared int
	Score        int
}

// OnLinesCleared updates the stats after count rows were removed at once.
// Counts outside 1..4 are ignored.
func (s *Stats) OnLinesCleared(count int) {
	if count < 1 || count > 4 {
		return
	}
	s.Score += basePoints[count] * (s.Level + 1)
	s.LinesCleared += count
	s.Level = s.LinesCleared / 10
}

// DropInterval returns how long the active piece waits between gravity steps.
func DropInterval(level int) time.Duration {
	switch {
	case level < 0:
		level = 0
	case level >= len(levelSpeed):
		level = len(levelSpeed) - 1
	}
	return levelSpeed[level]
}
