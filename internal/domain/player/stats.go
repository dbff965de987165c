package player

import (
	"fmt"
	"time"
)

type GameStats struct {
	StepsTaken            int       `json:"stepsTaken"`
	BattlesWon            int       `json:"battlesWon"`
	BattlesLost           int       `json:"battlesLost"`
	CreaturesCaptured     int       `json:"creaturesCaptured"`
	BossesDefeated        int       `json:"bossesDefeated"`
	TotalExperienceGained int       `json:"totalExperienceGained"`
	LocationsDiscovered   int       `json:"locationsDiscovered"`
	TimePlayedMs          int64     `json:"timePlayedMs"`
	GameStartTime         time.Time `json:"gameStartTime"`
}

func (s *GameStats) UpdatePlayTime(now time.Time) {
	if s.GameStartTime.IsZero() || now.Before(s.GameStartTime) {
		return
	}
	s.TimePlayedMs = now.Sub(s.GameStartTime).Milliseconds()
}

// PlayTimeFormatted renders whole hours and minutes, e.g. "2h 5m".
func (s GameStats) PlayTimeFormatted() string {
	d := time.Duration(s.TimePlayedMs) * time.Millisecond
	return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
}
