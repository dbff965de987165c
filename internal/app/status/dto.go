package status

import (
	"wildbound/internal/domain/creature"
	"wildbound/internal/domain/player"
	"wildbound/internal/domain/world"
)

type Request struct {
	Slot string
}

type BossProgress struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Level    int    `json:"level"`
	Defeated bool   `json:"defeated"`
}

type Response struct {
	Slot             string               `json:"slot"`
	Version          int64                `json:"version"`
	Name             string               `json:"name"`
	Level            int                  `json:"level"`
	Experience       int                  `json:"experience"`
	ExperienceToNext int                  `json:"experience_to_next"`
	Position         world.Point          `json:"position"`
	Biome            string               `json:"biome"`
	POI              *world.POI           `json:"poi,omitempty"`
	Team             []*creature.Creature `json:"team"`
	CapturedCount    int                  `json:"captured_count"`
	UniqueSpecies    int                  `json:"unique_species"`
	CollectorLevel   string               `json:"collector_level"`
	Inventory        []player.ItemStack   `json:"inventory"`
	Stats            player.GameStats     `json:"stats"`
	PlayTime         string               `json:"play_time"`
	Bosses           []BossProgress       `json:"bosses"`
	FinalBossUnlock  bool                 `json:"final_boss_unlocked"`
	InBattle         bool                 `json:"in_battle"`
}
