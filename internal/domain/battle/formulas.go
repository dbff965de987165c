package battle

import (
	"math"

	"wildbound/internal/domain/creature"
)

const (
	BaseCaptureRate = 0.3
	MinRunChance    = 0.1
	MaxRunChance    = 0.9
	minRandomFactor = 0.85
	maxRandomFactor = 1.0
)

// Damage is floor(atk*power/(def*2)), scaled by effectiveness and the random
// factor with a floor after each step, and never below 1.
func Damage(attack, defense, power int, effectiveness, factor float64) int {
	if defense < 1 {
		defense = 1
	}
	raw := attack * power / (defense * 2)
	dmg := int(math.Floor(float64(raw) * effectiveness))
	dmg = int(math.Floor(float64(dmg) * factor))
	return max(1, dmg)
}

// RandomFactor maps a uniform [0,1) draw onto [0.85, 1.0].
func RandomFactor(u float64) float64 {
	return minRandomFactor + clamp(u, 0, 1)*(maxRandomFactor-minRandomFactor)
}

func rarityCaptureModifier(r creature.Rarity) float64 {
	switch r {
	case creature.Uncommon:
		return 0.7
	case creature.Rare:
		return 0.4
	case creature.Legendary:
		return 0.1
	default:
		return 1.0
	}
}

func rarityExperienceMultiplier(r creature.Rarity) float64 {
	switch r {
	case creature.Uncommon:
		return 1.3
	case creature.Rare:
		return 1.6
	case creature.Legendary:
		return 2.0
	default:
		return 1.0
	}
}

// CaptureRate rises as health falls and is scaled down by rarity. The result
// is always a usable probability in [0,1].
func CaptureRate(healthPercentage float64, rarity creature.Rarity) float64 {
	rate := BaseCaptureRate + (100-healthPercentage)/100*0.5
	return clamp(rate*rarityCaptureModifier(rarity), 0, 1)
}

// RunChance starts at 0.5 and shifts with the speed difference, clamped to
// [0.1, 0.9].
func RunChance(playerSpeed, opponentSpeed int) float64 {
	chance := 0.5
	sum := float64(playerSpeed + opponentSpeed)
	if sum > 0 {
		diff := float64(playerSpeed - opponentSpeed)
		if playerSpeed > opponentSpeed {
			chance += diff / sum * 0.3
		} else {
			chance += diff / sum * 0.2
		}
	}
	return clamp(chance, MinRunChance, MaxRunChance)
}

func ExperienceGain(defeatedLevel int, rarity creature.Rarity) int {
	return int(math.Floor(float64(defeatedLevel*50) * rarityExperienceMultiplier(rarity)))
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
