package world

// RainChance is the probability that a new day starts rainy: one wet day to
// two dry ones.
const RainChance = 1.0 / 3.0

// RollRain draws tomorrow's weather from a uniform [0,1) source. The source
// is injected so sessions stay deterministic under test.
func RollRain(random func() float64) bool {
	if random == nil {
		return false
	}
	return random() < RainChance
}
