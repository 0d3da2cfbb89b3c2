package progression

// Calculator applies the level curve. Level L needs L*step experience.
type Calculator struct {
	step int64
}

func NewCalculator(step int64) *Calculator {
	if step <= 0 {
		step = 100
	}
	return &Calculator{step: step}
}

func (c *Calculator) Threshold(level int64) int64 {
	return level * c.step
}

// Apply adds amount to exp and promotes through every threshold it crosses.
func (c *Calculator) Apply(level, exp, amount int64) (newLevel, newExp int64, leveledUp bool) {
	if level < 1 {
		level = 1
	}
	exp += amount
	for exp >= c.Threshold(level) {
		exp -= c.Threshold(level)
		level++
		leveledUp = true
	}
	return level, exp, leveledUp
}
