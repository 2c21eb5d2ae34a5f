package data

// MaxAgentLevel is the maximum achievable agent level.
const MaxAgentLevel = 60

// levelFactorTable holds the defense-mitigation scaling constant per agent
// level. Index = level (1-60); index 0 is unused.
var levelFactorTable = [MaxAgentLevel + 1]float64{
	0, // 0 (unused)
	50, 54, 58, 62, 66, 71, 76, 82, 88, 94, // 1-10
	100, 107, 114, 121, 129, 137, 145, 153, 162, 172, // 11-20
	181, 191, 201, 211, 222, 233, 245, 256, 268, 281, // 21-30
	293, 306, 319, 333, 347, 361, 375, 390, 405, 421, // 31-40
	436, 452, 469, 485, 502, 519, 537, 555, 573, 592, // 41-50
	610, 629, 649, 669, 689, 709, 730, 751, 772, 794, // 51-60
}

// LevelFactor returns the defense-mitigation scaling constant for an agent
// level. Levels of 60 or above return the level-60 constant. Levels below 1
// clamp to 1. A gap in the table (cannot happen with the full 1-60 range)
// falls back to level+100.
func LevelFactor(level int) float64 {
	lv := level
	if lv < 1 {
		lv = 1
	}
	if lv >= MaxAgentLevel {
		return levelFactorTable[MaxAgentLevel]
	}
	if f := levelFactorTable[lv]; f > 0 {
		return f
	}
	return float64(lv + 100)
}
