package calc

import "github.com/udisondev/zzzcalc/internal/model"

// ModeResult holds the three damage figures every direct-hit pipeline
// produces.
type ModeResult struct {
	NonCrit  float64 `json:"nonCrit"`
	Crit     float64 `json:"crit"`
	Expected float64 `json:"expected"`
}

// expectedHit blends non-crit and crit damage by the clamped crit rate.
func expectedHit(nonCrit, crit, critRate float64) float64 {
	cr := Clamp(critRate, 0, 1)
	return nonCrit*(1-cr) + crit*cr
}

// ComputeStandard runs the direct-hit pipeline:
//
//	base = atk × skillMult × dmgBonus × defMult × resMult × vulnMult × stunMult
//
// with crit = base × (1 + critDmg) and the expectation weighted by crit rate.
func ComputeStandard(b *model.Build) ModeResult {
	atk := finite(b.Agent.Atk)
	skill := finite(b.Agent.SkillMultPct) / 100

	dmgMult := PctToMult(DmgPctTotal(b, true))

	base := atk * skill * dmgMult * DefMult(b) * ResMult(b) * VulnMult(b) * StunMult(b)

	nonCrit := base
	crit := base * (1 + finite(b.Agent.Crit.Dmg))

	return ModeResult{
		NonCrit:  nonCrit,
		Crit:     crit,
		Expected: expectedHit(nonCrit, crit, b.Agent.Crit.Rate),
	}
}
