package calc

import (
	"math"

	"github.com/udisondev/zzzcalc/internal/model"
)

// ComputeRupture runs the rupture pipeline. Sheer force replaces ATK as the
// base offensive stat, and enemy defense has no effect at all: there is no
// defense term in the product.
func ComputeRupture(b *model.Build) ModeResult {
	sheerForce := math.Max(0, finite(b.Agent.Rupture.SheerForce))
	skill := finite(b.Agent.SkillMultPct) / 100

	dmgMult := PctToMult(DmgPctTotal(b, true))
	sheerMult := PctToMult(finite(b.Agent.Rupture.SheerDmgBonusPct))

	base := sheerForce * skill * dmgMult * sheerMult * ResMult(b) * VulnMult(b) * StunMult(b)

	nonCrit := base
	crit := base * (1 + finite(b.Agent.Crit.Dmg))

	return ModeResult{
		NonCrit:  nonCrit,
		Crit:     crit,
		Expected: expectedHit(nonCrit, crit, b.Agent.Crit.Rate),
	}
}
