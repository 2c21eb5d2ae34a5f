// Package calc implements the damage-formula engine: the multiplier
// primitives shared by every mode, the standard/anomaly/rupture pipelines,
// and the mode-agnostic preview. Everything here is a pure function of the
// build record; degraded inputs clamp or fall back, they never error.
package calc

import (
	"math"

	"github.com/udisondev/zzzcalc/internal/data"
	"github.com/udisondev/zzzcalc/internal/model"
)

// Clamp limits x to [lo, hi]. Non-finite x collapses to lo.
func Clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return lo
	}
	return math.Max(lo, math.Min(hi, x))
}

// PctToMult converts percentage points to a multiplier (12.5 → 1.125).
func PctToMult(pct float64) float64 {
	return 1 + finite(pct)/100
}

// finite maps NaN/Inf to 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ResPctForAttribute returns the enemy's effective base resistance against
// the agent's attribute. A present per-attribute override stacks additively
// with the all-attribute resistance; it does not replace it.
func ResPctForAttribute(b *model.Build) float64 {
	all := finite(b.Enemy.ResAllPct)
	if specific := b.Enemy.ResByAttr.For(b.Agent.Attribute); specific != nil && !math.IsNaN(*specific) && !math.IsInf(*specific, 0) {
		return all + *specific
	}
	return all
}

// ResMult computes the resistance multiplier. Negative effective resistance
// pushes the multiplier above 1 (damage amplification).
func ResMult(b *model.Build) float64 {
	effRes := ResPctForAttribute(b) - finite(b.Enemy.ResReductionPct) - finite(b.Enemy.ResIgnorePct)
	return 1 - effRes/100
}

// VulnMult computes the damage-taken multiplier, including the stunned
// bonus when the target is stunned.
func VulnMult(b *model.Build) float64 {
	base := finite(b.Enemy.DmgTakenPct)
	if b.Enemy.IsStunned {
		base += finite(b.Enemy.DmgTakenStunnedPct)
	}
	return PctToMult(base)
}

// DefMult computes the defense-mitigation multiplier. The reduction order
// matters: DEF reduction/ignore shrink defense first, then the PEN ratio,
// and flat PEN is subtracted last (floored at zero).
func DefMult(b *model.Build) float64 {
	k := data.LevelFactor(b.Agent.Level)

	def := math.Max(0, finite(b.Enemy.Def))

	defPctDown := Clamp((finite(b.Enemy.DefReductionPct)+finite(b.Enemy.DefIgnorePct))/100, 0, 1)
	def *= 1 - defPctDown

	ratio := Clamp(finite(b.Agent.Pen.RatioPct)/100, 0, 1)
	def *= 1 - ratio

	def = math.Max(0, def-math.Max(0, finite(b.Agent.Pen.Flat)))

	return k / (k + def)
}

// StunMult is the stun multiplier: stunPct/100 while the target is stunned,
// otherwise 1.
func StunMult(b *model.Build) float64 {
	if b.Enemy.IsStunned {
		return finite(b.Enemy.StunPct) / 100
	}
	return 1
}

// DmgPctTotal sums the additive damage-bonus buckets in percentage points.
// The skill-type bucket is included only when the caller asks for it
// (standard and rupture do, anomaly and disorder do not), and the
// vs-stunned bucket only counts against a stunned target.
func DmgPctTotal(b *model.Build, includeSkillType bool) float64 {
	bk := &b.Agent.DmgBuckets
	total := finite(bk.Generic) + finite(bk.Attribute) + finite(bk.Other)
	if includeSkillType {
		total += finite(bk.SkillType)
	}
	if b.Enemy.IsStunned {
		total += finite(bk.VsStunned)
	}
	return total
}
