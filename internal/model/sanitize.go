package model

import (
	"math"

	"github.com/udisondev/zzzcalc/internal/data"
)

// Sanitize normalizes an arbitrary decoded build in place so that every
// downstream computation yields a finite result: non-finite numbers fall
// back to their documented defaults, never-negative stats are floored at
// zero, fractions are clamped, and unknown enum values fall back to their
// default variant. Unknown keys and malformed entries in the marginal
// override map are dropped silently.
func (b *Build) Sanitize() {
	switch b.Mode {
	case ModeStandard, ModeAnomaly, ModeRupture:
	default:
		b.Mode = ModeStandard
	}

	a := &b.Agent
	if a.Level < 1 {
		a.Level = 1
	}
	switch a.Attribute {
	case AttrPhysical, AttrFire, AttrIce, AttrElectric, AttrEther:
	default:
		a.Attribute = AttrPhysical
	}
	a.Atk = nonNeg(finiteOr(a.Atk, 0))
	a.Crit.Rate = clamp01(finiteOr(a.Crit.Rate, 0.05))
	a.Crit.Dmg = nonNeg(finiteOr(a.Crit.Dmg, 0.50))

	a.DmgBuckets.Generic = finiteOr(a.DmgBuckets.Generic, 0)
	a.DmgBuckets.Attribute = finiteOr(a.DmgBuckets.Attribute, 0)
	a.DmgBuckets.SkillType = finiteOr(a.DmgBuckets.SkillType, 0)
	a.DmgBuckets.Other = finiteOr(a.DmgBuckets.Other, 0)
	a.DmgBuckets.VsStunned = finiteOr(a.DmgBuckets.VsStunned, 0)

	a.Pen.RatioPct = finiteOr(a.Pen.RatioPct, 0)
	a.Pen.Flat = nonNeg(finiteOr(a.Pen.Flat, 0))
	a.SkillMultPct = nonNeg(finiteOr(a.SkillMultPct, 100))

	// Anomaly type keys stay as-is: the calculator resolves unknown keys
	// to the assault fallback, and an unknown previous type means a flat
	// disorder base with no decay bonus.
	an := &a.Anomaly
	an.Prof = nonNeg(finiteOr(an.Prof, 0))
	an.DmgPct = finiteOr(an.DmgPct, 0)
	an.DisorderPct = finiteOr(an.DisorderPct, 0)
	an.TickCountOverride = finiteOrNil(an.TickCountOverride)
	an.TickIntervalSecOverride = finiteOrNil(an.TickIntervalSecOverride)
	an.CritRatePctOverride = finiteOrNil(an.CritRatePctOverride)
	an.CritDmgPctOverride = finiteOrNil(an.CritDmgPctOverride)
	an.DisorderTimePassedSec = nonNeg(finiteOr(an.DisorderTimePassedSec, 0))

	a.Rupture.SheerForce = nonNeg(finiteOr(a.Rupture.SheerForce, 0))
	a.Rupture.SheerDmgBonusPct = finiteOr(a.Rupture.SheerDmgBonusPct, 0)

	e := &b.Enemy
	if e.Level < 1 {
		e.Level = 1
	}
	e.Def = nonNeg(finiteOr(e.Def, 0))
	e.ResAllPct = finiteOr(e.ResAllPct, 0)
	e.ResByAttr.Physical = finiteOrNil(e.ResByAttr.Physical)
	e.ResByAttr.Fire = finiteOrNil(e.ResByAttr.Fire)
	e.ResByAttr.Ice = finiteOrNil(e.ResByAttr.Ice)
	e.ResByAttr.Electric = finiteOrNil(e.ResByAttr.Electric)
	e.ResByAttr.Ether = finiteOrNil(e.ResByAttr.Ether)
	e.ResReductionPct = finiteOr(e.ResReductionPct, 0)
	e.ResIgnorePct = finiteOr(e.ResIgnorePct, 0)
	e.DefReductionPct = finiteOr(e.DefReductionPct, 0)
	e.DefIgnorePct = finiteOr(e.DefIgnorePct, 0)
	e.DmgTakenPct = finiteOr(e.DmgTakenPct, 0)
	e.DmgTakenStunnedPct = finiteOr(e.DmgTakenStunnedPct, 0)
	e.StunPct = finiteOr(e.StunPct, 150)

	b.Marginal.CustomApplied = FilterOverrides(b.Marginal.CustomApplied)
}

// FilterOverrides returns a copy of src containing only entries with a key
// present in the stat registry, a valid delta kind, and a finite value.
// This is the contract the persistence and import collaborators rely on.
func FilterOverrides(src map[string]Delta) map[string]Delta {
	out := make(map[string]Delta, len(src))
	for k, d := range src {
		if _, ok := data.StatByKey(k); !ok {
			continue
		}
		if d.Kind != data.KindPct && d.Kind != data.KindFlat {
			continue
		}
		if math.IsNaN(d.Value) || math.IsInf(d.Value, 0) {
			continue
		}
		out[k] = d
	}
	return out
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

func finiteOrNil(p *float64) *float64 {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return nil
	}
	return p
}

func nonNeg(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
