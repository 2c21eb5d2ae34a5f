package marginal

import (
	"math"
	"sort"

	"github.com/udisondev/zzzcalc/internal/calc"
	"github.com/udisondev/zzzcalc/internal/data"
	"github.com/udisondev/zzzcalc/internal/model"
)

// DefaultDelta holds the deltas applied to stats the user has not edited:
// one percentage-point step for pct stats and one flat step each for the
// three flat stats.
type DefaultDelta struct {
	Pct        float64
	Atk        float64
	PenFlat    float64
	SheerForce float64
}

// Row is one line of the sensitivity table.
type Row struct {
	Key         string        `json:"key"`
	Label       string        `json:"label"`
	Applied     model.Delta   `json:"applied"`
	Out2        float64       `json:"out2"`
	Gain        float64       `json:"gain"`
	PctGain     float64       `json:"pctGain"`
	OrigVal     float64       `json:"origVal"`
	TotalVal    float64       `json:"totalVal"`
	DisplayKind data.StatKind `json:"displayKind"`
}

// Result is the full sensitivity analysis: the unperturbed baseline preview
// and one row per eligible stat, sorted descending by percentage gain.
type Result struct {
	Base calc.Preview `json:"base"`
	Rows []Row        `json:"rows"`
}

// Analyzer runs sensitivity analyses against an override store.
type Analyzer struct {
	Overrides *Store
	Defaults  DefaultDelta
}

// New returns an analyzer bound to the given override store.
func New(overrides *Store) *Analyzer {
	return &Analyzer{Overrides: overrides}
}

// ruptureAllowed is the fixed allow-list of stats that still apply under
// defense-ignoring rupture math.
var ruptureAllowed = map[string]bool{
	data.StatDmgGenericPct:    true,
	data.StatDmgAttrPct:       true,
	data.StatDmgSkillTypePct:  true,
	data.StatCritRatePct:      true,
	data.StatCritDmgPct:       true,
	data.StatDmgTakenPct:      true,
	data.StatStunPct:          true,
	data.StatSheerForce:       true,
	data.StatSheerDmgBonusPct: true,
}

// eligible filters the catalog per mode: anomaly hides skill-type and crit
// stats (they do not feed anomaly math), rupture restricts to its
// allow-list, and the sheer stats only appear under rupture. Standard
// additionally hides anomaly/disorder-only rows.
func eligible(mode model.Mode, key string) bool {
	if mode == model.ModeAnomaly {
		switch key {
		case data.StatDmgSkillTypePct, data.StatCritRatePct, data.StatCritDmgPct:
			return false
		}
	}
	if mode == model.ModeRupture {
		return ruptureAllowed[key]
	}
	if key == data.StatSheerForce || key == data.StatSheerDmgBonusPct {
		return false
	}
	if mode == model.ModeStandard {
		switch key {
		case data.StatAnomDmgPct, data.StatDisorderDmgPct:
			return false
		}
	}
	return true
}

// resolveDelta picks the delta for a stat: the user's override when it is
// finite and of the kind the stat expects, otherwise the default step.
// A wrong-kind or non-finite override is ignored, never an error.
func (a *Analyzer) resolveDelta(key string) model.Delta {
	expectsFlat := data.StatTakesFlatDelta(key)
	if a.Overrides != nil {
		if ov, ok := a.Overrides.Get(key); ok && !math.IsNaN(ov.Value) && !math.IsInf(ov.Value, 0) {
			if expectsFlat && ov.Kind == data.KindFlat {
				return ov
			}
			if !expectsFlat && ov.Kind == data.KindPct {
				return ov
			}
		}
	}
	return a.defaultDelta(key)
}

func (a *Analyzer) defaultDelta(key string) model.Delta {
	switch key {
	case data.StatAtk:
		return model.Delta{Kind: data.KindFlat, Value: a.Defaults.Atk}
	case data.StatPenFlat:
		return model.Delta{Kind: data.KindFlat, Value: a.Defaults.PenFlat}
	case data.StatSheerForce:
		return model.Delta{Kind: data.KindFlat, Value: a.Defaults.SheerForce}
	}
	return model.Delta{Kind: data.KindPct, Value: a.Defaults.Pct}
}

// Analyze computes the sensitivity table for a build. Every row is
// evaluated on an independent clone of the build with exactly one stat
// changed, so the input record is never mutated and every row measures
// against the identical baseline.
func (a *Analyzer) Analyze(b *model.Build) Result {
	base := calc.ComputePreview(b)
	baseOut := base.Output

	var rows []Row
	for _, m := range data.StatRegistry() {
		if !eligible(b.Mode, m.Key) {
			continue
		}

		applied := a.resolveDelta(m.Key)

		cp := b.Clone()
		applyDelta(cp, m.Key, applied)
		out2 := calc.ComputePreview(cp).Output

		gain := out2 - baseOut
		pctGain := 0.0
		if baseOut != 0 {
			pctGain = gain / baseOut * 100
		}

		orig := displayValue(b, m.Key)
		total := orig + applied.Value
		if m.Key == data.StatCritRatePct {
			// Display-only clamp; the [0,1] multiplier clamp happens in the
			// calculator regardless.
			total = calc.Clamp(total, 0, 100)
		}

		rows = append(rows, Row{
			Key:         m.Key,
			Label:       m.Label,
			Applied:     applied,
			Out2:        out2,
			Gain:        gain,
			PctGain:     pctGain,
			OrigVal:     orig,
			TotalVal:    total,
			DisplayKind: m.Kind,
		})
	}

	// Ties keep registry order.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].PctGain > rows[j].PctGain })

	return Result{Base: base, Rows: rows}
}

func pctOf(d model.Delta) float64 {
	if d.Kind == data.KindPct {
		return d.Value
	}
	return 0
}

func flatOf(d model.Delta) float64 {
	if d.Kind == data.KindFlat {
		return d.Value
	}
	return 0
}

// applyDelta adds the delta to the one stat it names. The build is the
// caller's private clone; nothing here needs reverting.
func applyDelta(b *model.Build, key string, d model.Delta) {
	switch key {
	case data.StatAtk:
		b.Agent.Atk += flatOf(d)
	case data.StatDmgGenericPct:
		b.Agent.DmgBuckets.Generic += pctOf(d)
	case data.StatDmgAttrPct:
		b.Agent.DmgBuckets.Attribute += pctOf(d)
	case data.StatDmgSkillTypePct:
		b.Agent.DmgBuckets.SkillType += pctOf(d)
	case data.StatCritRatePct:
		b.Agent.Crit.Rate = calc.Clamp(b.Agent.Crit.Rate+pctOf(d)/100, 0, 1)
	case data.StatCritDmgPct:
		b.Agent.Crit.Dmg += pctOf(d) / 100
	case data.StatPenRatioPct:
		b.Agent.Pen.RatioPct += pctOf(d)
	case data.StatPenFlat:
		b.Agent.Pen.Flat += flatOf(d)
	case data.StatDefReductionPct:
		b.Enemy.DefReductionPct += pctOf(d)
	case data.StatDefIgnorePct:
		b.Enemy.DefIgnorePct += pctOf(d)
	case data.StatDmgTakenPct:
		b.Enemy.DmgTakenPct += pctOf(d)
	case data.StatStunPct:
		b.Enemy.StunPct += pctOf(d)
	case data.StatAnomDmgPct:
		b.Agent.Anomaly.DmgPct += pctOf(d)
	case data.StatDisorderDmgPct:
		b.Agent.Anomaly.DisorderPct += pctOf(d)
	case data.StatSheerForce:
		b.Agent.Rupture.SheerForce += flatOf(d)
	case data.StatSheerDmgBonusPct:
		b.Agent.Rupture.SheerDmgBonusPct += pctOf(d)
	}
}

// displayValue returns the stat's current value in its display unit
// (crit stats are stored as fractions but shown in percent).
func displayValue(b *model.Build, key string) float64 {
	switch key {
	case data.StatAtk:
		return b.Agent.Atk
	case data.StatDmgGenericPct:
		return b.Agent.DmgBuckets.Generic
	case data.StatDmgAttrPct:
		return b.Agent.DmgBuckets.Attribute
	case data.StatDmgSkillTypePct:
		return b.Agent.DmgBuckets.SkillType
	case data.StatCritRatePct:
		return b.Agent.Crit.Rate * 100
	case data.StatCritDmgPct:
		return b.Agent.Crit.Dmg * 100
	case data.StatPenRatioPct:
		return b.Agent.Pen.RatioPct
	case data.StatPenFlat:
		return b.Agent.Pen.Flat
	case data.StatDefReductionPct:
		return b.Enemy.DefReductionPct
	case data.StatDefIgnorePct:
		return b.Enemy.DefIgnorePct
	case data.StatDmgTakenPct:
		return b.Enemy.DmgTakenPct
	case data.StatStunPct:
		return b.Enemy.StunPct
	case data.StatAnomDmgPct:
		return b.Agent.Anomaly.DmgPct
	case data.StatDisorderDmgPct:
		return b.Agent.Anomaly.DisorderPct
	case data.StatSheerForce:
		return b.Agent.Rupture.SheerForce
	case data.StatSheerDmgBonusPct:
		return b.Agent.Rupture.SheerDmgBonusPct
	}
	return 0
}
