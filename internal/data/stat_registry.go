package data

// StatKind tells how a stat's value (and any delta applied to it) is
// expressed: percentage points or a flat amount.
type StatKind string

const (
	KindPct  StatKind = "pct"
	KindFlat StatKind = "flat"
)

// Stat keys eligible for marginal analysis.
const (
	StatAtk              = "atk"
	StatDmgGenericPct    = "dmgGenericPct"
	StatDmgAttrPct       = "dmgAttrPct"
	StatDmgSkillTypePct  = "dmgSkillTypePct"
	StatCritRatePct      = "critRatePct"
	StatCritDmgPct       = "critDmgPct"
	StatPenRatioPct      = "penRatioPct"
	StatPenFlat          = "penFlat"
	StatDefReductionPct  = "defReductionPct"
	StatDefIgnorePct     = "defIgnorePct"
	StatDmgTakenPct      = "dmgTakenPct"
	StatStunPct          = "stunPct"
	StatAnomDmgPct       = "anomDmgPct"
	StatDisorderDmgPct   = "disorderDmgPct"
	StatSheerForce       = "sheerForce"
	StatSheerDmgBonusPct = "sheerDmgBonusPct"
)

// StatMeta is one catalog entry describing a tunable stat exposed to the
// marginal analyzer and to any UI rendering the sensitivity table.
type StatMeta struct {
	Key   string   `json:"key"`
	Label string   `json:"label"`
	Kind  StatKind `json:"kind"`
}

// statRegistry is the fixed, ordered stat catalog. Registry order is the
// tie-break order of the sensitivity table.
var statRegistry = []StatMeta{
	{Key: StatAtk, Label: "Total ATK", Kind: KindFlat},

	{Key: StatDmgGenericPct, Label: "Generic DMG", Kind: KindPct},
	{Key: StatDmgAttrPct, Label: "Attribute DMG", Kind: KindPct},
	{Key: StatDmgSkillTypePct, Label: "Skill DMG", Kind: KindPct},

	{Key: StatCritRatePct, Label: "Crit Rate", Kind: KindPct},
	{Key: StatCritDmgPct, Label: "Crit DMG", Kind: KindPct},

	{Key: StatPenRatioPct, Label: "PEN Ratio", Kind: KindPct},
	{Key: StatPenFlat, Label: "PEN", Kind: KindFlat},

	{Key: StatDefReductionPct, Label: "DEF Reduction", Kind: KindPct},
	{Key: StatDefIgnorePct, Label: "DEF Ignore", Kind: KindPct},

	{Key: StatDmgTakenPct, Label: "DMG Taken", Kind: KindPct},
	{Key: StatStunPct, Label: "Stunned Multiplier", Kind: KindPct},

	{Key: StatAnomDmgPct, Label: "Anomaly DMG", Kind: KindPct},
	{Key: StatDisorderDmgPct, Label: "Disorder DMG", Kind: KindPct},

	{Key: StatSheerForce, Label: "Sheer Force", Kind: KindFlat},
	{Key: StatSheerDmgBonusPct, Label: "Sheer DMG Bonus", Kind: KindPct},
}

var statByKey = func() map[string]StatMeta {
	m := make(map[string]StatMeta, len(statRegistry))
	for _, s := range statRegistry {
		m[s.Key] = s
	}
	return m
}()

// StatRegistry returns the full catalog in registry order.
// Callers must not modify the returned slice.
func StatRegistry() []StatMeta {
	return statRegistry
}

// StatByKey looks up a catalog entry. The second return is false for keys
// not in the registry.
func StatByKey(key string) (StatMeta, bool) {
	s, ok := statByKey[key]
	return s, ok
}

// StatTakesFlatDelta reports whether a stat accepts flat deltas rather than
// percentage-point ones.
func StatTakesFlatDelta(key string) bool {
	s, ok := statByKey[key]
	return ok && s.Kind == KindFlat
}
