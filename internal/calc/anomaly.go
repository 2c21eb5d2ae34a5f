package calc

import (
	"math"

	"github.com/udisondev/zzzcalc/internal/data"
	"github.com/udisondev/zzzcalc/internal/model"
)

// Hit holds the per-hit figures of an anomaly instance or disorder hit.
// Avg equals NonCrit unless the crit special case is enabled.
type Hit struct {
	NonCrit float64 `json:"nonCrit"`
	Crit    float64 `json:"crit"`
	Avg     float64 `json:"avg"`
}

// AnomalyResult is the full anomaly-mode detail record.
type AnomalyResult struct {
	Type            string           `json:"anomType"`
	Kind            data.AnomalyKind `json:"kind"`
	TickCount       int              `json:"tickCount"`
	TickIntervalSec float64          `json:"tickIntervalSec"`
	DurationSec     float64          `json:"durationSec"`

	PerTick Hit `json:"anomalyPerTick"`
	PerProc Hit `json:"anomalyPerProc"`

	DisorderPrevType      string  `json:"disorderPrevType"`
	DisorderTimePassedSec float64 `json:"disorderTimePassedSec"`
	Disorder              Hit     `json:"disorder"`

	CombinedAvg float64 `json:"combinedAvg"`
}

// AnomalyLevelMult is the level-scaling multiplier for anomaly damage:
// 1 + (level-1)/59, level clamped to [1,60], truncated (not rounded) to
// four decimal places.
func AnomalyLevelMult(level int) float64 {
	lv := level
	if lv < 1 {
		lv = 1
	}
	if lv > data.MaxAgentLevel {
		lv = data.MaxAgentLevel
	}
	raw := 1 + float64(lv-1)/59
	return math.Floor(raw*10000) / 10000
}

// AnomalyProfMult converts anomaly proficiency to a multiplier (100 → 1.0),
// floored at zero.
func AnomalyProfMult(prof float64) float64 {
	return math.Max(0, finite(prof)*0.01)
}

// ResolveAnomalyType returns the active anomaly type: the explicit override
// when set, otherwise the attribute's default.
func ResolveAnomalyType(b *model.Build) string {
	if t := b.Agent.Anomaly.Type; t != "" && t != data.AnomalyAuto {
		return t
	}
	return data.AnomalyTypeForAttribute(string(b.Agent.Attribute))
}

// resolvePrevType returns the anomaly type that was active before the
// current one for disorder purposes; "auto" means the current type.
func resolvePrevType(b *model.Build, currentType string) string {
	if v := b.Agent.Anomaly.DisorderPrevType; v != "" && v != data.AnomalyAuto {
		return v
	}
	return currentType
}

// DisorderMultPct computes the disorder base multiplier percent from the
// previous anomaly type and the seconds elapsed since it was applied
// (clamped to [0,10]). The bonus decays stepwise toward zero at the 10s
// mark; unknown previous types get the flat 450 base.
func DisorderMultPct(prevType string, timePassedSec float64) float64 {
	t := Clamp(timePassedSec, 0, 10)

	switch prevType {
	case data.AnomalyBurn:
		return 450 + math.Floor((10-t)*2)*50
	case data.AnomalyShock:
		return 450 + math.Floor(10-t)*125
	case data.AnomalyCorruption:
		return 450 + math.Floor((10-t)*2)*62.5
	case data.AnomalyShatter, data.AnomalyAssault:
		return 450 + math.Floor(10-t)*7.5
	}
	return 450
}

// ComputeAnomaly runs the anomaly pipeline: per-instance damage scaled by
// proficiency and level, tick totals, and the disorder bonus hit.
func ComputeAnomaly(b *model.Build) AnomalyResult {
	anomType := ResolveAnomalyType(b)
	meta := data.AnomalyByType(anomType)

	an := &b.Agent.Anomaly

	ticks := meta.Instances
	if an.TickCountOverride != nil {
		ticks = int(math.Floor(*an.TickCountOverride))
	}
	if ticks < 1 {
		ticks = 1
	}
	interval := meta.IntervalSec
	if an.TickIntervalSecOverride != nil {
		interval = math.Max(0, *an.TickIntervalSecOverride)
	}
	var duration float64
	if meta.Kind == data.AnomalyDot {
		duration = float64(ticks) * interval
	}

	atk := finite(b.Agent.Atk)
	profMult := AnomalyProfMult(an.Prof)
	lvMult := AnomalyLevelMult(b.Agent.Level)

	// The skill-type bucket never feeds anomaly or disorder damage.
	dmgPctBase := DmgPctTotal(b, false)
	anomalyBonusMult := PctToMult(dmgPctBase + finite(an.DmgPct))
	disorderBonusMult := PctToMult(dmgPctBase + finite(an.DisorderPct))

	defMult := DefMult(b)
	resMult := ResMult(b)
	vuln := VulnMult(b)
	stunMult := StunMult(b)

	perInstNonCrit := atk * (meta.PerInstanceMultPct / 100) *
		profMult * lvMult * anomalyBonusMult * defMult * resMult * vuln * stunMult

	// Anomaly instances cannot crit unless explicitly allowed; when allowed,
	// the agent's crit stats apply unless overridden per-anomaly.
	critRate := b.Agent.Crit.Rate
	if an.CritRatePctOverride != nil {
		critRate = Clamp(*an.CritRatePctOverride/100, 0, 1)
	}
	critDmg := b.Agent.Crit.Dmg
	if an.CritDmgPctOverride != nil {
		critDmg = math.Max(0, *an.CritDmgPctOverride/100)
	}

	perTick := anomalyHit(perInstNonCrit, an.AllowCrit, critRate, critDmg)
	perProc := Hit{
		NonCrit: perTick.NonCrit * float64(ticks),
		Crit:    perTick.Crit * float64(ticks),
		Avg:     perTick.Avg * float64(ticks),
	}

	prevType := resolvePrevType(b, anomType)
	t := Clamp(finite(an.DisorderTimePassedSec), 0, 10)

	disorderNonCrit := atk * (DisorderMultPct(prevType, t) / 100) *
		profMult * lvMult * disorderBonusMult * defMult * resMult * vuln * stunMult
	disorder := anomalyHit(disorderNonCrit, an.AllowCrit, critRate, critDmg)

	return AnomalyResult{
		Type:                  anomType,
		Kind:                  meta.Kind,
		TickCount:             ticks,
		TickIntervalSec:       interval,
		DurationSec:           duration,
		PerTick:               perTick,
		PerProc:               perProc,
		DisorderPrevType:      prevType,
		DisorderTimePassedSec: t,
		Disorder:              disorder,
		CombinedAvg:           perProc.Avg + disorder.Avg,
	}
}

func anomalyHit(nonCrit float64, critEnabled bool, critRate, critDmg float64) Hit {
	crit := nonCrit * (1 + finite(critDmg))
	avg := nonCrit
	if critEnabled {
		avg = expectedHit(nonCrit, crit, critRate)
	}
	return Hit{NonCrit: nonCrit, Crit: crit, Avg: avg}
}
