package marginal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/zzzcalc/internal/data"
	"github.com/udisondev/zzzcalc/internal/model"
)

func analyzerBuild() *model.Build {
	b := model.Defaults()
	b.Agent.Atk = 1000
	b.Agent.Crit.Rate = 0
	b.Agent.Crit.Dmg = 0
	return b
}

func rowKeys(rows []Row) []string {
	keys := make([]string, len(rows))
	for i, r := range rows {
		keys[i] = r.Key
	}
	return keys
}

func rowByKey(t *testing.T, rows []Row, key string) Row {
	t.Helper()
	for _, r := range rows {
		if r.Key == key {
			return r
		}
	}
	t.Fatalf("no row for key %q", key)
	return Row{}
}

func TestAnalyzeDoesNotMutateBuild(t *testing.T) {
	b := analyzerBuild()
	b.Mode = model.ModeAnomaly
	b.Agent.Attribute = model.AttrFire
	b.Agent.Anomaly.Prof = 100
	snapshot := b.Clone()

	a := New(NewStore())
	a.Overrides.Set(data.StatAtk, data.KindFlat, 100)
	a.Overrides.Set(data.StatAnomDmgPct, data.KindPct, 20)

	first := a.Analyze(b)
	second := a.Analyze(b)

	require.Equal(t, snapshot, b, "analysis must leave the build untouched")
	assert.Equal(t, first, second, "repeated analysis of the same build must be identical")
}

func TestAnalyzeSortsByPctGainDescending(t *testing.T) {
	b := analyzerBuild()

	a := New(NewStore())
	a.Overrides.Set(data.StatDmgGenericPct, data.KindPct, 12) // +12%
	a.Overrides.Set(data.StatDmgAttrPct, data.KindPct, 5)     // +5%

	res := a.Analyze(b)
	require.NotEmpty(t, res.Rows)

	assert.Equal(t, data.StatDmgGenericPct, res.Rows[0].Key)
	assert.Equal(t, data.StatDmgAttrPct, res.Rows[1].Key)
	assert.InDelta(t, 12, res.Rows[0].PctGain, 1e-9)
	assert.InDelta(t, 5, res.Rows[1].PctGain, 1e-9)
	assert.InDelta(t, 120, res.Rows[0].Gain, 1e-9)

	// Untouched stats carry the zero default delta, gain nothing, and keep
	// registry order among themselves (stable sort).
	assert.Equal(t, data.StatAtk, res.Rows[2].Key)
	assert.Equal(t, 0.0, res.Rows[2].Gain)
}

func TestAnalyzeModeEligibility(t *testing.T) {
	a := New(NewStore())

	b := analyzerBuild()
	b.Mode = model.ModeStandard
	keys := rowKeys(a.Analyze(b).Rows)
	assert.NotContains(t, keys, data.StatAnomDmgPct)
	assert.NotContains(t, keys, data.StatDisorderDmgPct)
	assert.NotContains(t, keys, data.StatSheerForce)
	assert.NotContains(t, keys, data.StatSheerDmgBonusPct)
	assert.Contains(t, keys, data.StatCritRatePct)
	assert.Len(t, keys, 12)

	b.Mode = model.ModeAnomaly
	keys = rowKeys(a.Analyze(b).Rows)
	assert.NotContains(t, keys, data.StatDmgSkillTypePct)
	assert.NotContains(t, keys, data.StatCritRatePct)
	assert.NotContains(t, keys, data.StatCritDmgPct)
	assert.Contains(t, keys, data.StatAnomDmgPct)
	assert.Contains(t, keys, data.StatDisorderDmgPct)
	assert.Len(t, keys, 11)

	b.Mode = model.ModeRupture
	keys = rowKeys(a.Analyze(b).Rows)
	assert.Contains(t, keys, data.StatSheerForce)
	assert.Contains(t, keys, data.StatSheerDmgBonusPct)
	assert.NotContains(t, keys, data.StatAtk)
	assert.NotContains(t, keys, data.StatPenRatioPct)
	assert.NotContains(t, keys, data.StatDefReductionPct)
	assert.Len(t, keys, 9)
}

func TestAnalyzeWrongKindOverrideIgnored(t *testing.T) {
	b := analyzerBuild()

	a := New(NewStore())
	// atk is a flat stat; a pct override must fall back to the default step.
	a.Overrides.Set(data.StatAtk, data.KindPct, 50)

	row := rowByKey(t, a.Analyze(b).Rows, data.StatAtk)
	assert.Equal(t, data.KindFlat, row.Applied.Kind)
	assert.Equal(t, 0.0, row.Applied.Value)
	assert.Equal(t, 0.0, row.Gain)
}

func TestAnalyzeZeroBaselineYieldsZeroPctGain(t *testing.T) {
	b := analyzerBuild()
	b.Agent.Atk = 0 // baseline output 0

	a := New(NewStore())
	a.Overrides.Set(data.StatAtk, data.KindFlat, 100)

	res := a.Analyze(b)
	require.Equal(t, 0.0, res.Base.Output)

	row := rowByKey(t, res.Rows, data.StatAtk)
	assert.Equal(t, 100.0, row.Gain)
	assert.Equal(t, 0.0, row.PctGain, "zero baseline must not divide")
}

func TestAnalyzeCritRateDisplayClamp(t *testing.T) {
	b := analyzerBuild()
	b.Agent.Crit.Rate = 0.95

	a := New(NewStore())
	a.Overrides.Set(data.StatCritRatePct, data.KindPct, 10)

	row := rowByKey(t, a.Analyze(b).Rows, data.StatCritRatePct)
	assert.Equal(t, 95.0, row.OrigVal)
	assert.Equal(t, 100.0, row.TotalVal, "displayed total clamps to 100")
}

func TestAnalyzeAtkOverrideGain(t *testing.T) {
	b := analyzerBuild()

	a := New(NewStore())
	a.Overrides.Set(data.StatAtk, data.KindFlat, 250)

	res := a.Analyze(b)
	row := rowByKey(t, res.Rows, data.StatAtk)
	assert.InDelta(t, 250, row.Gain, 1e-9)
	assert.InDelta(t, 25, row.PctGain, 1e-9)
	assert.Equal(t, 1000.0, row.OrigVal)
	assert.Equal(t, 1250.0, row.TotalVal)
	assert.Equal(t, data.StatAtk, res.Rows[0].Key, "highest gain sorts first")
}
