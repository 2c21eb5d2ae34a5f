package marginal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/zzzcalc/internal/data"
	"github.com/udisondev/zzzcalc/internal/model"
)

func TestStoreSetAndGet(t *testing.T) {
	s := NewStore()
	s.Set(data.StatAtk, data.KindFlat, 100)

	d, ok := s.Get(data.StatAtk)
	assert.True(t, ok)
	assert.Equal(t, model.Delta{Kind: data.KindFlat, Value: 100}, d)

	_, ok = s.Get(data.StatCritRatePct)
	assert.False(t, ok)
}

func TestStoreIgnoresUnknownKeys(t *testing.T) {
	s := NewStore()
	s.Set("hpMax", data.KindPct, 10)

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Snapshot())
}

func TestStoreNonFiniteValueDeletes(t *testing.T) {
	s := NewStore()
	s.Set(data.StatCritDmgPct, data.KindPct, 12)
	s.Set(data.StatCritDmgPct, data.KindPct, math.NaN())

	_, ok := s.Get(data.StatCritDmgPct)
	assert.False(t, ok)
}

func TestStoreLoadFiltersMalformedEntries(t *testing.T) {
	s := NewStore()
	s.Set(data.StatAtk, data.KindFlat, 1) // replaced by Load

	s.Load(map[string]model.Delta{
		data.StatCritRatePct: {Kind: data.KindPct, Value: 5},
		"hpMax":              {Kind: data.KindPct, Value: 10},
		data.StatPenFlat:     {Kind: "bogus", Value: 3},
		data.StatStunPct:     {Kind: data.KindPct, Value: math.Inf(1)},
	})

	assert.Equal(t, 1, s.Len())
	d, ok := s.Get(data.StatCritRatePct)
	assert.True(t, ok)
	assert.Equal(t, 5.0, d.Value)

	_, ok = s.Get(data.StatAtk)
	assert.False(t, ok, "Load must replace previous contents wholesale")
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.Set(data.StatAtk, data.KindFlat, 100)

	snap := s.Snapshot()
	snap[data.StatAtk] = model.Delta{Kind: data.KindFlat, Value: 1}

	d, _ := s.Get(data.StatAtk)
	assert.Equal(t, 100.0, d.Value)
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	s.Set(data.StatAtk, data.KindFlat, 100)
	s.Set(data.StatCritRatePct, data.KindPct, 5)
	s.Clear()

	assert.Equal(t, 0, s.Len())
}
