package model

import "github.com/udisondev/zzzcalc/internal/data"

// Mode selects which damage pipeline's output is surfaced.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeAnomaly  Mode = "anomaly"
	ModeRupture  Mode = "rupture"
)

// Attribute is the agent's elemental attribute.
type Attribute string

const (
	AttrPhysical Attribute = "physical"
	AttrFire     Attribute = "fire"
	AttrIce      Attribute = "ice"
	AttrElectric Attribute = "electric"
	AttrEther    Attribute = "ether"
)

// Delta is one applied stat change: percentage points or a flat amount.
type Delta struct {
	Kind  data.StatKind `json:"kind"`
	Value float64       `json:"value"`
}

// Build is the input record for one computation: one agent build plus one
// opponent. It is also the persisted/exported JSON document, field for field.
type Build struct {
	JSONName string   `json:"jsonName"`
	Mode     Mode     `json:"mode"`
	Agent    Agent    `json:"agent"`
	Enemy    Enemy    `json:"enemy"`
	Marginal Marginal `json:"marginal"`
}

// Agent holds the attacker's stats.
type Agent struct {
	Level        int        `json:"level"`
	Attribute    Attribute  `json:"attribute"`
	Atk          float64    `json:"atk"`
	Crit         Crit       `json:"crit"`
	DmgBuckets   DmgBuckets `json:"dmgBuckets"`
	Pen          Pen        `json:"pen"`
	SkillMultPct float64    `json:"skillMultPct"`
	Anomaly      Anomaly    `json:"anomaly"`
	Rupture      Rupture    `json:"rupture"`
}

// Crit holds the crit chance (fraction in [0,1]) and crit damage bonus
// (fraction, 0.5 = +50%).
type Crit struct {
	Rate float64 `json:"rate"`
	Dmg  float64 `json:"dmg"`
}

// DmgBuckets are the five independent additive damage-bonus contributions,
// each in percentage points.
type DmgBuckets struct {
	Generic   float64 `json:"generic"`
	Attribute float64 `json:"attribute"`
	SkillType float64 `json:"skillType"`
	Other     float64 `json:"other"`
	VsStunned float64 `json:"vsStunned"`
}

// Pen holds the defense-penetration knobs.
type Pen struct {
	RatioPct float64 `json:"ratioPct"`
	Flat     float64 `json:"flat"`
}

// Anomaly holds the attribute-anomaly sub-record. Pointer fields are
// optional overrides; nil means "use the default".
type Anomaly struct {
	Type                    string   `json:"type"`
	Prof                    float64  `json:"prof"`
	DmgPct                  float64  `json:"dmgPct"`
	DisorderPct             float64  `json:"disorderPct"`
	TickCountOverride       *float64 `json:"tickCountOverride"`
	TickIntervalSecOverride *float64 `json:"tickIntervalSecOverride"`
	AllowCrit               bool     `json:"allowCrit"`
	CritRatePctOverride     *float64 `json:"critRatePctOverride"`
	CritDmgPctOverride      *float64 `json:"critDmgPctOverride"`
	DisorderPrevType        string   `json:"disorderPrevType"`
	DisorderTimePassedSec   float64  `json:"disorderTimePassedSec"`
}

// Rupture holds the sheer-damage sub-record.
type Rupture struct {
	SheerForce       float64 `json:"sheerForce"`
	SheerDmgBonusPct float64 `json:"sheerDmgBonusPct"`
}

// ResByAttr is the optional per-attribute resistance override map. A nil
// entry means "no override, use the all-attribute value". A present entry
// stacks additively with the all-attribute resistance.
type ResByAttr struct {
	Physical *float64 `json:"physical"`
	Fire     *float64 `json:"fire"`
	Ice      *float64 `json:"ice"`
	Electric *float64 `json:"electric"`
	Ether    *float64 `json:"ether"`
}

// For returns the override for an attribute, or nil.
func (r *ResByAttr) For(attr Attribute) *float64 {
	switch attr {
	case AttrPhysical:
		return r.Physical
	case AttrFire:
		return r.Fire
	case AttrIce:
		return r.Ice
	case AttrElectric:
		return r.Electric
	case AttrEther:
		return r.Ether
	}
	return nil
}

// Enemy holds the target's stats.
type Enemy struct {
	Level              int       `json:"level"`
	Def                float64   `json:"def"`
	ResAllPct          float64   `json:"resAllPct"`
	ResByAttr          ResByAttr `json:"resByAttr"`
	ResReductionPct    float64   `json:"resReductionPct"`
	ResIgnorePct       float64   `json:"resIgnorePct"`
	DefReductionPct    float64   `json:"defReductionPct"`
	DefIgnorePct       float64   `json:"defIgnorePct"`
	DmgTakenPct        float64   `json:"dmgTakenPct"`
	DmgTakenStunnedPct float64   `json:"dmgTakenStunnedPct"`
	IsStunned          bool      `json:"isStunned"`
	StunPct            float64   `json:"stunPct"`
}

// Marginal carries the user-edited sensitivity-table deltas, keyed by stat
// registry key.
type Marginal struct {
	CustomApplied map[string]Delta `json:"customApplied"`
}

// Defaults returns a fresh build with the documented default values.
func Defaults() *Build {
	return &Build{
		Mode: ModeStandard,
		Agent: Agent{
			Level:        60,
			Attribute:    AttrPhysical,
			Crit:         Crit{Rate: 0.05, Dmg: 0.50},
			SkillMultPct: 100,
			Anomaly: Anomaly{
				Type:             data.AnomalyAuto,
				DisorderPrevType: data.AnomalyAuto,
			},
		},
		Enemy: Enemy{
			Level:   70,
			StunPct: 150,
		},
		Marginal: Marginal{
			CustomApplied: map[string]Delta{},
		},
	}
}

// Clone returns a deep copy of the build. The marginal analyzer evaluates
// every what-if row on its own clone, so the original record is never
// mutated.
func (b *Build) Clone() *Build {
	cp := *b

	cp.Agent.Anomaly.TickCountOverride = cloneFloat(b.Agent.Anomaly.TickCountOverride)
	cp.Agent.Anomaly.TickIntervalSecOverride = cloneFloat(b.Agent.Anomaly.TickIntervalSecOverride)
	cp.Agent.Anomaly.CritRatePctOverride = cloneFloat(b.Agent.Anomaly.CritRatePctOverride)
	cp.Agent.Anomaly.CritDmgPctOverride = cloneFloat(b.Agent.Anomaly.CritDmgPctOverride)

	cp.Enemy.ResByAttr.Physical = cloneFloat(b.Enemy.ResByAttr.Physical)
	cp.Enemy.ResByAttr.Fire = cloneFloat(b.Enemy.ResByAttr.Fire)
	cp.Enemy.ResByAttr.Ice = cloneFloat(b.Enemy.ResByAttr.Ice)
	cp.Enemy.ResByAttr.Electric = cloneFloat(b.Enemy.ResByAttr.Electric)
	cp.Enemy.ResByAttr.Ether = cloneFloat(b.Enemy.ResByAttr.Ether)

	if b.Marginal.CustomApplied != nil {
		cp.Marginal.CustomApplied = make(map[string]Delta, len(b.Marginal.CustomApplied))
		for k, v := range b.Marginal.CustomApplied {
			cp.Marginal.CustomApplied[k] = v
		}
	}
	return &cp
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
