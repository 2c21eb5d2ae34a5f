package data

// AnomalyKind distinguishes one-shot anomalies from damage-over-time ones.
type AnomalyKind string

const (
	AnomalySingle AnomalyKind = "single"
	AnomalyDot    AnomalyKind = "dot"
)

// Anomaly type keys.
const (
	AnomalyAssault    = "assault"
	AnomalyShatter    = "shatter"
	AnomalyBurn       = "burn"
	AnomalyShock      = "shock"
	AnomalyCorruption = "corruption"

	// AnomalyAuto means "derive the type from the agent's attribute".
	AnomalyAuto = "auto"
)

// AnomalyMeta describes one anomaly type: how many instances a proc deals,
// how far apart DoT ticks are, and the per-instance multiplier as a
// percentage of ATK.
type AnomalyMeta struct {
	Label              string
	Kind               AnomalyKind
	Instances          int
	IntervalSec        float64
	PerInstanceMultPct float64
}

var anomalyTable = map[string]AnomalyMeta{
	AnomalyAssault:    {Label: "Assault", Kind: AnomalySingle, Instances: 1, IntervalSec: 0, PerInstanceMultPct: 713.0},
	AnomalyShatter:    {Label: "Shatter", Kind: AnomalySingle, Instances: 1, IntervalSec: 0, PerInstanceMultPct: 500.0},
	AnomalyBurn:       {Label: "Burn", Kind: AnomalyDot, Instances: 20, IntervalSec: 0.5, PerInstanceMultPct: 50.0},
	AnomalyShock:      {Label: "Shock", Kind: AnomalyDot, Instances: 10, IntervalSec: 1.0, PerInstanceMultPct: 125.0},
	AnomalyCorruption: {Label: "Corruption", Kind: AnomalyDot, Instances: 20, IntervalSec: 0.5, PerInstanceMultPct: 62.5},
}

// anomalyByAttribute maps an agent attribute to its default anomaly type.
var anomalyByAttribute = map[string]string{
	"physical": AnomalyAssault,
	"fire":     AnomalyBurn,
	"electric": AnomalyShock,
	"ice":      AnomalyShatter,
	"ether":    AnomalyCorruption,
}

// AnomalyByType returns the metadata for an anomaly type key.
// Unknown keys fall back to assault.
func AnomalyByType(key string) AnomalyMeta {
	if m, ok := anomalyTable[key]; ok {
		return m
	}
	return anomalyTable[AnomalyAssault]
}

// KnownAnomalyType reports whether key names an anomaly type in the table.
func KnownAnomalyType(key string) bool {
	_, ok := anomalyTable[key]
	return ok
}

// AnomalyTypeForAttribute returns the anomaly type an attribute inflicts by
// default. Unknown attributes fall back to assault.
func AnomalyTypeForAttribute(attribute string) string {
	if t, ok := anomalyByAttribute[attribute]; ok {
		return t
	}
	return AnomalyAssault
}
