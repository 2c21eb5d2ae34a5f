package calc

import "github.com/udisondev/zzzcalc/internal/model"

// Preview is the normalized result shape shared by all modes. Anom is set
// only in anomaly mode.
type Preview struct {
	Mode           model.Mode     `json:"mode"`
	Output         float64        `json:"output"`
	OutputNonCrit  float64        `json:"output_noncrit"`
	OutputCrit     float64        `json:"output_crit"`
	OutputExpected float64        `json:"output_expected"`
	Anom           *AnomalyResult `json:"anom,omitempty"`
}

// ComputePreview dispatches to the active mode's calculator and republishes
// its figures under the normalized names. Anomaly mode combines the
// standard hit with the anomaly proc and disorder averages. Unrecognized
// modes fall back to the standard result.
func ComputePreview(b *model.Build) Preview {
	std := ComputeStandard(b)

	switch b.Mode {
	case model.ModeAnomaly:
		anom := ComputeAnomaly(b)
		combined := std.Expected + anom.CombinedAvg
		return Preview{
			Mode:           b.Mode,
			Output:         combined,
			OutputNonCrit:  std.NonCrit,
			OutputCrit:     std.Crit,
			OutputExpected: combined,
			Anom:           &anom,
		}
	case model.ModeRupture:
		rup := ComputeRupture(b)
		return Preview{
			Mode:           b.Mode,
			Output:         rup.Expected,
			OutputNonCrit:  rup.NonCrit,
			OutputCrit:     rup.Crit,
			OutputExpected: rup.Expected,
		}
	default:
		return Preview{
			Mode:           b.Mode,
			Output:         std.Expected,
			OutputNonCrit:  std.NonCrit,
			OutputCrit:     std.Crit,
			OutputExpected: std.Expected,
		}
	}
}
