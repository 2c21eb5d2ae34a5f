package calc

import (
	"math"
	"testing"

	"github.com/udisondev/zzzcalc/internal/model"
)

func TestComputePreviewStandard(t *testing.T) {
	t.Parallel()

	b := testBuild()
	b.Agent.Atk = 1000

	got := ComputePreview(b)
	if got.Mode != model.ModeStandard {
		t.Errorf("Mode = %q", got.Mode)
	}
	if got.Output != 1000 || got.OutputExpected != 1000 {
		t.Errorf("Output = %v / %v, want 1000", got.Output, got.OutputExpected)
	}
	if got.Anom != nil {
		t.Error("standard preview must not carry anomaly detail")
	}
}

func TestComputePreviewAnomalyCombines(t *testing.T) {
	t.Parallel()

	b := testBuild()
	b.Mode = model.ModeAnomaly
	b.Agent.Attribute = model.AttrFire
	b.Agent.Atk = 1000
	b.Agent.Anomaly.Prof = 100
	b.Agent.Level = 60

	std := ComputeStandard(b)
	anom := ComputeAnomaly(b)

	got := ComputePreview(b)
	if got.Anom == nil {
		t.Fatal("anomaly preview missing detail record")
	}
	want := std.Expected + anom.CombinedAvg
	if math.Abs(got.Output-want) > 1e-9 {
		t.Errorf("Output = %v, want standard expected + combined = %v", got.Output, want)
	}
	if got.OutputNonCrit != std.NonCrit || got.OutputCrit != std.Crit {
		t.Errorf("non-crit/crit figures = %v/%v, want standard's %v/%v",
			got.OutputNonCrit, got.OutputCrit, std.NonCrit, std.Crit)
	}
}

func TestComputePreviewRupture(t *testing.T) {
	t.Parallel()

	b := testBuild()
	b.Mode = model.ModeRupture
	b.Agent.Rupture.SheerForce = 1000

	rup := ComputeRupture(b)
	got := ComputePreview(b)
	if got.Output != rup.Expected || got.OutputCrit != rup.Crit {
		t.Errorf("rupture preview = %+v, want %+v", got, rup)
	}
	if got.Anom != nil {
		t.Error("rupture preview must not carry anomaly detail")
	}
}

func TestComputePreviewUnknownModeFallsBackToStandard(t *testing.T) {
	t.Parallel()

	b := testBuild()
	b.Mode = "berserk"
	b.Agent.Atk = 1000

	got := ComputePreview(b)
	if got.Output != 1000 {
		t.Errorf("Output = %v, want standard fallback 1000", got.Output)
	}
}
