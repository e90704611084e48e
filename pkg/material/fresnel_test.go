package material

import (
	"math"
	"testing"

	"github.com/lumen-render/lumen/pkg/core"
)

func TestFresnelDielectric_NormalIncidence(t *testing.T) {
	// Air to glass at normal incidence: ((n-1)/(n+1))² ≈ 0.04 for n=1.5.
	f := FresnelDielectric{EtaI: 1.0, EtaT: 1.5}
	got := f.Evaluate(1).R
	want := math.Pow(0.5/2.5, 2)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("reflectance at normal incidence = %v, want %v", got, want)
	}
}

func TestFresnelDielectric_GrazingApproachesOne(t *testing.T) {
	f := FresnelDielectric{EtaI: 1.0, EtaT: 1.5}
	got := f.Evaluate(0.01).R
	if got < 0.9 {
		t.Errorf("grazing reflectance = %v, want near 1", got)
	}
}

func TestFresnelDielectric_TotalInternalReflection(t *testing.T) {
	// From inside glass toward air past the critical angle (~41.8°).
	f := FresnelDielectric{EtaI: 1.0, EtaT: 1.5}
	got := f.Evaluate(-0.5).R // cos(60°), inside the denser medium
	if got != 1 {
		t.Errorf("reflectance past critical angle = %v, want 1", got)
	}
}

func TestFresnelConductor_NonTrivialReflectance(t *testing.T) {
	// Gold-like values: high red reflectance, lower blue.
	f := FresnelConductor{
		Eta: core.NewColor(0.14, 0.37, 1.44),
		K:   core.NewColor(3.98, 2.39, 1.60),
	}
	got := f.Evaluate(1)
	if got.R < 0.8 {
		t.Errorf("gold red reflectance = %v, want > 0.8", got.R)
	}
	if got.B >= got.R {
		t.Errorf("gold blue reflectance %v not below red %v", got.B, got.R)
	}
}

func TestSchlickFresnel_Endpoints(t *testing.T) {
	r0 := core.NewColor(0.2, 0.2, 0.2)

	at0 := SchlickFresnel(r0, 1)
	if math.Abs(at0.R-0.2) > 1e-12 {
		t.Errorf("Schlick at normal incidence = %v, want r0", at0.R)
	}

	grazing := SchlickFresnel(r0, 0)
	if math.Abs(grazing.R-1) > 1e-12 {
		t.Errorf("Schlick at grazing = %v, want 1", grazing.R)
	}
}
