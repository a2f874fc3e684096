package filter

import (
	"fmt"
	"math"
)

// Thresholds is the full set of recognized cut values. Which fields are
// consulted depends on the variant that turns them into policies.
type Thresholds struct {
	// Degrees; records with |lat| <= cut are in-plane.
	GalacticCut float64 `json:"galactic_cut,omitempty"`
	HurstMin    float64 `json:"hurst_min,omitempty"`
	CorrMin     float64 `json:"corr_min"`
	// Relaxed correlation-only cut, consulted by the no-mask variant.
	FallbackCorrMin float64 `json:"fallback_corr_min,omitempty"`
}

// ConfigError reports a threshold that cannot be used as a cut value.
type ConfigError struct {
	Field string
	Value float64
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("threshold %s: not finite: %v", e.Field, e.Value)
}

// Policy is one named set of survivor conditions. A filter run tries an
// ordered list of policies until one yields a non-empty survivor set.
type Policy struct {
	Name string

	// Exclude records with |lat| <= GalacticCut. Disabled when UseMask is false.
	GalacticCut float64
	UseMask     bool

	// Require hurst_I > HurstMin. Disabled when UseHurst is false.
	HurstMin float64
	UseHurst bool

	// Require corr_IP > CorrMin. Always applied.
	CorrMin float64
}

// Strict builds the galactic-mask variant: a single policy, no fallback.
// An empty survivor set means the signal was purely in-plane and is reported
// as such rather than relaxed.
func Strict(t Thresholds) ([]Policy, error) {
	if err := checkFinite("galactic_cut", t.GalacticCut); err != nil {
		return nil, err
	}
	if err := checkFinite("hurst_min", t.HurstMin); err != nil {
		return nil, err
	}
	if err := checkFinite("corr_min", t.CorrMin); err != nil {
		return nil, err
	}
	return []Policy{{
		Name:        "strict",
		GalacticCut: t.GalacticCut,
		UseMask:     true,
		HurstMin:    t.HurstMin,
		UseHurst:    true,
		CorrMin:     t.CorrMin,
	}}, nil
}

// Elite builds the no-mask variant: the primary policy cuts on correlation
// and fractal structure; if it leaves nothing, a relaxed correlation-only
// policy is tried so the run still surfaces the strongest rings.
func Elite(t Thresholds) ([]Policy, error) {
	if err := checkFinite("hurst_min", t.HurstMin); err != nil {
		return nil, err
	}
	if err := checkFinite("corr_min", t.CorrMin); err != nil {
		return nil, err
	}
	if err := checkFinite("fallback_corr_min", t.FallbackCorrMin); err != nil {
		return nil, err
	}
	return []Policy{
		{
			Name:     "elite",
			HurstMin: t.HurstMin,
			UseHurst: true,
			CorrMin:  t.CorrMin,
		},
		{
			Name:    "elite-fallback",
			CorrMin: t.FallbackCorrMin,
		},
	}, nil
}

func checkFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ConfigError{Field: field, Value: v}
	}
	return nil
}
