package sourcing

import (
	"math"
	"time"
)

// Weights holds the relative importance of each assessment dimension.
// The five dimensions must sum to 1.
type Weights struct {
	Quality     float64 `json:"quality" yaml:"quality"`
	Compliance  float64 `json:"compliance" yaml:"compliance"`
	Reliability float64 `json:"reliability" yaml:"reliability"`
	Cost        float64 `json:"cost" yaml:"cost"`
	Service     float64 `json:"service" yaml:"service"`
}

// DefaultWeights returns the standard assessment weights.
func DefaultWeights() Weights {
	return Weights{
		Quality:     0.30,
		Compliance:  0.25,
		Reliability: 0.20,
		Cost:        0.15,
		Service:     0.10,
	}
}

const weightsEpsilon = 1e-9

// Validate returns an error unless all weights are non-negative and sum
// to 1.
func (w Weights) Validate() error {
	for _, v := range []float64{w.Quality, w.Compliance, w.Reliability, w.Cost, w.Service} {
		if v < 0 {
			return Errorf(EINVALID, "assessment weights must be non-negative")
		}
	}
	sum := w.Quality + w.Compliance + w.Reliability + w.Cost + w.Service
	if math.Abs(sum-1) > weightsEpsilon {
		return Errorf(EINVALID, "assessment weights must sum to 1, got %v", sum)
	}
	return nil
}

// RiskThresholds maps a risk score to a risk level. A risk at or above
// High is high risk, at or above Medium is medium, otherwise low.
type RiskThresholds struct {
	High   float64 `json:"high" yaml:"high"`
	Medium float64 `json:"medium" yaml:"medium"`
	Low    float64 `json:"low" yaml:"low"`
}

// DefaultRiskThresholds returns the standard risk thresholds.
func DefaultRiskThresholds() RiskThresholds {
	return RiskThresholds{High: 0.7, Medium: 0.4, Low: 0.2}
}

// RiskLevel classifies supply chain risk.
type RiskLevel string

// Risk levels, ordered from worst to best.
const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// Level maps a risk score in [0,1] to a level.
func (t RiskThresholds) Level(risk float64) RiskLevel {
	switch {
	case risk >= t.High:
		return RiskHigh
	case risk >= t.Medium:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Scorecard holds per-dimension assessment scores in [0,1].
type Scorecard struct {
	Quality     float64 `json:"quality"`
	Compliance  float64 `json:"compliance"`
	Reliability float64 `json:"reliability"`
	Cost        float64 `json:"cost"`
	Service     float64 `json:"service"`
}

// Composite returns the weighted composite score in [0,1]. Dimension
// scores are clamped to [0,1] before weighting.
func (c Scorecard) Composite(w Weights) float64 {
	return clamp01(c.Quality)*w.Quality +
		clamp01(c.Compliance)*w.Compliance +
		clamp01(c.Reliability)*w.Reliability +
		clamp01(c.Cost)*w.Cost +
		clamp01(c.Service)*w.Service
}

// Assessment is a scored evaluation of a supplier.
type Assessment struct {
	SupplierID string    `json:"supplierId"`
	Scorecard  Scorecard `json:"scorecard"`
	Composite  float64   `json:"composite"`
	Risk       float64   `json:"risk"`
	RiskLevel  RiskLevel `json:"riskLevel"`
}

// snapshotFreshness is the age beyond which a snapshot no longer counts as
// evidence of supplier reliability.
const snapshotFreshness = 90 * 24 * time.Hour

// ScoreSupplier derives an assessment from observable supplier signals.
// Each dimension starts from a neutral baseline and is raised by concrete
// evidence: certifications for quality and compliance, reachable contact
// details and a fresh snapshot for reliability, listed products for cost
// comparability, listed services for service. Risk is 1 - composite.
func ScoreSupplier(supplier *Supplier, latest *Snapshot, w Weights, t RiskThresholds) Assessment {
	const baseline = 0.3

	card := Scorecard{
		Quality:     baseline,
		Compliance:  baseline,
		Reliability: baseline,
		Cost:        baseline,
		Service:     baseline,
	}

	if n := len(supplier.Certifications); n > 0 {
		card.Quality = baseline + 0.5 + 0.05*math.Min(float64(n), 4)
		card.Compliance = baseline + 0.5
	}
	if supplier.Contact.Email != "" || supplier.Contact.Phone != "" {
		card.Reliability += 0.3
	}
	if latest != nil && time.Since(latest.FetchedAt) < snapshotFreshness {
		card.Reliability += 0.2
	}
	if len(supplier.Products) > 0 {
		card.Cost += 0.4
	}
	if len(supplier.Services) > 0 {
		card.Service += 0.4
	}
	if supplier.Preferred {
		card.Quality += 0.1
		card.Reliability += 0.1
	}

	composite := card.Composite(w)
	risk := 1 - composite

	return Assessment{
		SupplierID: supplier.ID,
		Scorecard:  card,
		Composite:  composite,
		Risk:       risk,
		RiskLevel:  t.Level(risk),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
