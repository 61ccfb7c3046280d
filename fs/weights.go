package fs

import (
	"os"

	"github.com/formul8/sourcing"
	"gopkg.in/yaml.v3"
)

// AssessmentConfig is the YAML layout of the assessment configuration
// file. Omitted sections fall back to defaults.
type AssessmentConfig struct {
	Weights        *sourcing.Weights        `yaml:"weights"`
	RiskThresholds *sourcing.RiskThresholds `yaml:"risk_thresholds"`
}

// LoadAssessmentConfig reads assessment weights and risk thresholds from
// a YAML file. A missing file yields the defaults. Weights present in the
// file must validate.
func LoadAssessmentConfig(path string) (sourcing.Weights, sourcing.RiskThresholds, error) {
	weights := sourcing.DefaultWeights()
	thresholds := sourcing.DefaultRiskThresholds()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return weights, thresholds, nil
	}
	if err != nil {
		return weights, thresholds, err
	}

	var cfg AssessmentConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return weights, thresholds, sourcing.Errorf(sourcing.EINVALID, "invalid assessment config %s: %v", path, err)
	}

	if cfg.Weights != nil {
		if err := cfg.Weights.Validate(); err != nil {
			return weights, thresholds, err
		}
		weights = *cfg.Weights
	}
	if cfg.RiskThresholds != nil {
		thresholds = *cfg.RiskThresholds
	}

	return weights, thresholds, nil
}
