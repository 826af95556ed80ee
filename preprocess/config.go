package preprocess

import (
	"github.com/kelseyhightower/envconfig"

	"github.com/cardiolab/ecgpipe/algorithms/filters"
)

// MinSamples is the minimum record length the conditioning pipeline will
// accept
const MinSamples = 100

// Config is the configuration surface of the conditioning stage. Every
// stage flag and numeric setting lives here; nothing is ambient state.
type Config struct {
	// Stage flags
	RemoveDrift bool `json:"remove_drift" envconfig:"REMOVE_DRIFT" default:"true"`
	ApplyFilter bool `json:"apply_filter" envconfig:"APPLY_FILTER" default:"true"`
	Normalize   bool `json:"normalize" envconfig:"NORMALIZE" default:"true"`

	// Baseline drift removal
	BaselineCutoff float64 `json:"baseline_cutoff" envconfig:"BASELINE_CUTOFF" default:"0.5"`

	// Band filter
	FilterFamily filters.Family `json:"filter_family" envconfig:"FILTER_FAMILY" default:"bandpass"`
	FilterLow    float64        `json:"filter_low" envconfig:"FILTER_LOW" default:"0.5"`
	FilterHigh   float64        `json:"filter_high" envconfig:"FILTER_HIGH" default:"45.0"`
	FilterOrder  int            `json:"filter_order" envconfig:"FILTER_ORDER" default:"4"`

	// Amplitude normalization
	NormMethod Method `json:"norm_method" envconfig:"NORM_METHOD" default:"zscore"`

	// Outlier detection
	OutlierThreshold float64 `json:"outlier_threshold" envconfig:"OUTLIER_THRESHOLD" default:"3.0"`
}

// DefaultConfig returns the standard conditioning configuration for
// cardiac recordings
func DefaultConfig() *Config {
	return &Config{
		RemoveDrift:      true,
		ApplyFilter:      true,
		Normalize:        true,
		BaselineCutoff:   filters.DefaultBaselineCutoff,
		FilterFamily:     filters.Bandpass,
		FilterLow:        0.5,
		FilterHigh:       45.0,
		FilterOrder:      filters.DefaultOrder,
		NormMethod:       ZScore,
		OutlierThreshold: 3.0,
	}
}

// ConfigFromEnv loads the configuration from ECGPIPE_* environment
// variables, falling back to the defaults above. Used by batch drivers that
// wrap this library.
func ConfigFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("ecgpipe", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
