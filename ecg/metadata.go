package ecg

import "maps"

// SamplingMetadata describes how a record was acquired. It is constructed at
// ingestion, threaded immutably through the pipeline, and enriched (never
// mutated in place) as stages annotate it.
type SamplingMetadata struct {
	SampleRate   float64  `json:"fs"`
	ChannelCount int      `json:"n_channels"`
	SampleCount  int      `json:"n_samples"`
	ChannelNames []string `json:"sig_name,omitempty"`
	RecordID     int      `json:"ecg_id,omitempty"`
	AcquiredAt   string   `json:"acquired_at,omitempty"`

	// Quality is filled in by the conditioning pipeline
	Quality QualityReport `json:"qualidade,omitempty"`

	// AnalyzedChannel is set through WithAnalyzedChannel by the feature
	// pipeline. No omitempty: channel 0 is a valid index and must survive
	// serialization.
	AnalyzedChannel int `json:"canal_analisado"`
}

// WithQuality returns a copy of the metadata carrying the given report
func (m SamplingMetadata) WithQuality(report QualityReport) SamplingMetadata {
	out := m
	out.Quality = make(QualityReport, len(report))
	maps.Copy(out.Quality, report)
	return out
}

// WithAnalyzedChannel returns a copy of the metadata marked with the channel
// index a feature vector was extracted from
func (m SamplingMetadata) WithAnalyzedChannel(ch int) SamplingMetadata {
	out := m
	out.AnalyzedChannel = ch
	return out
}

// ChannelQuality holds the advisory quality metrics for one channel
type ChannelQuality struct {
	SNREstimate        float64 `json:"snr_estimate"`
	AmplitudeMax       float64 `json:"amplitude_max"`
	SaturationFraction float64 `json:"saturation_fraction"`
	ZeroCrossingRate   float64 `json:"zero_crossing_rate"`
	RMS                float64 `json:"rms"`
}

// QualityReport maps channel index to that channel's quality metrics
type QualityReport map[int]ChannelQuality

// GoodChannels counts channels whose SNR estimate meets the given floor
// (15 dB is the conventional cutoff for clinical-grade leads)
func (r QualityReport) GoodChannels(minSNR float64) int {
	count := 0
	for _, q := range r {
		if q.SNREstimate >= minSNR {
			count++
		}
	}
	return count
}
