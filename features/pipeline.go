package features

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cardiolab/ecgpipe/algorithms/stats"
	"github.com/cardiolab/ecgpipe/ecg"
	"github.com/cardiolab/ecgpipe/logging"
)

// TotalFeatures is the fixed size of a complete per-channel vector:
// 12 time-domain + 8 frequency-domain + 1 entropy
const TotalFeatures = 21

// Config controls feature extraction for one record
type Config struct {
	Frequency   FrequencyOptions `json:"frequency"`
	EntropyBins int              `json:"entropy_bins"`

	// Workers bounds the channel fan-out; <= 0 means one goroutine per
	// channel
	Workers int `json:"workers"`
}

// DefaultConfig returns the standard extraction settings
func DefaultConfig() *Config {
	return &Config{
		Frequency:   DefaultFrequencyOptions(),
		EntropyBins: stats.DefaultEntropyBins,
	}
}

// ChannelResult is the outcome of extracting one channel. Exactly one of
// Features or Err is meaningful; a failed channel still carries an empty
// vector so downstream consumers see every channel index.
type ChannelResult struct {
	Channel  int
	Features *ecg.FeatureVector
	Err      error
}

// OK reports whether extraction succeeded
func (r ChannelResult) OK() bool {
	return r.Err == nil
}

// Pipeline merges the three extractor families into one feature vector per
// channel and fans out across the channels of a record
type Pipeline struct {
	cfg    *Config
	logger logging.Logger
}

// NewPipeline creates a feature pipeline with the given configuration, or
// the defaults when cfg is nil
func NewPipeline(cfg *Config) *Pipeline {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Pipeline{
		cfg: cfg,
		logger: logging.WithFields(logging.Fields{
			"component": "feature_pipeline",
		}),
	}
}

// ExtractChannel computes the full 21-key vector for one channel of a
// conditioned signal. Keys appear in fixed order: time domain, frequency
// domain, entropy.
func (p *Pipeline) ExtractChannel(sig *ecg.Signal, ch int, sampleRate float64) (*ecg.FeatureVector, error) {
	if ch < 0 || ch >= sig.Channels() {
		return nil, ecg.Configf("channel %d out of range [0, %d)", ch, sig.Channels())
	}

	data := sig.Channel(ch)
	if err := checkFinite(data); err != nil {
		return nil, err
	}
	channel := ecg.NewSingleChannel(data)

	vector, err := Time(channel)
	if err != nil {
		return nil, err
	}

	freq, err := Frequency(channel, sampleRate, p.cfg.Frequency)
	if err != nil {
		return nil, err
	}
	vector.Merge(freq)

	entropy, err := Entropy(channel, p.cfg.EntropyBins)
	if err != nil {
		return nil, err
	}
	vector.Merge(entropy)

	return vector, nil
}

// ExtractRecord builds a FeatureRecord for one channel, enriching the
// record's metadata with the analyzed channel and extraction timestamp
func (p *Pipeline) ExtractRecord(sig *ecg.Signal, meta ecg.SamplingMetadata, ch int) (*ecg.FeatureRecord, error) {
	vector, err := p.ExtractChannel(sig, ch, meta.SampleRate)
	if err != nil {
		return nil, err
	}

	return &ecg.FeatureRecord{
		RecordID:    meta.RecordID,
		Channel:     ch,
		SampleRate:  meta.SampleRate,
		Samples:     sig.Samples(),
		Channels:    sig.Channels(),
		ExtractedAt: time.Now().Format("20060102_150405"),
		Features:    vector,
	}, nil
}

// ExtractAll fans the channel pipeline out over every channel of the
// record. Channels are independent: a failure in one is logged as a
// warning and recorded as an empty vector without disturbing its siblings.
// Results come back ordered by channel index.
func (p *Pipeline) ExtractAll(sig *ecg.Signal, meta ecg.SamplingMetadata) []ChannelResult {
	logger := p.logger.WithFields(logging.Fields{
		"record_id": meta.RecordID,
		"channels":  sig.Channels(),
	})

	results := make([]ChannelResult, sig.Channels())

	var g errgroup.Group
	if p.cfg.Workers > 0 {
		g.SetLimit(p.cfg.Workers)
	}

	for ch := 0; ch < sig.Channels(); ch++ {
		ch := ch
		g.Go(func() error {
			results[ch] = p.extractIsolated(sig, ch, meta.SampleRate)
			return nil
		})
	}
	g.Wait()

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
			logger.Warn("channel extraction failed", logging.Fields{
				"channel": r.Channel,
				"reason":  r.Err.Error(),
			})
		}
	}

	logger.Info("record features extracted", logging.Fields{
		"ok":     sig.Channels() - failed,
		"failed": failed,
	})

	return results
}

// extractIsolated runs one channel and converts any failure, including a
// panic in numeric code, into a ChannelResult with an empty vector
func (p *Pipeline) extractIsolated(sig *ecg.Signal, ch int, sampleRate float64) (result ChannelResult) {
	result = ChannelResult{Channel: ch, Features: ecg.NewFeatureVector()}

	defer func() {
		if r := recover(); r != nil {
			result.Features = ecg.NewFeatureVector()
			result.Err = fmt.Errorf("extraction panic: %v", r)
		}
	}()

	vector, err := p.ExtractChannel(sig, ch, sampleRate)
	if err != nil {
		result.Err = err
		return result
	}

	result.Features = vector
	return result
}

// checkFinite rejects channels carrying NaN or infinite samples; a corrupt
// lead must fail its own extraction without poisoning sibling channels
func checkFinite(data []float64) error {
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite sample at index %d", i)
		}
	}
	return nil
}
