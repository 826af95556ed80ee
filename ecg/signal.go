package ecg

// Signal holds a multi-channel recording in canonical channel-major form.
// All channels share one sampling rate and one sample count. A 1-D input is
// the single-channel degenerate case; it is normalized into the same
// representation at construction so the rest of the pipeline only ever sees
// one shape.
type Signal struct {
	channels [][]float64
	samples  int
}

// NewSignal builds a Signal from a sample-major 2-D array
// (rows are sample instants, columns are channels), the layout raw
// recordings arrive in.
func NewSignal(sampleMajor [][]float64) (*Signal, error) {
	if len(sampleMajor) == 0 {
		return nil, Shapef("empty signal")
	}

	numChannels := len(sampleMajor[0])
	if numChannels == 0 {
		return nil, Shapef("signal has no channels")
	}

	channels := make([][]float64, numChannels)
	for ch := 0; ch < numChannels; ch++ {
		channels[ch] = make([]float64, len(sampleMajor))
	}

	for i, row := range sampleMajor {
		if len(row) != numChannels {
			return nil, Shapef("ragged signal: row %d has %d channels, expected %d", i, len(row), numChannels)
		}
		for ch, v := range row {
			channels[ch][i] = v
		}
	}

	return &Signal{channels: channels, samples: len(sampleMajor)}, nil
}

// NewSignalFromChannels builds a Signal from channel-major data.
// Every channel must have the same length.
func NewSignalFromChannels(channels [][]float64) (*Signal, error) {
	if len(channels) == 0 {
		return nil, Shapef("empty signal")
	}

	samples := len(channels[0])
	copied := make([][]float64, len(channels))
	for ch, data := range channels {
		if len(data) != samples {
			return nil, Shapef("ragged signal: channel %d has %d samples, expected %d", ch, len(data), samples)
		}
		copied[ch] = make([]float64, samples)
		copy(copied[ch], data)
	}

	return &Signal{channels: copied, samples: samples}, nil
}

// NewSingleChannel wraps a 1-D sample sequence as a one-channel Signal
func NewSingleChannel(samples []float64) *Signal {
	data := make([]float64, len(samples))
	copy(data, samples)
	return &Signal{channels: [][]float64{data}, samples: len(samples)}
}

// Channels returns the number of channels
func (s *Signal) Channels() int {
	return len(s.channels)
}

// Samples returns the number of samples per channel
func (s *Signal) Samples() int {
	return s.samples
}

// Channel returns a copy of one channel's samples. Returning a copy keeps
// pipeline stages from mutating each other's inputs.
func (s *Signal) Channel(ch int) []float64 {
	data := make([]float64, s.samples)
	copy(data, s.channels[ch])
	return data
}

// SampleMajor returns the signal as a sample-major 2-D array, the layout
// used for persistence
func (s *Signal) SampleMajor() [][]float64 {
	rows := make([][]float64, s.samples)
	for i := range rows {
		row := make([]float64, len(s.channels))
		for ch := range s.channels {
			row[ch] = s.channels[ch][i]
		}
		rows[i] = row
	}
	return rows
}

// Flat returns all samples in sample-major (row-major) order as one slice
func (s *Signal) Flat() []float64 {
	flat := make([]float64, 0, s.samples*len(s.channels))
	for i := 0; i < s.samples; i++ {
		for ch := range s.channels {
			flat = append(flat, s.channels[ch][i])
		}
	}
	return flat
}
