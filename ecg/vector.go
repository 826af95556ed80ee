package ecg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// FeatureVector is an ordered mapping of feature name to value. Insertion
// order is preserved so persisted documents list features in a stable order
// regardless of map iteration.
type FeatureVector struct {
	names  []string
	values map[string]float64
}

// NewFeatureVector creates an empty feature vector
func NewFeatureVector() *FeatureVector {
	return &FeatureVector{values: make(map[string]float64)}
}

// Set stores a value under the given name, appending the name on first use
func (v *FeatureVector) Set(name string, value float64) {
	if _, exists := v.values[name]; !exists {
		v.names = append(v.names, name)
	}
	v.values[name] = value
}

// Get returns the value stored under name
func (v *FeatureVector) Get(name string) (float64, bool) {
	value, ok := v.values[name]
	return value, ok
}

// Names returns the feature names in insertion order
func (v *FeatureVector) Names() []string {
	names := make([]string, len(v.names))
	copy(names, v.names)
	return names
}

// Len returns the number of features
func (v *FeatureVector) Len() int {
	return len(v.names)
}

// Values returns the features as a plain map
func (v *FeatureVector) Values() map[string]float64 {
	out := make(map[string]float64, len(v.values))
	for k, val := range v.values {
		out[k] = val
	}
	return out
}

// Merge appends every feature of other, preserving its order. Names already
// present are overwritten in place.
func (v *FeatureVector) Merge(other *FeatureVector) {
	for _, name := range other.names {
		v.Set(name, other.values[name])
	}
}

// MarshalJSON emits the features as a JSON object in insertion order.
// JSON has no representation for NaN or infinity, so a non-finite value is
// an explicit error naming the offending feature rather than an invalid
// document.
func (v *FeatureVector) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range v.names {
		value := v.values[name]
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("feature %q is not a finite number: %v", name, value)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatFloat(value, 'g', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, preserving its key order
func (v *FeatureVector) UnmarshalJSON(data []byte) error {
	v.names = nil
	v.values = make(map[string]float64)

	dec := json.NewDecoder(bytes.NewReader(data))
	open, err := dec.Token()
	if err != nil {
		return err
	}
	if open != json.Delim('{') {
		return fmt.Errorf("feature vector must be a JSON object, got %v", open)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("feature vector key must be a string, got %v", tok)
		}
		var value float64
		if err := dec.Decode(&value); err != nil {
			return err
		}
		v.Set(name, value)
	}
	_, err = dec.Token() // closing brace
	return err
}

// FeatureRecord pairs one channel's feature vector with the metadata needed
// to persist and later trace it. Immutable once produced.
type FeatureRecord struct {
	RecordID    int
	Channel     int
	SampleRate  float64
	Samples     int
	Channels    int
	ExtractedAt string
	Features    *FeatureVector
}
