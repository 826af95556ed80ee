package persist

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardiolab/ecgpipe/ecg"
)

func TestShardDir(t *testing.T) {
	tests := []struct {
		recordID int
		want     string
	}{
		{1, "records000"},
		{1000, "records000"},
		{1001, "records001"},
		{3500, "records003"},
		{21837, "records021"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ShardDir(tt.recordID), "record %d", tt.recordID)
	}
}

func TestCanonicalFilenames(t *testing.T) {
	assert.Equal(t, "00042_canal3_features.json", FeatureFilename(42, 3))
	assert.Equal(t, "00042_processed.npz", ProcessedFilename(42))
	assert.Equal(t, "21837_canal0_features.json", FeatureFilename(21837, 0))

	assert.Equal(t,
		filepath.Join("out", "records003", "03500_processed.npz"),
		ProcessedPath("out", 3500))
}

func sampleRecord() *ecg.FeatureRecord {
	v := ecg.NewFeatureVector()
	v.Set("mean", 0.0)
	v.Set("std", 1.0)
	v.Set("rms", 0.7071)
	v.Set("dominant_frequency", 1.2)
	v.Set("shannon_entropy", 5.34)

	return &ecg.FeatureRecord{
		RecordID:    42,
		Channel:     3,
		SampleRate:  500.0,
		Samples:     5000,
		Channels:    12,
		ExtractedAt: "20260825_143000",
		Features:    v,
	}
}

func TestSaveLoadFeaturesRoundTrip(t *testing.T) {
	root := t.TempDir()
	rec := sampleRecord()

	path, err := SaveFeatures(root, rec)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "records000", "00042_canal3_features.json"), path)

	loaded, err := LoadFeatures(path)
	require.NoError(t, err)

	assert.Equal(t, rec.RecordID, loaded.RecordID)
	assert.Equal(t, rec.Channel, loaded.Channel)
	assert.Equal(t, rec.SampleRate, loaded.SampleRate)
	assert.Equal(t, rec.Samples, loaded.Samples)
	assert.Equal(t, rec.Channels, loaded.Channels)
	assert.Equal(t, rec.ExtractedAt, loaded.ExtractedAt)

	// The vector survives with names in the original order and exact values
	require.Equal(t, rec.Features.Names(), loaded.Features.Names())
	for _, name := range rec.Features.Names() {
		want, _ := rec.Features.Get(name)
		got, _ := loaded.Features.Get(name)
		assert.Equal(t, want, got, name)
	}
}

func TestSaveFeaturesRemovesFileOnEncodeFailure(t *testing.T) {
	// A non-finite feature value fails JSON encoding after the file is
	// created; no partial document may be left where downstream consumers
	// would pick it up
	root := t.TempDir()
	rec := sampleRecord()
	rec.Features.Set("skewness", math.NaN())

	_, err := SaveFeatures(root, rec)
	require.Error(t, err)

	_, statErr := os.Stat(FeaturePath(root, rec.RecordID, rec.Channel))
	assert.True(t, os.IsNotExist(statErr), "partial document left behind, stat err = %v", statErr)
}

func TestFeatureDocumentLayout(t *testing.T) {
	root := t.TempDir()

	path, err := SaveFeatures(root, sampleRecord())
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))

	// Fixed top-level keys of the document contract
	for _, key := range []string{"processamento", "dados_originais", "features", "num_features"} {
		assert.Contains(t, doc, key)
	}

	var proc map[string]any
	require.NoError(t, json.Unmarshal(doc["processamento"], &proc))
	assert.Equal(t, 42.0, proc["ecg_id"])
	assert.Equal(t, 3.0, proc["canal_analisado"])
	assert.Equal(t, "20260825_143000", proc["timestamp_extracao"])

	var orig map[string]any
	require.NoError(t, json.Unmarshal(doc["dados_originais"], &orig))
	assert.Equal(t, 500.0, orig["fs"])
	assert.Equal(t, []any{5000.0, 12.0}, orig["shape"].([]any))

	var count float64
	require.NoError(t, json.Unmarshal(doc["num_features"], &count))
	assert.Equal(t, 5.0, count)
}

func TestSaveLoadProcessedRoundTrip(t *testing.T) {
	root := t.TempDir()

	channels := make([][]float64, 3)
	for ch := range channels {
		channels[ch] = make([]float64, 400)
		for i := range channels[ch] {
			channels[ch][i] = math.Sin(2*math.Pi*float64(ch+1)*float64(i)/100.0) + float64(ch)
		}
	}
	sig, err := ecg.NewSignalFromChannels(channels)
	require.NoError(t, err)

	meta := ecg.SamplingMetadata{
		SampleRate:   100.0,
		ChannelCount: 3,
		SampleCount:  400,
		RecordID:     1500,
	}

	path, err := SaveProcessed(root, sig, meta, "20260825_143000")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "records001", "01500_processed.npz"), path)

	loaded, loadedMeta, timestamp, err := LoadProcessed(path)
	require.NoError(t, err)

	assert.Equal(t, 1500, loadedMeta.RecordID)
	assert.Equal(t, 100.0, loadedMeta.SampleRate)
	assert.Equal(t, 3, loadedMeta.ChannelCount)
	assert.Equal(t, 400, loadedMeta.SampleCount)
	assert.Equal(t, "20260825_143000", timestamp)

	require.Equal(t, 3, loaded.Channels())
	require.Equal(t, 400, loaded.Samples())
	for ch := 0; ch < 3; ch++ {
		assert.Equal(t, sig.Channel(ch), loaded.Channel(ch), "channel %d", ch)
	}
}

func TestNPYFloat64ArrayRoundTrip(t *testing.T) {
	values := []float64{1.5, -2.25, 0.0, math.Pi}

	tmp := filepath.Join(t.TempDir(), "a.npy")
	f, err := os.Create(tmp)
	require.NoError(t, err)
	require.NoError(t, writeFloat64Array(f, []int{2, 2}, values))
	require.NoError(t, f.Close())

	f, err = os.Open(tmp)
	require.NoError(t, err)
	defer f.Close()

	entry, err := readNPY(f)
	require.NoError(t, err)
	assert.Equal(t, "<f8", entry.descr)
	assert.Equal(t, []int{2, 2}, entry.shape)

	decoded, err := entry.floats()
	require.NoError(t, err)
	assert.Equal(t, values, decoded)
}

func TestNPYHeaderIs64ByteAligned(t *testing.T) {
	// numpy requires the magic, version and header together to pad out to a
	// 64-byte boundary
	tmp := filepath.Join(t.TempDir(), "a.npy")
	f, err := os.Create(tmp)
	require.NoError(t, err)
	require.NoError(t, writeInt64Scalar(f, 42))
	require.NoError(t, f.Close())

	raw, err := os.ReadFile(tmp)
	require.NoError(t, err)

	// Payload is exactly 8 bytes, so everything before it is the header block
	assert.Equal(t, 0, (len(raw)-8)%64)
	assert.Equal(t, byte('\n'), raw[len(raw)-8-1])
}

func TestNPYStringScalarRoundTrip(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "s.npy")
	f, err := os.Create(tmp)
	require.NoError(t, err)
	require.NoError(t, writeStringScalar(f, "20260825_143000"))
	require.NoError(t, f.Close())

	f, err = os.Open(tmp)
	require.NoError(t, err)
	defer f.Close()

	entry, err := readNPY(f)
	require.NoError(t, err)
	assert.Equal(t, "<U15", entry.descr)
	assert.Empty(t, entry.shape)

	s, err := entry.stringScalar()
	require.NoError(t, err)
	assert.Equal(t, "20260825_143000", s)
}

func TestLoadProcessedRejectsMissingSignal(t *testing.T) {
	// An empty zip is a valid archive but not a valid record
	tmp := filepath.Join(t.TempDir(), "empty.npz")
	f, err := os.Create(tmp)
	require.NoError(t, err)
	_, err = f.Write([]byte("PK\x05\x06" + string(make([]byte, 18))))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, _, _, err = LoadProcessed(tmp)
	require.Error(t, err)
}
