package persist

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cardiolab/ecgpipe/ecg"
)

// SaveProcessed writes the conditioned signal of one record as a
// compressed NPZ archive under root/records{shard}/{id:05d}_processed.npz.
// The archive carries the signal in sample-major order plus the record id,
// processing timestamp, shape and sampling rate, matching what the
// downstream dataset tooling expects to find. Returns the written path.
func SaveProcessed(root string, sig *ecg.Signal, meta ecg.SamplingMetadata, timestamp string) (path string, err error) {
	// The cleanup below must not read the named return: error branches
	// reset it to "" before the defer runs
	target := ProcessedPath(root, meta.RecordID)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(target)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			os.Remove(target)
		}
	}()

	zw := zip.NewWriter(f)

	samples := sig.Samples()
	channels := sig.Channels()

	entries := []struct {
		name  string
		write func(w *zip.Writer) error
	}{
		{"sinal.npy", func(w *zip.Writer) error {
			ew, err := w.Create("sinal.npy")
			if err != nil {
				return err
			}
			return writeFloat64Array(ew, []int{samples, channels}, sig.Flat())
		}},
		{"ecg_id.npy", func(w *zip.Writer) error {
			ew, err := w.Create("ecg_id.npy")
			if err != nil {
				return err
			}
			return writeInt64Scalar(ew, int64(meta.RecordID))
		}},
		{"timestamp.npy", func(w *zip.Writer) error {
			ew, err := w.Create("timestamp.npy")
			if err != nil {
				return err
			}
			return writeStringScalar(ew, timestamp)
		}},
		{"shape.npy", func(w *zip.Writer) error {
			ew, err := w.Create("shape.npy")
			if err != nil {
				return err
			}
			return writeFloat64Array(ew, []int{2}, []float64{float64(samples), float64(channels)})
		}},
		{"fs.npy", func(w *zip.Writer) error {
			ew, err := w.Create("fs.npy")
			if err != nil {
				return err
			}
			return writeFloat64Array(ew, nil, []float64{meta.SampleRate})
		}},
	}

	for _, entry := range entries {
		if err := entry.write(zw); err != nil {
			zw.Close()
			return "", fmt.Errorf("writing %s: %w", entry.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return "", err
	}
	return target, nil
}

// LoadProcessed reads an archive written by SaveProcessed and rebuilds the
// signal and the metadata it carried
func LoadProcessed(path string) (*ecg.Signal, ecg.SamplingMetadata, string, error) {
	var meta ecg.SamplingMetadata

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, meta, "", err
	}
	defer zr.Close()

	entries := make(map[string]*npyEntry)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, meta, "", err
		}
		entry, err := readNPY(rc)
		rc.Close()
		if err != nil {
			return nil, meta, "", fmt.Errorf("reading %s: %w", f.Name, err)
		}
		entries[f.Name] = entry
	}

	sigEntry, ok := entries["sinal.npy"]
	if !ok {
		return nil, meta, "", fmt.Errorf("archive %s has no signal entry", path)
	}
	values, err := sigEntry.floats()
	if err != nil {
		return nil, meta, "", err
	}
	if len(sigEntry.shape) != 2 {
		return nil, meta, "", fmt.Errorf("signal entry has rank %d, expected 2", len(sigEntry.shape))
	}

	samples, channels := sigEntry.shape[0], sigEntry.shape[1]
	rows := make([][]float64, samples)
	for i := 0; i < samples; i++ {
		rows[i] = values[i*channels : (i+1)*channels]
	}
	sig, err := ecg.NewSignal(rows)
	if err != nil {
		return nil, meta, "", err
	}

	meta.SampleCount = samples
	meta.ChannelCount = channels

	if e, ok := entries["ecg_id.npy"]; ok {
		if id, err := e.int64Scalar(); err == nil {
			meta.RecordID = int(id)
		}
	}
	if e, ok := entries["fs.npy"]; ok {
		if fs, err := e.floats(); err == nil && len(fs) == 1 {
			meta.SampleRate = fs[0]
		}
	}

	timestamp := ""
	if e, ok := entries["timestamp.npy"]; ok {
		timestamp, _ = e.stringScalar()
	}

	return sig, meta, timestamp, nil
}
