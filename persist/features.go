package persist

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cardiolab/ecgpipe/ecg"
)

// featureDocument is the on-disk shape of one channel's features. The key
// names are a fixed contract with the downstream dataset tooling.
type featureDocument struct {
	Processamento  processingInfo     `json:"processamento"`
	DadosOriginais originalInfo       `json:"dados_originais"`
	Features       *ecg.FeatureVector `json:"features"`
	NumFeatures    int                `json:"num_features"`
}

type processingInfo struct {
	EcgID             int    `json:"ecg_id"`
	CanalAnalisado    int    `json:"canal_analisado"`
	TimestampExtracao string `json:"timestamp_extracao"`
}

type originalInfo struct {
	FS    float64 `json:"fs"`
	Shape [2]int  `json:"shape"`
}

// SaveFeatures writes one FeatureRecord as a UTF-8 JSON document under
// root/records{shard}/{id:05d}_canal{ch}_features.json. Returns the
// written path.
func SaveFeatures(root string, rec *ecg.FeatureRecord) (path string, err error) {
	doc := featureDocument{
		Processamento: processingInfo{
			EcgID:             rec.RecordID,
			CanalAnalisado:    rec.Channel,
			TimestampExtracao: rec.ExtractedAt,
		},
		DadosOriginais: originalInfo{
			FS:    rec.SampleRate,
			Shape: [2]int{rec.Samples, rec.Channels},
		},
		Features:    rec.Features,
		NumFeatures: rec.Features.Len(),
	}

	// The cleanup below must not read the named return: error branches
	// reset it to "" before the defer runs
	target := FeaturePath(root, rec.RecordID, rec.Channel)
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

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		return "", err
	}
	return target, nil
}

// LoadFeatures reads a document written by SaveFeatures back into a
// FeatureRecord
func LoadFeatures(path string) (*ecg.FeatureRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var doc featureDocument
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, err
	}

	return &ecg.FeatureRecord{
		RecordID:    doc.Processamento.EcgID,
		Channel:     doc.Processamento.CanalAnalisado,
		SampleRate:  doc.DadosOriginais.FS,
		Samples:     doc.DadosOriginais.Shape[0],
		Channels:    doc.DadosOriginais.Shape[1],
		ExtractedAt: doc.Processamento.TimestampExtracao,
		Features:    doc.Features,
	}, nil
}
