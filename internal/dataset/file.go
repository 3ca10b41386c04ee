package dataset

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/verte-zerg/lookahead/internal/model"
)

type fileDataset struct {
	Models []fileRecord `toml:"model"`
}

type fileRecord struct {
	Name    string  `toml:"name"`
	AlphaP1 float64 `toml:"alpha_p1"`
	AlphaP2 float64 `toml:"alpha_p2"`
	Decay   float64 `toml:"decay"`
	PiT     bool    `toml:"pit"`
}

// Load reads and validates a TOML dataset made of [[model]] tables.
func Load(path string) ([]model.BenchmarkRecord, error) {
	if path == "" {
		return nil, fmt.Errorf("dataset path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes and validates a TOML dataset document.
func Parse(doc string) ([]model.BenchmarkRecord, error) {
	var raw fileDataset
	md, err := toml.Decode(doc, &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("dataset: unknown key %q", undecoded[0].String())
	}
	records := make([]model.BenchmarkRecord, 0, len(raw.Models))
	for _, m := range raw.Models {
		records = append(records, model.BenchmarkRecord{
			Name:    m.Name,
			AlphaP1: decimal.NewFromFloat(m.AlphaP1),
			AlphaP2: decimal.NewFromFloat(m.AlphaP2),
			Decay:   decimal.NewFromFloat(m.Decay),
			IsPiT:   m.PiT,
		})
	}
	if err := Validate(records); err != nil {
		return nil, err
	}
	return records, nil
}
