// Package definitions loads the static coinhouse catalog from YAML. The
// catalog is authored by world builders and seeded into the ledger at
// startup.
package definitions

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arelgame/coinhouse/ledger"
)

var (
	// ErrNoCoinhouses is returned when the catalog defines no coinhouses.
	ErrNoCoinhouses = errors.New("catalog must define at least one coinhouse")

	// ErrDuplicateTag is returned when two catalog entries share a tag.
	ErrDuplicateTag = errors.New("duplicate coinhouse tag in catalog")
)

type catalogFile struct {
	Coinhouses []coinhouseEntry `yaml:"coinhouses"`
}

type coinhouseEntry struct {
	Tag        string `yaml:"tag"`
	Settlement string `yaml:"settlement"`
	EngineID   string `yaml:"engine_id"`
}

// Load parses a coinhouse catalog and validates every entry.
func Load(reader io.Reader) ([]ledger.Coinhouse, error) {
	var file catalogFile

	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	if len(file.Coinhouses) == 0 {
		return nil, ErrNoCoinhouses
	}

	seen := make(map[ledger.CoinhouseTag]struct{}, len(file.Coinhouses))
	coinhouses := make([]ledger.Coinhouse, 0, len(file.Coinhouses))

	for i, entry := range file.Coinhouses {
		tag, err := ledger.NewCoinhouseTag(entry.Tag)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}

		if _, exists := seen[tag]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTag, tag)
		}

		seen[tag] = struct{}{}

		coinhouse, err := ledger.NewCoinhouse(tag, entry.Settlement, entry.EngineID)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d (%s): %w", i, tag, err)
		}

		coinhouses = append(coinhouses, coinhouse)
	}

	return coinhouses, nil
}

// LoadFile loads a coinhouse catalog from the given path.
func LoadFile(path string) ([]ledger.Coinhouse, error) {
	file, err := os.Open(path) //nolint:gosec // catalog path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer file.Close() //nolint:errcheck // read-only file

	return Load(file)
}
