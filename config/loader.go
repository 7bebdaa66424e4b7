package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"propscout/server/internal/models"
)

// marketProfileFile is the on-disk shape of a market profile override file.
type marketProfileFile struct {
	Markets map[string]models.MarketProfile `json:"markets"`
}

// LoadMarketProfiles merges profiles from a JSON file into the index.
// Cities in the file replace built-in entries of the same name; cities not
// mentioned keep their built-in values.
func (i *MarketIndex) LoadMarketProfiles(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %v", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("failed to read market profile file: %v", err)
	}

	var file marketProfileFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse market profile file: %v", err)
	}

	for city, profile := range file.Markets {
		i.profiles[NormalizeCity(city)] = profile
	}

	return nil
}
