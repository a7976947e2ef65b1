package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var (
	cityRents = defaultCityRents
	rentsLock sync.RWMutex
)

// LoadCityRentsFile replaces the city rent table with the entries of a JSON file.
// Entries are keyed by city name; keys are normalized. A missing "other" entry keeps
// the built-in fallback so lookups for unknown cities still resolve.
func LoadCityRentsFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %v", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("failed to read city rents file: %w", err)
	}

	var raw map[string]CityRent
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse city rents file: %w", err)
	}

	rents := make(map[string]CityRent, len(raw)+1)
	for key, rent := range raw {
		if rent.Min > rent.Max {
			return fmt.Errorf("invalid rent range for %s: min %.2f > max %.2f", key, rent.Min, rent.Max)
		}
		rents[NormalizeCity(key)] = rent
	}
	if _, ok := rents[OtherRegion]; !ok {
		rents[OtherRegion] = defaultCityRents[OtherRegion]
	}

	rentsLock.Lock()
	defer rentsLock.Unlock()
	cityRents = rents
	return nil
}

// ResetCityRents restores the built-in rent table
func ResetCityRents() {
	rentsLock.Lock()
	defer rentsLock.Unlock()
	cityRents = defaultCityRents
}
