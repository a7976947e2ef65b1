package config

import (
	"sort"
	"strings"
)

// OtherRegion is the fallback key for cities without their own entry.
const OtherRegion = "other"

// CityRent represents the reference cold rent of a city in €/m²
type CityRent struct {
	Name    string  `json:"name"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// defaultCityRents is the built-in rent table, keyed by normalized city name
var defaultCityRents = map[string]CityRent{
	"muenchen":    {Name: "München", Average: 19.5, Min: 14.0, Max: 26.0},
	"frankfurt":   {Name: "Frankfurt am Main", Average: 15.5, Min: 11.0, Max: 21.0},
	"stuttgart":   {Name: "Stuttgart", Average: 14.5, Min: 10.5, Max: 20.0},
	"hamburg":     {Name: "Hamburg", Average: 13.5, Min: 9.5, Max: 19.0},
	"berlin":      {Name: "Berlin", Average: 13.0, Min: 8.0, Max: 19.0},
	"duesseldorf": {Name: "Düsseldorf", Average: 12.5, Min: 9.0, Max: 17.0},
	"koeln":       {Name: "Köln", Average: 12.5, Min: 9.0, Max: 17.0},
	"nuernberg":   {Name: "Nürnberg", Average: 11.0, Min: 8.0, Max: 15.0},
	"hannover":    {Name: "Hannover", Average: 9.5, Min: 7.0, Max: 13.0},
	"bremen":      {Name: "Bremen", Average: 9.0, Min: 6.5, Max: 12.5},
	"essen":       {Name: "Essen", Average: 8.0, Min: 6.0, Max: 11.0},
	"dortmund":    {Name: "Dortmund", Average: 8.0, Min: 6.0, Max: 11.0},
	"leipzig":     {Name: "Leipzig", Average: 7.5, Min: 5.5, Max: 10.5},
	"dresden":     {Name: "Dresden", Average: 7.5, Min: 5.5, Max: 10.5},
	OtherRegion:   {Name: "Andere Region", Average: 8.0, Min: 5.0, Max: 11.0},
}

var cityAliases = map[string]string{
	"munich":            "muenchen",
	"frankfurt-am-main": "frankfurt",
	"cologne":           "koeln",
	"nuremberg":         "nuernberg",
}

var umlauts = strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss", "'", "")

// NormalizeCity turns a display name into a table key ("Frankfurt am Main" -> "frankfurt-am-main", "Köln" -> "koeln")
func NormalizeCity(name string) string {
	name = umlauts.Replace(strings.ToLower(strings.TrimSpace(name)))
	return strings.Join(strings.Fields(name), "-")
}

// GetCityRent returns the rent entry for a city, falling back to the "other" region
func GetCityRent(city string) (string, CityRent) {
	rentsLock.RLock()
	defer rentsLock.RUnlock()

	key := NormalizeCity(city)
	if alias, ok := cityAliases[key]; ok {
		key = alias
	}
	if rent, ok := cityRents[key]; ok {
		return key, rent
	}
	return OtherRegion, cityRents[OtherRegion]
}

// GetCityKeys returns the keys of all configured cities, fallback region included
func GetCityKeys() []string {
	rentsLock.RLock()
	defer rentsLock.RUnlock()

	keys := make([]string, 0, len(cityRents))
	for key := range cityRents {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// GetCityRents returns a copy of the current rent table
func GetCityRents() map[string]CityRent {
	rentsLock.RLock()
	defer rentsLock.RUnlock()

	rents := make(map[string]CityRent, len(cityRents))
	for key, rent := range cityRents {
		rents[key] = rent
	}
	return rents
}
