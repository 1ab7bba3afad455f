package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"fare-tracker-service/pkg/utils"
)

//go:embed airports.yaml
var defaultAirports []byte

// AirportList is the candidate origin file
type AirportList struct {
	Origins []string `yaml:"origins"`
}

// LoadAirports reads the candidate origins from path, or the built-in list
// when path is empty. Codes are upper-cased and de-duplicated, order kept.
func LoadAirports(path string) ([]string, error) {
	data := defaultAirports
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("failed to read airports file: %w", err)
		}
	}
	return ParseAirports(data)
}

// ParseAirports decodes an airports YAML document
func ParseAirports(data []byte) ([]string, error) {
	var list AirportList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse airports: %w", err)
	}

	seen := make(map[string]bool, len(list.Origins))
	origins := make([]string, 0, len(list.Origins))
	for _, code := range list.Origins {
		code = strings.ToUpper(strings.TrimSpace(code))
		if !utils.IsAirportCode(code) {
			return nil, fmt.Errorf("invalid airport code %q", code)
		}
		if seen[code] {
			continue
		}
		seen[code] = true
		origins = append(origins, code)
	}
	if len(origins) == 0 {
		return nil, fmt.Errorf("airports list is empty")
	}
	return origins, nil
}
