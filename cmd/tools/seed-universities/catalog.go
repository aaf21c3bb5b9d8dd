package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"study-abroad-workers/internal/models"
)

type catalogFile struct {
	Universities []models.University `yaml:"universities"`
}

// loadCatalog reads the seed file and rejects entries the matching engine
// could not use: no name, no country, duplicate names or inverted tuition.
func loadCatalog(path string) ([]models.University, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return parseCatalog(raw)
}

func parseCatalog(raw []byte) ([]models.University, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	seen := make(map[string]bool, len(file.Universities))
	for i := range file.Universities {
		u := &file.Universities[i]
		u.Name = strings.TrimSpace(u.Name)
		u.Country = strings.TrimSpace(u.Country)

		switch {
		case u.Name == "":
			return nil, fmt.Errorf("entry %d: name is required", i)
		case u.Country == "":
			return nil, fmt.Errorf("%s: country is required", u.Name)
		case seen[strings.ToLower(u.Name)]:
			return nil, fmt.Errorf("%s: listed twice", u.Name)
		case u.TuitionMin != nil && u.TuitionMax != nil && *u.TuitionMin > *u.TuitionMax:
			return nil, fmt.Errorf("%s: tuition_min exceeds tuition_max", u.Name)
		case u.AcceptanceRate != nil && (*u.AcceptanceRate < 0 || *u.AcceptanceRate > 1):
			return nil, fmt.Errorf("%s: acceptance_rate must be within [0, 1]", u.Name)
		}
		seen[strings.ToLower(u.Name)] = true
		if u.Currency == "" {
			u.Currency = "USD"
		}
	}
	return file.Universities, nil
}
