package services

import (
	"strings"

	"charlesfind/safaritracker/internal/constants"
	gormModels "charlesfind/safaritracker/internal/models/gorm"
)

// ApplyFilter keeps the records matching both the free-text query and the
// species filter, preserving their order. The query matches species or
// location description case-insensitively; an empty query matches all.
// The species filter is "all" (or empty) or a case-insensitive species name.
func ApplyFilter(records []gormModels.Sighting, query, speciesFilter string) []gormModels.Sighting {
	q := strings.ToLower(strings.TrimSpace(query))
	species := strings.ToLower(strings.TrimSpace(speciesFilter))

	filtered := make([]gormModels.Sighting, 0, len(records))
	for _, r := range records {
		if matchesQuery(r, q) && matchesSpecies(r, species) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func matchesQuery(r gormModels.Sighting, q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Species), q) {
		return true
	}
	return r.LocationDescription != nil && strings.Contains(strings.ToLower(*r.LocationDescription), q)
}

func matchesSpecies(r gormModels.Sighting, species string) bool {
	if species == "" || species == constants.SpeciesFilterAll {
		return true
	}
	return strings.ToLower(r.Species) == species
}
