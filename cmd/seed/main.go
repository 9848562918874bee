package main

import (
	"context"
	"flag"
	"log"
	"time"

	"charlesfind/safaritracker/internal/config"
	"charlesfind/safaritracker/internal/constants"
	"charlesfind/safaritracker/internal/db"
	"charlesfind/safaritracker/internal/db/repositories"
	gormModels "charlesfind/safaritracker/internal/models/gorm"
	"charlesfind/safaritracker/internal/providers"

	"go.uber.org/zap"
)

type seedSighting struct {
	species  string
	first    string
	last     string
	notes    string
	location string
	status   string
	ago      time.Duration
	dLat     float64
	dLng     float64
}

var demoSightings = []seedSighting{
	{"Lion", "John", "Kamau", "Pride of 5 resting under acacia tree", "Central Plains", constants.StatusNormal, 5 * time.Minute, 0.004, -0.006},
	{"Elephant", "Sarah", "Wanjiku", "Herd of 12 crossing the river", "Mara River", constants.StatusNormal, 15 * time.Minute, -0.011, 0.008},
	{"Leopard", "Peter", "Otieno", "Spotted in tree with kill", "Rhino Ridge", constants.StatusUrgent, 30 * time.Minute, 0.017, 0.013},
	{"Cheetah", "Grace", "Achieng", "Mother with three cubs", "Talek River", constants.StatusNormal, 2 * time.Hour, -0.021, -0.015},
	{"Rhino", "James", "Kimani", "Black rhino near the salt lick", "Musiara Marsh", constants.StatusUrgent, 5 * time.Hour, 0.026, 0.019},
	{"Buffalo", "Mary", "Njeri", "", "Paradise Plains", constants.StatusNormal, 26 * time.Hour, -0.007, 0.024},
}

// seed inserts demo sightings into the configured store
func main() {
	dryRun := flag.Bool("dry-run", false, "print the sightings without inserting")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	var store providers.SightingStore
	if cfg.Store.Backend == config.BackendPostgREST {
		store = providers.NewPostgRESTStore(cfg.Store.URL, cfg.Store.APIKey, cfg.Store.Timeout, logger)
	} else {
		gormDB, err := db.InitORM(cfg, logger)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		store = repositories.NewSightingRepository(gormDB, cfg.Store.Backend)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := time.Now().UTC()
	for _, s := range demoSightings {
		sighting := buildSighting(s, now)
		if *dryRun {
			logger.Info("Would insert", zap.String("species", sighting.Species), zap.Time("observed_at", sighting.ObservedAt))
			continue
		}

		id, err := store.Insert(ctx, sighting)
		if err != nil {
			log.Fatalf("insert %s: %v", s.species, err)
		}
		logger.Info("Inserted", zap.String("id", id), zap.String("species", sighting.Species))
	}
}

func buildSighting(s seedSighting, now time.Time) *gormModels.Sighting {
	location := s.location
	sighting := &gormModels.Sighting{
		Species:             s.species,
		ReporterFirstName:   s.first,
		ReporterLastName:    s.last,
		Status:              s.status,
		LocationDescription: &location,
		Latitude:            constants.ReserveLatitude + s.dLat,
		Longitude:           constants.ReserveLongitude + s.dLng,
		ObservedAt:          now.Add(-s.ago),
	}
	if s.notes != "" {
		notes := s.notes
		sighting.Notes = &notes
	}
	return sighting
}
