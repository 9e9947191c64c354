// Seed loads demo services, providers and a week of slots into the
// configured database. Run it against an empty local instance:
//
//	go run ./seed
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"keazy/config"
	"keazy/database"
	providerRepo "keazy/database/repository/provider"
	serviceRepo "keazy/database/repository/service"
	slotRepo "keazy/database/repository/slot"
	"keazy/models"
)

func main() {
	config.LoadConfig()
	database.InitDB()

	ctx := context.Background()
	svcRepo := serviceRepo.NewMongoServiceRepo()
	provRepo := providerRepo.NewMongoProviderRepo()
	slRepo := slotRepo.NewMongoSlotRepo()

	services := []models.Service{
		{Name: "plumber", Synonyms: []string{"plumber", "plumbing", "pipe", "leak", "tap", "drain", "fundi wa maji"}, Enabled: true},
		{Name: "electrician", Synonyms: []string{"electrician", "electric", "wiring", "socket", "power", "fundi wa stima"}, Enabled: true},
		{Name: "cleaner", Synonyms: []string{"cleaner", "cleaning", "housekeeping", "laundry", "usafi"}, Enabled: true},
		{Name: "mechanic", Synonyms: []string{"mechanic", "car repair", "engine", "garage", "fundi wa gari"}, Enabled: true},
	}
	for i := range services {
		if err := svcRepo.Upsert(ctx, &services[i]); err != nil {
			log.Fatalf("seed: service %s: %v", services[i].Name, err)
		}
	}

	rate := func(v float64) *float64 { return &v }
	providers := []models.Provider{
		{
			Name: "Otieno Plumbing Works", Phone: "+254700000001", Service: "plumber",
			Location: models.Location{State: "Nairobi", City: "Nairobi", Area: "Westlands", Geo: models.NewGeoPoint(-1.2635, 36.8029)},
			Rating:   4.7, Verified: true, AvailableNow: true, ResponseTimeMin: 15, JobsCompleted30d: 22, HourlyRate: rate(1200),
		},
		{
			Name: "QuickFix Pipes", Phone: "+254700000002", Service: "plumber",
			Location: models.Location{State: "Nairobi", City: "Nairobi", Area: "Kilimani", Geo: models.NewGeoPoint(-1.2890, 36.7870)},
			Rating:   3.0, Verified: false, AvailableNow: true, ResponseTimeMin: 40, JobsCompleted30d: 6, HourlyRate: rate(800),
		},
		{
			Name: "Wanjiku Electricals", Phone: "+254700000003", Service: "electrician",
			Location: models.Location{State: "Nairobi", City: "Nairobi", Area: "Kasarani", Geo: models.NewGeoPoint(-1.2210, 36.8980)},
			Rating:   4.2, Verified: true, AvailableNow: false, ResponseTimeMin: 30, JobsCompleted30d: 14, HourlyRate: rate(1500),
		},
		{
			Name: "Mombasa Road Garage", Phone: "+254700000004", Service: "mechanic",
			Location: models.Location{State: "Nairobi", City: "Nairobi", Area: "South B", Geo: models.NewGeoPoint(-1.3100, 36.8400)},
			Rating:   4.9, Verified: true, AvailableNow: true, ResponseTimeMin: 10, JobsCompleted30d: 31, HourlyRate: rate(2000),
		},
	}
	for i := range providers {
		if err := provRepo.Create(ctx, &providers[i]); err != nil {
			log.Fatalf("seed: provider %s: %v", providers[i].Name, err)
		}
	}

	// One morning and one afternoon slot per provider for the next 7 days.
	var slots []models.Slot
	today := time.Now().UTC()
	for _, p := range providers {
		for day := 0; day < 7; day++ {
			date := today.AddDate(0, 0, day).Format("2006-01-02")
			for _, at := range []string{"09:00", "14:00"} {
				slots = append(slots, models.Slot{
					ProviderID:  p.ID,
					Date:        date,
					Time:        at,
					DurationMin: 120,
					ServiceName: p.Service,
					Status:      models.SlotAvailable,
				})
			}
		}
	}
	ids, err := slRepo.CreateMany(ctx, slots)
	if err != nil {
		log.Fatalf("seed: slots: %v", err)
	}

	fmt.Printf("seeded %d services, %d providers, %d slots\n", len(services), len(providers), len(ids))
}
