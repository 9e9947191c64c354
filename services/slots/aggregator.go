// Package slots decorates matched providers with their next bookable slots.
package slots

import (
	"context"
	"fmt"
	"math"
	"time"

	slotRepo "keazy/database/repository/slot"
	"keazy/models"
)

// SlotsPerProvider is how many upcoming slots each card carries.
const SlotsPerProvider = 5

// Aggregator attaches slot lists to provider cards.
type Aggregator interface {
	Attach(ctx context.Context, providers []models.Provider) ([]models.ProviderCard, error)
}

// DefaultAggregator reads upcoming availability from the slot repository.
type DefaultAggregator struct {
	SlotRepo slotRepo.SlotRepository
	Clock    func() time.Time
}

// Attach builds one card per provider: up to SlotsPerProvider available
// slots from today onward, plus the rounded geo distance when present.
func (a *DefaultAggregator) Attach(ctx context.Context, providers []models.Provider) ([]models.ProviderCard, error) {
	clock := a.Clock
	if clock == nil {
		clock = time.Now
	}
	today := clock().UTC().Format("2006-01-02")

	cards := make([]models.ProviderCard, 0, len(providers))
	for i := range providers {
		p := providers[i]

		upcoming, err := a.SlotRepo.NextAvailable(ctx, p.ID, today, SlotsPerProvider)
		if err != nil {
			return nil, fmt.Errorf("failed to load slots for provider %s: %w", p.ID, err)
		}

		views := make([]models.SlotView, 0, len(upcoming))
		for _, s := range upcoming {
			views = append(views, models.SlotView{
				ID:          s.ID,
				Date:        s.Date,
				Time:        s.Time,
				DurationMin: s.DurationMin,
			})
		}

		card := models.ProviderCard{Provider: p, NextSlots: views}
		if km := p.DistanceKm(); km != nil {
			rounded := math.Round(*km*100) / 100
			card.DistanceKm = &rounded
		}
		cards = append(cards, card)
	}
	return cards, nil
}
