package intent

import (
	"testing"

	"keazy/models"

	"github.com/stretchr/testify/assert"
)

func TestClassifyUrgency(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"urgent keyword", "I need a plumber urgently", models.UrgencyHigh},
		{"emergency keyword", "EMERGENCY: power is out", models.UrgencyHigh},
		{"swahili high", "nataka fundi haraka", models.UrgencyHigh},
		{"tomorrow", "can someone come tomorrow", models.UrgencyLow},
		{"swahili low", "fundi aje kesho", models.UrgencyLow},
		{"no keywords", "my sink is broken", models.UrgencyNormal},
		{"high beats low", "urgent, or tomorrow at the latest", models.UrgencyHigh},
		{"empty", "", models.UrgencyNormal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyUrgency(tc.text))
		})
	}
}
