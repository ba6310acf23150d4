package apperr

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPredicates(t *testing.T) {
	id := uuid.New()
	start := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.January, 13, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		err       error
		predicate func(error) bool
	}{
		{"validation", Validation("start_date", "must be RFC 3339"), IsValidation},
		{"not found", NotFound("booking", id), IsNotFound},
		{"availability", Availability(id, start, end), IsAvailability},
		{"status transition", StatusTransition("booking", "pending", "completed", []string{"confirmed", "cancelled"}), IsStatusTransition},
		{"state", State("retired", "available", nil), IsState},
		{"business", Business("equipment %s still has %d booking(s)", id, 2), IsBusiness},
	}

	for i, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.predicate(tc.err))
			assert.True(t, IsDomain(tc.err))

			// No other taxonomy member matches it.
			for j, other := range tests {
				if i != j {
					assert.False(t, other.predicate(tc.err), "matched %s", other.name)
				}
			}
		})
	}
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("change booking status: %w", Availability(uuid.New(), time.Now(), time.Now().Add(time.Hour)))

	assert.True(t, IsAvailability(err))
	assert.True(t, IsDomain(err))
	assert.False(t, IsValidation(err))
}

func TestIsDomainRejectsPlainErrors(t *testing.T) {
	assert.False(t, IsDomain(errors.New("connection reset")))
	assert.False(t, IsDomain(nil))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "validation: interval: start must be before end",
		Validation("interval", "start must be before end").Error())
	assert.Equal(t, "validation: bad request",
		Validation("", "bad request").Error())

	transition := StatusTransition("booking", "pending", "completed", []string{"confirmed", "cancelled"})
	assert.Equal(t, "booking status pending cannot change to completed (allowed: confirmed, cancelled)",
		transition.Error())
}
