package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/foodshare/internal/model"
)

func TestCheckTransition(t *testing.T) {
	tests := []struct {
		from, to model.Status
		wantErr  error
	}{
		{model.StatusPending, model.StatusDelivered, nil},
		{model.StatusInTransit, model.StatusDelivered, nil},
		{model.StatusDelivered, model.StatusDelivered, model.ErrInvalidTransition},
		{model.StatusDelivered, model.StatusPending, model.ErrInvalidTransition},
		{model.StatusPending, model.StatusInTransit, model.ErrInvalidTransition},
		{model.StatusInTransit, model.StatusPending, model.ErrInvalidTransition},
		{model.StatusPending, model.StatusPending, model.ErrInvalidTransition},
		{model.StatusPending, "lost", model.ErrValidation},
	}

	for _, tt := range tests {
		err := CheckTransition(tt.from, tt.to)
		if tt.wantErr == nil {
			assert.NoError(t, err, "%s -> %s", tt.from, tt.to)
			continue
		}
		assert.ErrorIs(t, err, tt.wantErr, "%s -> %s", tt.from, tt.to)
	}
}

func TestSummarize(t *testing.T) {
	requests := []model.Request{
		{Status: model.StatusPending},
		{Status: model.StatusInTransit},
		{Status: model.StatusDelivered},
		{Status: model.StatusPending},
		{Status: model.StatusDelivered},
	}

	s := Summarize(requests)
	assert.Equal(t, Summary{Total: 5, InProgress: 3, Delivered: 2}, s)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestSummarizeTotalInvariant(t *testing.T) {
	statuses := []model.Status{model.StatusPending, model.StatusInTransit, model.StatusDelivered}
	var requests []model.Request

	// Walk through creations and deliveries, checking after each step.
	for i := 0; i < 30; i++ {
		requests = append(requests, model.Request{Status: statuses[i%len(statuses)]})
		if i%4 == 0 {
			idx := i / 2
			if CheckTransition(requests[idx].Status, model.StatusDelivered) == nil {
				requests[idx].Status = model.StatusDelivered
			}
		}

		s := Summarize(requests)
		require.Equal(t, len(requests), s.Total)
		require.Equal(t, s.Total, s.InProgress+s.Delivered)
	}
}
