// Package lifecycle holds the request status rules: which transitions a
// provider may trigger, and the per-recipient aggregate counts derived from
// request state.
package lifecycle

import (
	"fmt"

	"github.com/erazemk/foodshare/internal/model"
)

// CheckTransition returns nil if a request in status from may be moved to
// status to. Only delivery is a triggered transition; "in transit" is a
// display bucket that no operation moves a request into.
func CheckTransition(from, to model.Status) error {
	if from.Terminal() {
		return fmt.Errorf("%w: request already %s", model.ErrInvalidTransition, from)
	}

	switch to {
	case model.StatusDelivered:
		if from == model.StatusPending || from == model.StatusInTransit {
			return nil
		}
		return fmt.Errorf("%w: unknown current status %q", model.ErrInvalidTransition, from)
	case model.StatusInTransit:
		return fmt.Errorf("%w: %q is not a supported target", model.ErrInvalidTransition, to)
	case model.StatusPending:
		return fmt.Errorf("%w: cannot move %s back to %s", model.ErrInvalidTransition, from, to)
	default:
		return fmt.Errorf("%w: unknown status %q", model.ErrValidation, to)
	}
}

// Summary is the recipient dashboard aggregate.
type Summary struct {
	Total      int `json:"total"`
	InProgress int `json:"in_progress"`
	Delivered  int `json:"delivered"`
}

// Summarize counts requests by bucket. It is recomputed from the given
// snapshot on every call; nothing is cached.
func Summarize(requests []model.Request) Summary {
	var s Summary
	for _, r := range requests {
		switch r.Status {
		case model.StatusPending, model.StatusInTransit:
			s.InProgress++
		case model.StatusDelivered:
			s.Delivered++
		default:
			// Unknown statuses cannot be stored; count them as open so
			// Total == InProgress + Delivered still holds.
			s.InProgress++
		}
		s.Total++
	}
	return s
}
