package harvest

import (
	"kagglefetch/pkg/kaggle"
)

// Status is the classification of one fetch attempt
type Status int

const (
	// StatusSuccess retires the ref and persists its artifacts
	StatusSuccess Status = iota

	// StatusPermanentSkip retires the ref without artifacts; the outcome is
	// ground truth about the item and will not change on a later run
	StatusPermanentSkip

	// StatusTransientSkip leaves the ref unretired so a future run tries again
	StatusTransientSkip
)

// Outcome is the tagged result of processing one ref. Exactly one outcome is
// produced per attempt.
type Outcome struct {
	Status Status
	Reason string
}

// Succeeded returns a success outcome
func Succeeded() Outcome {
	return Outcome{Status: StatusSuccess}
}

// PermanentSkip returns an outcome that retires the ref without artifacts
func PermanentSkip(reason string) Outcome {
	return Outcome{Status: StatusPermanentSkip, Reason: reason}
}

// TransientSkip returns an outcome that defers the ref to a future run
func TransientSkip(reason string) Outcome {
	return Outcome{Status: StatusTransientSkip, Reason: reason}
}

// ClassifyFetchError maps a remote fetch failure onto an outcome, once, at the
// boundary. Explicit not-found and forbidden responses are ground truth about
// the item and retire it. Everything else (rate limits, server errors, network
// failures, anything unclassified) is treated as possibly this-run-only:
// excluding such a ref could permanently lose an item that would have
// succeeded later.
func ClassifyFetchError(err error) Outcome {
	switch {
	case kaggle.IsNotFound(err):
		return PermanentSkip("not found")
	case kaggle.IsForbidden(err):
		return PermanentSkip("forbidden")
	default:
		return TransientSkip(err.Error())
	}
}
