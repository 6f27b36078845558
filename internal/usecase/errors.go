package usecase

import "errors"

var (
	// ErrNoData means a required stage came back empty and the run cannot
	// proceed (tournaments, teams, players, post-run verification).
	ErrNoData = errors.New("required data missing")

	// ErrInvalidInput means a record lacks the fields needed to build its
	// canonical row (most often the natural key).
	ErrInvalidInput = errors.New("invalid input")

	// ErrDependencyUnavailable wraps infrastructure failures (store, remote
	// service) that make a stage impossible rather than merely empty.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
