package models

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrFormatNotFound    = errors.New("format not found")
	ErrDemoNotFound      = errors.New("demo not found")
	ErrScorecardNotFound = errors.New("scorecard not found")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrRosterFull        = errors.New("roster is full")
	ErrRosterMinimum     = errors.New("roster is at its minimum size")
	ErrInvalidHole       = errors.New("hole must be between 1 and 18")
	ErrCompareSize       = errors.New("compare needs between 2 and 4 formats")
)
