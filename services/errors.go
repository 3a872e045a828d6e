package services

import "errors"

var (
	// ErrService marks transport or upstream failures from the generative
	// service.
	ErrService = errors.New("generative service error")
	// ErrInvalidAIResponse marks model output that cannot be parsed into a
	// structurally valid slide deck.
	ErrInvalidAIResponse = errors.New("invalid AI response")
)
