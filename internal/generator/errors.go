package generator

import "errors"

var (
	// ErrEmptyTranscript is returned before any network call when there is
	// nothing to generate from.
	ErrEmptyTranscript = errors.New("transcript is empty")

	// ErrInvalidResponse is returned when the model response cannot be parsed
	// or is missing content.
	ErrInvalidResponse = errors.New("invalid response from model")

	// ErrContentBlocked is returned when the model refuses the content on
	// safety grounds. Not retried.
	ErrContentBlocked = errors.New("content blocked by model safety filters")

	// ErrKeysExhausted is returned when every API key ran out of quota across
	// all retry attempts.
	ErrKeysExhausted = errors.New("all API keys exhausted")

	// ErrInvalidConfig is returned by New when the generator cannot be built.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
