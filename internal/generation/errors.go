package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when proposal generation fails for any
	// general reason.
	ErrGenerationFailed = errors.New("failed to generate proposals from text")

	// ErrTextEmpty is returned when the input text is empty after trimming.
	ErrTextEmpty = errors.New("generation text cannot be empty")

	// ErrTextTooLong is returned when the input text exceeds MaxTextLength.
	ErrTextTooLong = errors.New("generation text cannot exceed 5000 characters")
)
