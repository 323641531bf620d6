package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("API base URL is not configured")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrShowNotFound       = fmt.Errorf("show not found")
	ErrVenueNotFound      = fmt.Errorf("venue not found")
	ErrFestivalNotFound   = fmt.Errorf("festival not found")
	ErrCacheMiss          = fmt.Errorf("cache miss")

	// Route parameter errors
	ErrInvalidShowID  = fmt.Errorf("invalid show id")
	ErrInvalidVenueID = fmt.Errorf("invalid venue id")
	ErrInvalidVideoID = fmt.Errorf("invalid video id")

	// Player errors
	ErrNotPlaying     = fmt.Errorf("nothing is playing")
	ErrUnknownVariant = fmt.Errorf("video is not a known variant of the current artist")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
