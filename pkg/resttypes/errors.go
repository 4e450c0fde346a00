package resttypes

import "errors"

// ErrNotConfigured is returned by a CompletionClient whose API key is absent.
// It is detected before any network attempt and is not a failure: the caller
// degrades to the guidance catalog without logging an error.
var ErrNotConfigured = errors.New("remote completion client not configured")
