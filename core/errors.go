package core

import "errors"

// Failure kinds shared by the API client and the downloader. Errors returned from this
// module wrap exactly one of these, so callers can branch with errors.Is.
var (
	ErrTransportInit        = errors.New("failed to initialise http transport")
	ErrRequestFailed        = errors.New("request failed")
	ErrDecodeFailed         = errors.New("failed to decode response")
	ErrMissingContentLength = errors.New("response has no content length")
	ErrFileCreateFailed     = errors.New("failed to create file")
	ErrStreamIOFailed       = errors.New("error while downloading file")
)
