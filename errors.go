package epubtxt

import "errors"

// Sentinel errors returned by the epubtxt package.
var (
	// ErrMalformedTOC indicates a navigation point lacks its label or its
	// content reference, so chapter entries cannot be built index for index.
	ErrMalformedTOC = errors.New("epubtxt: malformed table of contents")

	// ErrInvalidEncoding indicates chapter content is not valid UTF-8.
	ErrInvalidEncoding = errors.New("epubtxt: chapter content is not valid UTF-8")

	// ErrWriteOutput indicates an output text file could not be written.
	ErrWriteOutput = errors.New("epubtxt: write output")

	// ErrOutputBusy indicates another process is writing the same book.
	ErrOutputBusy = errors.New("epubtxt: output locked by another process")

	// ErrInvalidConfig indicates a configuration value is out of range.
	ErrInvalidConfig = errors.New("epubtxt: invalid config")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("epubtxt: config file not found")

	// ErrConfigParse indicates the configuration file is not valid YAML
	// or contains unknown keys.
	ErrConfigParse = errors.New("epubtxt: failed to parse config")
)
