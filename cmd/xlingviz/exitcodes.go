package main

import "xlingviz/internal/export"

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (io failure, invalid arguments)
	ExitConfigError = 2 // Inconsistent arguments or configuration
	ExitDataError   = 3 // Malformed input or invalid numeric payload
)

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case export.IsConfigError(err):
		return ExitConfigError
	case export.IsFormatError(err), export.IsValueError(err):
		return ExitDataError
	default:
		return ExitError
	}
}
