package main

import "github.com/MathiasCodes/winstow/internal/domain"

// exitCodeFor maps an error to spec §6's three exit codes: 0 success
// (never reached here — only called on a non-nil err), 2 usage/invalid-path
// errors, 1 everything else.
func exitCodeFor(err error) int {
	switch err.(type) {
	case *domain.InvalidPathError:
		return 2
	default:
		return 1
	}
}
