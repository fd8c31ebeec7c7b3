//go:build windows

package pathutil

// Windows filesystems are case-insensitive; component comparison follows.
const caseInsensitiveFS = true
