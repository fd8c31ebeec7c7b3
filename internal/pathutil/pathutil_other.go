//go:build !windows

package pathutil

// Non-Windows filesystems in this codebase are treated as case-sensitive.
const caseInsensitiveFS = false
