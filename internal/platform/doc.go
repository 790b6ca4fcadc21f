package platform

// Package platform contains OS/platform integration: the user's Downloads
// directory, directory creation, exclusive file writes, and OS open/reveal.
