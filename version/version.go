// Package version exposes the toolkit version and the banner stamped into
// generated files.
package version

import (
	"fmt"

	"github.com/jonboulle/clockwork"
)

// Version is the toolkit release, set at tag time.
const Version = "0.9.0"

// clock is a package-level time source so tests can freeze the banner
// year. Production code uses the real clock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// CopyrightComment formats the banner written at the top of generated
// files, as a multi-line box or a single line.
func CopyrightComment(multiLine bool) string {
	year := clock.Now().Year()
	if multiLine {
		return fmt.Sprintf(`----------------------------------------------------------------------------------------
Generated by eplustools version %s
Copyright (c) %d, the eplustools authors
https://github.com/joulemill/eplustools
----------------------------------------------------------------------------------------`, Version, year)
	}
	return fmt.Sprintf("-- eplustools version %s, copyright (c) %d, the eplustools authors --", Version, year)
}
