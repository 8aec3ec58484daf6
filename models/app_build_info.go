// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

const notAvailable = "N/A"

// AppBuildInfo carries build-time metadata injected through linker flags.
// Empty values are reported as "N/A".
type AppBuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// NewAppBuildInfo constructs [AppBuildInfo], replacing empty values with
// "N/A".
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		Version: orNotAvailable(version),
		Date:    orNotAvailable(date),
		Commit:  orNotAvailable(commit),
	}
}

// String renders the build info on a single line, as printed at startup
// and by the version command.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("version %s (commit %s, built %s)", a.Version, a.Commit, a.Date)
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
