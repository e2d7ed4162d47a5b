package model

import (
	"github.com/hashicorp/go-version"
)

// Transition classifies the version change performed by an update.
type Transition string

const (
	TransitionUpgrade   Transition = "upgrade"
	TransitionDowngrade Transition = "downgrade"
	TransitionReinstall Transition = "reinstall"
	// TransitionUnknown is used when either version is not parseable.
	TransitionUnknown Transition = "unknown"
)

// CompareVersions reports how moving from oldVersion to newVersion should be described.
// Versions are free text; anything go-version cannot parse compares as unknown,
// unless both strings are identical.
func CompareVersions(oldVersion, newVersion string) Transition {
	if oldVersion == newVersion {
		return TransitionReinstall
	}
	oldV, err := version.NewVersion(oldVersion)
	if err != nil {
		return TransitionUnknown
	}
	newV, err := version.NewVersion(newVersion)
	if err != nil {
		return TransitionUnknown
	}
	switch {
	case newV.GreaterThan(oldV):
		return TransitionUpgrade
	case newV.LessThan(oldV):
		return TransitionDowngrade
	default:
		return TransitionReinstall
	}
}
