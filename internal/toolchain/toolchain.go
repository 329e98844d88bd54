// Package toolchain classifies the active toolchain into a release channel.
// The channel is an external fact read once per invocation; conditional
// dependency blocks in a manifest are keyed on it.
package toolchain

import (
	"os"
	"runtime"
	"strings"
)

// Channel is the release classification of the active toolchain.
type Channel string

const (
	// Stable is the baseline channel and the fallback when the channel
	// cannot be determined.
	Stable Channel = "stable"

	// Nightly is the experimental channel. It unlocks extra capability
	// flags on helper dependencies.
	Nightly Channel = "nightly"
)

// EnvVar overrides detection when set to a recognized channel name.
const EnvVar = "ROKOKO_CHANNEL"

// Detect reports the active channel. The ROKOKO_CHANNEL environment
// variable wins when it names a known channel; otherwise a development
// toolchain build counts as nightly and everything else is stable.
func Detect() Channel {
	if c, ok := Parse(os.Getenv(EnvVar)); ok {
		return c
	}
	return fromVersion(runtime.Version())
}

// Parse maps a channel name to a Channel. Unrecognized names report false
// so callers can fall back to detection rather than guessing.
func Parse(s string) (Channel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stable":
		return Stable, true
	case "nightly":
		return Nightly, true
	}
	return Stable, false
}

// fromVersion classifies a runtime version string. Toolchains built from
// tip report "devel <hash>" rather than a release version.
func fromVersion(v string) Channel {
	if strings.HasPrefix(v, "devel") {
		return Nightly
	}
	return Stable
}
