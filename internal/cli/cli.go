package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/OrbitalStation/rokoko/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("rokoko", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
rokoko - a build-configuration resolver for feature-gated packages.

Usage:
  rokoko [options] [MANIFEST_PATH]

Arguments:
  MANIFEST_PATH
    Path to a manifest file (.hcl, .yaml, .yml) or a directory containing one.

Options:
`)
		flagSet.PrintDefaults()
	}

	manifestFlag := flagSet.String("manifest", "", "Path to the manifest file or directory.")
	mFlag := flagSet.String("m", "", "Path to the manifest file or directory (shorthand).")
	featuresFlag := flagSet.String("features", "", "Comma-separated feature flags to enable on top of the defaults.")
	noDefaultsFlag := flagSet.Bool("no-default-features", false, "Do not enable the manifest's default feature set.")
	channelFlag := flagSet.String("channel", "auto", "Toolchain channel. Options: 'auto', 'stable' or 'nightly'.")
	lockFlag := flagSet.String("lock", "", "Path to write the resolved lock to. Empty writes to stdout.")
	lockFormatFlag := flagSet.String("lock-format", "json", "Lock output format. Options: 'json' or 'yaml'.")
	cacheFlag := flagSet.String("cache", "", "Path to the resolution cache database. Empty disables caching.")
	watchFlag := flagSet.Bool("watch", false, "Re-resolve whenever the manifest changes. Requires -lock.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := ""
	if *manifestFlag != "" {
		path = *manifestFlag
	} else if *mFlag != "" {
		path = *mFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	if path == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	channel := strings.ToLower(*channelFlag)
	switch channel {
	case "auto", "stable", "nightly":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid channel: must be 'auto', 'stable' or 'nightly'"}
	}

	lockFormat := strings.ToLower(*lockFormatFlag)
	switch lockFormat {
	case "json", "yaml", "yml":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid lock-format: must be 'json' or 'yaml'"}
	}

	config, err := app.NewConfig(app.Config{
		ManifestPath: path,
		Features:     splitFeatures(*featuresFlag),
		NoDefaults:   *noDefaultsFlag,
		Channel:      channel,
		LockPath:     *lockFlag,
		LockFormat:   lockFormat,
		CachePath:    *cacheFlag,
		Watch:        *watchFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}

// splitFeatures parses the comma-separated -features value. An empty value
// means "no extra features", not an empty feature name.
func splitFeatures(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
