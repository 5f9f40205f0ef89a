package helpers

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/mssd/mssd-console/pkg/config"
)

// Mode is the output surface a command renders to.
type Mode string

const (
	ModeJSON Mode = "json"
	ModeTUI  Mode = "tui"
)

var ciEnvVars = []string{
	"CI",
	"JENKINS_HOME",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"CIRCLECI",
	"TRAVIS",
	"BUILDKITE",
	"DRONE",
	"TF_BUILD",
	"TEAMCITY_VERSION",
	"CONTINUOUS_INTEGRATION",
}

func isRunningInCI() bool {
	for _, v := range ciEnvVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// ResolveMode picks the output mode: an explicit format wins, otherwise TUI
// when attached to a real terminal outside CI, JSON everywhere else.
func ResolveMode(cfg *config.Config) Mode {
	switch cfg.CLI.Format {
	case string(ModeJSON):
		return ModeJSON
	case string(ModeTUI):
		return ModeTUI
	}

	if isRunningInCI() {
		return ModeJSON
	}
	stdinTTY := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	stdoutTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if !stdinTTY || !stdoutTTY {
		return ModeJSON
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModeJSON
	}
	if term := os.Getenv("TERM"); term == "dumb" || term == "" {
		return ModeJSON
	}
	return ModeTUI
}
