// ABOUTME: Environment overrides for settings and ${VAR} expansion in string fields
// ABOUTME: E4MACS_* variables take precedence over every settings file

package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
)

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// envInts maps override variables to the numeric settings they replace.
var envInts = []struct {
	name  string
	field func(*Settings) *int
}{
	{"E4MACS_KILL_RING_MAX", func(s *Settings) *int { return &s.KillRingMax }},
	{"E4MACS_MARK_RING_MAX", func(s *Settings) *int { return &s.MarkRingMax }},
	{"E4MACS_GLOBAL_MARK_RING_MAX", func(s *Settings) *int { return &s.GlobalMarkRingMax }},
	{"E4MACS_TAG_RING_MAX", func(s *Settings) *int { return &s.TagRingMax }},
}

// ApplyEnv overrides settings from E4MACS_* environment variables read
// through getenv. Empty variables are ignored.
func ApplyEnv(s *Settings, getenv func(string) string) error {
	for _, e := range envInts {
		v := getenv(e.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.name, err)
		}
		*e.field(s) = n
	}
	if v := getenv("E4MACS_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	if v := getenv("E4MACS_INTERPROGRAM_CUT"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("E4MACS_INTERPROGRAM_CUT: %w", err)
		}
		s.InterprogramCut = &on
	}
	return nil
}

// ResolveEnvVars expands ${VAR} patterns in string fields of Settings.
func ResolveEnvVars(s *Settings) {
	s.ClipboardCommand = expandEnv(s.ClipboardCommand)
}

// expandEnv replaces ${VAR} with os.Getenv(VAR). Unset vars become "".
func expandEnv(s string) string {
	if s == "" {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
