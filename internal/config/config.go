// ABOUTME: Editor settings loaded from global and project YAML files
// ABOUTME: Project values override global ones; zero values fall back to defaults

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/MulgaSoft/e4macs-sub001/internal/log"
	"github.com/MulgaSoft/e4macs-sub001/pkg/markring"
)

// Defaults for settings left unset in every file.
const (
	DefaultKillRingMax       = 120
	DefaultMarkRingMax       = 16
	DefaultGlobalMarkRingMax = 16
	DefaultTagRingMax        = 16
	DefaultPreviewWidth      = 60
	DefaultLogLevel          = "warn"
)

// Settings holds all configurable values. Omitted fields keep the value
// from the lower-priority file.
type Settings struct {
	KillRingMax       int    `yaml:"kill_ring_max,omitempty"`
	MarkRingMax       int    `yaml:"mark_ring_max,omitempty"`
	GlobalMarkRingMax int    `yaml:"global_mark_ring_max,omitempty"`
	TagRingMax        int    `yaml:"tag_ring_max,omitempty"`
	MarkDedup         string `yaml:"mark_dedup,omitempty"`
	GlobalMarkDedup   string `yaml:"global_mark_dedup,omitempty"`
	LogLevel          string `yaml:"log_level,omitempty"`
	PreviewWidth      int    `yaml:"preview_width,omitempty"`

	// InterprogramCut copies every new kill ring top to the system clipboard.
	InterprogramCut *bool `yaml:"interprogram_cut,omitempty"`
	// ClipboardCommand replaces the platform clipboard program, e.g.
	// "xsel --clipboard --input". ${VAR} references are expanded.
	ClipboardCommand string `yaml:"clipboard_command,omitempty"`
}

// Defaults returns settings with every field at its default value.
func Defaults() Settings {
	return Settings{
		KillRingMax:       DefaultKillRingMax,
		MarkRingMax:       DefaultMarkRingMax,
		GlobalMarkRingMax: DefaultGlobalMarkRingMax,
		TagRingMax:        DefaultTagRingMax,
		MarkDedup:         markring.DedupTop.String(),
		GlobalMarkDedup:   markring.DedupTop.String(),
		LogLevel:          DefaultLogLevel,
		PreviewWidth:      DefaultPreviewWidth,
	}
}

// Load reads the global and project settings files and merges them over
// the defaults. Missing files are not an error.
func Load(projectRoot string) (Settings, error) {
	return LoadFiles(GlobalSettingsFile(), ProjectSettingsFile(projectRoot))
}

// LoadFiles merges the given files in order over the defaults; later
// files win. Files are read concurrently.
func LoadFiles(paths ...string) (Settings, error) {
	loaded := make([]Settings, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			s, err := loadFile(path)
			if err != nil {
				return err
			}
			loaded[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Settings{}, err
	}

	merged := Defaults()
	for _, s := range loaded {
		merged = merge(merged, s)
	}
	if err := ApplyEnv(&merged, os.Getenv); err != nil {
		return Settings{}, err
	}
	ResolveEnvVars(&merged)
	if err := merged.Validate(); err != nil {
		return Settings{}, err
	}
	return merged, nil
}

// loadFile reads a single YAML settings file. Returns zero Settings if the
// file does not exist.
func loadFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings %s: %w", path, err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	log.Debug("loaded settings from %s", path)
	return s, nil
}

// merge overlays non-zero fields of override onto base.
func merge(base, override Settings) Settings {
	if override.KillRingMax != 0 {
		base.KillRingMax = override.KillRingMax
	}
	if override.MarkRingMax != 0 {
		base.MarkRingMax = override.MarkRingMax
	}
	if override.GlobalMarkRingMax != 0 {
		base.GlobalMarkRingMax = override.GlobalMarkRingMax
	}
	if override.TagRingMax != 0 {
		base.TagRingMax = override.TagRingMax
	}
	if override.MarkDedup != "" {
		base.MarkDedup = override.MarkDedup
	}
	if override.GlobalMarkDedup != "" {
		base.GlobalMarkDedup = override.GlobalMarkDedup
	}
	if override.LogLevel != "" {
		base.LogLevel = override.LogLevel
	}
	if override.PreviewWidth != 0 {
		base.PreviewWidth = override.PreviewWidth
	}
	if override.InterprogramCut != nil {
		base.InterprogramCut = override.InterprogramCut
	}
	if override.ClipboardCommand != "" {
		base.ClipboardCommand = override.ClipboardCommand
	}
	return base
}

// Validate rejects values the session cannot apply.
func (s Settings) Validate() error {
	var errs []error
	for name, v := range map[string]int{
		"kill_ring_max":        s.KillRingMax,
		"mark_ring_max":        s.MarkRingMax,
		"global_mark_ring_max": s.GlobalMarkRingMax,
		"tag_ring_max":         s.TagRingMax,
	} {
		if v < 1 {
			errs = append(errs, fmt.Errorf("%s must be at least 1, got %d", name, v))
		}
	}
	for name, v := range map[string]string{
		"mark_dedup":        s.MarkDedup,
		"global_mark_dedup": s.GlobalMarkDedup,
	} {
		if _, ok := markring.ParseDedup(v); !ok {
			errs = append(errs, fmt.Errorf("%s: unknown mode %q (want top, any or none)", name, v))
		}
	}
	if _, ok := log.ParseLevel(s.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("log_level: unknown level %q", s.LogLevel))
	}
	return errors.Join(errs...)
}

// Cut reports whether interprogram cut is enabled.
func (s Settings) Cut() bool {
	return s.InterprogramCut != nil && *s.InterprogramCut
}

// ClipboardArgv splits ClipboardCommand into program and arguments.
func (s Settings) ClipboardArgv() []string {
	return strings.Fields(s.ClipboardCommand)
}

// MarkOptions converts the ring settings for markring.Set.
func (s Settings) MarkOptions() markring.Options {
	opts := markring.DefaultOptions()
	opts.LocalSize = s.MarkRingMax
	opts.GlobalSize = s.GlobalMarkRingMax
	opts.TagSize = s.TagRingMax
	if d, ok := markring.ParseDedup(s.MarkDedup); ok {
		opts.LocalDedup = d
	}
	if d, ok := markring.ParseDedup(s.GlobalMarkDedup); ok {
		opts.GlobalDedup = d
	}
	return opts
}
