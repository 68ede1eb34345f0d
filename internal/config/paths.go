// ABOUTME: Standard filesystem paths for e4macs configuration
// ABOUTME: Resolves ~/.e4macs/ for global and .e4macs/ for project-local files

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".e4macs"
	projectDirName = ".e4macs"

	settingsFileName = "settings.yaml"
	keymapFileName   = "keybindings.yaml"
)

// GlobalDir returns the user-global config directory (~/.e4macs/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory.
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// GlobalSettingsFile returns the path to the global settings file.
func GlobalSettingsFile() string {
	return filepath.Join(GlobalDir(), settingsFileName)
}

// ProjectSettingsFile returns the path to the project settings file.
func ProjectSettingsFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), settingsFileName)
}

// KeymapFiles returns keymap files in load order: global first, so project
// bindings win.
func KeymapFiles(projectRoot string) []string {
	return []string{
		filepath.Join(GlobalDir(), keymapFileName),
		filepath.Join(ProjectDir(projectRoot), keymapFileName),
	}
}

// WatchedFiles returns every file whose change should trigger a reload.
func WatchedFiles(projectRoot string) []string {
	return append([]string{GlobalSettingsFile(), ProjectSettingsFile(projectRoot)}, KeymapFiles(projectRoot)...)
}
