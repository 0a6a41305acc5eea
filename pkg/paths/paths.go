package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
)

const (
	// AppDirName is the directory name used under XDG base dirs.
	AppDirName = "blocktext"

	// EnvConfigDir overrides the config directory.
	EnvConfigDir = "BLOCKTEXT_CONFIG_DIR"

	// EnvHome is consulted when os.UserHomeDir fails.
	EnvHome = "HOME"

	// LogFileName is the name of the log file inside StateDir.
	LogFileName = "blocktext.log"
)

// ConfigFileNames are the names looked up in the config directory.
var ConfigFileNames = []string{"config.toml", "config.yaml", "config.yml"}

// ConfigDir returns the directory holding the user's config file.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, AppDirName)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns the directory holding the log file.
func StateDir() string {
	if base := os.Getenv("XDG_STATE_HOME"); base != "" {
		return filepath.Join(base, AppDirName)
	}
	if xdg.StateHome == "" {
		return ""
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFile returns the log file path, relative to the working directory
// when no state dir is known.
func LogFile() string {
	return filepath.Join(StateDir(), LogFileName)
}

// DefaultConfigFile returns the first existing config file in ConfigDir.
func DefaultConfigFile(fs afero.Fs) (string, bool) {
	dir := ConfigDir()
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if info, err := fs.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// ExpandHome expands a leading ~ to the home directory. Paths it cannot
// expand are returned as-is.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to HOME env var
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	// Handle both ~/ and ~
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}
