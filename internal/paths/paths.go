package paths

import (
	"os"
	"path/filepath"
)

// GetSpyglassHome returns SPYGLASS_HOME or ~/.spyglass default
func GetSpyglassHome() string {
	home := os.Getenv("SPYGLASS_HOME")
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".spyglass"
		}
		return filepath.Join(homeDir, ".spyglass")
	}
	return ExpandPath(home)
}

// GetSettingsPath returns $SPYGLASS_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetSpyglassHome(), "settings.json")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
