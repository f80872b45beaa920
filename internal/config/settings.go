package config

import (
	"encoding/json"
	"fmt"
	"os"

	"spyglass/internal/paths"
)

// Settings represents the structure of ~/.spyglass/settings.json
type Settings struct {
	AllowAbsolutePaths   *bool  `json:"allow_absolute_paths,omitempty"`
	ArtifactTTLMinutes   *int   `json:"artifact_ttl_minutes,omitempty"`
	ContextLines         *int   `json:"context_lines,omitempty"`
	Debug                *bool  `json:"debug,omitempty"`
	Editor               string `json:"editor,omitempty"`
	MaxLogFiles          *int   `json:"max_log_files,omitempty"`
	Port                 *int   `json:"port,omitempty"`
	SweepIntervalMinutes *int   `json:"sweep_interval_minutes,omitempty"`
	Workspace            string `json:"workspace,omitempty"`
}

// LoadSettings loads settings from ~/.spyglass/settings.json.
// Returns empty Settings if the file doesn't exist (not an error).
func LoadSettings() (*Settings, error) {
	path := paths.GetSettingsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil // Not an error, use defaults
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	if settings.Workspace != "" {
		settings.Workspace = paths.ExpandPath(settings.Workspace)
	}

	return &settings, nil
}
