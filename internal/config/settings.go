package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds all configuration options.
type Settings struct {
	// Placement settings
	MusicFolder     string `json:"music_folder"`
	RemotePlacement bool   `json:"remote_placement"`

	// Remote (scp) settings, used when RemotePlacement is true
	SSHUser        string `json:"ssh_user"`
	SSHHost        string `json:"ssh_host"`
	SSHPort        string `json:"ssh_port"`
	SSHKeyPath     string `json:"ssh_key_path"`
	RemoteBasePath string `json:"remote_base_path"`

	// Tag settings
	ModifyTags          bool `json:"modify_tags"`
	KeepUntaggedOnError bool `json:"keep_untagged_on_error"`

	// Cover art settings
	SaveCoverArtInTags       bool `json:"save_cover_art_in_tags"`
	CoverArtResize           bool `json:"cover_art_resize"`
	CoverArtMaxSize          int  `json:"cover_art_max_size"`
	ConvertCoverArtToJPG     bool `json:"convert_cover_art_to_jpg"`
	CoverFetchTimeoutSeconds int  `json:"cover_fetch_timeout_seconds"`

	// Download settings
	AudioQuality           string `json:"audio_quality"`
	MaxConcurrentDownloads int    `json:"max_concurrent_downloads"`

	// Playlist settings
	CreatePlaylist bool   `json:"create_playlist"`
	PlaylistFormat string `json:"playlist_format"` // m3u, pls
	M3UExtended    bool   `json:"m3u_extended"`

	// Reporting
	FailureReportPath string `json:"failure_report_path"`

	// Output verbosity
	Verbose bool `json:"verbose"`
}

// DefaultSettings returns settings with default values.
//
// Defaults: local placement into ~/Music, tagging and embedded cover art
// on, covers resized to 1000px and converted to JPEG, one download at a
// time, failures reported to failed_tracks.txt.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		MusicFolder:     filepath.Join(homeDir, "Music"),
		RemotePlacement: false,

		SSHPort: "22",

		ModifyTags:          true,
		KeepUntaggedOnError: true,

		SaveCoverArtInTags:       true,
		CoverArtResize:           true,
		CoverArtMaxSize:          1000,
		ConvertCoverArtToJPG:     true,
		CoverFetchTimeoutSeconds: 15,

		AudioQuality:           "192K",
		MaxConcurrentDownloads: 1,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,

		FailureReportPath: "failed_tracks.txt",
	}
}

// Load reads settings from a JSON file. A missing file yields defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file, creating parent directories as
// needed.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
