package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default solver settings applied to new runs
	DefaultMaxNodes int64 `json:"default_max_nodes"`

	// Application preferences
	ExportDir      string   `json:"export_dir"` // default directory for PDF/DXF/label output, "" = cwd
	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultMaxNodes: defaults.MaxNodes,
		ExportDir:       "",
		RecentProjects:  []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a
// SolveSettings struct. This is used when starting a run so it inherits the
// user's saved defaults.
func (c AppConfig) ApplyToSettings(s *SolveSettings) {
	s.MaxNodes = c.DefaultMaxNodes
}
