package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/RectSelect/internal/model"
)

const maxRecentProjects = 10

// SaveProject persists a project to the given path as indented JSON.
// It creates any missing parent directories automatically.
func SaveProject(path string, p model.Project) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// LoadProject reads a project from the given path.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project file: %w", err)
	}
	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	return p, nil
}

// AddRecentProject records path at the front of the recent-projects list,
// deduplicating and capping the list length.
func AddRecentProject(config *model.AppConfig, path string) {
	recent := []string{path}
	for _, existing := range config.RecentProjects {
		if existing == path {
			continue
		}
		recent = append(recent, existing)
		if len(recent) == maxRecentProjects {
			break
		}
	}
	config.RecentProjects = recent
}
