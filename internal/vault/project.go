package vault

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/royreznik/linear-cli/internal/config"
)

// DefaultProject is the persisted default-project record. At most one is
// active at a time; saving overwrites it wholesale.
type DefaultProject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProjectStore reads and writes the default-project record at a fixed path.
type ProjectStore struct {
	path string
}

// NewProjectStore builds a ProjectStore over cfg's project file path.
func NewProjectStore(cfg *config.Config) *ProjectStore {
	return &ProjectStore{path: cfg.ProjectFile}
}

// Save overwrites the default-project record.
func (s *ProjectStore) Save(project DefaultProject) error {
	data, err := json.Marshal(project)
	if err != nil {
		return configErr("failed to save default project", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return configErr("failed to save default project", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return configErr("failed to save default project", err)
	}
	return nil
}

// Get returns the default project, or nil when none is set. A file that
// exists but lacks the required fields is a fatal ConfigError, not a
// silent "no default".
func (s *ProjectStore) Get() (*DefaultProject, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, configErr("failed to read default project", err)
	}

	var project DefaultProject
	if err := json.Unmarshal(data, &project); err != nil {
		return nil, configErr("failed to read default project", err)
	}
	if project.ID == "" || project.Name == "" {
		return nil, configErr("invalid default project record", errors.New("missing id or name"))
	}
	return &project, nil
}

// Clear removes the default-project record. A missing file is not an
// error.
func (s *ProjectStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return configErr("failed to clear default project", err)
	}
	return nil
}
