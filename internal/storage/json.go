package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"testenv/internal/domain"
	"testenv/internal/workspace"
)

// Save writes the workspace to the configured JSON output file.
func (s *JSONStorage) Save(ws *domain.Workspace) error {
	data, err := json.MarshalIndent(ws, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal workspace: %w", err)
	}

	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write workspace: %w", err)
	}
	return nil
}

// Load reads the last saved workspace from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.Workspace, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workspace file: %w", err)
	}
	var ws domain.Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("parse workspace: %w", err)
	}
	workspace.Classify(&ws)
	return &ws, nil
}
