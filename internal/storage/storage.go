package storage

import (
	"io"

	"testenv/internal/config"
	"testenv/internal/domain"
)

// Storage persists and loads the generated workspace
type Storage interface {
	Save(ws *domain.Workspace) error
	Load() (*domain.Workspace, error)
	// Export writes ws in the given format to w
	Export(ws *domain.Workspace, format Format, w io.Writer) error
}

// JSONStorage stores the workspace in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
