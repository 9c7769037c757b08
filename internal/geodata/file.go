package geodata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileProvider reads province GeoJSON from <dir>/<province>.json, the same
// layout the frontend's /data directory uses.
type FileProvider struct {
	dir string
}

func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{dir: dir}
}

func (p *FileProvider) AreaNames(_ context.Context, province string) ([]string, error) {
	doc, err := os.ReadFile(filepath.Join(p.dir, province+".json"))
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", province, err)
	}
	return areaNames(doc)
}
