package catalog

import (
	_ "embed"
	"fmt"
	"os"
)

//go:embed data/courses.json
var bundledDataset []byte

// LoadDataset returns the file at path, or the bundled dataset when path is empty.
func LoadDataset(path string) ([]byte, error) {
	if path == "" {
		out := make([]byte, len(bundledDataset))
		copy(out, bundledDataset)
		return out, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return data, nil
}
