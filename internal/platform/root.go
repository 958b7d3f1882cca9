package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// Root indicators.
const (
	SettingsFile = "lineage.yaml"
	SystemDir    = ".lineage"
)

// FindRoot looks upwards from startDir for a project root.
// Indicators are: a lineage.yaml settings file or a .lineage directory.
// It returns the absolute path to the root, or an error if none is found.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, SettingsFile) || hasFile(dir, SystemDir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found from %s", abs)
}

func hasFile(dir, name string) bool {
	path := filepath.Join(dir, name)
	_, err := os.Stat(path)
	return err == nil
}
