package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// Root indicators: a .dashstate state directory or a dashstate.yaml file.
const (
	StateDirName   = ".dashstate"
	ConfigFileName = "dashstate.yaml"
)

// FindRoot looks upwards from startDir for a project root indicator and
// returns the absolute path of the first directory that has one.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, StateDirName) || hasFile(dir, ConfigFileName) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found")
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
