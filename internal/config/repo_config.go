package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Deepak7704/100xSWE/internal/core"
)

var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParsing  = errors.New("config parsing failed")
)

// repoConfigNames are the accepted spellings of the in-repo config file,
// checked in order.
var repoConfigNames = [...]string{".swe.yml", ".swe.yaml"}

// LoadRepoConfig loads and parses the optional .swe.yml file from a
// repository working copy. A missing file yields the defaults together with
// ErrConfigNotFound so callers can log the distinction.
func LoadRepoConfig(repoPath string) (*core.RepoConfig, error) {
	var data []byte
	var err error
	for _, name := range repoConfigNames {
		data, err = os.ReadFile(filepath.Join(repoPath, name))
		if err == nil {
			break
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
	}
	if err != nil {
		return core.DefaultRepoConfig(), ErrConfigNotFound
	}

	config := core.DefaultRepoConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigParsing, err)
	}
	return config, nil
}
