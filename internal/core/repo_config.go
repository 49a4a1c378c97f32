package core

// RepoConfig represents the structure of the optional .swe.yml file at the
// root of a target repository. It lets repo owners tune file discovery
// without touching service configuration.
type RepoConfig struct {
	// High-performance exclusion of entire directories by name.
	// Example: ["dist", "build", "docs"]
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// Exclusion of files based on their extension.
	// The leading dot is optional. Example: [".md", "lock", ".log"]
	ExcludeExts []string `yaml:"exclude_exts"`

	// Upper bound on the number of files selected for generation context.
	MaxContextFiles int `yaml:"max_context_files"`
}

// DefaultRepoConfig returns a config with default values.
func DefaultRepoConfig() *RepoConfig {
	return &RepoConfig{
		ExcludeDirs:     []string{},
		ExcludeExts:     []string{},
		MaxContextFiles: 0,
	}
}
