package config

// GetDefault returns the default configuration
func GetDefault() *Config {
	return &Config{
		OutputDir: "",
		DryRun:    false,
		Verbose:   false,
		LogLevel:  "info",
		Format:    "summary",
		Progress:  true,
		Manifest:  "",
		ExcludePatterns: []string{},
		ProtectedPaths:  []string{},
		Extensions:      map[string]string{},
	}
}

// GetExampleConfig returns an example configuration with comments
func GetExampleConfig() string {
	return `# File Organizer Configuration File
# Location: ~/.config/file-organizer/config.yaml
# Command-line flags override these values.

# Where category folders are created. Empty means the source directory.
output_dir: ""

# Dry-run mode - When true, shows what would be moved without moving anything
dry_run: false

# Verbose output - Log every file decision and list files per category
verbose: false

# Log level for diagnostics on stderr: debug, info, warn or error
log_level: info

# Report format: summary, table, json or yaml
format: summary

# Show progress while moving files
progress: true

# Write a record of every run to this file (.json for JSON, YAML otherwise).
# Empty disables the manifest.
manifest: ""

# Exclude patterns (glob patterns, matched against file names). Excluded
# files are left in place and not reported. None by default; for example,
# to leave unfinished downloads alone:
exclude_patterns: []
#  - "*.part"
#  - "*.crdownload"
#  - "*.download"

# Extra directories that may never be used as source or output
protected_paths: []

# Extension overrides - extension: Category
# Categories: Images, Documents, Videos, Audio, Archives, Code, Data,
# Executables, Fonts, Other
extensions: {}
#  heic: Images
#  log: Data
`
}
