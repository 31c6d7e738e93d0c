package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Metadata attribute keys read by the orchestrator.
const (
	KeySourcesPath   = "attributes/custom-sources-path"
	KeyShutdownTimer = "attributes/shutdown-timer-in-sec"
)

// Defaults for values that are not resolved from metadata.
const (
	DefaultMetadataRoot   = "http://metadata.google.internal/computeMetadata/v1"
	DefaultMetadataFlavor = "Google"

	DefaultMaxAttempts   = 100
	DefaultRetryInterval = 5 * time.Second

	DefaultStorageEndpoint = "https://storage.googleapis.com"
	DefaultStorageRegion   = "auto"

	DefaultWorkDir       = "/root/bootstrap-sources"
	DefaultEntryScript   = "init_actions.sh"
	DefaultStartupScript = "/root/run.sh"

	DefaultRunnerTool = "gcloud"

	// DefaultShutdownTimer is used when the shutdown-timer-in-sec
	// attribute cannot be resolved or parsed.
	DefaultShutdownTimer = 300 * time.Second
)

// Settings holds all bootstrap configuration not resolved from metadata.
type Settings struct {
	// MetadataRoot is the base URL of the metadata service.
	MetadataRoot string `yaml:"metadata_root"`

	// MetadataFlavor is the value of the required Metadata-Flavor header.
	MetadataFlavor string `yaml:"metadata_flavor"`

	// MaxAttempts is the number of additional metadata resolution
	// attempts after the first one.
	MaxAttempts int `yaml:"max_attempts"`

	// RetryInterval is the sleep between metadata resolution attempts.
	// Durations are configured via environment only.
	RetryInterval time.Duration `yaml:"-"`

	// StorageEndpoint is the S3-compatible endpoint serving the
	// customization bundle.
	StorageEndpoint string `yaml:"storage_endpoint"`

	// StorageRegion is the signing region for the storage endpoint.
	StorageRegion string `yaml:"storage_region"`

	// WorkDir is where the customization bundle is downloaded.
	WorkDir string `yaml:"work_dir"`

	// EntryScript is the bundle file executed as the customization script.
	EntryScript string `yaml:"entry_script"`

	// StartupScript is the bootstrap's own wrapper script on disk,
	// removed during cleanup so it is not baked into the image.
	StartupScript string `yaml:"startup_script"`

	// RunnerTool is the binary the readiness gate waits for on
	// distributions that provision it asynchronously after boot.
	RunnerTool string `yaml:"runner_tool"`

	// CredentialPaths are local credential caches removed during cleanup.
	CredentialPaths []string `yaml:"credential_paths"`
}

// Load reads settings from environment variables, falling back to
// defaults for anything unset or unparsable.
//
// Environment variables:
//   - IMAGEBOOT_METADATA_ROOT (default: the GCE metadata v1 root)
//   - IMAGEBOOT_METADATA_FLAVOR (default: Google)
//   - IMAGEBOOT_METADATA_MAX_ATTEMPTS (default: 100)
//   - IMAGEBOOT_METADATA_RETRY_INTERVAL (default: 5s)
//   - IMAGEBOOT_STORAGE_ENDPOINT (default: https://storage.googleapis.com)
//   - IMAGEBOOT_STORAGE_REGION (default: auto)
//   - IMAGEBOOT_WORK_DIR (default: /root/bootstrap-sources)
func Load() *Settings {
	return &Settings{
		MetadataRoot:    parseString("IMAGEBOOT_METADATA_ROOT", DefaultMetadataRoot),
		MetadataFlavor:  parseString("IMAGEBOOT_METADATA_FLAVOR", DefaultMetadataFlavor),
		MaxAttempts:     parseInt("IMAGEBOOT_METADATA_MAX_ATTEMPTS", DefaultMaxAttempts),
		RetryInterval:   parseDuration("IMAGEBOOT_METADATA_RETRY_INTERVAL", DefaultRetryInterval),
		StorageEndpoint: parseString("IMAGEBOOT_STORAGE_ENDPOINT", DefaultStorageEndpoint),
		StorageRegion:   parseString("IMAGEBOOT_STORAGE_REGION", DefaultStorageRegion),
		WorkDir:         parseString("IMAGEBOOT_WORK_DIR", DefaultWorkDir),
		EntryScript:     DefaultEntryScript,
		StartupScript:   DefaultStartupScript,
		RunnerTool:      DefaultRunnerTool,
		CredentialPaths: []string{
			"/root/.gsutil",
			"/root/.config/gcloud",
			"/root/.aws",
		},
	}
}

// ApplyFile overlays settings from a YAML file. Only fields present in
// the file are overridden.
func (s *Settings) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("failed to unmarshal config file %s: %w", path, err)
	}

	return nil
}

// parseString reads a string from an environment variable.
func parseString(envVar, defaultVal string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return defaultVal
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}
