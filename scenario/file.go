package scenario

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrNilConfig is returned when Save receives a nil fixture.
var ErrNilConfig = errors.New("scenario: fixture config is nil")

// Format identifies a fixture encoding.
type Format string

// Supported fixture encodings.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Load reads and validates a fixture, inferring the format from the
// file extension. A txtar archive named by filesystem.archive is loaded
// relative to the fixture's directory.
func Load(path string) (*Config, error) {
	format := inferFormat(path)
	if format == "" {
		return nil, fmt.Errorf("unsupported fixture format %q (supported: yaml, json, toml)", filepath.Ext(path))
	}
	return LoadFormat(path, format)
}

// LoadFormat reads and validates a fixture in an explicit format.
func LoadFormat(path string, format Format) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}

	var cfg Config
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse YAML fixture %s: %w", path, err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse JSON fixture %s: %w", path, err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse TOML fixture %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported fixture format %q (supported: yaml, json, toml)", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Filesystem != nil && cfg.Filesystem.Archive != "" {
		archivePath := filepath.Join(filepath.Dir(path), cfg.Filesystem.Archive)
		archive, err := os.ReadFile(archivePath)
		if err != nil {
			return nil, fmt.Errorf("read filesystem archive %s: %w", archivePath, err)
		}
		cfg.Filesystem.archiveData = archive
	}

	return &cfg, nil
}

// Save writes a fixture with atomic write semantics (temp file + rename),
// format inferred from the file extension. Handy for capturing a scenario
// to re-run later.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return ErrNilConfig
	}

	format := inferFormat(path)
	if format == "" {
		return fmt.Errorf("unsupported fixture format %q (supported: yaml, json, toml)", filepath.Ext(path))
	}

	var data []byte
	var err error
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(cfg)
	case FormatJSON:
		data, err = json.MarshalIndent(cfg, "", "  ")
	case FormatTOML:
		data, err = toml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("encode fixture %s: %w", path, err)
	}

	// Temp file in the same directory so the rename stays on one
	// filesystem.
	tempPath, err := tempFileName(path)
	if err != nil {
		return err
	}

	var tempCreated bool
	defer func() {
		if tempCreated {
			_ = os.Remove(tempPath)
		}
	}()

	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return err
	}
	tempCreated = true

	if err := os.Rename(tempPath, path); err != nil {
		return err
	}
	tempCreated = false

	return nil
}

// tempFileName generates a unique sibling name for atomic writes.
// Format: path + ".tmp." + randomHex
func tempFileName(path string) (string, error) {
	randomBytes := make([]byte, 8)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}
	return path + ".tmp." + hex.EncodeToString(randomBytes), nil
}

func inferFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return ""
	}
}
