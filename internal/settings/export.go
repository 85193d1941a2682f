package settings

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/lumen/internal/models"
)

// Format names an export encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks an encoding from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return FormatYAML
	}
	return FormatJSON
}

// Export encodes the current record.
func (s *Store) Export(format Format) ([]byte, error) {
	record := s.Load()
	switch format {
	case FormatJSON, "":
		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode settings: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(record)
		if err != nil {
			return nil, fmt.Errorf("failed to encode settings: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// Import decodes a full record and commits it. Unlike Load, a bad document is
// an error rather than a silent fallback.
func (s *Store) Import(data []byte, format Format) (models.Settings, error) {
	var (
		record models.Settings
		err    error
	)
	switch format {
	case FormatJSON, "":
		record, err = Decode(data)
	case FormatYAML:
		record, err = decodeYAML(data)
	default:
		return models.Settings{}, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return models.Settings{}, err
	}
	if err := s.Commit(record); err != nil {
		return models.Settings{}, err
	}
	return record, nil
}

func decodeYAML(data []byte) (models.Settings, error) {
	var fields map[string]yaml.Node
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return models.Settings{}, fmt.Errorf("not a settings document: %w", err)
	}
	for _, key := range models.SettingKeys {
		node, ok := fields[key]
		if !ok {
			return models.Settings{}, fmt.Errorf("missing field %q", key)
		}
		if node.Tag == "!!null" {
			return models.Settings{}, fmt.Errorf("field %q is null", key)
		}
	}

	var record models.Settings
	if err := yaml.Unmarshal(data, &record); err != nil {
		return models.Settings{}, fmt.Errorf("malformed settings: %w", err)
	}
	if err := record.Validate(); err != nil {
		return models.Settings{}, err
	}
	return record, nil
}
