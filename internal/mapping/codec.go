package mapping

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rana718/jsonsql/internal/types"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the document format from a file extension. Unknown
// extensions are treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func IsMappingFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// Decode parses and validates a mapping document.
func Decode(data []byte, format Format) (types.TableMapping, error) {
	var doc Document

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return types.TableMapping{}, types.NewMappingError("failed to parse YAML mapping: %v", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return types.TableMapping{}, types.NewMappingError("failed to parse JSON mapping: %v", err)
		}
	}

	if err := Validate(doc); err != nil {
		return types.TableMapping{}, err
	}
	return ToTable(doc), nil
}

func Encode(t types.TableMapping, format Format) ([]byte, error) {
	doc := FromTable(t)

	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode mapping %s: %w", t.Name, err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode mapping %s: %w", t.Name, err)
		}
		return buf.Bytes(), nil
	default:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode mapping %s: %w", t.Name, err)
		}
		return append(data, '\n'), nil
	}
}

// LoadFile reads a JSON or YAML mapping document from disk.
func LoadFile(path string) (types.TableMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.TableMapping{}, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}
	t, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return types.TableMapping{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func SaveFile(path string, t types.TableMapping) error {
	data, err := Encode(t, FormatFromPath(path))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}
	return nil
}
