package adapter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "tagsweep.dev/pkg/tagsweep/internal/model"
)

// Format selects the encoding used for persisted artifacts.
type Format string

// Supported artifact encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Valid reports whether f names a supported encoding.
func (f Format) Valid() bool {
	return f == FormatJSON || f == FormatYAML
}

// Artifact file base names inside the reports directory.
const (
	inventoryFileName = "inventory"
	usageFileName     = "usage"
)

// ReportStore persists and reloads the two pipeline artifacts. The reports
// directory is created on demand.
type ReportStore interface {
	SaveInventory(dir m.Path, format Format, inv m.Inventory) error
	LoadInventory(dir m.Path, format Format) (m.Inventory, error)
	SaveUsage(dir m.Path, format Format, records []m.UsageRecord) error
	LoadUsage(dir m.Path, format Format) ([]m.UsageRecord, error)
}

// FileReportStore is the concrete ReportStore writing artifact files under
// a reports directory.
type FileReportStore struct{}

// NewFileReportStore creates a FileReportStore.
func NewFileReportStore() *FileReportStore {
	return &FileReportStore{}
}

// SaveInventory writes the inventory artifact.
func (s *FileReportStore) SaveInventory(dir m.Path, format Format, inv m.Inventory) error {
	return s.save(artifactPath(dir, inventoryFileName, format), format, inv)
}

// LoadInventory reads the inventory artifact back.
func (s *FileReportStore) LoadInventory(dir m.Path, format Format) (m.Inventory, error) {
	var inv m.Inventory
	if err := s.load(artifactPath(dir, inventoryFileName, format), format, &inv); err != nil {
		return m.Inventory{}, err
	}

	return inv, nil
}

// SaveUsage writes the usage report artifact.
func (s *FileReportStore) SaveUsage(dir m.Path, format Format, records []m.UsageRecord) error {
	return s.save(artifactPath(dir, usageFileName, format), format, records)
}

// LoadUsage reads the usage report artifact back.
func (s *FileReportStore) LoadUsage(dir m.Path, format Format) ([]m.UsageRecord, error) {
	var records []m.UsageRecord
	if err := s.load(artifactPath(dir, usageFileName, format), format, &records); err != nil {
		return nil, err
	}

	return records, nil
}

func (s *FileReportStore) save(path m.Path, format Format, v any) error {
	data, err := marshalArtifact(format, v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

func (s *FileReportStore) load(path m.Path, format Format, v any) error {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := unmarshalArtifact(format, data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	return nil
}

func artifactPath(dir m.Path, name string, format Format) m.Path {
	return m.Path(filepath.Join(string(dir), name+"."+string(normalizeFormat(format))))
}

func normalizeFormat(format Format) Format {
	if !format.Valid() {
		return FormatJSON
	}

	return format
}

func marshalArtifact(format Format, v any) ([]byte, error) {
	if normalizeFormat(format) == FormatYAML {
		return yaml.Marshal(v)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(data, '\n'), nil
}

func unmarshalArtifact(format Format, data []byte, v any) error {
	if normalizeFormat(format) == FormatYAML {
		return yaml.Unmarshal(data, v)
	}

	return json.Unmarshal(data, v)
}
