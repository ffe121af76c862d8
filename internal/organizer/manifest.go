package organizer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fenilsonani/file-organizer/internal/categories"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Manifest keeps track of what a run did to each file
type Manifest struct {
	RunID              string          `json:"run_id" yaml:"run_id"`
	Source             string          `json:"source" yaml:"source"`
	OutputDir          string          `json:"output_dir" yaml:"output_dir"`
	DryRun             bool            `json:"dry_run" yaml:"dry_run"`
	StartedAt          time.Time       `json:"started_at" yaml:"started_at"`
	FinishedAt         time.Time       `json:"finished_at" yaml:"finished_at"`
	CreatedDirectories []string        `json:"created_directories,omitempty" yaml:"created_directories,omitempty"`
	Entries            []ManifestEntry `json:"entries" yaml:"entries"`
}

// ManifestEntry records the outcome for one file
type ManifestEntry struct {
	Source      string              `json:"source" yaml:"source"`
	Destination string              `json:"destination" yaml:"destination"`
	Category    categories.Category `json:"category" yaml:"category"`
	Status      Status              `json:"status" yaml:"status"`
	Reason      string              `json:"reason,omitempty" yaml:"reason,omitempty"`
	At          time.Time           `json:"at" yaml:"at"`
}

// NewManifest creates an empty manifest with a fresh run id
func NewManifest(outputDir string, dryRun bool) *Manifest {
	return &Manifest{
		RunID:     uuid.NewString(),
		OutputDir: outputDir,
		DryRun:    dryRun,
		StartedAt: time.Now(),
		Entries:   []ManifestEntry{},
	}
}

// Add records an outcome
func (m *Manifest) Add(o Outcome) {
	m.Entries = append(m.Entries, ManifestEntry{
		Source:      o.Operation.Source,
		Destination: o.Operation.Destination,
		Category:    o.Operation.Category,
		Status:      o.Status,
		Reason:      o.Reason,
		At:          time.Now(),
	})
}

// Save writes the manifest as JSON when path ends in .json, YAML otherwise
func (m *Manifest) Save(path string) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(m, "", "  ")
	} else {
		data, err = yaml.Marshal(m)
	}
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create manifest directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// LoadManifest reads a manifest written by Save
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &m)
	} else {
		err = yaml.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
