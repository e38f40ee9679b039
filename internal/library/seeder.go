package library

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/SimonSaysGiveMeSmile/GenApp/internal/schema"
)

// Seeder fills the marketplace from a YAML catalog. Items already present
// are left alone, so seeding is safe to repeat on every start.
type Seeder struct {
	marketplace *Marketplace
}

func NewSeeder(m *Marketplace) *Seeder {
	return &Seeder{marketplace: m}
}

type catalogFile struct {
	Items []catalogItem `yaml:"items"`
}

type catalogItem struct {
	ID          string                 `yaml:"id"`
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description"`
	Category    string                 `yaml:"category"`
	Icon        string                 `yaml:"icon"`
	Author      string                 `yaml:"author"`
	Version     string                 `yaml:"version"`
	Tags        []string               `yaml:"tags"`
	Spec        map[string]interface{} `yaml:"spec"`
}

// SeedFile loads a catalog file from disk. A missing file is not an error.
func (s *Seeder) SeedFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("library: read catalog %s: %w", path, err)
	}
	return s.Seed(data)
}

// Seed parses YAML catalog bytes and adds any items not already present.
// Returns the number of items added.
func (s *Seeder) Seed(data []byte) (int, error) {
	var catalog catalogFile
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return 0, fmt.Errorf("library: parse catalog: %w", err)
	}

	var added int
	for _, entry := range catalog.Items {
		if entry.ID == "" || entry.Name == "" {
			continue
		}
		if s.marketplace.Exists(entry.ID) {
			continue
		}

		spec, err := specFromCatalog(entry.Spec)
		if err != nil {
			return added, fmt.Errorf("library: catalog item %s: %w", entry.ID, err)
		}

		item := Item{
			ID:          entry.ID,
			Name:        entry.Name,
			Description: entry.Description,
			Category:    entry.Category,
			Icon:        entry.Icon,
			Author:      entry.Author,
			Version:     entry.Version,
			Tags:        entry.Tags,
			Spec:        spec,
		}
		if err := s.marketplace.Add(item); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

// specFromCatalog routes the YAML spec map through the lenient JSON decoder
// so catalog entries get the same defaulting as every other spec source.
func specFromCatalog(raw map[string]interface{}) (*schema.Spec, error) {
	if raw == nil {
		return nil, fmt.Errorf("missing spec")
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return schema.Decode(data)
}
