package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/macrolens/mealscore/internal/domain"
)

// LoadFile reads a catalog document from a JSON or YAML file. The format is
// taken from the file extension.
func LoadFile(path string) (*Catalog, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	return New(doc)
}

// ReadDocument decodes the catalog document at path without validating it
func ReadDocument(path string) (Document, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Document{}, fmt.Errorf("%w: reading catalog %s: %v", domain.ErrConfiguration, path, err)
	}

	var doc Document
	if err := v.Unmarshal(&doc, func(dc *mapstructure.DecoderConfig) {
		dc.ErrorUnused = true
	}); err != nil {
		return Document{}, fmt.Errorf("%w: decoding catalog %s: %v", domain.ErrConfiguration, path, err)
	}

	log.Printf("[CATALOG] Read %d foods and %d references from %s", len(doc.Foods), len(doc.References), path)
	return doc, nil
}

// WriteFile writes doc to path as indented JSON, creating parent directories
func WriteFile(path string, doc Document) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".json" {
		return fmt.Errorf("%w: catalog output must be .json, got %q", domain.ErrInvalidInput, ext)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}

type manifest struct {
	Foods []domain.ImportSpec `mapstructure:"foods"`
}

// ReadManifest reads the list of foods to import from USDA FoodData Central
func ReadManifest(path string) ([]domain.ImportSpec, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: reading manifest %s: %v", domain.ErrInvalidInput, path, err)
	}

	var m manifest
	if err := v.Unmarshal(&m, func(dc *mapstructure.DecoderConfig) {
		dc.ErrorUnused = true
	}); err != nil {
		return nil, fmt.Errorf("%w: decoding manifest %s: %v", domain.ErrInvalidInput, path, err)
	}
	if len(m.Foods) == 0 {
		return nil, fmt.Errorf("%w: manifest %s lists no foods", domain.ErrInvalidInput, path)
	}
	return m.Foods, nil
}
