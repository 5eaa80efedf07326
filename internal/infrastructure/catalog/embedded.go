package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/macrolens/mealscore/internal/domain"
)

//go:embed data/catalog.json
var embeddedCatalog []byte

// EmbeddedDocument decodes the catalog compiled into the binary
func EmbeddedDocument() (Document, error) {
	var doc Document
	if err := json.Unmarshal(embeddedCatalog, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: embedded catalog: %v", domain.ErrConfiguration, err)
	}
	return doc, nil
}

// LoadEmbedded builds a catalog from the built-in food list and reference table
func LoadEmbedded() (*Catalog, error) {
	doc, err := EmbeddedDocument()
	if err != nil {
		return nil, err
	}
	return New(doc)
}
