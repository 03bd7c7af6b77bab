// Package catalog holds the static golf format dataset.
// The records are authored in formats.yaml, embedded at build time and validated once on load.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/fairwaylabs/formats-api/internal/models"
)

//go:embed formats.yaml
var formatsYAML []byte

// Catalog is a read-only, ordered set of formats
type Catalog struct {
	formats []models.Format
	byID    map[string]int
}

// Load decodes and validates the embedded dataset
func Load() (*Catalog, error) {
	return Parse(formatsYAML)
}

// MustLoad is Load for package-level initialisation and tests
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes a YAML list of formats and validates every record
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var formats []models.Format
	if err := dec.Decode(&formats); err != nil {
		return nil, fmt.Errorf("decode formats: %w", err)
	}
	return New(formats)
}

// New builds a catalog from formats, keeping their order
func New(formats []models.Format) (*Catalog, error) {
	validate := validator.New()

	c := &Catalog{
		formats: make([]models.Format, 0, len(formats)),
		byID:    make(map[string]int, len(formats)),
	}
	for i := range formats {
		f := formats[i]
		if err := validate.Struct(&f); err != nil {
			return nil, fmt.Errorf("format %q: %w", f.ID, err)
		}
		if _, dup := c.byID[f.ID]; dup {
			return nil, fmt.Errorf("format %q: duplicate id", f.ID)
		}
		c.byID[f.ID] = len(c.formats)
		c.formats = append(c.formats, f.Clone())
	}
	return c, nil
}

// All returns every format in dataset order. The formats are deep copies.
func (c *Catalog) All() []models.Format {
	out := make([]models.Format, len(c.formats))
	for i, f := range c.formats {
		out[i] = f.Clone()
	}
	return out
}

// Len returns the number of formats
func (c *Catalog) Len() int {
	return len(c.formats)
}

// Get looks up a format by id
func (c *Catalog) Get(id string) (models.Format, error) {
	idx, ok := c.byID[id]
	if !ok {
		return models.Format{}, fmt.Errorf("%q: %w", id, models.ErrFormatNotFound)
	}
	return c.formats[idx].Clone(), nil
}

// Has reports whether id names a format
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Names returns the display names in dataset order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.formats))
	for i, f := range c.formats {
		names[i] = f.Name
	}
	return names
}
