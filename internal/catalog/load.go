package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/jonathan/skillmatch/internal/schemas"
	schemadocs "github.com/jonathan/skillmatch/schemas"
	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the embedded catalog. It is parsed once per process.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(defaultCatalog)
	})
	return defaultCat, defaultErr
}

// LoadFile reads a catalog document from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to read %s", path), Cause: err}
	}
	return Parse(data)
}

// Parse decodes, validates and compiles a YAML (or JSON) catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Message: "failed to decode catalog", Cause: err}
	}
	if err := schemas.ValidateValue(schemadocs.SkillCatalog, &doc); err != nil {
		return nil, &LoadError{Message: "catalog does not match schema", Cause: err}
	}
	return compile(&doc)
}
