package modularity

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"bootkit/pkg/logging"
)

// catalogFile is the on-disk catalog layout:
//
//	modules:
//	  - name: Orders
//	    type: orders
//	    dependsOn: [Customers]
//	    initializationMode: OnDemand
type catalogFile struct {
	Modules []ModuleInfo `yaml:"modules"`
}

// LoadCatalogFile reads a YAML module catalog.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read module catalog %s: %w", path, err)
	}

	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load module catalog %s: %w", path, err)
	}

	logging.Debug("Modularity", "Loaded %d module(s) from %s", catalog.Len(), path)
	return catalog, nil
}

// ParseCatalog decodes a YAML module catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse module catalog: %w", err)
	}
	return NewCatalog(file.Modules...)
}

// MarshalCatalog encodes the catalog in the file layout read by
// ParseCatalog.
func MarshalCatalog(c *Catalog) ([]byte, error) {
	return yaml.Marshal(catalogFile{Modules: c.Modules()})
}
