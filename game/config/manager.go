package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/critter-catch/game/catalog"
	"github.com/wricardo/critter-catch/game/service"
	"gopkg.in/yaml.v3"
)

var (
	ErrCatalogNotFound = service.ErrCatalogNotFound
	ErrInvalidCatalog  = errors.New("invalid catalog")
)

// extensions lists supported catalog file extensions in lookup order
var extensions = []string{".json", ".yaml", ".yml"}

// Manager handles catalog loading and caching. An empty directory means only
// the builtin catalog is available.
type Manager struct {
	catalogDir     string
	defaultID      string
	defaultCatalog *catalog.Catalog
	catalogs       map[string]*catalog.Catalog
	mu             sync.RWMutex
}

// NewManager creates a new catalog manager
func NewManager(catalogDir string) (*Manager, error) {
	if catalogDir != "" {
		if _, err := os.Stat(catalogDir); os.IsNotExist(err) {
			return nil, fmt.Errorf("catalog directory does not exist: %s", catalogDir)
		}
	}

	m := &Manager{
		catalogDir: catalogDir,
		catalogs:   make(map[string]*catalog.Catalog),
	}

	if err := m.loadDefaultCatalog(); err != nil {
		return nil, fmt.Errorf("failed to load default catalog: %w", err)
	}

	return m, nil
}

// LoadCatalog loads a catalog by name. The name may carry its extension.
func (m *Manager) LoadCatalog(name string) (*catalog.Catalog, error) {
	name = strings.TrimSpace(name)
	id := catalogID(name)

	m.mu.RLock()
	if cat, exists := m.catalogs[id]; exists {
		m.mu.RUnlock()
		return cat, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if cat, exists := m.catalogs[id]; exists {
		return cat, nil
	}

	cat, err := m.readCatalog(name)
	if err != nil {
		return nil, err
	}

	m.catalogs[id] = cat
	return cat, nil
}

// readCatalog finds and parses a catalog file without touching the cache
func (m *Manager) readCatalog(name string) (*catalog.Catalog, error) {
	path, found := m.findFile(name)
	if !found {
		if catalogID(name) == catalog.DefaultName {
			return catalog.Default(), nil
		}
		return nil, ErrCatalogNotFound
	}
	return LoadFile(path)
}

func (m *Manager) findFile(name string) (string, bool) {
	if m.catalogDir == "" || name == "" {
		return "", false
	}
	if strings.ContainsAny(name, `/\`) {
		return "", false
	}

	candidates := []string{name}
	if !hasCatalogExt(name) {
		candidates = candidates[:0]
		for _, ext := range extensions {
			candidates = append(candidates, name+ext)
		}
	}

	for _, filename := range candidates {
		path := filepath.Join(m.catalogDir, filename)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// LoadFile reads, parses and validates one catalog file. The format follows
// the file extension.
func LoadFile(path string) (*catalog.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCatalogNotFound
		}
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	cat, err := Parse(data, formatOf(path))
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// Parse decodes catalog data in the given format ("json" or "yaml") and
// validates it
func Parse(data []byte, format string) (*catalog.Catalog, error) {
	var cat catalog.Catalog
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &cat); err != nil {
			return nil, fmt.Errorf("failed to parse catalog: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cat); err != nil {
			return nil, fmt.Errorf("failed to parse catalog: %w", err)
		}
	}

	if err := catalog.Validate(&cat); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return &cat, nil
}

// ListCatalogs returns information about all available catalogs. The builtin
// default is listed unless a file shadows it.
func (m *Manager) ListCatalogs() ([]*service.CatalogInfo, error) {
	var catalogs []*service.CatalogInfo
	seen := make(map[string]bool)

	if m.catalogDir != "" {
		entries, err := os.ReadDir(m.catalogDir)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog directory: %w", err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !hasCatalogExt(entry.Name()) {
				continue
			}

			id := catalogID(entry.Name())
			if seen[id] {
				continue
			}

			cat, err := m.LoadCatalog(entry.Name())
			if err != nil {
				// Skip invalid catalogs
				continue
			}
			seen[id] = true
			catalogs = append(catalogs, catalogInfo(entry.Name(), id, formatOf(entry.Name()), cat))
		}
	}

	if !seen[catalog.DefaultName] {
		catalogs = append(catalogs, catalogInfo("", catalog.DefaultName, "builtin", catalog.Default()))
	}

	sort.Slice(catalogs, func(i, j int) bool {
		return catalogs[i].CatalogID < catalogs[j].CatalogID
	})
	return catalogs, nil
}

// GetDefault returns the default catalog
func (m *Manager) GetDefault() *catalog.Catalog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultCatalog
}

// DefaultID returns the identifier of the default catalog
func (m *Manager) DefaultID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultID
}

// SetDefault sets the default catalog by name
func (m *Manager) SetDefault(name string) error {
	cat, err := m.LoadCatalog(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultID = catalogID(name)
	m.defaultCatalog = cat
	return nil
}

// RefreshCache drops cached catalogs and reloads the default from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.catalogs = make(map[string]*catalog.Catalog)
	m.mu.Unlock()

	return m.loadDefaultCatalog()
}

// loadDefaultCatalog prefers a file named after the builtin default, then
// falls back to the builtin catalog itself
func (m *Manager) loadDefaultCatalog() error {
	cat, err := m.LoadCatalog(catalog.DefaultName)
	if err != nil {
		if !errors.Is(err, ErrInvalidCatalog) {
			return err
		}
		// A broken default file must not take the server down
		cat = catalog.Default()
	}

	m.mu.Lock()
	m.defaultID = catalog.DefaultName
	m.defaultCatalog = cat
	m.mu.Unlock()
	return nil
}

// SaveCatalog validates and writes a catalog to disk. Names without an
// extension are written as JSON.
func (m *Manager) SaveCatalog(name string, cat *catalog.Catalog) error {
	if m.catalogDir == "" {
		return errors.New("no catalog directory configured")
	}
	if name == "" || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid catalog name: %q", name)
	}

	if err := catalog.Validate(cat); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	filename := name
	if !hasCatalogExt(filename) {
		filename = name + ".json"
	}
	path := filepath.Join(m.catalogDir, filename)

	var data []byte
	var err error
	if formatOf(filename) == "yaml" {
		data, err = yaml.Marshal(cat)
	} else {
		data, err = json.MarshalIndent(cat, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}

	m.mu.Lock()
	m.catalogs[catalogID(name)] = cat
	m.mu.Unlock()

	return nil
}

func catalogInfo(filename, id, format string, cat *catalog.Catalog) *service.CatalogInfo {
	return &service.CatalogInfo{
		Filename:    filename,
		CatalogID:   id,
		Name:        cat.Name,
		Description: cat.Description,
		Format:      format,
		Locations:   len(cat.Locations),
		FishSpecies: len(cat.FishSpecies),
		PetSpecies:  len(cat.PetSpecies),
		Eggs:        len(cat.Eggs),
	}
}

func hasCatalogExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, known := range extensions {
		if ext == known {
			return true
		}
	}
	return false
}

func catalogID(name string) string {
	if hasCatalogExt(name) {
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}

func formatOf(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}
