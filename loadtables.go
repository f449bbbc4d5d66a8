package carpenter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"carpenter/domain"
	"carpenter/table"
)

// tableDef is the YAML shape of a declarative table definition.
type tableDef struct {
	Name     string      `yaml:"name"`
	Source   string      `yaml:"source"`
	PageSize int         `yaml:"page_size"`
	Sort     sortDef     `yaml:"sort"`
	Columns  []columnDef `yaml:"columns"`
}

type sortDef struct {
	Key string `yaml:"key"`
	Dir string `yaml:"dir"`
}

type columnDef struct {
	Key      string `yaml:"key"`
	Label    string `yaml:"label"`
	Sortable bool   `yaml:"sortable"`
	Hidden   bool   `yaml:"hidden"`
}

// LoadTables reads every *.yaml/*.yml table definition under the
// configured tables location and registers a builder for each. The
// location must be set and must exist.
func (c *Carpenter) LoadTables() error {
	loc := c.cfg.Tables.Location
	if loc == "" {
		return domain.ErrValidation("tables location is not configured")
	}
	info, err := os.Stat(loc)
	if err != nil {
		return &domain.LocationNotFoundError{Path: loc}
	}

	paths := []string{loc}
	if info.IsDir() {
		entries, err := os.ReadDir(loc)
		if err != nil {
			return fmt.Errorf("read tables location %q: %w", loc, err)
		}
		paths = paths[:0]
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(entry.Name()))
			if ext != ".yaml" && ext != ".yml" {
				continue
			}
			paths = append(paths, filepath.Join(loc, entry.Name()))
		}
	}

	loaded := 0
	for _, path := range paths {
		def, err := readTableDef(path)
		if err != nil {
			return err
		}
		c.Add(def.Name, BuilderRef(def))
		loaded++
	}

	c.logger.Info("table definitions loaded", "location", loc, "count", loaded)
	return nil
}

func readTableDef(path string) (*tableDef, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table definition %q: %w", path, err)
	}
	var def tableDef
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("parse table definition %q: %w", path, err)
	}
	if def.Name == "" {
		return nil, domain.ErrValidation("table definition %q has no name", path)
	}
	if len(def.Columns) == 0 {
		return nil, domain.ErrValidation("table definition %q has no columns", path)
	}
	for _, col := range def.Columns {
		if col.Key == "" {
			return nil, domain.ErrValidation("table definition %q has a column without a key", path)
		}
	}
	return &def, nil
}

// Build configures a table from the parsed definition, making tableDef a
// Builder in its own right.
func (d *tableDef) Build(t *table.Table) error {
	source := d.Source
	if source == "" {
		source = d.Name
	}
	t.Source(source)
	if d.PageSize > 0 {
		t.PageSize(d.PageSize)
	}
	if d.Sort.Key != "" {
		t.SortBy(d.Sort.Key, domain.SortDirection(d.Sort.Dir).Normalize())
	}
	for _, col := range d.Columns {
		opts := make([]table.ColumnOption, 0, 3)
		if col.Label != "" {
			opts = append(opts, table.Label(col.Label))
		}
		if col.Sortable {
			opts = append(opts, table.Sortable())
		}
		if col.Hidden {
			opts = append(opts, table.Hidden())
		}
		t.AddColumn(col.Key, opts...)
	}
	return nil
}
