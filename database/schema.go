package database

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm/schema"
)

// ColumnMapping describes one persisted field
type ColumnMapping struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	NotNull    bool   `json:"not_null"`
	Unique     bool   `json:"unique"`
	PrimaryKey bool   `json:"primary_key"`
}

// ForeignKeyMapping describes a child -> parent reference and its policies
type ForeignKeyMapping struct {
	Name             string `json:"name"`
	Column           string `json:"column"`
	ReferencesTable  string `json:"references_table"`
	ReferencesColumn string `json:"references_column"`
	OnDelete         string `json:"on_delete"`
	OnUpdate         string `json:"on_update"`
}

// IndexMapping describes an index over one or more columns
type IndexMapping struct {
	Name    string   `json:"name"`
	Unique  bool     `json:"unique"`
	Columns []string `json:"columns"`
}

// CheckMapping describes a CHECK constraint
type CheckMapping struct {
	Name       string `json:"name"`
	Expression string `json:"expression"`
}

// TableMapping is the storage layout of one model
type TableMapping struct {
	Model       string              `json:"model"`
	Table       string              `json:"table"`
	Columns     []ColumnMapping     `json:"columns"`
	ForeignKeys []ForeignKeyMapping `json:"foreign_keys"`
	Indexes     []IndexMapping      `json:"indexes"`
	Checks      []CheckMapping      `json:"checks"`
}

// ForeignKey returns the mapping for column, if the table has one.
func (t TableMapping) ForeignKey(column string) (ForeignKeyMapping, bool) {
	for _, fk := range t.ForeignKeys {
		if fk.Column == column {
			return fk, true
		}
	}
	return ForeignKeyMapping{}, false
}

// Index returns the index with the given name.
func (t TableMapping) Index(name string) (IndexMapping, bool) {
	for _, idx := range t.Indexes {
		if idx.Name == name {
			return idx, true
		}
	}
	return IndexMapping{}, false
}

// Check returns the CHECK constraint with the given name.
func (t TableMapping) Check(name string) (CheckMapping, bool) {
	for _, chk := range t.Checks {
		if chk.Name == name {
			return chk, true
		}
	}
	return CheckMapping{}, false
}

// BuildMappings derives the table mapping of every model from its GORM tags, the same
// metadata AutoMigrate uses to create tables, indexes and constraints.
// No database connection is needed.
func BuildMappings(models ...interface{}) ([]TableMapping, error) {
	cache := &sync.Map{}
	namer := schema.NamingStrategy{}

	mappings := make([]TableMapping, 0, len(models))
	for _, m := range models {
		s, err := schema.Parse(m, cache, namer)
		if err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", m, err)
		}
		mappings = append(mappings, buildMapping(s))
	}
	return mappings, nil
}

// FindMapping returns the mapping of table from a BuildMappings result.
func FindMapping(mappings []TableMapping, table string) (TableMapping, bool) {
	for _, m := range mappings {
		if m.Table == table {
			return m, true
		}
	}
	return TableMapping{}, false
}

func buildMapping(s *schema.Schema) TableMapping {
	m := TableMapping{
		Model: s.Name,
		Table: s.Table,
	}

	for _, f := range s.Fields {
		if f.DBName == "" {
			continue
		}
		m.Columns = append(m.Columns, ColumnMapping{
			Name:       f.DBName,
			Type:       columnType(f),
			NotNull:    f.NotNull || f.PrimaryKey,
			Unique:     f.Unique,
			PrimaryKey: f.PrimaryKey,
		})
	}

	for _, rel := range s.Relationships.BelongsTo {
		c := rel.ParseConstraint()
		if c == nil {
			continue
		}
		for i, fk := range c.ForeignKeys {
			m.ForeignKeys = append(m.ForeignKeys, ForeignKeyMapping{
				Name:             c.Name,
				Column:           fk.DBName,
				ReferencesTable:  c.ReferenceSchema.Table,
				ReferencesColumn: c.References[i].DBName,
				OnDelete:         policy(c.OnDelete),
				OnUpdate:         policy(c.OnUpdate),
			})
		}
	}
	sort.Slice(m.ForeignKeys, func(i, j int) bool { return m.ForeignKeys[i].Column < m.ForeignKeys[j].Column })

	for _, idx := range s.ParseIndexes() {
		im := IndexMapping{Name: idx.Name, Unique: idx.Class == "UNIQUE"}
		for _, opt := range idx.Fields {
			if opt.Field != nil {
				im.Columns = append(im.Columns, opt.DBName)
			}
		}
		m.Indexes = append(m.Indexes, im)
	}
	sort.Slice(m.Indexes, func(i, j int) bool { return m.Indexes[i].Name < m.Indexes[j].Name })

	for name, chk := range s.ParseCheckConstraints() {
		m.Checks = append(m.Checks, CheckMapping{Name: name, Expression: chk.Constraint})
	}
	sort.Slice(m.Checks, func(i, j int) bool { return m.Checks[i].Name < m.Checks[j].Name })

	return m
}

func columnType(f *schema.Field) string {
	if t, ok := f.TagSettings["TYPE"]; ok && t != "" {
		return strings.ToLower(t)
	}
	if f.DataType == "" {
		return "unknown"
	}
	if f.DataType == schema.String && f.Size > 0 {
		return fmt.Sprintf("%s(%d)", f.DataType, f.Size)
	}
	return string(f.DataType)
}

// policy normalises an empty referential action to the SQL default.
func policy(action string) string {
	if action == "" {
		return "NO ACTION"
	}
	return strings.ToUpper(action)
}
