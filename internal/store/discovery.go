package store

import (
	"context"
	"fmt"
	"strings"
)

// systemSchemas are excluded from discovery listings.
var systemSchemas = map[string]bool{
	"pg_catalog":         true,
	"pg_toast":           true,
	"information_schema": true,
}

// ListSchemas returns the user schemas of the warehouse database.
func (s *Store) ListSchemas(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx,
		"SELECT schema_name FROM information_schema.schemata ORDER BY schema_name")
	if err != nil {
		return nil, fmt.Errorf("list schemas: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan schema name: %w", err)
		}
		if systemSchemas[name] || strings.HasPrefix(name, "pg_") {
			continue
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list schemas: %w", err)
	}
	return out, nil
}

// ListTables returns the tables of a schema whose names contain pattern.
// An empty pattern lists every table.
func (s *Store) ListTables(ctx context.Context, schema, pattern string) ([]string, error) {
	if err := ValidateIdentifier(schema); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx,
		"SELECT table_name FROM information_schema.tables WHERE table_schema = $1 ORDER BY table_name",
		schema)
	if err != nil {
		return nil, fmt.Errorf("list tables in %s: %w", schema, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		if pattern == "" || strings.Contains(name, pattern) {
			out = append(out, name)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tables in %s: %w", schema, err)
	}
	return out, nil
}

// TableStatus reports whether one base table exists in a schema.
type TableStatus struct {
	Exists       bool   `json:"exists"`
	Kind         string `json:"kind"`
	ContractType string `json:"contract_type,omitempty"`
}

// BaseTableStatus reports which base tables exist in a schema, keyed by
// table name.
func (s *Store) BaseTableStatus(ctx context.Context, schema string) (map[string]TableStatus, error) {
	tables, err := s.ListTables(ctx, schema, "")
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(tables))
	for _, t := range tables {
		present[t] = true
	}

	status := make(map[string]TableStatus, len(BaseTables))
	for name, spec := range BaseTables {
		status[name] = TableStatus{
			Exists:       present[name],
			Kind:         spec.Kind.String(),
			ContractType: spec.ContractType,
		}
	}
	return status, nil
}
