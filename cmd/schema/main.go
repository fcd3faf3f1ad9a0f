// Command schema prints the table mapping derived from the models: columns,
// unique indexes, foreign keys with their delete policy and checks.
//
// Usage:
//
//	go run ./cmd/schema            # human readable
//	go run ./cmd/schema -json      # JSON, same shape as GET /api/v1/admin/schema
//	go run ./cmd/schema -table inscripciones
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/sahilchouksey/academia-api/database"
)

func main() {
	asJSON := flag.Bool("json", false, "print JSON instead of tables")
	table := flag.String("table", "", "only print this table")
	flag.Parse()

	mappings, err := database.BuildMappings(database.Models...)
	if err != nil {
		log.Fatalf("Failed to build schema mappings: %v", err)
	}

	if *table != "" {
		m, ok := database.FindMapping(mappings, *table)
		if !ok {
			log.Fatalf("Unknown table %q", *table)
		}
		mappings = []database.TableMapping{m}
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(mappings); err != nil {
			log.Fatal(err)
		}
		return
	}

	for _, m := range mappings {
		printTable(m)
	}
}

func printTable(m database.TableMapping) {
	fmt.Printf("%s (%s)\n", m.Table, m.Model)

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  COLUMN\tTYPE\tNULL\tKEY")
	for _, col := range m.Columns {
		null := "YES"
		if col.NotNull {
			null = "NO"
		}
		key := ""
		switch {
		case col.PrimaryKey:
			key = "PK"
		case col.Unique:
			key = "UNIQUE"
		}
		if fk, ok := m.ForeignKey(col.Name); ok {
			key = strings.TrimSpace(key + fmt.Sprintf(" FK -> %s(%s) ON DELETE %s", fk.ReferencesTable, fk.ReferencesColumn, fk.OnDelete))
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", col.Name, col.Type, null, key)
	}
	w.Flush()

	for _, idx := range m.Indexes {
		kind := "INDEX"
		if idx.Unique {
			kind = "UNIQUE"
		}
		fmt.Printf("  %s %s (%s)\n", kind, idx.Name, strings.Join(idx.Columns, ", "))
	}
	for _, chk := range m.Checks {
		fmt.Printf("  CHECK %s: %s\n", chk.Name, chk.Expression)
	}
	fmt.Println()
}
