package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderritik/pgstructure/internal/catalog"
	"github.com/alexanderritik/pgstructure/internal/report"
)

// depsCmd represents the deps command, adapted from dbgraph's impact
// command: instead of walking a flat string-keyed Graph, it walks
// Entity.ForeignKeysToThis directly over the assembled catalog model.
var depsCmd = &cobra.Command{
	Use:   "deps [table_name]",
	Short: "Print the downstream dependents of a table",
	Long:  `Finds every table that transitively depends on the named table via foreign keys, and flags cascade-delete and missing-index risks along the way.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		requireDBFlag()

		db := assembleOrExit(cmd.Context())

		target := findEntity(db, name)
		if target == nil {
			fmt.Printf("Error: table or view '%s' not found in the assembled schema.\n", name)
			os.Exit(1)
		}

		fmt.Printf("🔍 Target: %s\n", target.FullName())
		fmt.Println(strings.Repeat("-", 80))

		var warnings []string
		var printTree func(ent *catalog.Entity, via *catalog.Constraint, prefix string, isLast bool, level int, visited map[*catalog.Entity]bool)
		totalAffected := 0

		printTree = func(ent *catalog.Entity, via *catalog.Constraint, prefix string, isLast bool, level int, visited map[*catalog.Entity]bool) {
			if level == 0 {
				fmt.Printf("%s\n", ent.FullName())
			} else {
				marker := "├──"
				if isLast {
					marker = "└──"
				}
				meta := fmt.Sprintf("[FK: %s]", via.Name)
				if via.OnDelete == catalog.ActionCascade {
					meta += " (CASCADE)"
					warnings = append(warnings, fmt.Sprintf("[High] Cascade delete: removing a row from '%s' recursively deletes rows in '%s'.", target.FullName(), ent.FullName()))
				}
				fmt.Printf("%s%s %s %s\n", prefix, marker, ent.FullName(), meta)
				totalAffected++
			}

			if visited[ent] {
				return
			}
			visited[ent] = true

			childPrefix := prefix
			if level > 0 {
				if isLast {
					childPrefix += "    "
				} else {
					childPrefix += "│   "
				}
			}

			dependents := ent.ForeignKeysToThis
			for i, con := range dependents {
				owner := con.Table()
				if owner == nil {
					continue
				}
				if !report.IndexCoversColumns(owner, con.Columns) {
					warnings = append(warnings, fmt.Sprintf("[Med] Missing index: '%s' has no index covering foreign key '%s'.", owner.FullName(), con.Name))
				}
				printTree(owner, con, childPrefix, i == len(dependents)-1, level+1, visited)
			}
		}

		printTree(target, nil, "", true, 0, make(map[*catalog.Entity]bool))

		fmt.Printf("\nTotal affected objects: %d\n", totalAffected)

		if len(warnings) > 0 {
			fmt.Println("\n⚠️  STRUCTURAL WARNINGS")
			for _, w := range warnings {
				fmt.Println(w)
			}
		}
	},
}

func findEntity(db *catalog.Db, name string) *catalog.Entity {
	if schema, entityName, ok := strings.Cut(name, "."); ok {
		if s, found := db.Schema(schema); found {
			if v, err := s.Get(entityName); err == nil {
				if ent, ok := v.(*catalog.Entity); ok {
					return ent
				}
			}
		}
		return nil
	}
	for _, s := range db.Schemas.All() {
		for _, e := range s.AllEntities() {
			if e.Name == name {
				return e
			}
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(depsCmd)
}
