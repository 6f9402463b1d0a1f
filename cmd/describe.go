package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/alexanderritik/pgstructure"
	"github.com/alexanderritik/pgstructure/internal/catalog"
	"github.com/alexanderritik/pgstructure/internal/report"
)

var (
	describeShowAll   bool
	describeLimitRows int
)

// describeCmd represents the describe command, merging dbgraph's analyze
// and summary commands into one report over the assembled catalog model.
var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Assemble the schema and print an architectural summary",
	Long:  `Connects to the database, assembles the full catalog graph, and reports topology, cycles, index hygiene and high-coupling tables.`,
	Run: func(cmd *cobra.Command, args []string) {
		requireDBFlag()

		db := assembleOrExit(cmd.Context())

		dbName := dbUrl
		if idx := strings.LastIndex(dbUrl, "/"); idx >= 0 {
			dbName = dbUrl[idx+1:]
			if q := strings.Index(dbName, "?"); q >= 0 {
				dbName = dbName[:q]
			}
		}

		topo := report.AnalyzeTopology(db)

		fmt.Printf("🔍 DB: %s | Objects: %d\n", dbName, topo.Nodes)
		fmt.Println(strings.Repeat("-", 80))

		fmt.Println("\n🏗️  TOPOLOGICAL CONTEXT")
		fmt.Printf("Graph Type:  Directed Multigraph (foreign keys)\n")
		denseLabel := "Sparse"
		if topo.Density > 0.1 {
			denseLabel = "Dense"
		}
		fmt.Printf("Density:     %.3f (%s)\n", topo.Density, denseLabel)
		fmt.Printf("Components:  %d Isolated Sub-graphs\n", topo.Components)
		if topo.CentralEntity != nil {
			fmt.Printf("Centrality:  %s (%.2f)\n", topo.CentralEntity.FullName(), topo.MaxCentrality)
		}

		fmt.Println("\n📦 OBJECT DISTRIBUTION")
		tables, views, mviews, sequences := 0, 0, 0, 0
		for _, s := range db.Schemas.All() {
			tables += s.Tables.Len()
			views += s.Views.Len()
			mviews += s.MaterializedViews.Len()
			sequences += s.Sequences.Len()
		}
		fmt.Printf("Tables:          %d\n", tables)
		fmt.Printf("Views:           %d\n", views)
		fmt.Printf("Materialized:    %d\n", mviews)
		fmt.Printf("Sequences:       %d\n", sequences)

		fmt.Println("\n🔗 DEPENDENCY VECTORS")
		fmt.Printf("Foreign Keys:       %d edges\n", topo.Edges)

		if len(topo.IsolatedGroups) > 0 {
			fmt.Println("\n🛰️  ISOLATED SUB-GRAPHS (Island Detection)")
			for i, group := range topo.IsolatedGroups {
				if i >= 5 {
					fmt.Printf("   ... and %d more\n", len(topo.IsolatedGroups)-5)
					break
				}
				names := make([]string, len(group))
				for j, e := range group {
					names[j] = e.FullName()
				}
				fmt.Printf("%d. Cluster:  %s\n", i+1, strings.Join(names, ", "))
			}
		}

		fmt.Println("\n🧵 SCHEMA LINEAGE DEPTH")
		fmt.Printf("Deepest Chain:  %d Levels\n", topo.LongestChain)

		fmt.Println("\n🏥 SCHEMA HEALTH REPORT")
		fmt.Println(strings.Repeat("-", 80))

		cycles := report.CheckCycles(db)
		if len(cycles) > 0 {
			fmt.Printf("🔴 CRITICAL: Found %d circular dependencies (Cycles)!\n", len(cycles))
			for i, c := range cycles {
				names := make([]string, len(c))
				for j, e := range c {
					names[j] = e.FullName()
				}
				fmt.Printf("   %d. %v\n", i+1, names)
			}
		} else {
			fmt.Println("✅ Great! No circular dependencies detected.")
		}

		coverage := report.CheckIndexCoverage(db)
		if len(coverage.Missing) > 0 {
			fmt.Printf("\n⚠️  PERFORMANCE RISKS: Found %d FKs missing indexes\n", len(coverage.Missing))
			for i, miss := range coverage.Missing {
				if i >= 5 {
					fmt.Printf("   ... and %d more\n", len(coverage.Missing)-5)
					break
				}
				fmt.Printf("   - %s (%s)\n", miss.Table.FullName(), miss.FK.Name)
			}
			fmt.Println("   (Suggestion: Add indexes to valid FK columns to prevent locking issues)")
		} else if coverage.TotalFKs > 0 {
			fmt.Printf("\n✅ Index Hygiene: Excellent! All %d FKs are indexed.\n", coverage.TotalFKs)
		} else {
			fmt.Println("\nℹ️  No Foreign Keys found to check.")
		}

		gods := report.DetectGodObjects(db)
		if len(gods) > 0 {
			fmt.Printf("\n😈 COMPLEXITY RISKS: Found %d 'God Objects' (High Coupling)\n", len(gods))
			for _, god := range gods {
				fmt.Printf("   - %s (Connected to %d others: %d in, %d out)\n",
					god.Entity.FullName(), god.Degree, god.Dependents, god.Dependencies)
			}
			fmt.Println("   (Suggestion: Consider splitting these tables to reduce architectural coupling)")
		} else {
			fmt.Println("\n✅ Architecture: No 'God Objects' detected (Clean Separation).")
		}

		fmt.Println(strings.Repeat("-", 80))

		if describeShowAll || describeLimitRows > 0 {
			printRanking(topo)
		}
	},
}

func printRanking(topo *report.Topology) {
	fmt.Println("\n📊 ARCHITECTURAL TOPOLOGY (Top Impact)")
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("%-30s %-12s %-10s %-10s\n", "OBJECT NAME", "KIND", "IN/OUT", "IMPACT")
	fmt.Println(strings.Repeat("-", 80))

	limit := describeLimitRows
	if limit <= 0 {
		limit = 10
	}
	if describeShowAll {
		limit = len(topo.TopNodes)
	}

	for i, n := range topo.TopNodes {
		if i >= limit {
			fmt.Printf("... and %d more. Use --all or --limit to see more.\n", len(topo.TopNodes)-limit)
			break
		}
		inOut := fmt.Sprintf("%d/%d", n.InDegree, n.OutDegree)
		fmt.Printf("%-30s %-12s %-10s %-10.2f\n", n.Entity.FullName(), n.Entity.Kind, inOut, n.Centrality)
	}
	fmt.Println(strings.Repeat("-", 80))
}

// assembleOrExit connects using the global --db/schema flags and exits the
// process on failure, matching dbgraph's cmd-layer error handling idiom
// (print, then os.Exit(1)) rather than propagating the error up through
// cobra's RunE.
func assembleOrExit(ctx context.Context) *catalog.Db {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	db, err := pgstructure.PgStructure(ctx, dbUrl,
		pgstructure.WithSchemas(includeSchemas, excludeSchemas),
		pgstructure.WithSystemSchemas(includeSystem),
		pgstructure.WithNamingStrategy(namingStrategy),
		pgstructure.WithLogger(logger),
	)
	if err != nil {
		fmt.Printf("Error assembling schema: %v\n", err)
		os.Exit(1)
	}
	return db
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().BoolVar(&describeShowAll, "all", false, "Show the full ranked object table")
	describeCmd.Flags().IntVar(&describeLimitRows, "limit", 0, "Number of ranked objects to show (implies a ranking table)")
}
