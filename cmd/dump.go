package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/alexanderritik/pgstructure/internal/assembler"
	"github.com/alexanderritik/pgstructure/internal/catalog"
	"github.com/alexanderritik/pgstructure/internal/config"
	"github.com/alexanderritik/pgstructure/internal/pgclient"
	"github.com/alexanderritik/pgstructure/internal/pgqueries"
	"github.com/alexanderritik/pgstructure/internal/relation"
	"github.com/alexanderritik/pgstructure/internal/snapshot"
)

var dumpOutFile string

// dumpCmd assembles the schema and writes its snapshot to disk, so later
// commands (or `pgstructure load`) can inspect it without a live connection
// (spec.md 4.6).
var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Assemble the schema and write a replayable snapshot to disk",
	Run: func(cmd *cobra.Command, args []string) {
		requireDBFlag()
		ctx := cmd.Context()

		client, err := pgclient.Connect(ctx, dbUrl)
		if err != nil {
			fmt.Printf("Error connecting to database: %v\n", err)
			os.Exit(1)
		}
		defer client.Close(ctx)

		opts := config.Default()
		opts.IncludeSchemas = includeSchemas
		opts.ExcludeSchemas = excludeSchemas
		opts.IncludeSystemSchemas = includeSystem
		opts.RelationNameFunctions = namingStrategy

		asm := assembler.New(client, pgqueries.NewLoader(), opts.ToConfig(), zerolog.New(os.Stderr))
		db, err := asm.Assemble(ctx)
		if err != nil {
			fmt.Printf("Error assembling schema: %v\n", err)
			os.Exit(1)
		}
		db.RawResults = asm.RawResults()
		db.Relations = relation.NewEngine(db)

		data, err := snapshot.Marshal(snapshot.Dump(db))
		if err != nil {
			fmt.Printf("Error serializing snapshot: %v\n", err)
			os.Exit(1)
		}

		if dumpOutFile == "" || dumpOutFile == "-" {
			os.Stdout.Write(data)
			return
		}
		if err := os.WriteFile(dumpOutFile, data, 0o644); err != nil {
			fmt.Printf("Error writing %s: %v\n", dumpOutFile, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote snapshot of %d schema(s) to %s\n", schemaCount(db), dumpOutFile)
	},
}

func schemaCount(db *catalog.Db) int {
	return db.Schemas.Len()
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().StringVarP(&dumpOutFile, "out", "o", "", "Output file (default stdout)")
}
