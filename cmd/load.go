package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderritik/pgstructure"
	"github.com/alexanderritik/pgstructure/internal/report"
)

// loadCmd reconstructs a Db from a snapshot file written by `pgstructure
// dump` and prints a one-line summary (object, foreign-key and schema
// counts), without touching a live database.
var loadCmd = &cobra.Command{
	Use:   "load [snapshot_file]",
	Short: "Replay a snapshot written by dump and summarize it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", args[0], err)
			os.Exit(1)
		}

		db, err := pgstructure.Deserialize(cmd.Context(), data)
		if err != nil {
			fmt.Printf("Error replaying snapshot: %v\n", err)
			os.Exit(1)
		}

		topo := report.AnalyzeTopology(db)
		fmt.Printf("Replayed %q (server %s): %d objects, %d foreign keys, %d schema(s)\n",
			db.Name, db.ServerVersion, topo.Nodes, topo.Edges, db.Schemas.Len())
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
