package cmd

import (
	"fmt"
	"time"

	"gridmcts/experiments/metrics"

	"github.com/spf13/cobra"
)

func Records() *cobra.Command {
	return &cobra.Command{
		Use:   "records moves.parquet",
		Short: "Summarize stored move records per player",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := metrics.ReadMoveParquet(args[0])
			if err != nil {
				return err
			}

			games := make(map[string]bool)
			var moves, simulations, treeSize [2]int
			var duration [2]time.Duration
			for _, row := range rows {
				games[row.Game] = true
				p := row.Player
				if p != 0 && p != 1 {
					continue
				}
				moves[p]++
				simulations[p] += int(row.Simulations)
				treeSize[p] += int(row.TreeSize)
				duration[p] += time.Duration(row.DurationUs) * time.Microsecond
			}

			fmt.Printf("%d moves in %d games\n", len(rows), len(games))
			for p := range moves {
				if moves[p] == 0 {
					continue
				}
				n := moves[p]
				fmt.Printf("player %d: %d moves, %d simulations/move, tree size %d, %s/move\n",
					p, n, simulations[p]/n, treeSize[p]/n, (duration[p] / time.Duration(n)).Round(time.Microsecond))
			}
			return nil
		},
	}
}
