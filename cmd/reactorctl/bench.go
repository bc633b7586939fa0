package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jamiealquiza/tachymeter"
	"github.com/spf13/cobra"

	"github.com/vango-dev/reactorctl/internal/collaborator"
)

func benchCmd() *cobra.Command {
	var iterations int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Drive the scheduler with repeated ticks and report flush-latency percentiles",
		Long: `bench spins up an in-process board (the same Tick signal / Parity
derived / broadcasting effect the collaborator serves) and calls Increment
in a tight loop, timing each call to Flush with tachymeter.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if iterations <= 0 {
				iterations = 1000
			}

			log := slog.Default()
			board := collaborator.NewBoard(log)
			defer board.Close()

			meter := tachymeter.New(&tachymeter.Config{Size: iterations})

			for i := 0; i < iterations; i++ {
				start := time.Now()
				board.Increment(1)
				meter.AddTime(time.Since(start))
			}

			printBanner()
			fmt.Printf("  %d ticks driven through the scheduler\n\n", iterations)
			fmt.Println(meter.Calc())

			return nil
		},
	}

	cmd.Flags().IntVar(&iterations, "n", 1000, "number of ticks to drive")

	return cmd
}
