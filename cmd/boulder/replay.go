package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/boulder-daily/internal/games/boulder/engine"
	"github.com/vovakirdan/boulder-daily/internal/submission"
)

var (
	flagFrames bool
	flagDelay  time.Duration
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Step through a recorded run",
	Long: `Replay a submission file tick by tick and print the board. Without
--frames only the final board is printed, followed by the verdict.

Examples:
  boulder replay run.json
  boulder replay run.json.zst --frames
  boulder replay run.json --frames --delay 150ms`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagFrames, "frames", false, "Print the board after every tick")
	replayCmd.Flags().DurationVar(&flagDelay, "delay", 0, "Pause between frames")
}

func runReplay(_ *cobra.Command, args []string) error {
	sub, err := submission.Read(args[0])
	if err != nil {
		return err
	}

	session := engine.StartRun(sub.Seed, engine.WithLogicalTime(engine.TickInterval))
	if flagFrames {
		fmt.Print(engine.RenderASCII(session))
	}
	for _, in := range sub.Result.History.Inputs() {
		if session.Status().Terminal() {
			break
		}
		session.Submit(in)
		if _, err := session.Tick(); err != nil {
			return err
		}
		if flagFrames {
			fmt.Printf("\n> %s\n", in)
			fmt.Print(engine.RenderASCII(session))
			if flagDelay > 0 {
				time.Sleep(flagDelay)
			}
		}
	}
	if !flagFrames {
		fmt.Print(engine.RenderASCII(session))
	}

	verdict := engine.Verify(sub.Seed, sub.Result.History, sub.Result.Claim())
	fmt.Println()
	fmt.Printf("Claimed:  score %d, gems %d, won %t\n", sub.Result.Score, sub.Result.Gems, sub.Result.Won)
	fmt.Printf("Replayed: score %d, gems %d, won %t in %d ticks\n",
		verdict.Replayed.Score, verdict.Replayed.Gems, verdict.Replayed.Won, session.Ticks())
	fmt.Printf("Verdict:  %s\n", verdict.Reason)
	if verdict.Err != nil {
		fmt.Printf("Detail:   %v\n", verdict.Err)
	}
	return nil
}
