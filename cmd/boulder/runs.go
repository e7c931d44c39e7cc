package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/boulder-daily/internal/daily"
	"github.com/vovakirdan/boulder-daily/internal/platform/tui"
)

var (
	flagRunsSeed  string
	flagRunsDate  string
	flagRunsLimit int
	flagRunsPlain bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show verified runs for a seed",
	Long: `Display the best verified runs for a seed, highest score first and
fastest time breaking ties. Suspicious and rejected runs are counted but not
ranked. Defaults to today's daily seed.

In a terminal the list is interactive and the left and right keys step
through days. Use --plain (or a pipe) for text output.

Examples:
  boulder runs
  boulder runs --date 2026-10-13
  boulder runs --seed abc --limit 20
  boulder runs --plain | head`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().StringVar(&flagRunsSeed, "seed", "", "Seed to list (default: the day's seed)")
	runsCmd.Flags().StringVar(&flagRunsDate, "date", "", "Daily date as YYYY-MM-DD (default: today, UTC)")
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsPlain, "plain", false, "Print text instead of the interactive view")
}

func runRuns(cmd *cobra.Command, _ []string) error {
	date := time.Now().UTC()
	if flagRunsDate != "" {
		parsed, err := daily.ParseDate(flagRunsDate)
		if err != nil {
			return err
		}
		date = parsed
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	seeds := store.DailySeeds(app.cfg.Daily.Message)
	interactive := !flagRunsPlain && term.IsTerminal(int(os.Stdout.Fd()))
	if interactive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		var m tui.LeaderboardModel
		if flagRunsSeed != "" {
			m = tui.NewLeaderboard(store, flagRunsSeed, flagRunsLimit, width, height)
		} else {
			m = tui.NewDailyLeaderboard(store, seeds, date, flagRunsLimit, width, height)
		}
		return tui.RunLeaderboard(m)
	}

	ctx := cmd.Context()
	seed := flagRunsSeed
	title := "Verified runs - seed " + seed
	if seed == "" {
		if seed, err = seeds(ctx, date); err != nil {
			return err
		}
		title = fmt.Sprintf("Verified runs - %s (seed %s)", daily.DateKey(date), seed)
	}

	runs, err := store.TopRuns(ctx, seed, flagRunsLimit)
	if err != nil {
		return err
	}
	stats, err := store.RunStats(ctx, seed)
	if err != nil {
		return err
	}

	fmt.Println(title)
	fmt.Printf("%d runs, %d verified, %d suspicious, %d wins\n",
		stats.Runs, stats.Verified, stats.Suspicious, stats.Wins)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No verified runs yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-4s  %-7s  %-3s  %s\n", "Rank", "Score", "Gems", "Time", "Won", "Date")
	fmt.Printf("  %-4s  %-6s  %-4s  %-7s  %-3s  %s\n", "----", "-----", "----", "----", "---", "----")
	for i, r := range runs {
		won := "no"
		if r.Won {
			won = "yes"
		}
		fmt.Printf("  %-4d  %-6d  %-4d  %-7s  %-3s  %s\n",
			i+1, r.Score, r.Gems, fmt.Sprintf("%.1fs", float64(r.TimeMs)/1000), won,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Best: %d   Average: %.1f\n", stats.BestScore, stats.AvgScore)
	return nil
}
