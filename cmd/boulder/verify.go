package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/boulder-daily/internal/submission"
	"github.com/vovakirdan/boulder-daily/internal/verify"
)

var (
	flagVerifySave    bool
	flagVerifyWorkers int
	flagVerifySchema  bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify <file>...",
	Short: "Replay submission files and check their claims",
	Long: `Replay every submission file against its seed and compare the outcome with
the claimed score, gem count and result. Files ending in .zst are read as
zstd-compressed JSON. Files are checked in parallel.

A run whose replay matches but whose claimed time is shorter than the tick
count allows is reported as suspicious. A file that cannot be read or decoded
is reported as malformed and the rest are still checked.

Examples:
  boulder verify run.json
  boulder verify ~/.boulder/runs/*.zst --save
  boulder verify a.json b.json --workers 2
  boulder verify --schema > submission.schema.json`,
	Args: func(cmd *cobra.Command, args []string) error {
		if flagVerifySchema {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().BoolVar(&flagVerifySave, "save", false, "Store every report in the runs database")
	verifyCmd.Flags().IntVar(&flagVerifyWorkers, "workers", 0, "Parallel replays (default: config, then GOMAXPROCS)")
	verifyCmd.Flags().BoolVar(&flagVerifySchema, "schema", false, "Print the submission JSON schema and exit")
}

func runVerify(cmd *cobra.Command, args []string) error {
	if flagVerifySchema {
		fmt.Println(submission.Schema())
		return nil
	}

	var saver verify.RunSaver
	if flagVerifySave {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		saver = store
	}

	v := newVerifier(newLogger("verify"), saver)
	if flagVerifyWorkers > 0 {
		v.Workers = flagVerifyWorkers
	}

	reports, err := v.CheckFiles(cmd.Context(), args)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tSEED\tSCORE\tREPLAYED\tVERDICT\tRUN")
	rejected := 0
	for i, rep := range reports {
		verdict := string(rep.Verdict.Reason)
		switch {
		case !rep.Valid():
			rejected++
		case rep.Suspicious:
			verdict = "suspicious"
		}
		runID := "-"
		if rep.RunID != "" {
			runID = rep.RunID[:8]
		}
		seed := rep.Submission.Seed
		if seed == "" {
			seed = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
			args[i], seed, rep.Submission.Result.Score,
			rep.Verdict.Replayed.Score, verdict, runID)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if rejected > 0 {
		return fmt.Errorf("%d of %d submissions rejected", rejected, len(reports))
	}
	return nil
}
