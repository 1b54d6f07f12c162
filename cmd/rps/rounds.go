package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rps-arcade/internal/config"
	"github.com/vovakirdan/rps-arcade/internal/storage"
)

var (
	flagRoundsLimit int
	flagRoundsClear bool
)

var roundsCmd = &cobra.Command{
	Use:   "rounds <session>",
	Short: "Show journaled rounds of a session",
	Long: `Display the latest rounds a session recorded in a journal file.
"rps play" prints the session ID on exit when --journal names a file.

Examples:
  rps rounds 6f1c... --journal ~/.rps/journal.db
  rps rounds 6f1c... --journal ~/.rps/journal.db --limit 50
  rps rounds 6f1c... --journal ~/.rps/journal.db --clear`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return describeStartupError(showRounds(cmd, args[0]))
	},
}

func init() {
	roundsCmd.Flags().IntVar(&flagRoundsLimit, "limit", 10, "Number of rounds to show")
	roundsCmd.Flags().BoolVar(&flagRoundsClear, "clear", false, "Delete the session's rounds instead of showing them")
}

func showRounds(cmd *cobra.Command, sessionID string) error {
	cfg, err := loadSettings(cmd.Flags())
	if err != nil {
		return err
	}
	if cfg.Journal.Path == config.MemoryJournal {
		return errors.New("the in-memory journal does not outlive a session; pass --journal <file>")
	}

	store, err := storage.Open(cfg.Journal.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagRoundsClear {
		return clearRounds(cmd.OutOrStdout(), store, sessionID)
	}
	return writeRounds(cmd.OutOrStdout(), store, sessionID, flagRoundsLimit)
}

func clearRounds(w io.Writer, store *storage.Store, sessionID string) error {
	tally, err := store.SessionTally(sessionID)
	if err != nil {
		return err
	}
	if err := store.ClearSession(sessionID); err != nil {
		return err
	}
	fmt.Fprintf(w, "Deleted %d %s of session %s\n", tally.Rounds, plural(tally.Rounds, "round"), sessionID)
	return nil
}

func writeRounds(w io.Writer, store *storage.Store, sessionID string, limit int) error {
	rounds, err := store.RecentRounds(sessionID, limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Rounds - session %s\n", sessionID)
	fmt.Fprintln(w)

	if len(rounds) == 0 {
		fmt.Fprintln(w, "No rounds recorded for this session.")
		return nil
	}

	// Print header
	fmt.Fprintf(w, "  %-5s  %-8s  %-8s  %-8s  %s\n", "Round", "You", "CPU", "Winner", "Date")
	fmt.Fprintf(w, "  %-5s  %-8s  %-8s  %-8s  %s\n", "-----", "---", "---", "------", "----")

	for _, r := range rounds {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Fprintf(w, "  %-5d  %-8s  %-8s  %-8s  %s\n", r.Round, r.Player, r.Computer, r.Outcome, dateStr)
	}

	tally, err := store.SessionTally(sessionID)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Score: %d : %d over %d %s\n", tally.PlayerScore, tally.ComputerScore, tally.Rounds, plural(tally.Rounds, "round"))
	return nil
}
