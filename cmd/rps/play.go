package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/rps-arcade/internal/core"
	"github.com/vovakirdan/rps-arcade/internal/games/rps"
	"github.com/vovakirdan/rps-arcade/internal/platform/tui"
	"github.com/vovakirdan/rps-arcade/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a session",
	Long: `Start a session against the computer. The score starts at 0 : 0 and
lives as long as the session.

Controls:
  R / 1        - Rock
  P / 2        - Paper
  S / 3        - Scissor
  Mouse click  - Press a button
  ?            - Toggle full help
  Q / Esc      - Quit

Examples:
  rps play
  rps play --seed 42
  rps play --assets ./assets
  rps play --journal ~/.rps/journal.db --log-file ~/.rps/rps.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd.Flags())
	if err != nil {
		return describeStartupError(err)
	}

	// Assets are checked before the terminal is taken over
	icons, err := loadIcons(cfg.Assets.Dir)
	if err != nil {
		return describeStartupError(err)
	}

	logger, logCloser, err := newFileLogger(flagLogFile)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	runtime := core.DefaultConfig()
	runtime.Tick = cfg.Timing.Tick
	runtime.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}

	// Open round journal
	store, err := storage.Open(cfg.Journal.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open round journal: %v\n", err)
		// Continue without storage - game still works
		store = nil
	} else {
		defer store.Close()
	}

	game := rps.New(
		rps.WithTiming(cfg.RoundTiming()),
		rps.WithIcons(icons),
		rps.WithLogger(logger),
	)

	final, err := tui.Run(game, store, runtime, tui.WithModelLogger(logger))
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	if store != nil {
		printSummary(cmd.OutOrStdout(), store, final.SessionID(), cfg.Journal.Path, logger)
	}
	return nil
}

// printSummary writes the exit recap. Failures are logged, not returned,
// because the session itself went fine.
func printSummary(w io.Writer, store *storage.Store, sessionID, journalPath string, logger *log.Logger) {
	line, err := sessionSummary(store, sessionID)
	if err != nil {
		logger.Warn("could not summarise session", "error", err)
		return
	}
	fmt.Fprintln(w, line)
	if journalPath != storage.MemoryPath {
		fmt.Fprintf(w, "Session %s journaled to %s\n", sessionID, journalPath)
	}
}

// sessionSummary renders a one-line recap of a session from the journal.
func sessionSummary(store *storage.Store, sessionID string) (string, error) {
	tally, err := store.SessionTally(sessionID)
	if err != nil {
		return "", err
	}
	if tally.Rounds == 0 {
		return "No rounds played.", nil
	}

	counts, err := store.ChoiceCounts(sessionID)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %s: %d won, %d lost, %d tied. Final score %d : %d.",
		tally.Rounds, plural(tally.Rounds, "round"),
		tally.Wins, tally.Losses, tally.Ties,
		tally.PlayerScore, tally.ComputerScore,
	)
	if favourite, n := favouriteChoice(counts); n > 0 {
		fmt.Fprintf(&sb, " Favourite hand: %s (%d).", favourite, n)
	}
	return sb.String(), nil
}

// favouriteChoice returns the most picked hand. Ties go to the hand that
// comes first in rock, paper, scissor order.
func favouriteChoice(counts map[string]int) (string, int) {
	names := make([]string, 0, rps.NumChoices)
	for _, c := range rps.Choices {
		names = append(names, c.String())
	}
	sort.SliceStable(names, func(i, j int) bool {
		return counts[names[i]] > counts[names[j]]
	})
	return names[0], counts[names[0]]
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
