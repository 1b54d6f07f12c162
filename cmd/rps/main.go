// rps is rock-paper-scissors against the computer, in the terminal.
//
// Usage:
//
//	rps                      - Play a session (same as "rps play")
//	rps play                 - Play a session
//	rps serve                - Start SSH server for remote play
//	rps rounds <session>     - Show journaled rounds of a session
//	rps config               - Print the effective configuration
//
// Global flags:
//
//	--seed <value>     - Set RNG seed for a reproducible computer
//	--config <path>    - Load configuration from a YAML file
//	--assets <dir>     - Load rock/paper/scissor PNG icons from a directory
//	--journal <path>   - Round journal database (default: in memory)
//	--log-file <path>  - Write logs to a file
//	--tick <duration>  - Poll/render interval
//	--no-color         - Disable colours
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed    int64
	flagConfig  string
	flagAssets  string
	flagJournal string
	flagLogFile string
	flagTick    time.Duration
	flagNoColor bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rps",
	Short: "Rock Paper Scissors - play the computer in your terminal",
	Long: `Rock Paper Scissors pits you against a computer that picks its hand
uniformly at random. Choose with the keyboard or click a button, watch the
ROCK! PAPER! SCISSOR! SHOOT! countdown and see who takes the point.

Available commands:
  play     - Play a session (default)
  serve    - Start SSH server for remote play
  rounds   - Show journaled rounds of a session
  config   - Print the effective configuration

Examples:
  rps
  rps play --seed 42
  rps --assets ./assets
  rps serve --ssh :2222
  rps config > ~/.rps/configs/rps.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	},
	RunE: runPlay,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagAssets, "assets", "", "Directory with rock.png, paper.png and scissor.png")
	pf.StringVar(&flagJournal, "journal", "", `Round journal database path (":memory:" keeps it in memory)`)
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.DurationVar(&flagTick, "tick", 0, "Poll/render interval, e.g. 40ms (0 = from config)")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable colours")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(roundsCmd)
	rootCmd.AddCommand(configCmd)
}
