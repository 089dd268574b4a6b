// Command channelmon is a read-only terminal monitor for a single
// channel's action journal: it tails the file and shows the live replayed
// state, the same spirit as the teacher's interactive TUI but driven by
// an on-disk journal instead of player input.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/channelpoker/internal/channel"
	"github.com/lox/channelpoker/internal/channel/digest"
)

type keccakHasher = digest.Keccak256

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type CLI struct {
	Journal string `arg:"" help:"Path to the action journal (JSON Lines) to monitor."`
	StackA  uint64 `help:"Player A's starting stack." required:""`
	StackB  uint64 `help:"Player B's starting stack." required:""`
	LogFile string `help:"Debug log file (the TUI's own stdout is reserved for the program)." default:"channelmon.log"`
}

func main() {
	var cli CLI
	kong.Parse(&cli, kong.Name("channelmon"), kong.Description("Monitor a channelpoker journal live."))

	f, err := os.OpenFile(cli.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	logger := log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "channelmon"})

	m := newModel(cli.Journal, channel.AmountFromUint64(cli.StackA), channel.AmountFromUint64(cli.StackB), logger)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "channelmon: %v\n", err)
		os.Exit(1)
	}
}
