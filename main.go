package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/liquidity-ai/liquidity-tui/internal/api"
	"github.com/liquidity-ai/liquidity-tui/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	log, closeLog := newLogger()
	defer closeLog()

	client := api.NewClient(cfg.API.BaseURL, log)

	p := tea.NewProgram(newModel(cfg, client, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newLogger writes structured logs to a file when LIQUIDITY_DEBUG names one.
// Logging to the terminal would corrupt the alt-screen frame, so the default
// sink is nothing at all.
func newLogger() (zerolog.Logger, func()) {
	path := os.Getenv("LIQUIDITY_DEBUG")
	if path == "" {
		return zerolog.Nop(), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "log file error:", err)
		return zerolog.Nop(), func() {}
	}
	log := zerolog.New(f).With().Timestamp().Logger()
	return log, func() { _ = f.Close() }
}
