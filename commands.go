package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/liquidity-ai/liquidity-tui/internal/api"
)

// Scan animation timing. A tick moves the counter by one (two once the result
// has arrived); a short grace pause follows completion before the dashboard.
const (
	scanTickInterval = 50 * time.Millisecond
	scanProgressMax  = 100
	scanFinishGrace  = 300 * time.Millisecond
)

type scanStage struct {
	label string
}

var scanStages = []scanStage{
	{label: "Analyzing documents..."},
	{label: "Running AI detection..."},
	{label: "Scanning for subsidies..."},
	{label: "Calculating losses..."},
}

func scanStageFor(progress int) int {
	stage := progress / 25
	if stage > len(scanStages)-1 {
		stage = len(scanStages) - 1
	}
	return stage
}

// documentExtensions are the file types the backend accepts.
var documentExtensions = map[string]bool{
	".pdf":  true,
	".xlsx": true,
	".xls":  true,
	".csv":  true,
}

// loadFilesCmd returns a command that scans basePath for uploadable documents.
func loadFilesCmd(basePath string) tea.Cmd {
	return func() tea.Msg {
		entries, err := os.ReadDir(basePath)
		if err != nil {
			return filesLoadedMsg{err: fmt.Errorf("read dir: %w", err)}
		}
		var items []list.Item
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			if !documentExtensions[strings.ToLower(filepath.Ext(name))] {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			items = append(items, fileItem{name: name, size: info.Size()})
		}
		return filesLoadedMsg{items: items}
	}
}

// startScanCmd runs the whole upload pipeline as one async command: health
// probe, upload, analyze. Failure anywhere resolves to the demo dataset
// instead of an error; the dashboard must always be reachable. The degrade is
// recorded on the message and in the log, never surfaced as a toast.
func startScanCmd(client *api.Client, log zerolog.Logger, scanID string, paths []string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		if !client.CheckHealth(ctx) {
			log.Warn().Str("scan", scanID).Msg("backend unavailable, degrading to demo data")
			return scanDoneMsg{result: api.DemoResult(len(paths)), backendUp: false, demo: true}
		}

		upload, err := client.UploadDocuments(ctx, paths)
		if err != nil {
			log.Warn().Str("scan", scanID).Err(err).Msg("upload failed, degrading to demo data")
			return scanDoneMsg{result: api.DemoResult(len(paths)), backendUp: true, demo: true}
		}
		log.Info().Str("scan", scanID).Str("session", upload.SessionID).
			Int("files", upload.FilesUploaded).Msg("documents uploaded")

		result, err := client.AnalyzeDocuments(ctx, upload.SessionID)
		if err != nil {
			log.Warn().Str("scan", scanID).Str("session", upload.SessionID).Err(err).
				Msg("analysis failed, degrading to demo data")
			return scanDoneMsg{result: api.DemoResult(len(paths)), backendUp: true, demo: true}
		}
		log.Info().Str("scan", scanID).Str("session", result.SessionID).
			Int("subsidies", len(result.Subsidies)).Msg("analysis complete")

		return scanDoneMsg{result: result, backendUp: true}
	}
}

func scanTickCmd() tea.Cmd {
	return tea.Tick(scanTickInterval, func(time.Time) tea.Msg {
		return scanTickMsg{}
	})
}

func scanFinishCmd() tea.Cmd {
	return tea.Tick(scanFinishGrace, func(time.Time) tea.Msg {
		return scanFinishedMsg{}
	})
}

// newScanID tags one upload→analysis cycle for log correlation.
func newScanID() string {
	return uuid.NewString()
}

func setupAlertCmd(client *api.Client, email, sessionID string, alertTypes []string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.SetupEmailAlert(context.Background(), email, sessionID, alertTypes)
		return alertDoneMsg{resp: resp, err: err}
	}
}

func cancelAlertCmd(client *api.Client, alertID string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.CancelEmailAlert(context.Background(), alertID)
		return alertCancelledMsg{resp: resp, err: err}
	}
}

func alertDismissCmd() tea.Cmd {
	return tea.Tick(alertDismissDelay, func(time.Time) tea.Msg {
		return alertDismissMsg{}
	})
}

func loadCatalogCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		catalog, err := client.GetSubsidies(context.Background())
		return catalogLoadedMsg{catalog: catalog, err: err}
	}
}

func exportCmd(subs []api.SubsidyOpportunity, dir string) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(dir, exportFilename)
		if err := exportOpportunities(path, subs); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: exportFilename, count: len(subs)}
	}
}
