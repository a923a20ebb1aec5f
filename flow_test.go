package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/liquidity-ai/liquidity-tui/internal/api"
	"github.com/liquidity-ai/liquidity-tui/internal/config"
)

// Cross-phase user flow regression tests. Commands that talk to the network
// or sleep are never drained here; their messages are applied by hand.

func flowKey(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func flowApply(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	got, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned %T, want model", next)
	}
	return got, cmd
}

func flowPress(t *testing.T, m model, key string) model {
	t.Helper()
	m, _ = flowApply(t, m, flowKey(key))
	return m
}

func flowType(t *testing.T, m model, input string) model {
	t.Helper()
	for _, r := range input {
		m = flowPress(t, m, string(r))
	}
	return m
}

// testBackend serves just enough of the analysis API for flow tests, counting
// alert requests so validation tests can prove no call was made.
type testBackend struct {
	srv        *httptest.Server
	alertCalls atomic.Int64
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	b := &testBackend{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /api/upload", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, `{"detail":"bad upload"}`, http.StatusBadRequest)
			return
		}
		resp := api.UploadResponse{SessionID: "sess-1", FilesUploaded: len(r.MultipartForm.File["files"])}
		_ = json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("POST /api/analyze/{session}", func(w http.ResponseWriter, r *http.Request) {
		result := api.DemoResult(1)
		result.SessionID = r.PathValue("session")
		_ = json.NewEncoder(w).Encode(result)
	})
	mux.HandleFunc("POST /api/alerts/email", func(w http.ResponseWriter, _ *http.Request) {
		b.alertCalls.Add(1)
		_ = json.NewEncoder(w).Encode(api.AlertResponse{Success: true, Message: "ok", AlertID: "alert-1"})
	})
	mux.HandleFunc("DELETE /api/alerts/{id}", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(api.CancelResponse{Success: true, Message: "Alert cancelled"})
	})
	b.srv = httptest.NewServer(mux)
	t.Cleanup(b.srv.Close)
	return b
}

func newFlowModel(t *testing.T, baseURL string) model {
	t.Helper()
	t.Setenv("LIQUIDITY_CONFIG", filepath.Join(t.TempDir(), "config.toml"))
	cfg := config.Config{
		API: config.APIConfig{BaseURL: baseURL},
		UI:  config.UIConfig{Theme: "dark"},
	}
	m := newModel(cfg, api.NewClient(baseURL, zerolog.Nop()), zerolog.Nop())
	m.width = 120
	m.height = 40
	m.basePath = t.TempDir()
	return m
}

func dashboardModel(t *testing.T, baseURL string) model {
	t.Helper()
	m := newFlowModel(t, baseURL)
	m.phase = phaseDashboard
	m.result = api.DemoResult(2)
	m.sessionID = m.result.SessionID
	return m
}

func withFiles(m model, names ...string) model {
	items := make([]list.Item, 0, len(names))
	for _, name := range names {
		items = append(items, fileItem{name: name, size: 1024})
	}
	m.fileList.SetItems(items)
	m.listReady = true
	return m
}

// ---------------------------------------------------------------------------
// Upload phase
// ---------------------------------------------------------------------------

func TestStartScanEntersScanningSynchronously(t *testing.T) {
	b := newTestBackend(t)
	m := withFiles(newFlowModel(t, b.srv.URL), "q1.csv")

	m, cmd := flowApply(t, m, flowKey("enter"))
	if m.phase != phaseScanning {
		t.Fatalf("phase = %d, want scanning", m.phase)
	}
	if cmd == nil {
		t.Fatal("expected scan pipeline and tick commands")
	}
	if m.progress != 0 || m.stage != 0 {
		t.Fatalf("progress/stage = %d/%d, want 0/0", m.progress, m.stage)
	}
	if m.scanID == "" {
		t.Fatal("expected a scan id")
	}
}

func TestStartScanRequiresFiles(t *testing.T) {
	b := newTestBackend(t)
	m := newFlowModel(t, b.srv.URL)
	m.listReady = true

	m = flowPress(t, m, "enter")
	if m.phase != phaseUpload {
		t.Fatalf("phase = %d, want upload", m.phase)
	}
	if m.status != "No files selected." {
		t.Fatalf("status = %q", m.status)
	}
}

func TestSpaceMarksFiles(t *testing.T) {
	b := newTestBackend(t)
	m := withFiles(newFlowModel(t, b.srv.URL), "a.csv", "b.csv")

	m = flowPress(t, m, " ")
	item, ok := m.fileList.Items()[0].(fileItem)
	if !ok || !item.picked {
		t.Fatal("expected first file marked after space")
	}
	m = flowPress(t, m, " ")
	item = m.fileList.Items()[0].(fileItem)
	if item.picked {
		t.Fatal("expected second space to unmark")
	}
}

func TestPickedFilesFallBackToCursor(t *testing.T) {
	b := newTestBackend(t)
	m := withFiles(newFlowModel(t, b.srv.URL), "a.csv", "b.csv")

	paths := m.pickedFiles()
	if len(paths) != 1 || filepath.Base(paths[0]) != "a.csv" {
		t.Fatalf("paths = %v, want cursor file only", paths)
	}
}

func TestConsentPromptAnsweredOnce(t *testing.T) {
	b := newTestBackend(t)
	m := withFiles(newFlowModel(t, b.srv.URL), "a.csv")

	if !strings.Contains(m.View(), "usage logging") {
		t.Fatal("consent prompt missing on first run")
	}
	m = flowPress(t, m, "n")
	if m.cfg.UI.CookieConsent != "declined" {
		t.Fatalf("consent = %q, want declined", m.cfg.UI.CookieConsent)
	}
	if strings.Contains(m.View(), "usage logging") {
		t.Fatal("consent prompt should disappear after an answer")
	}

	m = flowPress(t, m, "y")
	if m.cfg.UI.CookieConsent != "declined" {
		t.Fatal("answered consent must not change")
	}
}

// ---------------------------------------------------------------------------
// Scan pipeline
// ---------------------------------------------------------------------------

func writeScanDoc(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "q1.csv")
	if err := os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScanPipelineLive(t *testing.T) {
	b := newTestBackend(t)
	client := api.NewClient(b.srv.URL, zerolog.Nop())
	path := writeScanDoc(t, t.TempDir())

	msg := startScanCmd(client, zerolog.Nop(), "scan-1", []string{path})()
	done, ok := msg.(scanDoneMsg)
	if !ok {
		t.Fatalf("msg = %T, want scanDoneMsg", msg)
	}
	if done.demo || !done.backendUp {
		t.Fatalf("demo/backendUp = %v/%v, want live result", done.demo, done.backendUp)
	}
	if done.result.SessionID != "sess-1" {
		t.Fatalf("session = %q", done.result.SessionID)
	}
}

func TestScanDegradesToDemoWhenBackendDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := api.NewClient(srv.URL, zerolog.Nop())
	path := writeScanDoc(t, t.TempDir())

	msg := startScanCmd(client, zerolog.Nop(), "scan-1", []string{path})()
	done, ok := msg.(scanDoneMsg)
	if !ok {
		t.Fatalf("msg = %T, want scanDoneMsg", msg)
	}
	if !done.demo || done.backendUp {
		t.Fatalf("demo/backendUp = %v/%v, want degraded", done.demo, done.backendUp)
	}
	if done.result.SessionID != api.DemoSessionID {
		t.Fatalf("session = %q, want demo session", done.result.SessionID)
	}
}

func TestScanDegradesToDemoWhenUploadFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /api/upload", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"detail":"storage full"}`, http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	client := api.NewClient(srv.URL, zerolog.Nop())
	path := writeScanDoc(t, t.TempDir())

	msg := startScanCmd(client, zerolog.Nop(), "scan-1", []string{path})()
	done := msg.(scanDoneMsg)
	if !done.demo || !done.backendUp {
		t.Fatalf("demo/backendUp = %v/%v, want demo with backend up", done.demo, done.backendUp)
	}
}

// ---------------------------------------------------------------------------
// Scanning phase join rule
// ---------------------------------------------------------------------------

func TestScanTickHoldsUntilResultArrives(t *testing.T) {
	b := newTestBackend(t)
	m := newFlowModel(t, b.srv.URL)
	m.phase = phaseScanning
	m.progress = scanProgressMax

	m, _ = flowApply(t, m, scanTickMsg{})
	if m.phase != phaseScanning || m.finishing {
		t.Fatal("progress complete without data must stay in scanning")
	}

	m, cmd := flowApply(t, m, scanDoneMsg{result: api.DemoResult(1), backendUp: false, demo: true})
	if !m.finishing || cmd == nil {
		t.Fatal("result after full progress should schedule the finish")
	}

	m, _ = flowApply(t, m, scanFinishedMsg{})
	if m.phase != phaseDashboard {
		t.Fatalf("phase = %d, want dashboard", m.phase)
	}
	if !m.demo {
		t.Fatal("demo flag lost in transition")
	}
}

func TestScanTickDoublesOnceDataArrived(t *testing.T) {
	b := newTestBackend(t)
	m := newFlowModel(t, b.srv.URL)
	m.phase = phaseScanning
	m.progress = 10

	m, _ = flowApply(t, m, scanTickMsg{})
	if m.progress != 11 {
		t.Fatalf("progress = %d, want 11", m.progress)
	}

	m.result = api.DemoResult(1)
	m, _ = flowApply(t, m, scanTickMsg{})
	if m.progress != 13 {
		t.Fatalf("progress = %d, want 13", m.progress)
	}
}

func TestScanStageAdvancesByQuarter(t *testing.T) {
	cases := map[int]int{0: 0, 24: 0, 25: 1, 49: 1, 50: 2, 75: 3, 100: 3}
	for progress, want := range cases {
		if got := scanStageFor(progress); got != want {
			t.Errorf("scanStageFor(%d) = %d, want %d", progress, got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// Dashboard
// ---------------------------------------------------------------------------

func TestDashboardFilterFlow(t *testing.T) {
	b := newTestBackend(t)
	m := dashboardModel(t, b.srv.URL)

	m = flowPress(t, m, "/")
	if !m.filtering {
		t.Fatal("expected filter input active")
	}
	m = flowType(t, m, "wbso")
	m = flowPress(t, m, "enter")
	if m.filtering {
		t.Fatal("enter should commit the filter")
	}
	rows := m.visibleOpportunities()
	if len(rows) != 1 || rows[0].ID != "wbso-2024" {
		t.Fatalf("rows = %v, want only wbso-2024", rows)
	}

	m = flowPress(t, m, "esc")
	if got := len(m.visibleOpportunities()); got != 5 {
		t.Fatalf("rows after clear = %d, want 5", got)
	}
}

func TestDetailModalOpensFromTable(t *testing.T) {
	b := newTestBackend(t)
	m := dashboardModel(t, b.srv.URL)

	m = flowPress(t, m, "down")
	m = flowPress(t, m, "enter")
	if m.modal != modalDetail || m.detail == nil {
		t.Fatal("expected detail modal for cursor row")
	}
	if m.detail.ID != "sde-2024" {
		t.Fatalf("detail = %q, want sde-2024", m.detail.ID)
	}

	m = flowPress(t, m, "esc")
	if m.modal != modalNone || m.detail != nil {
		t.Fatal("esc should close the detail modal")
	}
}

func TestDetailModalListsEligibility(t *testing.T) {
	b := newTestBackend(t)
	m := dashboardModel(t, b.srv.URL)

	m = flowPress(t, m, "enter") // wbso-2024 under the cursor
	if m.modal != modalDetail || m.detail == nil {
		t.Fatal("expected detail modal")
	}
	if len(m.detail.Eligibility) == 0 {
		t.Fatal("fixture row should carry eligibility criteria")
	}

	view := m.View()
	if !strings.Contains(view, "Eligibility:") {
		t.Fatal("eligibility heading missing from detail modal")
	}
	for _, criterion := range m.detail.Eligibility {
		if !strings.Contains(view, criterion) {
			t.Fatalf("criterion %q missing from detail modal", criterion)
		}
	}
}

func TestExportWritesCSV(t *testing.T) {
	b := newTestBackend(t)
	m := dashboardModel(t, b.srv.URL)

	m, cmd := flowApply(t, m, flowKey("x"))
	if cmd == nil {
		t.Fatal("expected export command")
	}
	msg := cmd()
	done, ok := msg.(exportDoneMsg)
	if !ok || done.err != nil {
		t.Fatalf("export msg = %#v", msg)
	}
	if done.count != 5 {
		t.Fatalf("count = %d, want 5", done.count)
	}

	data, err := os.ReadFile(filepath.Join(m.basePath, exportFilename))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "Item,Subsidy,Category,Amount\n") {
		t.Fatalf("unexpected header in %q", string(data))
	}

	m, _ = flowApply(t, m, done)
	if !strings.Contains(m.status, "Exported 5") {
		t.Fatalf("status = %q", m.status)
	}
}

func TestCancelAlertWithoutSubscription(t *testing.T) {
	b := newTestBackend(t)
	m := dashboardModel(t, b.srv.URL)

	m = flowPress(t, m, "c")
	if m.status != "No active alert to cancel." {
		t.Fatalf("status = %q", m.status)
	}
	if got := b.alertCalls.Load(); got != 0 {
		t.Fatalf("alert calls = %d, want 0", got)
	}
}

// ---------------------------------------------------------------------------
// Email alert modal
// ---------------------------------------------------------------------------

func TestAlertInvalidEmailMakesNoRequest(t *testing.T) {
	b := newTestBackend(t)
	m := dashboardModel(t, b.srv.URL)

	m = flowPress(t, m, "e")
	if m.modal != modalAlert {
		t.Fatal("expected alert modal")
	}
	m = flowType(t, m, "not-an-email")
	m, cmd := flowApply(t, m, flowKey("enter"))
	if cmd != nil {
		t.Fatal("invalid email must not issue a request")
	}
	if m.alert.status != alertError {
		t.Fatalf("status = %d, want error", m.alert.status)
	}
	if m.alert.message != "Please enter a valid email address" {
		t.Fatalf("message = %q", m.alert.message)
	}
	if got := b.alertCalls.Load(); got != 0 {
		t.Fatalf("alert calls = %d, want 0", got)
	}
}

func TestAlertSubscribeFlow(t *testing.T) {
	b := newTestBackend(t)
	m := dashboardModel(t, b.srv.URL)

	m = flowPress(t, m, "e")
	m = flowType(t, m, "cfo@example.nl")
	m, cmd := flowApply(t, m, flowKey("enter"))
	if cmd == nil {
		t.Fatal("expected subscription request")
	}
	if m.alert.status != alertLoading {
		t.Fatalf("status = %d, want loading", m.alert.status)
	}

	msg := cmd()
	done, ok := msg.(alertDoneMsg)
	if !ok || done.err != nil {
		t.Fatalf("alert msg = %#v", msg)
	}
	m, _ = flowApply(t, m, done)
	if m.alert.status != alertSuccess {
		t.Fatalf("status = %d, want success", m.alert.status)
	}
	if m.alertID != "alert-1" {
		t.Fatalf("alertID = %q", m.alertID)
	}
	if got := b.alertCalls.Load(); got != 1 {
		t.Fatalf("alert calls = %d, want 1", got)
	}

	m, _ = flowApply(t, m, alertDismissMsg{})
	if m.modal != modalNone {
		t.Fatal("success should auto-dismiss the modal")
	}
}

func TestAlertOptionToggle(t *testing.T) {
	b := newTestBackend(t)
	m := dashboardModel(t, b.srv.URL)

	m = flowPress(t, m, "e")
	got := m.alert.selectedTypes()
	want := []string{"weekly_summary", "new_subsidies"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("defaults = %v, want %v", got, want)
	}

	m = flowPress(t, m, "tab") // first toggle
	m = flowPress(t, m, " ")
	got = m.alert.selectedTypes()
	if len(got) != 1 || got[0] != "new_subsidies" {
		t.Fatalf("after toggle = %v, want only new_subsidies", got)
	}
}

// ---------------------------------------------------------------------------
// View smoke
// ---------------------------------------------------------------------------

func TestViewRendersEveryPhase(t *testing.T) {
	b := newTestBackend(t)

	upload := withFiles(newFlowModel(t, b.srv.URL), "a.csv")
	if upload.View() == "" {
		t.Fatal("empty upload view")
	}

	scanning := newFlowModel(t, b.srv.URL)
	scanning.phase = phaseScanning
	scanning.progress = 42
	scanning.stage = scanStageFor(42)
	if scanning.View() == "" {
		t.Fatal("empty scanning view")
	}

	dash := dashboardModel(t, b.srv.URL)
	dash.demo = true
	view := dash.View()
	if !strings.Contains(view, "Demo Mode") {
		t.Fatal("demo badge missing from degraded dashboard")
	}

	dash = flowPress(t, dash, "e")
	if dash.View() == "" {
		t.Fatal("empty view with alert modal")
	}
}
