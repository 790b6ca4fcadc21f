package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/ytget/img2png/internal/model"
)

func newTestRootUI(t *testing.T) *RootUI {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewRootUI(app.NewWindow("test"), app, logrus.NewEntry(l))
}

func TestNewRootUI(t *testing.T) {
	ui := newTestRootUI(t)

	if ui.statusLabel.Text != "Ready." {
		t.Errorf("Expected Ready., got %q", ui.statusLabel.Text)
	}
	if ui.queue.Len() != 0 || len(ui.items) != 0 {
		t.Error("Queue should start empty")
	}
	if ui.convertBtn.Disabled() {
		t.Error("Convert should be enabled when idle")
	}
}

func TestAddURLs(t *testing.T) {
	ui := newTestRootUI(t)

	if n := ui.addURLs("https://x.test/a.webp"); n != 1 {
		t.Fatalf("Expected 1 URL added, got %d", n)
	}
	if !strings.HasPrefix(ui.statusLabel.Text, "Added to queue: https://x.test/a.webp") {
		t.Errorf("Unexpected status %q", ui.statusLabel.Text)
	}

	if n := ui.addURLs("https://x.test/a.webp"); n != 0 {
		t.Error("Duplicate should not be added")
	}
	if !strings.HasPrefix(ui.statusLabel.Text, "Duplicate link skipped:") {
		t.Errorf("Unexpected status %q", ui.statusLabel.Text)
	}

	ui.addURLs("ftp://x.test/a.webp")
	if !strings.HasPrefix(ui.statusLabel.Text, "Clipboard does not contain a valid HTTP or HTTPS URL") {
		t.Errorf("Unexpected status %q", ui.statusLabel.Text)
	}

	ui.addURLs("   ")
	if ui.statusLabel.Text != "Clipboard is empty or not a valid URL." {
		t.Errorf("Unexpected status %q", ui.statusLabel.Text)
	}

	n := ui.addURLs("https://x.test/b.png\n# comment\nnot a url\nhttps://x.test/c.gif\n")
	if n != 2 {
		t.Errorf("Expected 2 URLs added from multi-line text, got %d", n)
	}
	if ui.statusLabel.Text != "Added 2 link(s) to queue, skipped 1." {
		t.Errorf("Unexpected status %q", ui.statusLabel.Text)
	}
	if len(ui.items) != 3 {
		t.Errorf("Expected 3 rendered items, got %d", len(ui.items))
	}
}

func TestPasteFromClipboard(t *testing.T) {
	ui := newTestRootUI(t)
	ui.app.Clipboard().SetContent("  https://x.test/pasted.webp  ")

	ui.onPasteClick()

	urls := ui.queue.URLs()
	if len(urls) != 1 || urls[0] != "https://x.test/pasted.webp" {
		t.Errorf("Expected trimmed pasted URL, got %v", urls)
	}
}

func TestClearQueueAndFields(t *testing.T) {
	ui := newTestRootUI(t)
	ui.addURLs("https://x.test/a.png\nhttps://x.test/b.png")
	ui.urlEntry.SetText("draft")

	ui.onClearFields()
	if ui.urlEntry.Text != "" || ui.statusLabel.Text != "Fields cleared." {
		t.Error("Clear should reset the entry and status")
	}
	if ui.queue.Len() != 2 {
		t.Error("Clear must not touch the queue")
	}

	ui.onClearQueue()
	if ui.queue.Len() != 0 || len(ui.items) != 0 {
		t.Error("Clear Queue should empty the queue")
	}
	if ui.statusLabel.Text != "Queue cleared." {
		t.Errorf("Unexpected status %q", ui.statusLabel.Text)
	}
}

func TestLanguageChange(t *testing.T) {
	ui := newTestRootUI(t)

	ui.onLanguageChange("pt")
	if ui.convertBtn.Text != "Converter e Salvar PNGs" {
		t.Errorf("Expected Portuguese label, got %q", ui.convertBtn.Text)
	}
	if ui.settings.GetLanguage() != "pt" {
		t.Error("Language should be persisted")
	}
}

func TestStartRun_EndToEnd(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/bad") {
			io.WriteString(w, "nope")
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	ui := newTestRootUI(t)
	dir := t.TempDir()
	ui.settings.SetDownloadDirectory(dir)
	ui.settings.SetAutoClearQueue(true)
	ui.addURLs(srv.URL + "/ok.png\n" + srv.URL + "/bad.png")

	results, err := ui.startRun()
	if err != nil {
		t.Fatalf("startRun failed: %v", err)
	}

	var result *model.BatchResult
	select {
	case result = <-results:
	case <-time.After(10 * time.Second):
		t.Fatal("Timed out waiting for run")
	}

	if result.Succeeded != 1 || len(result.Failures) != 1 {
		t.Fatalf("Unexpected result: %d succeeded, failures %v", result.Succeeded, result.Failures)
	}
	if _, err := os.Stat(result.Outcomes[0].OutputPath); err != nil {
		t.Errorf("Expected output file: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for ui.isRunning() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if ui.isRunning() {
		t.Fatal("UI still marked as running")
	}
	if ui.statusLabel.Text != "Finished. 1/2 converted.\nEncountered 1 error(s)." {
		t.Errorf("Unexpected final status %q", ui.statusLabel.Text)
	}
	if ui.queue.Len() != 0 {
		t.Error("Queue should be cleared after the run")
	}
	if ui.convertBtn.Disabled() {
		t.Error("Buttons should be re-enabled after the run")
	}
}

func hasWarningIcon(o fyne.CanvasObject) bool {
	for _, obj := range test.LaidOutObjects(o) {
		if icon, ok := obj.(*widget.Icon); ok && icon.Resource != nil && icon.Resource.Name() == theme.WarningIcon().Name() {
			return true
		}
	}
	return false
}

func TestOnCompletion_FailuresShowWarning(t *testing.T) {
	ui := newTestRootUI(t)
	ui.onCompletion(true, "Finished. 1/2 converted.", []string{"Network error for https://x.test/a.png...: boom"})

	top := ui.window.Canvas().Overlays().Top()
	if top == nil {
		t.Fatal("Expected a completion dialog")
	}
	if !hasWarningIcon(top) {
		t.Error("Completion with failures should show the warning icon")
	}

	ui = newTestRootUI(t)
	ui.onCompletion(true, "Finished. 2/2 converted.", nil)

	top = ui.window.Canvas().Overlays().Top()
	if top == nil {
		t.Fatal("Expected a completion dialog")
	}
	if hasWarningIcon(top) {
		t.Error("Clean completion should not show the warning icon")
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("  héllo  ", 3); got != "hél" {
		t.Errorf("Unexpected truncation %q", got)
	}
	if got := truncateRunes("short", 60); got != "short" {
		t.Errorf("Unexpected truncation %q", got)
	}
}
