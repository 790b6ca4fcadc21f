package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/ytget/img2png/internal/batch"
	"github.com/ytget/img2png/internal/config"
	"github.com/ytget/img2png/internal/convert"
	"github.com/ytget/img2png/internal/download"
	"github.com/ytget/img2png/internal/model"
	"github.com/ytget/img2png/internal/platform"
)

// RootUI represents the main UI structure
type RootUI struct {
	app          fyne.App
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	queue        *model.Queue
	log          *logrus.Entry

	urlEntry      *widget.Entry
	addBtn        *widget.Button
	pasteBtn      *widget.Button
	convertBtn    *widget.Button
	clearQueueBtn *widget.Button
	clearBtn      *widget.Button
	openFolderBtn *widget.Button
	settingsBtn   *widget.Button
	queueLabel    *widget.Label
	queueList     *widget.List
	statusLabel   *widget.Label
	progressBar   *widget.ProgressBar

	// snapshot of the queue rendered by queueList
	items []model.QueueItem

	runMu   sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, log *logrus.Entry) *RootUI {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	settings := config.NewSettings(app)
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		app:          app,
		window:       window,
		settings:     settings,
		localization: localization,
		queue:        model.NewQueue(),
		log:          log.WithField("component", "ui"),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	window.SetOnClosed(ui.cancelRun)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()
	text := ui.localization.GetText

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(text(KeyEnterURL))
	ui.urlEntry.OnSubmitted = func(string) { ui.onAddClick() }

	ui.addBtn = widget.NewButton(text(KeyAdd), ui.onAddClick)
	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.settingsBtn.Importance = widget.LowImportance

	var left fyne.CanvasObject = ui.settingsBtn
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
		logoImage.FillMode = canvas.ImageFillContain
		left = container.NewHBox(logoImage, ui.settingsBtn)
	}
	topPanel := container.NewBorder(nil, nil, left, ui.addBtn, ui.urlEntry)

	ui.queueLabel = widget.NewLabel(text(KeyQueue))
	ui.queueList = widget.NewList(
		func() int { return len(ui.items) },
		func() fyne.CanvasObject { return NewQueueRow(ui.localization, ui.onRemoveItem) },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(ui.items) {
				return
			}
			obj.(*QueueRow).Update(ui.items[id], ui.isRunning())
		},
	)

	ui.pasteBtn = widget.NewButton(IconPaste+" "+text(KeyPaste), ui.onPasteClick)
	ui.convertBtn = widget.NewButton(text(KeyConvert), ui.onConvertClick)
	ui.convertBtn.Importance = widget.HighImportance
	ui.clearQueueBtn = widget.NewButton(text(KeyClearQueue), ui.onClearQueue)
	ui.clearBtn = widget.NewButton(text(KeyClear), ui.onClearFields)
	ui.openFolderBtn = widget.NewButton(IconFolder+" "+text(KeyOpenFolder), ui.onOpenFolder)

	ui.statusLabel = widget.NewLabel(text(KeyReady))
	ui.statusLabel.Wrapping = fyne.TextWrapWord
	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.Hide()

	buttons := container.NewHBox(ui.pasteBtn, ui.convertBtn, ui.clearQueueBtn)
	bottom := container.NewVBox(
		buttons,
		ui.progressBar,
		ui.statusLabel,
		container.NewHBox(ui.clearBtn, ui.openFolderBtn),
	)

	content := container.NewBorder(
		container.NewVBox(topPanel, ui.queueLabel),
		bottom,
		nil,
		nil,
		ui.queueList,
	)

	ui.window.SetContent(content)
	ui.log.Debug("UI setup completed")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	openItem := fyne.NewMenuItem(ui.localization.GetText(KeyOpenFolder), ui.onOpenFolder)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	names := ui.localization.GetAvailableLanguages()
	for _, code := range ui.localization.languageCodes() {
		item := fyne.NewMenuItem(names[code], func() { ui.onLanguageChange(code) })
		item.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, item)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), openItem, settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	text := ui.localization.GetText
	ui.window.SetTitle(text(KeyAppTitle))
	ui.urlEntry.SetPlaceHolder(text(KeyEnterURL))
	ui.addBtn.SetText(text(KeyAdd))
	ui.pasteBtn.SetText(IconPaste + " " + text(KeyPaste))
	ui.convertBtn.SetText(text(KeyConvert))
	ui.clearQueueBtn.SetText(text(KeyClearQueue))
	ui.clearBtn.SetText(text(KeyClear))
	ui.openFolderBtn.SetText(IconFolder + " " + text(KeyOpenFolder))
	ui.queueLabel.SetText(text(KeyQueue))
	ui.queueList.Refresh()
}

func (ui *RootUI) onAddClick() {
	if ui.addURLs(ui.urlEntry.Text) > 0 {
		ui.urlEntry.SetText("")
	}
}

func (ui *RootUI) onPasteClick() {
	ui.addURLs(ui.app.Clipboard().Content())
}

// addURLs adds every line of text to the queue and reports the result in the
// status line. It returns the number of URLs added.
func (ui *RootUI) addURLs(text string) int {
	lines := model.ParseURLList(text)
	if len(lines) == 0 {
		ui.setStatus(ui.localization.GetText(KeyClipboardEmpty))
		return 0
	}

	added, skipped := 0, 0
	var lastErr error
	var lastURL string
	for _, line := range lines {
		if _, err := ui.queue.Add(line); err != nil {
			skipped++
			lastErr, lastURL = err, line
			ui.log.WithError(err).WithField("url", line).Debug("URL not queued")
			continue
		}
		added++
		lastURL = line
	}
	ui.syncQueue()

	switch {
	case len(lines) > 1:
		ui.setStatus(ui.localization.Textf(KeyAddedManyToQueue, added, skipped))
	case errors.Is(lastErr, model.ErrDuplicateURL):
		ui.setStatus(ui.localization.Textf(KeyDuplicateSkipped, truncateRunes(lastURL, model.ProgressURLLimit)))
	case lastErr != nil:
		ui.setStatus(ui.localization.GetText(KeyInvalidURL))
	default:
		ui.setStatus(ui.localization.Textf(KeyAddedToQueue, truncateRunes(lastURL, model.ProgressURLLimit)))
	}
	return added
}

func (ui *RootUI) onRemoveItem(id string) {
	if ui.isRunning() {
		return
	}
	ui.queue.Remove(id)
	ui.syncQueue()
}

func (ui *RootUI) onClearQueue() {
	if ui.isRunning() {
		return
	}
	ui.queue.Clear()
	ui.syncQueue()
	ui.setStatus(ui.localization.GetText(KeyQueueCleared))
}

func (ui *RootUI) onClearFields() {
	ui.urlEntry.SetText("")
	ui.setStatus(ui.localization.GetText(KeyFieldsCleared))
}

func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, func() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
	}).Show()
}

func (ui *RootUI) onOpenFolder() {
	dir := ui.settings.GetDownloadDirectory()
	if err := platform.OpenFileInManager(dir); err != nil {
		ui.log.WithError(err).WithField("dir", dir).Warn("Cannot open output folder")
		dialog.ShowError(errors.New(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error()), ui.window)
	}
}

func (ui *RootUI) onConvertClick() {
	if ui.queue.Len() == 0 {
		dialog.ShowInformation(ui.localization.GetText(KeyQueueEmptyTitle), ui.localization.GetText(KeyQueueEmpty), ui.window)
		return
	}
	if _, err := ui.startRun(); err != nil {
		ui.setStatus(ui.localization.GetText(KeyAlreadyRunning))
	}
}

// startRun snapshots the queue and converts it in the background. The
// returned channel yields the batch result after the completion event has
// been handed to the UI.
func (ui *RootUI) startRun() (<-chan *model.BatchResult, error) {
	ui.runMu.Lock()
	if ui.running {
		ui.runMu.Unlock()
		return nil, batch.ErrAlreadyRunning
	}
	ctx, cancel := context.WithCancel(context.Background())
	ui.running = true
	ui.cancel = cancel
	ui.runMu.Unlock()

	urls := ui.queue.URLs()
	for i := range urls {
		ui.queue.SetStatus(i, model.TaskStatusPending)
	}

	ui.setBusy(true)
	ui.setStatus(ui.localization.GetText(KeyStarting))
	ui.progressBar.SetValue(0)
	ui.progressBar.Show()

	orch := ui.newOrchestrator()
	results, err := orch.Start(ctx, urls, ui.reporter())
	if err != nil {
		ui.finishRun()
		return nil, err
	}
	return results, nil
}

func (ui *RootUI) newOrchestrator() *batch.Orchestrator {
	level, err := convert.ParseCompression(ui.settings.GetCompression())
	if err != nil {
		ui.log.WithError(err).Warn("Falling back to default compression")
	}

	client := download.NewClient(download.Options{
		Timeout: time.Duration(ui.settings.GetTimeoutSeconds()) * time.Second,
		Logger:  ui.log,
	})
	return batch.New(batch.Options{
		Dir:         ui.settings.GetDownloadDirectory(),
		Converter:   convert.NewService(client, level, ui.log),
		MaxParallel: ui.settings.GetMaxParallel(),
		Logger:      ui.log,
	})
}

// reporter marshals batch events onto the Fyne thread
func (ui *RootUI) reporter() batch.Reporter {
	return batch.Callbacks{
		Status: func(text string) {
			fyne.Do(func() { ui.setStatus(text) })
		},
		Progress: func(current, total int, url string) {
			fyne.Do(func() { ui.onProgress(current, total, url) })
		},
		ItemStatus: func(index int, status model.TaskStatus) {
			ui.queue.SetStatus(index, status)
			fyne.Do(ui.syncQueue)
		},
		ItemDone: func(outcome model.ItemOutcome) {
			ui.queue.ApplyOutcome(outcome)
			fyne.Do(ui.syncQueue)
		},
		Completion: func(success bool, message string, failures []string) {
			fyne.Do(func() { ui.onCompletion(success, message, failures) })
		},
	}
}

func (ui *RootUI) onProgress(current, total int, url string) {
	ui.setStatus(ui.localization.Textf(KeyProcessing, current, total, model.Shorten(url, model.ProgressURLLimit)))
	if total > 0 {
		ui.progressBar.SetValue(float64(current-1) / float64(total))
	}
}

func (ui *RootUI) onCompletion(success bool, message string, failures []string) {
	final := message
	if len(failures) > 0 {
		final += "\n" + ui.localization.Textf(KeyEncounteredErrors, len(failures))
		for _, failure := range failures {
			ui.log.WithField("failure", failure).Warn("Item failed")
		}
	}

	ui.setStatus(final)
	ui.progressBar.SetValue(1)
	ui.progressBar.Hide()

	switch {
	case success && len(failures) == 0:
		dialog.ShowInformation(ui.localization.GetText(KeySuccessTitle), message, ui.window)
	case len(failures) > 0:
		ui.showWarning(ui.localization.GetText(KeyErrorsTitle), final)
	}

	if ui.settings.GetAutoClearQueue() {
		ui.queue.Clear()
	}
	if success && ui.settings.GetAutoRevealOnComplete() {
		dir := ui.settings.GetDownloadDirectory()
		if err := platform.OpenFileInManager(dir); err != nil {
			ui.log.WithError(err).Warn("Cannot reveal output folder")
		}
	}

	ui.finishRun()
}

// showWarning is an information dialog with the warning icon
func (ui *RootUI) showWarning(title, text string) {
	icon := widget.NewIcon(theme.WarningIcon())
	label := widget.NewLabel(text)
	label.Wrapping = fyne.TextWrapWord
	content := container.NewBorder(nil, nil, container.NewVBox(icon), nil, label)
	dialog.NewCustom(title, ui.localization.GetText(KeyOK), content, ui.window).Show()
}

func (ui *RootUI) finishRun() {
	ui.runMu.Lock()
	if ui.cancel != nil {
		ui.cancel()
	}
	ui.cancel = nil
	ui.running = false
	ui.runMu.Unlock()

	ui.setBusy(false)
	ui.syncQueue()
}

// cancelRun stops scheduling new items of the current run
func (ui *RootUI) cancelRun() {
	ui.runMu.Lock()
	defer ui.runMu.Unlock()
	if ui.cancel != nil {
		ui.cancel()
	}
}

func (ui *RootUI) isRunning() bool {
	ui.runMu.Lock()
	defer ui.runMu.Unlock()
	return ui.running
}

func (ui *RootUI) setBusy(busy bool) {
	for _, btn := range []*widget.Button{ui.convertBtn, ui.clearBtn, ui.clearQueueBtn, ui.pasteBtn, ui.addBtn} {
		if busy {
			btn.Disable()
		} else {
			btn.Enable()
		}
	}
	ui.queueList.Refresh()
}

func (ui *RootUI) setStatus(text string) {
	ui.statusLabel.SetText(text)
}

func (ui *RootUI) syncQueue() {
	ui.items = ui.queue.Items()
	ui.queueList.Refresh()
}

// truncateRunes cuts s to at most limit runes without adding an ellipsis
func truncateRunes(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
