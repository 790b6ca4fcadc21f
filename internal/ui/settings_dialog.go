package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/img2png/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	downloadDirEntry  *widget.Entry
	maxParallelEntry  *widget.Entry
	timeoutEntry      *widget.Entry
	compressionSelect *widget.Select
	languageSelect    *widget.Select
	autoClearCheck    *widget.Check
	autoRevealCheck   *widget.Check
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	text := sd.localization.GetText

	sd.downloadDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(text(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.maxParallelEntry = widget.NewEntry()
	sd.maxParallelEntry.SetPlaceHolder("1-10")

	sd.timeoutEntry = widget.NewEntry()
	sd.timeoutEntry.SetPlaceHolder(strconv.Itoa(config.DefaultTimeoutSeconds))

	sd.compressionSelect = widget.NewSelect(sd.settings.GetCompressionOptions(), nil)

	sd.languageSelect = widget.NewSelect([]string{"system", "en", "ru", "pt"}, nil)

	sd.autoClearCheck = widget.NewCheck(text(KeyAutoClearQueue), nil)
	sd.autoRevealCheck = widget.NewCheck(text(KeyAutoReveal), nil)

	form := widget.NewForm(
		widget.NewFormItem(text(KeyDownloadDirectory), downloadDirRow),
		widget.NewFormItem(text(KeyMaxParallel), sd.maxParallelEntry),
		widget.NewFormItem(text(KeyTimeout), sd.timeoutEntry),
		widget.NewFormItem(text(KeyCompression), sd.compressionSelect),
		widget.NewFormItem(text(KeyLanguage), sd.languageSelect),
	)

	content := container.NewVBox(form, widget.NewSeparator(), sd.autoClearCheck, sd.autoRevealCheck)

	sd.dialog = dialog.NewCustomConfirm(
		text(KeySettings),
		text(KeySave),
		text(KeyCancel),
		content,
		sd.onSave,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(SettingsWidth, SettingsHeight))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.maxParallelEntry.SetText(strconv.Itoa(sd.settings.GetMaxParallel()))
	sd.timeoutEntry.SetText(strconv.Itoa(sd.settings.GetTimeoutSeconds()))
	sd.compressionSelect.SetSelected(sd.settings.GetCompression())
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
	sd.autoClearCheck.SetChecked(sd.settings.GetAutoClearQueue())
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.apply()

	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

// apply writes the form values back to settings; invalid numbers are ignored
func (sd *SettingsDialog) apply() {
	if dir := sd.downloadDirEntry.Text; dir != "" {
		sd.settings.SetDownloadDirectory(config.ExpandPath(dir))
	}
	if n, err := strconv.Atoi(sd.maxParallelEntry.Text); err == nil {
		sd.settings.SetMaxParallel(n)
	}
	if n, err := strconv.Atoi(sd.timeoutEntry.Text); err == nil {
		sd.settings.SetTimeoutSeconds(n)
	}
	if sd.compressionSelect.Selected != "" {
		sd.settings.SetCompression(sd.compressionSelect.Selected)
	}
	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}
	sd.settings.SetAutoClearQueue(sd.autoClearCheck.Checked)
	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)
}
