package config

import (
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestDownloadDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	dir := settings.GetDownloadDirectory()
	if dir == "" {
		t.Error("Download directory should not be empty")
	}

	customDir := "/custom/images"
	settings.SetDownloadDirectory(customDir)

	if got := settings.GetDownloadDirectory(); got != customDir {
		t.Errorf("Expected download directory %s, got %s", customDir, got)
	}
}

func TestMaxParallel(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetMaxParallel(); got != DefaultMaxParallel {
		t.Errorf("Expected default max parallel %d, got %d", DefaultMaxParallel, got)
	}

	settings.SetMaxParallel(4)
	if got := settings.GetMaxParallel(); got != 4 {
		t.Errorf("Expected max parallel 4, got %d", got)
	}

	settings.SetMaxParallel(0)
	if settings.GetMaxParallel() != 1 {
		t.Error("Max parallel should be clamped to minimum 1")
	}

	settings.SetMaxParallel(15)
	if settings.GetMaxParallel() != MaxParallelLimit {
		t.Errorf("Max parallel should be clamped to maximum %d", MaxParallelLimit)
	}
}

func TestTimeoutSeconds(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetTimeoutSeconds(); got != DefaultTimeoutSeconds {
		t.Errorf("Expected default timeout %d, got %d", DefaultTimeoutSeconds, got)
	}

	settings.SetTimeoutSeconds(90)
	if got := settings.GetTimeoutSeconds(); got != 90 {
		t.Errorf("Expected timeout 90, got %d", got)
	}

	settings.SetTimeoutSeconds(100000)
	if got := settings.GetTimeoutSeconds(); got != MaxTimeoutSeconds {
		t.Errorf("Expected timeout clamped to %d, got %d", MaxTimeoutSeconds, got)
	}
}

func TestCompression(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetCompression(); got != DefaultCompression {
		t.Errorf("Expected default compression %s, got %s", DefaultCompression, got)
	}

	settings.SetCompression("best")
	if got := settings.GetCompression(); got != "best" {
		t.Errorf("Expected compression best, got %s", got)
	}

	settings.SetCompression("ultra")
	if got := settings.GetCompression(); got != DefaultCompression {
		t.Errorf("Unknown preset should fall back to %s, got %s", DefaultCompression, got)
	}

	if len(settings.GetCompressionOptions()) != 4 {
		t.Errorf("Expected 4 compression options, got %v", settings.GetCompressionOptions())
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if lang := settings.GetLanguage(); lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	settings.SetLanguage("en")
	if lang := settings.GetLanguage(); lang != "en" {
		t.Errorf("Expected language 'en', got %s", lang)
	}
}

func TestToggles(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetAutoClearQueue() != DefaultAutoClearQueue {
		t.Error("Unexpected default for auto clear queue")
	}
	if settings.GetAutoRevealOnComplete() != DefaultAutoRevealComplete {
		t.Error("Unexpected default for auto reveal")
	}

	settings.SetAutoClearQueue(false)
	settings.SetAutoRevealOnComplete(true)
	if settings.GetAutoClearQueue() || !settings.GetAutoRevealOnComplete() {
		t.Error("Toggles were not persisted")
	}
}

func TestGetLanguageOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	options := settings.GetLanguageOptions()

	expectedLangs := []string{"system", "en", "ru", "pt"}
	for _, lang := range expectedLangs {
		if _, exists := options[lang]; !exists {
			t.Errorf("Expected language option '%s' to exist", lang)
		}
	}

	if len(options) != len(expectedLangs) {
		t.Errorf("Expected %d language options, got %d", len(expectedLangs), len(options))
	}
}
