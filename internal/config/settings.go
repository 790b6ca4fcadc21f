package config

import (
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"

	"github.com/ytget/img2png/internal/convert"
	"github.com/ytget/img2png/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir        = "download_directory"
	KeyMaxParallel        = "max_parallel_conversions"
	KeyTimeoutSeconds     = "request_timeout_seconds"
	KeyCompression        = "png_compression"
	KeyLanguage           = "app_language"
	KeyAutoClearQueue     = "auto_clear_queue"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
)

// Default values
const (
	DefaultMaxParallel        = 1
	MaxParallelLimit          = 10
	DefaultTimeoutSeconds     = 30
	MaxTimeoutSeconds         = 600
	DefaultCompression        = convert.CompressionDefault
	DefaultLanguage           = "system"
	DefaultAutoClearQueue     = true
	DefaultAutoRevealComplete = false
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured output directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = filepath.Join(os.TempDir(), "Downloads")
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the output directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetMaxParallel returns how many items may be processed at once
func (s *Settings) GetMaxParallel() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallel(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallel sets the parallelism, clamped to 1..MaxParallelLimit
func (s *Settings) SetMaxParallel(count int) {
	s.app.Preferences().SetInt(KeyMaxParallel, clamp(count, 1, MaxParallelLimit))
}

// GetTimeoutSeconds returns the per-request timeout in seconds
func (s *Settings) GetTimeoutSeconds() int {
	value := s.app.Preferences().Int(KeyTimeoutSeconds)
	if value <= 0 {
		s.SetTimeoutSeconds(DefaultTimeoutSeconds)
		return DefaultTimeoutSeconds
	}
	return value
}

// SetTimeoutSeconds sets the per-request timeout
func (s *Settings) SetTimeoutSeconds(seconds int) {
	s.app.Preferences().SetInt(KeyTimeoutSeconds, clamp(seconds, 1, MaxTimeoutSeconds))
}

// GetCompression returns the PNG compression preset
func (s *Settings) GetCompression() string {
	preset := s.app.Preferences().String(KeyCompression)
	if _, err := convert.ParseCompression(preset); preset == "" || err != nil {
		s.SetCompression(DefaultCompression)
		return DefaultCompression
	}
	return preset
}

// SetCompression sets the PNG compression preset; unknown names fall back to the default
func (s *Settings) SetCompression(preset string) {
	if _, err := convert.ParseCompression(preset); err != nil || preset == "" {
		preset = DefaultCompression
	}
	s.app.Preferences().SetString(KeyCompression, preset)
}

// GetCompressionOptions returns available compression presets
func (s *Settings) GetCompressionOptions() []string {
	return convert.CompressionPresets()
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoClearQueue returns whether the queue is emptied once a run starts
func (s *Settings) GetAutoClearQueue() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoClearQueue, DefaultAutoClearQueue)
}

// SetAutoClearQueue sets whether the queue is emptied once a run starts
func (s *Settings) SetAutoClearQueue(clear bool) {
	s.app.Preferences().SetBool(KeyAutoClearQueue, clear)
}

// GetAutoRevealOnComplete returns whether to open the output folder after a run
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to open the output folder after a run
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
