package ui

import (
	"fmt"
	"sort"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyQueue             = "queue"
	KeyEnterURL          = "enter_url"
	KeyAdd               = "add"
	KeyPaste             = "paste"
	KeyConvert           = "convert"
	KeyClearQueue        = "clear_queue"
	KeyClear             = "clear"
	KeyOpenFolder        = "open_folder"
	KeyRemove            = "remove"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyDownloadDirectory = "download_directory"
	KeyMaxParallel       = "max_parallel"
	KeyTimeout           = "timeout"
	KeyCompression       = "compression"
	KeyAutoClearQueue    = "auto_clear_queue"
	KeyAutoReveal        = "auto_reveal"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeySettingsSaved     = "settings_saved"
	KeyReady             = "ready"
	KeyStarting          = "starting"
	KeyFieldsCleared     = "fields_cleared"
	KeyQueueCleared      = "queue_cleared"
	KeyAddedToQueue      = "added_to_queue"
	KeyAddedManyToQueue  = "added_many_to_queue"
	KeyDuplicateSkipped  = "duplicate_skipped"
	KeyInvalidURL        = "invalid_url"
	KeyClipboardEmpty    = "clipboard_empty"
	KeyQueueEmptyTitle   = "queue_empty_title"
	KeyQueueEmpty        = "queue_empty"
	KeyProcessing        = "processing"
	KeyEncounteredErrors = "encountered_errors"
	KeySuccessTitle      = "success_title"
	KeyErrorsTitle       = "errors_title"
	KeyErrorOpeningFile  = "error_opening_file"
	KeyAlreadyRunning    = "already_running"
	KeyOK                = "ok"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// Textf formats the localized text for key with args
func (l *Localization) Textf(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// languageCodes returns the available language codes in a stable order
func (l *Localization) languageCodes() []string {
	codes := make([]string, 0, len(l.texts))
	for code := range l.GetAvailableLanguages() {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Image URL to PNG Converter",
		KeyQueue:             "Queue:",
		KeyEnterURL:          "Image URL (https://example.com/picture.webp)",
		KeyAdd:               "Add",
		KeyPaste:             "Paste",
		KeyConvert:           "Convert & Save PNGs",
		KeyClearQueue:        "Clear Queue",
		KeyClear:             "Clear",
		KeyOpenFolder:        "Open Folder",
		KeyRemove:            "Remove",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyDownloadDirectory: "Output Directory",
		KeyMaxParallel:       "Max Parallel Conversions",
		KeyTimeout:           "Request Timeout (seconds)",
		KeyCompression:       "PNG Compression",
		KeyAutoClearQueue:    "Clear queue after a run",
		KeyAutoReveal:        "Open folder after a run",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyReady:             "Ready.",
		KeyStarting:          "Starting...",
		KeyFieldsCleared:     "Fields cleared.",
		KeyQueueCleared:      "Queue cleared.",
		KeyAddedToQueue:      "Added to queue: %s",
		KeyAddedManyToQueue:  "Added %d link(s) to queue, skipped %d.",
		KeyDuplicateSkipped:  "Duplicate link skipped: %s",
		KeyInvalidURL:        "Clipboard does not contain a valid HTTP or HTTPS URL. Please copy a valid link starting with http:// or https://.",
		KeyClipboardEmpty:    "Clipboard is empty or not a valid URL.",
		KeyQueueEmptyTitle:   "Queue Empty",
		KeyQueueEmpty:        "Please add at least one URL to the queue.",
		KeyProcessing:        "Processing [%d/%d]: %s",
		KeyEncounteredErrors: "Encountered %d error(s).",
		KeySuccessTitle:      "Success",
		KeyErrorsTitle:       "Completed with Errors",
		KeyErrorOpeningFile:  "Error opening folder",
		KeyAlreadyRunning:    "A conversion is already running.",
		KeyOK:                "OK",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Конвертер изображений в PNG",
		KeyQueue:             "Очередь:",
		KeyEnterURL:          "URL изображения (https://example.com/picture.webp)",
		KeyAdd:               "Добавить",
		KeyPaste:             "Вставить",
		KeyConvert:           "Конвертировать в PNG",
		KeyClearQueue:        "Очистить очередь",
		KeyClear:             "Очистить",
		KeyOpenFolder:        "Открыть папку",
		KeyRemove:            "Удалить",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyDownloadDirectory: "Папка сохранения",
		KeyMaxParallel:       "Макс. параллельных",
		KeyTimeout:           "Таймаут запроса (сек)",
		KeyCompression:       "Сжатие PNG",
		KeyAutoClearQueue:    "Очищать очередь после запуска",
		KeyAutoReveal:        "Открывать папку после запуска",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyReady:             "Готово.",
		KeyStarting:          "Запуск...",
		KeyFieldsCleared:     "Поля очищены.",
		KeyQueueCleared:      "Очередь очищена.",
		KeyAddedToQueue:      "Добавлено в очередь: %s",
		KeyAddedManyToQueue:  "Добавлено ссылок: %d, пропущено: %d.",
		KeyDuplicateSkipped:  "Повторная ссылка пропущена: %s",
		KeyInvalidURL:        "В буфере обмена нет корректного HTTP или HTTPS URL.",
		KeyClipboardEmpty:    "Буфер обмена пуст.",
		KeyQueueEmptyTitle:   "Очередь пуста",
		KeyQueueEmpty:        "Добавьте в очередь хотя бы один URL.",
		KeyProcessing:        "Обработка [%d/%d]: %s",
		KeyEncounteredErrors: "Ошибок: %d.",
		KeySuccessTitle:      "Успех",
		KeyErrorsTitle:       "Завершено с ошибками",
		KeyErrorOpeningFile:  "Ошибка открытия папки",
		KeyAlreadyRunning:    "Конвертация уже выполняется.",
		KeyOK:                "ОК",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Conversor de Imagens para PNG",
		KeyQueue:             "Fila:",
		KeyEnterURL:          "URL da imagem (https://example.com/picture.webp)",
		KeyAdd:               "Adicionar",
		KeyPaste:             "Colar",
		KeyConvert:           "Converter e Salvar PNGs",
		KeyClearQueue:        "Limpar Fila",
		KeyClear:             "Limpar",
		KeyOpenFolder:        "Abrir Pasta",
		KeyRemove:            "Remover",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyDownloadDirectory: "Diretório de Saída",
		KeyMaxParallel:       "Max Conversões Paralelas",
		KeyTimeout:           "Tempo Limite (segundos)",
		KeyCompression:       "Compressão PNG",
		KeyAutoClearQueue:    "Limpar fila após execução",
		KeyAutoReveal:        "Abrir pasta após execução",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Navegar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyReady:             "Pronto.",
		KeyStarting:          "Iniciando...",
		KeyFieldsCleared:     "Campos limpos.",
		KeyQueueCleared:      "Fila limpa.",
		KeyAddedToQueue:      "Adicionado à fila: %s",
		KeyAddedManyToQueue:  "%d link(s) adicionados, %d ignorados.",
		KeyDuplicateSkipped:  "Link duplicado ignorado: %s",
		KeyInvalidURL:        "A área de transferência não contém uma URL HTTP ou HTTPS válida.",
		KeyClipboardEmpty:    "A área de transferência está vazia.",
		KeyQueueEmptyTitle:   "Fila Vazia",
		KeyQueueEmpty:        "Adicione pelo menos uma URL à fila.",
		KeyProcessing:        "Processando [%d/%d]: %s",
		KeyEncounteredErrors: "Ocorreram %d erro(s).",
		KeySuccessTitle:      "Sucesso",
		KeyErrorsTitle:       "Concluído com Erros",
		KeyErrorOpeningFile:  "Erro ao abrir pasta",
		KeyAlreadyRunning:    "Uma conversão já está em andamento.",
		KeyOK:                "OK",
	}
}
