package ui

import (
	"os"
	"strings"

	"github.com/ytget/hz-tuner/internal/model"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle         = "app_title"
	KeyTune             = "tune"
	KeyStop             = "stop"
	KeyOpen             = "open"
	KeyReveal           = "reveal"
	KeyCopyCommand      = "copy_command"
	KeySettings         = "settings"
	KeyFile             = "file"
	KeyLanguage         = "language"
	KeySave             = "save"
	KeyCancel           = "cancel"
	KeyBrowseFile       = "browse_file"
	KeyBrowseFolder     = "browse_folder"
	KeyEnterPath        = "enter_path"
	KeyFrequency        = "frequency"
	KeyFileType         = "file_type"
	KeyKeepFormat       = "keep_format"
	KeyDryRun           = "dry_run"
	KeyFFmpegPath       = "ffmpeg_path"
	KeyFFprobePath      = "ffprobe_path"
	KeyFilterName       = "filter_name"
	KeyContinueOnError  = "continue_on_error"
	KeyAutoReveal       = "auto_reveal"
	KeySettingsSaved    = "settings_saved"
	KeyTuningStarted    = "tuning_started"
	KeyTuningFinished   = "tuning_finished"
	KeyTuningStopped    = "tuning_stopped"
	KeyTuningFailed     = "tuning_failed"
	KeyStopping         = "stopping"
	KeyPleaseEnterPath  = "please_enter_path"
	KeyCommandCopied    = "command_copied"
	KeyErrorOpeningFile = "error_opening_file"
	KeyStatusPending    = "status_pending"
	KeyStatusRunning    = "status_running"
	KeyStatusPlanned    = "status_planned"
	KeyStatusStopped    = "status_stopped"
	KeyStatusCompleted  = "status_completed"
	KeyStatusError      = "status_error"
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

// SetLanguage sets the current language. "system" picks the language from
// the LC_ALL or LANG environment variables.
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// systemLanguage returns the two-letter code of the process locale, "en" if unset
func systemLanguage() string {
	for _, key := range []string{"LC_ALL", "LANG"} {
		value := os.Getenv(key)
		if len(value) >= 2 && value != "C" && value != "POSIX" {
			return strings.ToLower(value[:2])
		}
	}
	return "en"
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

// StatusText returns the localized label of a job status
func (l *Localization) StatusText(status model.JobStatus) string {
	switch status {
	case model.JobStatusPending:
		return l.GetText(KeyStatusPending)
	case model.JobStatusRunning:
		return l.GetText(KeyStatusRunning)
	case model.JobStatusPlanned:
		return l.GetText(KeyStatusPlanned)
	case model.JobStatusStopped:
		return l.GetText(KeyStatusStopped)
	case model.JobStatusCompleted:
		return l.GetText(KeyStatusCompleted)
	case model.JobStatusError:
		return l.GetText(KeyStatusError)
	default:
		return status.String()
	}
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

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:         "Hz Tuner",
		KeyTune:             "Tune",
		KeyStop:             "Stop",
		KeyOpen:             "Open",
		KeyReveal:           "Show in folder",
		KeyCopyCommand:      "Copy command",
		KeySettings:         "Settings",
		KeyFile:             "File",
		KeyLanguage:         "Language",
		KeySave:             "Save",
		KeyCancel:           "Cancel",
		KeyBrowseFile:       "File...",
		KeyBrowseFolder:     "Folder...",
		KeyEnterPath:        "Audio file or folder to tune",
		KeyFrequency:        "Frequency",
		KeyFileType:         "Output format",
		KeyKeepFormat:       "Same as source",
		KeyDryRun:           "Dry run (only show commands)",
		KeyFFmpegPath:       "FFmpeg binary",
		KeyFFprobePath:      "FFprobe binary",
		KeyFilterName:       "Pitch filter",
		KeyContinueOnError:  "Keep going after a failed file",
		KeyAutoReveal:       "Show output folder when done",
		KeySettingsSaved:    "Settings saved successfully!",
		KeyTuningStarted:    "Tuning started",
		KeyTuningFinished:   "Tuning finished",
		KeyTuningStopped:    "Tuning stopped",
		KeyTuningFailed:     "Tuning failed",
		KeyStopping:         "Stopping...",
		KeyPleaseEnterPath:  "Please choose a file or folder",
		KeyCommandCopied:    "Command copied to clipboard",
		KeyErrorOpeningFile: "Error opening file",
		KeyStatusPending:    "Pending",
		KeyStatusRunning:    "Tuning",
		KeyStatusPlanned:    "Planned",
		KeyStatusStopped:    "Stopped",
		KeyStatusCompleted:  "Done",
		KeyStatusError:      "Error",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:         "Hz Тюнер",
		KeyTune:             "Настроить",
		KeyStop:             "Стоп",
		KeyOpen:             "Открыть",
		KeyReveal:           "Показать в папке",
		KeyCopyCommand:      "Копировать команду",
		KeySettings:         "Настройки",
		KeyFile:             "Файл",
		KeyLanguage:         "Язык",
		KeySave:             "Сохранить",
		KeyCancel:           "Отмена",
		KeyBrowseFile:       "Файл...",
		KeyBrowseFolder:     "Папка...",
		KeyEnterPath:        "Аудиофайл или папка",
		KeyFrequency:        "Частота",
		KeyFileType:         "Формат",
		KeyKeepFormat:       "Как у исходника",
		KeyDryRun:           "Пробный запуск (только команды)",
		KeyFFmpegPath:       "Программа FFmpeg",
		KeyFFprobePath:      "Программа FFprobe",
		KeyFilterName:       "Фильтр высоты тона",
		KeyContinueOnError:  "Продолжать после ошибки",
		KeyAutoReveal:       "Открыть папку по завершении",
		KeySettingsSaved:    "Настройки успешно сохранены!",
		KeyTuningStarted:    "Обработка начата",
		KeyTuningFinished:   "Обработка завершена",
		KeyTuningStopped:    "Обработка остановлена",
		KeyTuningFailed:     "Ошибка обработки",
		KeyStopping:         "Остановка...",
		KeyPleaseEnterPath:  "Пожалуйста, выберите файл или папку",
		KeyCommandCopied:    "Команда скопирована",
		KeyErrorOpeningFile: "Ошибка открытия файла",
		KeyStatusPending:    "Ожидание",
		KeyStatusRunning:    "Обработка",
		KeyStatusPlanned:    "Запланировано",
		KeyStatusStopped:    "Остановлено",
		KeyStatusCompleted:  "Готово",
		KeyStatusError:      "Ошибка",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:         "Hz Tuner",
		KeyTune:             "Afinar",
		KeyStop:             "Parar",
		KeyOpen:             "Abrir",
		KeyReveal:           "Mostrar na pasta",
		KeyCopyCommand:      "Copiar comando",
		KeySettings:         "Configurações",
		KeyFile:             "Arquivo",
		KeyLanguage:         "Idioma",
		KeySave:             "Salvar",
		KeyCancel:           "Cancelar",
		KeyBrowseFile:       "Arquivo...",
		KeyBrowseFolder:     "Pasta...",
		KeyEnterPath:        "Arquivo de áudio ou pasta",
		KeyFrequency:        "Frequência",
		KeyFileType:         "Formato de saída",
		KeyKeepFormat:       "Igual ao original",
		KeyDryRun:           "Simulação (apenas comandos)",
		KeyFFmpegPath:       "Binário FFmpeg",
		KeyFFprobePath:      "Binário FFprobe",
		KeyFilterName:       "Filtro de tom",
		KeyContinueOnError:  "Continuar após falha",
		KeyAutoReveal:       "Mostrar pasta ao concluir",
		KeySettingsSaved:    "Configurações salvas com sucesso!",
		KeyTuningStarted:    "Afinação iniciada",
		KeyTuningFinished:   "Afinação concluída",
		KeyTuningStopped:    "Afinação interrompida",
		KeyTuningFailed:     "Falha na afinação",
		KeyStopping:         "Parando...",
		KeyPleaseEnterPath:  "Por favor, escolha um arquivo ou pasta",
		KeyCommandCopied:    "Comando copiado",
		KeyErrorOpeningFile: "Erro ao abrir arquivo",
		KeyStatusPending:    "Pendente",
		KeyStatusRunning:    "Afinando",
		KeyStatusPlanned:    "Planejado",
		KeyStatusStopped:    "Parado",
		KeyStatusCompleted:  "Concluído",
		KeyStatusError:      "Erro",
	}
}
