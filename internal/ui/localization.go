package ui

import (
	"sync"

	"github.com/ytget/mp3-tagger/internal/model"
	"github.com/ytget/mp3-tagger/internal/tagger"
)

// Localization manages UI text translations
// Texts are read from background session callbacks, so the language is guarded.
type Localization struct {
	mu              sync.RWMutex
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeySettings          = "settings"
	KeyLanguage          = "language"
	KeyServerURL         = "server_url"
	KeyDownloadDirectory = "download_directory"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeySettingsSaved     = "settings_saved"
	KeyDropHint          = "drop_hint"
	KeyChooseFile        = "choose_file"
	KeyUploading         = "uploading"
	KeyEditTags          = "edit_tags"
	KeyTitle             = "title"
	KeyArtist            = "artist"
	KeyAlbum             = "album"
	KeyYear              = "year"
	KeyGenre             = "genre"
	KeyCoverArt          = "cover_art"
	KeyChooseCover       = "choose_cover"
	KeyRemoveCover       = "remove_cover"
	KeyNoCover           = "no_cover"
	KeySaveTags          = "save_tags"
	KeySaving            = "saving"
	KeyDownload          = "download"
	KeyStartOver         = "start_over"
	KeyReveal            = "reveal"
	KeySavedTo           = "saved_to"
	KeyDarkMode          = "dark_mode"
	KeyLightMode         = "light_mode"
	KeyErrorOpeningFile  = "error_opening_file"
	KeyCoverReadFailed   = "cover_read_failed"
	KeyInvalidFile       = "invalid_file"
	KeyUploadFailed      = "upload_failed"
	KeySaveFailed        = "save_failed"
	KeyDownloadFailed    = "download_failed"
	KeyTagsSaved         = "tags_saved"
)

// messageKeys maps session messages to their text keys
var messageKeys = map[string]string{
	tagger.MsgInvalidFile:    KeyInvalidFile,
	tagger.MsgUploadFailed:   KeyUploadFailed,
	tagger.MsgSaveFailed:     KeySaveFailed,
	tagger.MsgDownloadFailed: KeyDownloadFailed,
	tagger.MsgTagsSaved:      KeyTagsSaved,
}

// fieldKeys maps tag fields to their label keys
var fieldKeys = map[model.TagField]string{
	model.FieldTitle:  KeyTitle,
	model.FieldArtist: KeyArtist,
	model.FieldAlbum:  KeyAlbum,
	model.FieldYear:   KeyYear,
	model.FieldGenre:  KeyGenre,
}

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
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.mu.Lock()
		l.currentLanguage = lang
		l.mu.Unlock()
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.GetCurrentLanguage()]; exists {
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

	// Final fallback - return key itself
	return key
}

// Message translates a session message. Unknown messages are returned as is.
func (l *Localization) Message(msg string) string {
	if key, ok := messageKeys[msg]; ok {
		return l.GetText(key)
	}
	return msg
}

// FieldLabel returns the label of a tag field
func (l *Localization) FieldLabel(field model.TagField) string {
	if key, ok := fieldKeys[field]; ok {
		return l.GetText(key)
	}
	return field.Label()
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
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
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "MP3 Tagger",
		KeySettings:          "Settings",
		KeyLanguage:          "Language",
		KeyServerURL:         "Server URL",
		KeyDownloadDirectory: "Download Directory",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyDropHint:          "Drag and drop an MP3 file here, or click to browse",
		KeyChooseFile:        "Choose MP3",
		KeyUploading:         "Uploading...",
		KeyEditTags:          "Edit Tags",
		KeyTitle:             "Title",
		KeyArtist:            "Artist",
		KeyAlbum:             "Album",
		KeyYear:              "Year",
		KeyGenre:             "Genre",
		KeyCoverArt:          "Cover Art",
		KeyChooseCover:       "Choose Image",
		KeyRemoveCover:       "Remove",
		KeyNoCover:           "No image selected",
		KeySaveTags:          "Save Tags",
		KeySaving:            "Saving...",
		KeyDownload:          "Download",
		KeyStartOver:         "Start Over",
		KeyReveal:            "Reveal",
		KeySavedTo:           "Saved to",
		KeyDarkMode:          "Dark mode",
		KeyLightMode:         "Light mode",
		KeyErrorOpeningFile:  "Error opening file",
		KeyCoverReadFailed:   "Failed to read image",
		KeyInvalidFile:       "Please upload an MP3 file",
		KeyUploadFailed:      "Failed to upload file",
		KeySaveFailed:        "Failed to save tags",
		KeyDownloadFailed:    "Failed to download file",
		KeyTagsSaved:         "Tags saved successfully",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "MP3 Теги",
		KeySettings:          "Настройки",
		KeyLanguage:          "Язык",
		KeyServerURL:         "Адрес сервера",
		KeyDownloadDirectory: "Папка загрузки",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyDropHint:          "Перетащите MP3 файл сюда или нажмите для выбора",
		KeyChooseFile:        "Выбрать MP3",
		KeyUploading:         "Загрузка...",
		KeyEditTags:          "Редактирование тегов",
		KeyTitle:             "Название",
		KeyArtist:            "Исполнитель",
		KeyAlbum:             "Альбом",
		KeyYear:              "Год",
		KeyGenre:             "Жанр",
		KeyCoverArt:          "Обложка",
		KeyChooseCover:       "Выбрать изображение",
		KeyRemoveCover:       "Убрать",
		KeyNoCover:           "Изображение не выбрано",
		KeySaveTags:          "Сохранить теги",
		KeySaving:            "Сохранение...",
		KeyDownload:          "Скачать",
		KeyStartOver:         "Начать заново",
		KeyReveal:            "Показать",
		KeySavedTo:           "Сохранено в",
		KeyDarkMode:          "Тёмная тема",
		KeyLightMode:         "Светлая тема",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
		KeyCoverReadFailed:   "Не удалось прочитать изображение",
		KeyInvalidFile:       "Пожалуйста, загрузите MP3 файл",
		KeyUploadFailed:      "Не удалось загрузить файл",
		KeySaveFailed:        "Не удалось сохранить теги",
		KeyDownloadFailed:    "Не удалось скачать файл",
		KeyTagsSaved:         "Теги успешно сохранены",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "MP3 Tagger",
		KeySettings:          "Configurações",
		KeyLanguage:          "Idioma",
		KeyServerURL:         "URL do Servidor",
		KeyDownloadDirectory: "Diretório de Download",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Navegar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyDropHint:          "Arraste um arquivo MP3 para cá ou clique para escolher",
		KeyChooseFile:        "Escolher MP3",
		KeyUploading:         "Enviando...",
		KeyEditTags:          "Editar Tags",
		KeyTitle:             "Título",
		KeyArtist:            "Artista",
		KeyAlbum:             "Álbum",
		KeyYear:              "Ano",
		KeyGenre:             "Gênero",
		KeyCoverArt:          "Capa",
		KeyChooseCover:       "Escolher Imagem",
		KeyRemoveCover:       "Remover",
		KeyNoCover:           "Nenhuma imagem selecionada",
		KeySaveTags:          "Salvar Tags",
		KeySaving:            "Salvando...",
		KeyDownload:          "Baixar",
		KeyStartOver:         "Recomeçar",
		KeyReveal:            "Mostrar",
		KeySavedTo:           "Salvo em",
		KeyDarkMode:          "Modo escuro",
		KeyLightMode:         "Modo claro",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
		KeyCoverReadFailed:   "Falha ao ler imagem",
		KeyInvalidFile:       "Por favor, envie um arquivo MP3",
		KeyUploadFailed:      "Falha ao enviar arquivo",
		KeySaveFailed:        "Falha ao salvar tags",
		KeyDownloadFailed:    "Falha ao baixar arquivo",
		KeyTagsSaved:         "Tags salvas com sucesso",
	}
}
