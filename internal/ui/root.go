package ui

import (
	"context"
	"io"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/mp3-tagger/internal/api"
	"github.com/ytget/mp3-tagger/internal/config"
	"github.com/ytget/mp3-tagger/internal/logger"
	"github.com/ytget/mp3-tagger/internal/model"
	"github.com/ytget/mp3-tagger/internal/platform"
	"github.com/ytget/mp3-tagger/internal/tagger"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	settings     *config.Settings
	client       *api.Client
	controller   *tagger.Controller
	theme        *tagger.ThemeController
	localization *Localization

	themeBtn    *widget.Button
	settingsBtn *widget.Button
	titleLabel  *widget.Label

	// Session views; body shows exactly one of them
	body        *fyne.Container
	uploadPanel *UploadPanel
	formView    *TagFormView

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, settings *config.Settings, client *api.Client) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		settings:     settings,
		client:       client,
		localization: localization,
	}

	ui.controller = tagger.NewController(client, ui.onSessionError)
	ui.controller.SetStateCallback(func(model.SessionState) {
		fyne.Do(ui.render)
	})
	ui.controller.SetSavedCallback(func(string) {
		ui.showToast(localization.Message(tagger.MsgTagsSaved), "", "")
	})

	ui.theme = tagger.NewThemeController(settings, func(t model.Theme) {
		ApplyTheme(app, t)
	})

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.setupUI()

	window.SetOnDropped(ui.onDropped)
	window.SetOnClosed(ui.Close)

	logger.Info("UI initialized",
		logger.String("server_url", client.BaseURL()),
		logger.String("theme", ui.theme.Theme().String()))
	return ui
}

// Controller returns the session controller
func (ui *RootUI) Controller() *tagger.Controller {
	return ui.controller
}

// Close ends the active session; its cleanup request is started in the background
func (ui *RootUI) Close() {
	ui.controller.Close()
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.titleLabel = widget.NewLabelWithStyle(ui.localization.GetText(KeyAppTitle), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	ui.themeBtn = widget.NewButton(ui.themeIcon(), ui.onToggleTheme)
	ui.themeBtn.Importance = widget.LowImportance

	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.settingsBtn.Importance = widget.LowImportance

	header := container.NewHBox(ui.titleLabel, layout.NewSpacer(), ui.themeBtn, ui.settingsBtn)

	// Notification panel under the header (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationLabel.Wrapping = fyne.TextWrapWord
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	closeBtn := widget.NewButton(IconClose, ui.hideNotification)
	closeBtn.Importance = widget.LowImportance
	ui.notificationContainer = container.NewBorder(nil, nil, ui.notificationSpinner, closeBtn, ui.notificationLabel)
	ui.notificationContainer.Hide()

	top := container.NewVBox(header, widget.NewSeparator(), ui.notificationContainer)

	ui.uploadPanel = NewUploadPanel(ui.window, ui.localization, ui.uploadFile)
	ui.body = container.NewStack(ui.uploadPanel.Container())

	ui.window.SetContent(container.NewBorder(top, nil, nil, nil, ui.body))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	themeItem := fyne.NewMenuItem(ui.themeMenuLabel(), ui.onToggleTheme)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyAppTitle), settingsItem, themeItem),
		languageMenu,
	))
}

// render shows the view matching the controller state. Must run on the UI goroutine.
func (ui *RootUI) render() {
	form := ui.controller.Form()

	if form == nil {
		if ui.formView == nil {
			return
		}
		ui.formView = nil
		ui.body.Objects = []fyne.CanvasObject{ui.uploadPanel.Container()}
		ui.body.Refresh()
		return
	}

	if ui.formView != nil && ui.formView.Form() == form {
		return
	}
	ui.formView = NewTagFormView(ui.window, ui.localization, form,
		ui.settings.GetDownloadDirectory, ui.onDownloaded, ui.controller.Notify)
	ui.body.Objects = []fyne.CanvasObject{ui.formView.Container()}
	ui.body.Refresh()
	ui.hideNotification()
}

// uploadFile starts an upload in the background and closes r when done
func (ui *RootUI) uploadFile(name string, r io.ReadCloser) {
	ui.showNotification(ui.localization.GetText(KeyUploading)+" "+name, true)

	go func() {
		defer r.Close()
		if err := ui.controller.Upload(context.Background(), name, r); err != nil {
			logger.Debug("Upload finished with error", logger.String("file_name", name), logger.ErrorField(err))
			return
		}
		ui.hideNotification()
	}()
}

// onDropped forwards drops to the upload panel while no file is being edited
func (ui *RootUI) onDropped(pos fyne.Position, uris []fyne.URI) {
	if ui.controller.State() != model.SessionIdle {
		logger.Debug("Drop ignored while editing", logger.Int("count", len(uris)))
		return
	}
	ui.uploadPanel.HandleDrop(pos, uris)
}

// onSessionError receives every user-facing error of the session
func (ui *RootUI) onSessionError(message string) {
	text := ui.localization.Message(message)
	ui.showNotification(text, false)
	ui.showToast(text, "", "")
}

// onDownloaded announces a saved file with a reveal action
func (ui *RootUI) onDownloaded(path string) {
	ui.showToast(ui.localization.GetText(KeySavedTo), path, path)
}

// onToggleTheme switches between light and dark
func (ui *RootUI) onToggleTheme() {
	ui.theme.Toggle()
	ui.uploadPanel.RefreshTheme()
	ui.themeBtn.SetText(ui.themeIcon())
	ui.createMenu()
}

func (ui *RootUI) themeIcon() string {
	if ui.theme.Theme().IsDark() {
		return IconSun
	}
	return IconMoon
}

func (ui *RootUI) themeMenuLabel() string {
	if ui.theme.Theme().IsDark() {
		return ui.localization.GetText(KeyLightMode)
	}
	return ui.localization.GetText(KeyDarkMode)
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.onSettingsSaved).Show()
}

// onSettingsSaved applies stored settings to the running client and texts
func (ui *RootUI) onSettingsSaved() {
	ui.client.SetBaseURL(ui.settings.GetServerURL())
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.refreshUITexts()
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.titleLabel.SetText(ui.localization.GetText(KeyAppTitle))
	ui.uploadPanel.RefreshTexts()
	if ui.formView != nil {
		ui.formView.RefreshTexts()
	}

	// Recreate menu to update labels and checkmarks
	ui.createMenu()
}

// onRevealFile opens the system file manager at filePath
func (ui *RootUI) onRevealFile(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		logger.Error("Failed to reveal file", logger.String("path", filePath), logger.ErrorField(err))
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error(), false)
	}
}

// showNotification shows a message in the notification panel
func (ui *RootUI) showNotification(message string, spinning bool) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		if spinning {
			ui.notificationSpinner.Show()
		} else {
			ui.notificationSpinner.Hide()
		}
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})
}

// hideNotification hides the notification panel
func (ui *RootUI) hideNotification() {
	if ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationSpinner.Hide()
		ui.notificationContainer.Hide()
	})
}

// showToast shows a transient popup in the top-right corner. When revealPath
// is set, the toast offers to reveal that file.
func (ui *RootUI) showToast(title, message, revealPath string) {
	fyne.Do(func() {
		titleLabel := widget.NewLabel(title)
		titleLabel.TextStyle = fyne.TextStyle{Bold: true}
		titleLabel.Truncation = fyne.TextTruncateEllipsis

		var toastPopup *widget.PopUp
		closeBtn := widget.NewButton(IconClose, func() {
			toastPopup.Hide()
		})
		closeBtn.Importance = widget.LowImportance

		content := container.NewVBox(container.NewBorder(nil, nil, nil, closeBtn, titleLabel))

		if message != "" {
			messageLabel := widget.NewLabel(message)
			messageLabel.Truncation = fyne.TextTruncateEllipsis
			content.Add(messageLabel)
		}

		if revealPath != "" {
			revealBtn := widget.NewButton(IconFolder+" "+ui.localization.GetText(KeyReveal), func() {
				ui.onRevealFile(revealPath)
				toastPopup.Hide()
			})
			revealBtn.Importance = widget.HighImportance
			content.Add(container.NewHBox(revealBtn))
		}

		toastPopup = widget.NewPopUp(content, ui.window.Canvas())

		canvasSize := ui.window.Canvas().Size()
		toastSize := fyne.NewSize(ToastWidth, ToastHeight)
		toastPopup.Resize(toastSize)
		toastPopup.Move(fyne.NewPos(canvasSize.Width-toastSize.Width-ToastMargin, ToastMargin))
		toastPopup.Show()

		// Auto-hide after configured time
		time.AfterFunc(ToastAutoHide, func() {
			fyne.Do(toastPopup.Hide)
		})
	})
}
