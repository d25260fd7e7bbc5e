package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/mp3-tagger/internal/logger"
	"github.com/ytget/mp3-tagger/internal/model"
	"github.com/ytget/mp3-tagger/internal/tagger"
)

// TagFormView renders one tagger.Form. A new view is built for every session.
type TagFormView struct {
	window       fyne.Window
	localization *Localization
	form         *tagger.Form

	downloadDir  func() string
	onDownloaded func(path string)
	onError      func(message string)

	heading       *widget.Label
	labels        map[model.TagField]*widget.Label
	entries       map[model.TagField]*widget.Entry
	coverTitle    *widget.Label
	coverLabel    *widget.Label
	coverBtn      *widget.Button
	clearCoverBtn *widget.Button
	saveBtn       *widget.Button
	downloadBtn   *widget.Button
	resetBtn      *widget.Button
	content       fyne.CanvasObject
}

// NewTagFormView creates the view for form. downloadDir is consulted at every
// download; onDownloaded receives the saved path.
func NewTagFormView(window fyne.Window, localization *Localization, form *tagger.Form,
	downloadDir func() string, onDownloaded func(string), onError func(string)) *TagFormView {

	v := &TagFormView{
		window:       window,
		localization: localization,
		form:         form,
		downloadDir:  downloadDir,
		onDownloaded: onDownloaded,
		onError:      onError,
		labels:       make(map[model.TagField]*widget.Label),
		entries:      make(map[model.TagField]*widget.Entry),
	}

	v.createUI()
	form.SetChangeCallback(func() { fyne.Do(v.refreshState) })
	v.refreshState()
	return v
}

func (v *TagFormView) createUI() {
	l := v.localization
	tags := v.form.Tags()

	v.heading = widget.NewLabelWithStyle(l.GetText(KeyEditTags), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	rows := container.New(layout.NewFormLayout())
	for _, field := range model.TagFields {
		field := field

		label := widget.NewLabel(l.FieldLabel(field))
		entry := widget.NewEntry()
		entry.SetPlaceHolder(l.FieldLabel(field))
		entry.SetText(tags.Get(field))
		entry.OnChanged = func(value string) {
			v.form.SetField(field, value)
		}

		v.labels[field] = label
		v.entries[field] = entry
		rows.Add(label)
		rows.Add(entry)
	}

	// Cover art
	v.coverTitle = widget.NewLabel(l.GetText(KeyCoverArt))
	v.coverLabel = widget.NewLabel(l.GetText(KeyNoCover))
	v.coverLabel.Truncation = fyne.TextTruncateEllipsis
	v.coverBtn = widget.NewButton(IconImage+" "+l.GetText(KeyChooseCover), v.onChooseCover)
	v.clearCoverBtn = widget.NewButton(l.GetText(KeyRemoveCover), v.onClearCover)
	v.clearCoverBtn.Importance = widget.LowImportance
	v.clearCoverBtn.Hide()
	rows.Add(v.coverTitle)
	rows.Add(container.NewBorder(nil, nil, nil, container.NewHBox(v.coverBtn, v.clearCoverBtn), v.coverLabel))

	// Actions
	v.saveBtn = widget.NewButton(l.GetText(KeySaveTags), v.onSave)
	v.saveBtn.Importance = widget.HighImportance

	v.downloadBtn = widget.NewButton(l.GetText(KeyDownload), v.onDownload)
	v.downloadBtn.Importance = widget.SuccessImportance
	v.downloadBtn.Hide()

	v.resetBtn = widget.NewButton(l.GetText(KeyStartOver), v.form.Reset)
	v.resetBtn.Importance = widget.LowImportance

	actions := container.NewHBox(v.saveBtn, v.downloadBtn, layout.NewSpacer(), v.resetBtn)

	v.content = container.NewPadded(container.NewVBox(v.heading, widget.NewSeparator(), rows, widget.NewSeparator(), actions))
}

// Container returns the view's canvas object
func (v *TagFormView) Container() fyne.CanvasObject {
	return v.content
}

// Form returns the form rendered by this view
func (v *TagFormView) Form() *tagger.Form {
	return v.form
}

// RefreshTexts re-applies localized texts; entry contents are left alone
func (v *TagFormView) RefreshTexts() {
	l := v.localization
	v.heading.SetText(l.GetText(KeyEditTags))
	for field, label := range v.labels {
		label.SetText(l.FieldLabel(field))
		v.entries[field].SetPlaceHolder(l.FieldLabel(field))
	}
	v.coverTitle.SetText(l.GetText(KeyCoverArt))
	v.coverBtn.SetText(IconImage + " " + l.GetText(KeyChooseCover))
	v.clearCoverBtn.SetText(l.GetText(KeyRemoveCover))
	v.downloadBtn.SetText(l.GetText(KeyDownload))
	v.resetBtn.SetText(l.GetText(KeyStartOver))
	v.refreshState()
}

// refreshState mirrors the form's submit/download availability. Must run on the UI goroutine.
func (v *TagFormView) refreshState() {
	if v.form.CanSubmit() {
		v.saveBtn.SetText(v.localization.GetText(KeySaveTags))
		v.saveBtn.Enable()
	} else {
		v.saveBtn.SetText(v.localization.GetText(KeySaving))
		v.saveBtn.Disable()
	}

	if v.form.CanDownload() {
		v.downloadBtn.Show()
	} else {
		v.downloadBtn.Hide()
	}

	if cover := v.form.Cover(); cover != nil {
		v.coverLabel.SetText(cover.FileName)
		v.clearCoverBtn.Show()
	} else {
		v.coverLabel.SetText(v.localization.GetText(KeyNoCover))
		v.clearCoverBtn.Hide()
	}
}

func (v *TagFormView) onSave() {
	go func() {
		if err := v.form.Submit(context.Background()); err != nil {
			logger.Debug("Submit finished with error", logger.ErrorField(err))
		}
	}()
}

func (v *TagFormView) onDownload() {
	dir := v.downloadDir()
	go func() {
		path, err := v.form.Download(context.Background(), dir)
		if err != nil {
			logger.Debug("Download finished with error", logger.ErrorField(err))
			return
		}
		if v.onDownloaded != nil {
			fyne.Do(func() { v.onDownloaded(path) })
		}
	}()
}

func (v *TagFormView) onChooseCover() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			logger.Warn("Cover dialog failed", logger.ErrorField(err))
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		cover, err := tagger.ReadCover(reader.URI().Name(), reader.URI().MimeType(), reader)
		if err != nil {
			logger.Warn("Failed to read cover", logger.String("uri", reader.URI().String()), logger.ErrorField(err))
			if v.onError != nil {
				v.onError(v.localization.GetText(KeyCoverReadFailed))
			}
			return
		}
		v.form.SetCover(cover)
		v.refreshState()
	}, v.window)
	fd.SetFilter(storage.NewExtensionFileFilter(CoverExtensions))
	fd.Show()
}

func (v *TagFormView) onClearCover() {
	v.form.SetCover(nil)
	v.refreshState()
}
