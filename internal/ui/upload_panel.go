package ui

import (
	"io"
	"os"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/mp3-tagger/internal/logger"
	"github.com/ytget/mp3-tagger/internal/model"
)

// UploadPanel is the Idle view: a drop area with a file picker button.
// Selected and dropped files are handed to onFile, which owns closing them.
type UploadPanel struct {
	window       fyne.Window
	localization *Localization
	onFile       func(name string, r io.ReadCloser)

	icon      *canvas.Text
	border    *canvas.Rectangle
	hintLabel *widget.Label
	chooseBtn *widget.Button
	content   fyne.CanvasObject
}

// NewUploadPanel creates the upload panel
func NewUploadPanel(window fyne.Window, localization *Localization, onFile func(name string, r io.ReadCloser)) *UploadPanel {
	p := &UploadPanel{
		window:       window,
		localization: localization,
		onFile:       onFile,
	}
	p.createUI()
	return p
}

func (p *UploadPanel) createUI() {
	p.icon = canvas.NewText(IconMusic, theme.Color(theme.ColorNameForeground))
	p.icon.TextSize = DropIconSize
	p.icon.Alignment = fyne.TextAlignCenter

	p.hintLabel = widget.NewLabel(p.localization.GetText(KeyDropHint))
	p.hintLabel.Alignment = fyne.TextAlignCenter
	p.hintLabel.Wrapping = fyne.TextWrapWord

	p.chooseBtn = widget.NewButton(p.localization.GetText(KeyChooseFile), p.onChoose)
	p.chooseBtn.Importance = widget.HighImportance

	p.border = canvas.NewRectangle(theme.Color(theme.ColorNameBackground))
	p.border.StrokeColor = theme.Color(theme.ColorNameInputBorder)
	p.border.StrokeWidth = 2
	p.border.CornerRadius = 8
	p.border.SetMinSize(fyne.NewSize(0, DropAreaMinHeight))

	inner := container.NewVBox(p.icon, p.hintLabel, container.NewCenter(p.chooseBtn))
	p.content = container.NewPadded(container.NewStack(p.border, container.NewCenter(inner)))
}

// Container returns the panel's canvas object
func (p *UploadPanel) Container() fyne.CanvasObject {
	return p.content
}

// RefreshTexts re-applies localized texts
func (p *UploadPanel) RefreshTexts() {
	p.hintLabel.SetText(p.localization.GetText(KeyDropHint))
	p.chooseBtn.SetText(p.localization.GetText(KeyChooseFile))
}

// RefreshTheme re-reads the drop area colours from the current theme.
// Canvas primitives keep the colours they were created with.
func (p *UploadPanel) RefreshTheme() {
	p.icon.Color = theme.Color(theme.ColorNameForeground)
	p.border.FillColor = theme.Color(theme.ColorNameBackground)
	p.border.StrokeColor = theme.Color(theme.ColorNameInputBorder)
	p.icon.Refresh()
	p.border.Refresh()
}

// onChoose opens the file picker filtered to MP3 files
func (p *UploadPanel) onChoose() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			logger.Warn("File dialog failed", logger.ErrorField(err))
			return
		}
		if reader == nil {
			return // cancelled
		}
		p.onFile(reader.URI().Name(), reader)
	}, p.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{model.MP3Extension}))
	fd.Show()
}

// HandleDrop accepts the first of the dropped URIs. The file is opened only
// when the upload starts reading it.
func (p *UploadPanel) HandleDrop(_ fyne.Position, uris []fyne.URI) {
	if len(uris) == 0 {
		return
	}
	if len(uris) > 1 {
		logger.Debug("Multiple files dropped, using the first", logger.Int("count", len(uris)))
	}

	uri := uris[0]
	p.onFile(uri.Name(), &lazyURIReader{uri: uri})
}

// lazyURIReader opens its URI on the first Read. Read and Close may be
// called from different goroutines; a Read after Close never opens the file.
type lazyURIReader struct {
	uri fyne.URI

	mu     sync.Mutex
	rc     io.ReadCloser
	err    error
	closed bool
}

func (l *lazyURIReader) Read(b []byte) (int, error) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return 0, os.ErrClosed
	}
	if l.rc == nil && l.err == nil {
		l.rc, l.err = storage.Reader(l.uri)
	}
	rc, err := l.rc, l.err
	l.mu.Unlock()

	if err != nil {
		return 0, err
	}
	return rc.Read(b)
}

func (l *lazyURIReader) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	if l.rc == nil {
		return nil
	}
	return l.rc.Close()
}
