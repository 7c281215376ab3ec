package codeview

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// DefaultCopyFeedback is how long the "copied" acknowledgment stays visible.
const DefaultCopyFeedback = 2 * time.Second

// ErrNoSelection is returned when an action needs a selected file.
var ErrNoSelection = errors.New("codeview: no file selected")

var errClipboardUnsupported = errors.New("codeview: clipboard not available")

// Clipboard is the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// Presenter performs the copy and download actions on a Viewer's selected
// file and tracks the transient "copied" acknowledgment.
type Presenter struct {
	viewer    *Viewer
	clipboard Clipboard
	feedback  time.Duration
	now       func() time.Time

	mu          sync.Mutex
	copiedName  string
	copiedPath  string
	copiedUntil time.Time
}

// NewPresenter binds a presenter to v. A zero feedback uses
// DefaultCopyFeedback; a nil clipboard makes every copy fail softly.
func NewPresenter(v *Viewer, cb Clipboard, feedback time.Duration) *Presenter {
	if feedback <= 0 {
		feedback = DefaultCopyFeedback
	}
	return &Presenter{viewer: v, clipboard: cb, feedback: feedback, now: time.Now}
}

// CopyToClipboard copies the selected file's content verbatim. Clipboard
// failures come back as errors and leave the acknowledgment unset.
func (p *Presenter) CopyToClipboard() error {
	file, ok := p.viewer.Selected()
	if !ok {
		return ErrNoSelection
	}
	if p.clipboard == nil {
		return errClipboardUnsupported
	}

	if err := p.clipboard.WriteAll(file.Content); err != nil {
		return fmt.Errorf("codeview: copying %s: %w", file.FileName, err)
	}

	p.mu.Lock()
	p.copiedName = file.FileName
	p.copiedPath = file.FilePath
	p.copiedUntil = p.now().Add(p.feedback)
	p.mu.Unlock()
	return nil
}

// Copied reports whether the acknowledgment applies to the file selected
// right now. It expires after the feedback window.
func (p *Presenter) Copied() bool {
	file, ok := p.viewer.Selected()
	if !ok {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if file.FileName != p.copiedName || file.FilePath != p.copiedPath {
		return false
	}
	return p.now().Before(p.copiedUntil)
}

// Download saves the selected file into dir under its file name and returns
// the written path. The file handle is closed before returning.
func (p *Presenter) Download(dir string) (string, error) {
	file, ok := p.viewer.Selected()
	if !ok {
		return "", ErrNoSelection
	}
	dest := filepath.Join(dir, DownloadName(file))
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("codeview: creating %s: %w", dest, err)
	}
	_, werr := io.WriteString(f, file.Content)
	cerr := f.Close()
	if werr != nil {
		return "", fmt.Errorf("codeview: writing %s: %w", dest, werr)
	}
	if cerr != nil {
		return "", fmt.Errorf("codeview: closing %s: %w", dest, cerr)
	}
	return dest, nil
}

// ServeDownload writes the selected file as a text/plain attachment.
func (p *Presenter) ServeDownload(w http.ResponseWriter) error {
	file, ok := p.viewer.Selected()
	if !ok {
		return ErrNoSelection
	}
	return WriteDownload(w, file)
}

// WriteDownload writes file to w as a text/plain attachment named after the
// file.
func WriteDownload(w http.ResponseWriter, file CodeFile) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": DownloadName(file)}))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	_, err := io.WriteString(w, file.Content)
	return err
}

// DownloadName is the base name used when saving file.
func DownloadName(file CodeFile) string {
	name := filepath.Base(filepath.FromSlash(file.FileName))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "download.txt"
	}
	return name
}
