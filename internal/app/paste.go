package app

import (
	"context"
	"errors"
	"time"

	"github.com/bethropolis/tidemark/internal/attachment"
	"github.com/bethropolis/tidemark/internal/core/text"
	"github.com/bethropolis/tidemark/internal/logger"
)

// paste asks the image saver for a link on a background goroutine and
// inserts the outcome on the UI goroutine. A paste that resolves after the
// editor was unmounted is dropped by the insertion engine.
func (a *App) paste() {
	rec, _ := a.notes.CurrentNote()
	ev := attachment.PasteEvent{
		NoteName: rec.FileDescription.FileNameWithoutExtension,
		BaseDir:  a.baseDir,
		Time:     time.Now(),
	}
	timeout := a.cfg.Attachments.PasteTimeout

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		link, err := a.saver.SaveImageFromClipboard(ctx, ev)
		a.post(func() { a.finishPaste(link, err) })
	}()
}

// finishPaste runs on the UI goroutine.
func (a *App) finishPaste(link string, err error) {
	switch {
	case err == nil:
		logger.Infof("App: pasted image link %s", link)
		a.insert(link, text.ReplaceSelection)
	case errors.Is(err, attachment.ErrNoImage):
		clip, perr := a.editor.Clipboard().Paste()
		if perr != nil {
			logger.Warnf("App: paste failed: %v", perr)
			a.setStatus("Paste failed: %v", perr)
			return
		}
		if clip == "" {
			return
		}
		a.insert(clip, text.ReplaceSelection)
	default:
		logger.Warnf("App: image paste failed: %v", err)
		a.setStatus("Image paste failed: %v", err)
	}
}

// insert runs the insertion engine against whatever surface is mounted now.
func (a *App) insert(s string, policy text.InsertType) {
	text.InsertOrReplaceAtPosition(s, policy, a.ref, a.editor.Text(), a.onBufferChanged)
}
