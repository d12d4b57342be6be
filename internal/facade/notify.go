package facade

import (
	"context"
	"fmt"

	"github.com/atomicstack/nvim-switcher/internal/bridge"
	"github.com/atomicstack/nvim-switcher/internal/logging"
	"github.com/atomicstack/nvim-switcher/internal/logging/events"
	"github.com/atomicstack/nvim-switcher/internal/nvim"
)

// ShowInformationMessage shows message in the editor. The call returns
// immediately; no item is ever reported as chosen.
func (w *Window) ShowInformationMessage(message string, rest ...interface{}) (string, bool) {
	return w.show("showInformationMessage", nvim.SeverityInfo, message, rest)
}

// ShowWarningMessage is ShowInformationMessage for warnings.
func (w *Window) ShowWarningMessage(message string, rest ...interface{}) (string, bool) {
	return w.show("showWarningMessage", nvim.SeverityWarning, message, rest)
}

// ShowErrorMessage is ShowInformationMessage for errors.
func (w *Window) ShowErrorMessage(message string, rest ...interface{}) (string, bool) {
	return w.show("showErrorMessage", nvim.SeverityError, message, rest)
}

func (w *Window) show(op string, severity nvim.Severity, message string, rest []interface{}) (string, bool) {
	msg, err := NormalizeMessage(message, rest...)
	if err != nil {
		logging.Error(fmt.Errorf("window.%s: %w", op, err))
		return "", false
	}
	routed := nvim.SeverityInfo
	if w.severityRouting {
		routed = severity
	}
	events.Facade.Notify(op, routed.String(), msg.IsModal, len(msg.ActionItems))

	w.notifies.Add(1)
	go func() {
		defer w.notifies.Done()
		_, err := bridge.Call(w.bridge, "window."+op, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, w.backend.Notify(ctx, msg.Message, routed, msg.ActionItems)
		})
		if err != nil {
			logging.Error(fmt.Errorf("window.%s: %w", op, err))
		}
	}()
	return "", false
}

// SetStatusBarMessage records text in the log; the backend has no status bar
// API. The returned Disposable does nothing.
func (w *Window) SetStatusBarMessage(text string) Disposable {
	events.Facade.StatusBar(text)
	return noopDisposable{}
}
