package facade

import (
	"errors"
	"fmt"

	"github.com/atomicstack/nvim-switcher/internal/logging/events"
)

// ErrUnsupportedCapability tags diagnostics for window operations the backend
// cannot provide. It is never returned to callers.
var ErrUnsupportedCapability = errors.New("NYI")

func unimplemented(name string) {
	events.Facade.Unimplemented(name, fmt.Errorf("%w: window.%s", ErrUnsupportedCapability, name))
}

func (w *Window) ShowQuickPick(items []string, opts ...interface{}) (string, bool) {
	unimplemented("showQuickPick")
	return "", false
}

func (w *Window) ShowWorkspaceFolderPick(opts ...interface{}) (string, bool) {
	unimplemented("showWorkspaceFolderPick")
	return "", false
}

func (w *Window) ShowOpenDialog(opts ...interface{}) ([]string, bool) {
	unimplemented("showOpenDialog")
	return nil, false
}

func (w *Window) ShowSaveDialog(opts ...interface{}) (string, bool) {
	unimplemented("showSaveDialog")
	return "", false
}

func (w *Window) ShowInputBox(opts ...interface{}) (string, bool) {
	unimplemented("showInputBox")
	return "", false
}

func (w *Window) CreateQuickPick() interface{} {
	unimplemented("createQuickPick")
	return nil
}

func (w *Window) CreateOutputChannel(name string) interface{} {
	unimplemented("createOutputChannel")
	return nil
}

func (w *Window) CreateWebviewPanel(args ...interface{}) interface{} {
	unimplemented("createWebviewPanel")
	return nil
}

func (w *Window) WithScmProgress(task interface{}) interface{} {
	unimplemented("withScmProgress")
	return nil
}

func (w *Window) WithProgress(options, task interface{}) interface{} {
	unimplemented("withProgress")
	return nil
}

func (w *Window) CreateStatusBarItem(args ...interface{}) interface{} {
	unimplemented("createStatusBarItem")
	return nil
}

func (w *Window) CreateTerminal(args ...interface{}) *Terminal {
	unimplemented("createTerminal")
	return nil
}

func (w *Window) RegisterTreeDataProvider(viewID string, provider interface{}) Disposable {
	unimplemented("registerTreeDataProvider")
	return noopDisposable{}
}

func (w *Window) CreateTreeView(viewID string, options interface{}) interface{} {
	unimplemented("createTreeView")
	return nil
}

func (w *Window) RegisterUriHandler(handler interface{}) Disposable {
	unimplemented("registerUriHandler")
	return noopDisposable{}
}

func (w *Window) RegisterWebviewPanelSerializer(viewType string, serializer interface{}) Disposable {
	unimplemented("registerWebviewPanelSerializer")
	return noopDisposable{}
}

func (w *Window) ShowTextDocument(document interface{}, opts ...interface{}) *TextEditor {
	unimplemented("showTextDocument")
	return nil
}
