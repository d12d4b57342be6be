package facade

import "github.com/atomicstack/nvim-switcher/internal/eventhub"

var (
	TopicWindowState             = eventhub.NewTopic[WindowState]("didChangeWindowState")
	TopicActiveTextEditor        = eventhub.NewTopic[*TextEditor]("didChangeActiveTextEditor")
	TopicVisibleTextEditors      = eventhub.NewTopic[[]*TextEditor]("didChangeVisibleTextEditors")
	TopicTextEditorSelection     = eventhub.NewTopic[TextEditorEvent]("didChangeTextEditorSelection")
	TopicTextEditorVisibleRanges = eventhub.NewTopic[TextEditorEvent]("didChangeTextEditorVisibleRanges")
	TopicTextEditorOptions       = eventhub.NewTopic[TextEditorEvent]("didChangeTextEditorOptions")
	TopicTextEditorViewColumn    = eventhub.NewTopic[TextEditorEvent]("didChangeTextEditorViewColumn")
	TopicActiveTerminal          = eventhub.NewTopic[*Terminal]("didChangeActiveTerminal")
	TopicOpenTerminal            = eventhub.NewTopic[*Terminal]("didOpenTerminal")
	TopicCloseTerminal           = eventhub.NewTopic[*Terminal]("didCloseTerminal")
)

func (w *Window) OnDidChangeWindowState(fn func(WindowState)) Disposable {
	return eventhub.Subscribe(w.hub, TopicWindowState, fn)
}

func (w *Window) OnDidChangeActiveTextEditor(fn func(*TextEditor)) Disposable {
	return eventhub.Subscribe(w.hub, TopicActiveTextEditor, fn)
}

func (w *Window) OnDidChangeVisibleTextEditors(fn func([]*TextEditor)) Disposable {
	return eventhub.Subscribe(w.hub, TopicVisibleTextEditors, fn)
}

func (w *Window) OnDidChangeTextEditorSelection(fn func(TextEditorEvent)) Disposable {
	return eventhub.Subscribe(w.hub, TopicTextEditorSelection, fn)
}

func (w *Window) OnDidChangeTextEditorVisibleRanges(fn func(TextEditorEvent)) Disposable {
	return eventhub.Subscribe(w.hub, TopicTextEditorVisibleRanges, fn)
}

func (w *Window) OnDidChangeTextEditorOptions(fn func(TextEditorEvent)) Disposable {
	return eventhub.Subscribe(w.hub, TopicTextEditorOptions, fn)
}

func (w *Window) OnDidChangeTextEditorViewColumn(fn func(TextEditorEvent)) Disposable {
	return eventhub.Subscribe(w.hub, TopicTextEditorViewColumn, fn)
}

func (w *Window) OnDidChangeActiveTerminal(fn func(*Terminal)) Disposable {
	return eventhub.Subscribe(w.hub, TopicActiveTerminal, fn)
}

func (w *Window) OnDidOpenTerminal(fn func(*Terminal)) Disposable {
	return eventhub.Subscribe(w.hub, TopicOpenTerminal, fn)
}

func (w *Window) OnDidCloseTerminal(fn func(*Terminal)) Disposable {
	return eventhub.Subscribe(w.hub, TopicCloseTerminal, fn)
}
