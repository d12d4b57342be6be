package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/atomicstack/nvim-switcher/internal/backend"
	"github.com/atomicstack/nvim-switcher/internal/bridge"
	"github.com/atomicstack/nvim-switcher/internal/data/dispatcher"
	"github.com/atomicstack/nvim-switcher/internal/eventhub"
	"github.com/atomicstack/nvim-switcher/internal/facade"
	"github.com/atomicstack/nvim-switcher/internal/format/table"
	"github.com/atomicstack/nvim-switcher/internal/logging/events"
	"github.com/atomicstack/nvim-switcher/internal/nvim"
	"github.com/atomicstack/nvim-switcher/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"
)

// Config describes user-provided application options.
type Config struct {
	Address         string
	Width           int
	Height          int
	ShowFooter      bool
	Timeout         time.Duration
	PollInterval    time.Duration
	SeverityRouting bool
	Format          string
}

// Editor is everything the commands need from a connected editor.
type Editor interface {
	ui.Source
	facade.Backend
	backend.Source
	Close() error
}

var connect = func(address string) (Editor, error) {
	reg, err := nvim.Connect(address)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

var runProgram = func(model tea.Model) error {
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// Run bootstraps and executes the Bubble Tea picker.
func Run(cfg Config) error {
	editor, err := connect(cfg.Address)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer editor.Close()

	br := bridge.New(bridge.WithTimeout(cfg.Timeout))
	model := ui.NewModel(editor, br, cfg.Width, cfg.Height, cfg.ShowFooter)
	err = runProgram(model)
	if errors.Is(err, tea.ErrProgramKilled) {
		events.App.Stop("killed")
		return nil
	}
	events.App.Stop("done")
	return err
}

// WindowDump is the printed form of the window projections.
type WindowDump struct {
	State              facade.WindowState   `json:"state" yaml:"state"`
	ActiveTextEditor   *facade.TextEditor   `json:"activeTextEditor" yaml:"activeTextEditor"`
	VisibleTextEditors []*facade.TextEditor `json:"visibleTextEditors" yaml:"visibleTextEditors"`
	ActiveTerminal     *facade.Terminal     `json:"activeTerminal" yaml:"activeTerminal"`
	Terminals          []*facade.Terminal   `json:"terminals" yaml:"terminals"`
}

// DumpWindow prints the window projections once in cfg.Format.
func DumpWindow(cfg Config, out io.Writer) error {
	editor, err := connect(cfg.Address)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer editor.Close()

	win := facade.New(editor, bridge.New(bridge.WithTimeout(cfg.Timeout)), nil)
	defer win.Close()

	dump := WindowDump{
		State:              win.State(),
		ActiveTextEditor:   win.ActiveTextEditor(),
		VisibleTextEditors: win.VisibleTextEditors(),
		ActiveTerminal:     win.ActiveTerminal(),
		Terminals:          win.Terminals(),
	}
	if cfg.Format == "table" {
		return table.Write(out, dump.rows(), nil)
	}
	return encode(out, cfg.Format, dump)
}

func (d WindowDump) rows() [][]string {
	editor := "-"
	if d.ActiveTextEditor != nil {
		editor = strconv.Itoa(int(d.ActiveTextEditor.Window))
	}
	visible := make([]string, 0, len(d.VisibleTextEditors))
	for _, e := range d.VisibleTextEditors {
		visible = append(visible, strconv.Itoa(int(e.Window)))
	}
	terminal := "-"
	if d.ActiveTerminal != nil {
		terminal = strconv.Itoa(int(d.ActiveTerminal.Buffer))
	}
	terminals := make([]string, 0, len(d.Terminals))
	for _, term := range d.Terminals {
		terminals = append(terminals, strconv.Itoa(int(term.Buffer)))
	}
	return [][]string{
		{"focused", strconv.FormatBool(d.State.Focused)},
		{"active editor", editor},
		{"visible editors", strings.Join(visible, ", ")},
		{"active terminal", terminal},
		{"terminals", strings.Join(terminals, ", ")},
	}
}

func encode(out io.Writer, format string, v interface{}) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "", "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// WatchEvent is one line of Watch output.
type WatchEvent struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Watch polls the editor and prints every window event as a JSON line until
// ctx is done.
func Watch(ctx context.Context, cfg Config, out io.Writer) error {
	editor, err := connect(cfg.Address)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer editor.Close()

	br := bridge.New(bridge.WithTimeout(cfg.Timeout))
	hub := eventhub.New()
	win := facade.New(editor, br, hub, facade.WithSeverityRouting(cfg.SeverityRouting))
	defer win.Close()

	var mu sync.Mutex
	enc := json.NewEncoder(out)
	write := func(name string) func(interface{}) {
		return func(payload interface{}) {
			mu.Lock()
			defer mu.Unlock()
			if err := enc.Encode(WatchEvent{Event: name, Payload: payload}); err != nil {
				events.Action.Error(err)
			}
		}
	}
	subs := []facade.Disposable{
		win.OnDidChangeActiveTextEditor(func(e *facade.TextEditor) { write(facade.TopicActiveTextEditor.Name)(e) }),
		win.OnDidChangeVisibleTextEditors(func(e []*facade.TextEditor) { write(facade.TopicVisibleTextEditors.Name)(e) }),
		win.OnDidChangeActiveTerminal(func(t *facade.Terminal) { write(facade.TopicActiveTerminal.Name)(t) }),
		win.OnDidOpenTerminal(func(t *facade.Terminal) { write(facade.TopicOpenTerminal.Name)(t) }),
		win.OnDidCloseTerminal(func(t *facade.Terminal) { write(facade.TopicCloseTerminal.Name)(t) }),
	}
	defer func() {
		for _, sub := range subs {
			sub.Dispose()
		}
	}()

	watcher := backend.NewWatcher(editor, br, cfg.PollInterval)
	done := make(chan struct{})
	go func() {
		defer close(done)
		dispatcher.New(hub).Run(watcher.Events())
	}()

	<-ctx.Done()
	watcher.Stop()
	<-done
	events.App.Stop("watch")
	return nil
}
