package ui

import (
	"context"
	"reflect"

	"github.com/atomicstack/nvim-switcher/internal/bridge"
	"github.com/atomicstack/nvim-switcher/internal/nvim"
	"github.com/atomicstack/nvim-switcher/internal/picker"
	"github.com/atomicstack/nvim-switcher/internal/theme"
	"github.com/atomicstack/nvim-switcher/internal/ui/command"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Source is the editor state the picker reads and acts on.
type Source interface {
	PickerBuffers(ctx context.Context) ([]nvim.Buffer, error)
	CurrentWorkingDirectory(ctx context.Context) (string, error)
	SwitchBuffer(ctx context.Context, buffer nvim.BufferHandle) error
}

// Model implements the Bubble Tea model for the buffer picker.
type Model struct {
	store   *picker.Store
	source  Source
	bridge  *bridge.Bridge
	bus     *command.Bus
	query   textinput.Model
	pending *picker.Entry

	loading     bool
	switching   bool
	errMsg      string
	cwd         string
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the picker UI. A nil bridge uses the default timeout.
func NewModel(source Source, br *bridge.Bridge, width, height int, showFooter bool) *Model {
	if br == nil {
		br = bridge.New()
	}
	m := &Model{
		source:     source,
		bridge:     br,
		bus:        command.New(),
		loading:    true,
		showFooter: showFooter,
	}
	m.store = picker.NewStore(func(e picker.Entry) {
		m.pending = &e
	})
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}
	m.query = newQueryInput()
	m.registerHandlers()
	return m
}

func newQueryInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "» "
	ti.Placeholder = "(type to search)"
	if styles.FilterPrompt != nil {
		ti.PromptStyle = styles.FilterPrompt.Copy()
	}
	if styles.Filter != nil {
		ti.TextStyle = styles.Filter.Copy()
	}
	if styles.FilterPlaceholder != nil {
		ti.PlaceholderStyle = styles.FilterPlaceholder.Copy()
	}
	if styles.Cursor != nil {
		ti.Cursor.Style = styles.Cursor.Copy()
	}
	// A blinking cursor keeps scheduling ticks; the picker is short-lived.
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	return ti
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return m.loadBuffersCmd()
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(buffersLoadedMsg{}):  m.handleBuffersLoadedMsg,
		reflect.TypeOf(command.Result{}):    m.handleCommandResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// State exposes the picker state, mostly for tests.
func (m *Model) State() picker.State {
	return m.store.State()
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}
