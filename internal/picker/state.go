package picker

import (
	"github.com/atomicstack/nvim-switcher/internal/logging/events"
	"github.com/atomicstack/nvim-switcher/internal/nvim"
)

// MaxCandidates caps how many entries the picker offers at once.
const MaxCandidates = 10

// State is the picker's complete state. Reducers return a new State and never
// modify the receiver's slices.
type State struct {
	Query      string
	Baseline   []Entry
	Candidates []Entry
	Visible    bool
	Selected   int
}

// Show replaces the baseline with a fresh disambiguated listing and opens the
// picker with an empty query.
func (s State) Show(buffers []nvim.Buffer, cwd string) State {
	baseline := Disambiguate(buffers, cwd)
	return State{
		Baseline:   baseline,
		Candidates: FilterAndRank(baseline, "", displayName, MaxCandidates),
		Visible:    true,
	}
}

// ChangeQuery re-filters the cached baseline. It has no effect while hidden.
// The selection is clamped to the new candidate range.
func (s State) ChangeQuery(query string) State {
	if !s.Visible {
		return s
	}
	s.Query = query
	s.Candidates = FilterAndRank(s.Baseline, query, displayName, MaxCandidates)
	s.Selected = clamp(s.Selected, s.limit())
	return s
}

// Next moves the selection down, wrapping to the first candidate.
func (s State) Next() State {
	n := s.limit()
	if n == 0 {
		s.Selected = 0
		return s
	}
	s.Selected = (clamp(s.Selected, n) + 1) % n
	return s
}

// Prev moves the selection up, wrapping to the last candidate.
func (s State) Prev() State {
	n := s.limit()
	if n == 0 {
		s.Selected = 0
		return s
	}
	s.Selected = (clamp(s.Selected, n) - 1 + n) % n
	return s
}

// Hide closes the picker. Baseline and candidates are kept until the next Show.
func (s State) Hide() State {
	s.Query = ""
	s.Visible = false
	s.Selected = 0
	return s
}

// Select hides the picker and reports the highlighted entry, if any.
func (s State) Select() (State, Entry, bool) {
	n := s.limit()
	if n == 0 {
		return s.Hide(), Entry{}, false
	}
	chosen := s.Candidates[clamp(s.Selected, n)]
	return s.Hide(), chosen, true
}

func (s State) limit() int {
	return min(len(s.Candidates), MaxCandidates)
}

func clamp(selected, n int) int {
	if selected < 0 || n <= 0 {
		return 0
	}
	if selected >= n {
		return n - 1
	}
	return selected
}

// Store owns the single picker state for the process and runs the switch
// side effect of Select.
type Store struct {
	state    State
	onSwitch func(Entry)
}

// NewStore creates the state container. onSwitch is called with the chosen
// entry after a successful Select; it must not block.
func NewStore(onSwitch func(Entry)) *Store {
	return &Store{onSwitch: onSwitch}
}

// State returns the current state.
func (s *Store) State() State {
	return s.state
}

func (s *Store) Show(buffers []nvim.Buffer, cwd string) {
	s.state = s.state.Show(buffers, cwd)
	events.Picker.Show(len(s.state.Baseline), len(s.state.Candidates))
}

func (s *Store) ChangeQuery(query string) {
	s.state = s.state.ChangeQuery(query)
	events.Picker.Query(s.state.Query, len(s.state.Candidates), s.state.Selected)
}

func (s *Store) Next() {
	s.state = s.state.Next()
	events.Picker.Move("next", s.state.Selected)
}

func (s *Store) Prev() {
	s.state = s.state.Prev()
	events.Picker.Move("prev", s.state.Selected)
}

func (s *Store) Hide() {
	s.state = s.state.Hide()
	events.Picker.Hide()
}

// Select hides the picker and, when a candidate was highlighted, hands it to
// the switch callback. It reports whether a switch was issued.
func (s *Store) Select() bool {
	next, chosen, ok := s.state.Select()
	s.state = next
	events.Picker.Hide()
	if !ok {
		return false
	}
	events.Picker.Select(int(chosen.Handle), chosen.DisplayName)
	if s.onSwitch != nil {
		s.onSwitch(chosen)
	}
	return true
}
