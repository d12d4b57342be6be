// Package ui contains the Bubble Tea program that powers the buffer picker.
//
// Message flow:
//   - Init issues an asynchronous load of the listed buffers and the working
//     directory. The typed handler for buffersLoadedMsg opens the picker
//     through picker.Store.Show; load failures are shown on the status line
//     and the picker opens empty.
//   - Key presses are routed through a typed handler registry. Navigation keys
//     map to Next/Prev, esc and ctrl+c hide the picker and quit, and every
//     other key goes to the query input. A changed query re-filters via
//     Store.ChangeQuery.
//   - Enter selects. The switch is issued through the internal/ui/command bus
//     as a tea.Cmd that runs behind the bridge timeout; its Result ends the
//     program whether or not the switch succeeded.
//
// All picker reducers run on the Bubble Tea update loop, so they are never
// interleaved.
package ui
