// Package ui provides the Bubble Tea terminal interface for stargaze.
//
// # Architecture Overview
//
// Model is a thin shell around gallery.Controller. Keys, mouse clicks and
// fetch results are translated into gallery events; the controller returns
// the next state plus effects, and the model turns those effects into
// tea.Cmds (feed requests) or log records. Nothing in this package decides
// what the gallery shows.
//
// # Package Structure
//
//   - ui.go: Model, Options, Init/Update/View, Run
//   - input.go: keyboard, mouse and focus handling
//   - effects.go: effect execution and failure logging
//   - header.go: title bar, date form, fact panel, footer
//   - gallery_view.go: card list and selection
//   - modal.go: detail overlay and its on-screen rectangle
//   - diagnostics.go: log tail overlay
//   - help.go, keys.go, theme.go: key map, help overlay, palettes
//   - layout.go: row and column geometry shared by rendering and hit-testing
//
// # Screen Layout
//
//	stargaze  Astronomy Picture of the Day            9 images  2024-01-01..2024-01-09
//	 Start  2024-01-01    End  2024-01-09    [ Get Space Images ]
//	 Did you know? ...
//	──────────────────────────────────────────────────────────────
//	┃ Title
//	┃ 2024-01-01  img: Title <https://...>
//	┃ excerpt line one
//	┃ excerpt line two...
//	┃ [ View more ]
//
// Cards have a fixed height so a click row maps straight to a card and a
// line within it.
//
// # Date Fields
//
// Leaving a field whose value changed clamps it into the archive window and
// raises InputsChanged, which fetches once both fields are set. Enter in a
// field, or a click on the button, raises FetchRequested.
//
// # Key Bindings
//
//   - tab/shift+tab: Move between fields and the gallery
//   - enter: Get images (in a field) or view more (on a card)
//   - j/k, g/G: Select card
//   - esc: Close the detail modal
//   - T: Cycle theme (saved to prefs)
//   - F: Toggle fact panel (saved to prefs)
//   - L: Diagnostics log tail
//   - h/?: Help
//   - e or Ctrl+C: Exit
package ui
