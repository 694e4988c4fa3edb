// Package gallery holds the presentation logic of stargaze without any
// terminal code.
//
// # Overview
//
// The package turns feed entries into a gallery View, keeps the detail
// Modal and the Fact panel, and wires them together through Controller, a
// reducer with the shape
//
//	Update(State, Event) (State, []Effect)
//
// Update never performs I/O. The ui package runs the returned effects
// (FetchRange, FetchRandom, LogFailure) and feeds their results back as
// events.
//
// # Stale Responses
//
// Every FetchRange effect carries a sequence number, and State.Seq is the
// latest one issued. A RangeLoaded whose Seq does not match is dropped,
// so an older slow response can never overwrite a newer range.
//
// # Rendering Rules
//
//   - Only entries with media_type "image" become cards
//   - An empty result shows MsgEmpty; an all-video result shows nothing
//   - Card order follows feed order
//   - Excerpts are truncated to Renderer.ExcerptLength runes
package gallery
