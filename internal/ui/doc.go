// Package ui implements an interactive show browser using bubbletea's Elm architecture.
//
// The browser is a terminal front end over the listing and player packages:
//  1. [ListView] : The show listing with a cursor, inline expansion, paging and filters
//  2. [FocusView] : Full-screen detail for one show on narrow terminals
//  3. [FilterView] : Text inputs for artist search and the date range
//
// Terminal width is converted to pixels (columns × cell width) and classified with
// listing.ClassFor at every row interaction, so resizing the terminal across the breakpoint
// switches between inline expansion and the focus view without restarting.
//
// The URL state lives in a listing.MemoryHistory. Filter edits replace the current entry and
// paging pushes a new one, so [ and ] walk back and forward through pages the way a browser's
// back button does.
//
// The player's deferred second step (see package player) runs through a channel drained by a
// tea.Cmd, which keeps every state change on the bubbletea event loop.
package ui
