package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/showfinder/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgShowsLoaded MsgKind = iota
	MsgReferenceLoaded
	MsgPlayerTick
	MsgOpened
)

type showsLoaded struct {
	token uint64
	page  *models.ShowsPage
	err   error
}

type referenceLoaded struct {
	venues []models.Venue
	genres []models.Genre
	err    error
}

// showsLoadedMsg is the constructor for [MsgShowsLoaded]
func showsLoadedMsg(token uint64, page *models.ShowsPage, err error) Msg {
	return Msg{kind: MsgShowsLoaded, data: showsLoaded{token, page, err}}
}

// referenceLoadedMsg is the constructor for [MsgReferenceLoaded]
func referenceLoadedMsg(venues []models.Venue, genres []models.Genre, err error) Msg {
	return Msg{kind: MsgReferenceLoaded, data: referenceLoaded{venues, genres, err}}
}

// playerTickMsg is the constructor for [MsgPlayerTick]; fn is the player's deferred step.
func playerTickMsg(fn func()) Msg {
	return Msg{kind: MsgPlayerTick, data: fn}
}

// openedMsg is the constructor for [MsgOpened]
func openedMsg(target string, err error) Msg {
	return Msg{kind: MsgOpened, data: struct {
		target string
		err    error
	}{target, err}}
}
