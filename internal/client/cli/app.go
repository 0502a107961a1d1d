// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cli implements the interactive papyrctl shell.

It wires the client SDK together: the HTTP client, the session controller
deciding what the current user may do, the feed controller for browsing
posts, and the SQLite-backed search history.
*/
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/taibuivan/papyr/internal/client/api"
	"github.com/taibuivan/papyr/internal/client/feed"
	"github.com/taibuivan/papyr/internal/client/history"
	"github.com/taibuivan/papyr/internal/client/session"
)

// App is the papyrctl shell. One instance lives for the whole process.
type App struct {
	config  *Config
	client  *api.Client
	session *session.Controller
	feed    *feed.Controller
	history *history.SQLiteStore
	reader  *bufio.Reader
}

// NewApp builds the shell and restores any existing session from the server.
func NewApp(context context.Context, configuration *Config) (*App, error) {
	client, err := api.New(configuration.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("building api client: %w", err)
	}

	historyStore, err := history.OpenSQLite(context, configuration.HistoryPath)
	if err != nil {
		return nil, fmt.Errorf("opening search history: %w", err)
	}

	application := &App{
		config:  configuration,
		client:  client,
		session: session.NewController(client),
		feed:    feed.NewController(client, historyStore),
		history: historyStore,
		reader:  bufio.NewReader(os.Stdin),
	}

	// A failed probe leaves the session Unknown; the shell still starts and
	// commands resolve it lazily.
	if err := application.session.Initialize(context); err != nil {
		fmt.Printf("Could not reach %s: %v\n", configuration.ServerURL, err)
	}

	return application, nil
}

// Run drives the shell until the user exits or the context is cancelled.
func (application *App) Run(context context.Context) {
	defer application.history.Close()
	application.repl(context)
}

func (application *App) username() string {
	if user := application.session.User(); user != nil {
		return user.Username
	}
	return ""
}

// reportError prints a command failure. A 401 means the session died
// server-side, so the local session state flips to unauthenticated.
func (application *App) reportError(prefix string, err error) {
	if errors.Is(err, api.ErrUnauthorized) {
		application.session.Invalidate()
		fmt.Println("Your session has expired. Use 'login'.")
		return
	}
	fmt.Printf("%s: %v\n", prefix, err)
}

// requireAuth turns guard decisions into user-facing messages. It returns
// true only when the command may proceed.
func (application *App) requireAuth(context context.Context) bool {
	if application.session.State() == session.StateUnknown {
		_ = application.session.Initialize(context)
	}

	switch application.session.GuardProtected() {
	case session.DecisionAllow:
		return true
	case session.DecisionPending:
		fmt.Println("Session state is unknown; try again in a moment.")
	default:
		fmt.Println("You must be logged in. Use 'login' or 'register'.")
	}
	return false
}

// requireGuest mirrors requireAuth for guest-only commands.
func (application *App) requireGuest(context context.Context) bool {
	if application.session.State() == session.StateUnknown {
		_ = application.session.Initialize(context)
	}

	switch application.session.GuardGuestOnly() {
	case session.DecisionAllow:
		return true
	case session.DecisionPending:
		fmt.Println("Session state is unknown; try again in a moment.")
	default:
		fmt.Printf("Already logged in as %s. Use 'logout' first.\n", application.username())
	}
	return false
}
