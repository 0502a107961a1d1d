// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/taibuivan/papyr/internal/client/api"
)

func (application *App) register(ctx context.Context) {
	if !application.requireGuest(ctx) {
		return
	}

	username, err := promptLine(application.reader, "Username", os.Stdout)
	if err != nil {
		fmt.Println(err)
		return
	}
	name, err := promptLine(application.reader, "Display name", os.Stdout)
	if err != nil {
		fmt.Println(err)
		return
	}
	password, err := promptPassword("Password", os.Stdout)
	if err != nil {
		fmt.Println(err)
		return
	}

	user, err := application.session.Register(ctx, api.RegisterInput{
		Username: username,
		Name:     name,
		Password: password,
	})
	if err != nil {
		fmt.Printf("Registration failed: %v\n", err)
		return
	}
	fmt.Printf("Welcome, %s!\n", user.Name)
}

func (application *App) login(ctx context.Context) {
	if !application.requireGuest(ctx) {
		return
	}

	username, err := promptLine(application.reader, "Username", os.Stdout)
	if err != nil {
		fmt.Println(err)
		return
	}
	password, err := promptPassword("Password", os.Stdout)
	if err != nil {
		fmt.Println(err)
		return
	}

	user, err := application.session.Login(ctx, username, password)
	if err != nil {
		fmt.Printf("Login failed: %v\n", err)
		return
	}
	fmt.Printf("Logged in as %s.\n", user.Username)
}

func (application *App) logout(ctx context.Context) {
	if !application.requireAuth(ctx) {
		return
	}
	if err := application.session.Logout(ctx); err != nil {
		// The local session is cleared regardless.
		fmt.Printf("Server logout failed: %v\n", err)
	}
	fmt.Println("Logged out.")
}

func (application *App) whoami(ctx context.Context) {
	if !application.requireAuth(ctx) {
		return
	}
	user, err := application.client.Profile(ctx)
	if err != nil {
		application.reportError("Could not load profile", err)
		return
	}
	fmt.Printf("%s (%s), member since %s\n",
		user.Username, user.Name, user.CreatedAt.Format("2006-01-02"))
}

func (application *App) rename(ctx context.Context, arguments []string) {
	if !application.requireAuth(ctx) {
		return
	}
	if len(arguments) != 1 {
		fmt.Println("Usage: rename <new-username>")
		return
	}

	user, err := application.client.UpdateProfile(ctx, api.ProfileUpdate{Username: &arguments[0]})
	if err != nil {
		application.reportError("Rename failed", err)
		return
	}
	fmt.Printf("You are now %s.\n", user.Username)
}

func (application *App) changePassword(ctx context.Context) {
	if !application.requireAuth(ctx) {
		return
	}

	password, err := promptPassword("New password", os.Stdout)
	if err != nil {
		fmt.Println(err)
		return
	}
	confirm, err := promptPassword("Repeat password", os.Stdout)
	if err != nil {
		fmt.Println(err)
		return
	}
	if password != confirm {
		fmt.Println("Passwords do not match.")
		return
	}

	if _, err := application.client.UpdateProfile(ctx, api.ProfileUpdate{Password: &password}); err != nil {
		application.reportError("Password change failed", err)
		return
	}
	fmt.Println("Password updated.")
}
