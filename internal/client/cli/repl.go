// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (application *App) prompt() string {
	if name := application.username(); name != "" {
		return fmt.Sprintf("papyr (%s)> ", name)
	}
	return "papyr> "
}

func (application *App) repl(ctx context.Context) {
	fmt.Println("Papyr shell. Type 'help' for commands.")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		fmt.Print(application.prompt())
		if !scanner.Scan() {
			return
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		command, arguments := parts[0], parts[1:]

		switch command {
		case "help":
			application.help()
		case "register":
			application.register(ctx)
		case "login":
			application.login(ctx)
		case "logout":
			application.logout(ctx)
		case "whoami":
			application.whoami(ctx)
		case "rename":
			application.rename(ctx, arguments)
		case "passwd":
			application.changePassword(ctx)
		case "list":
			application.list(ctx)
		case "search":
			application.search(ctx, arguments)
		case "more":
			application.more(ctx)
		case "read":
			application.read(ctx, arguments)
		case "new":
			application.newPost(ctx)
		case "edit":
			application.editPost(ctx, arguments)
		case "delete":
			application.deletePost(ctx, arguments)
		case "history":
			application.searchHistory(ctx)
		case "clear-history":
			application.clearHistory(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Printf("Unknown command %q. Type 'help'.\n", command)
		}
	}
}

func (application *App) help() {
	fmt.Println("Browsing:  list, search <term>, more, read <id>, history, clear-history")
	fmt.Println("Writing:   new, edit <id>, delete <id>")
	fmt.Println("Account:   register, login, logout, whoami, rename <username>, passwd")
	fmt.Println("Other:     help, exit")
}
