// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command papyrctl is an interactive terminal client for a Papyr server.
//
// Configuration comes from the environment: PAPYR_SERVER_URL points at the
// API server and PAPYR_HISTORY_PATH names the local search-history file.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/taibuivan/papyr/internal/client/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	configuration, err := cli.LoadConfig()
	if err != nil {
		log.Fatalf("papyrctl: %v", err)
	}

	application, err := cli.NewApp(ctx, configuration)
	if err != nil {
		log.Fatalf("papyrctl: %v", err)
	}

	application.Run(ctx)
}
