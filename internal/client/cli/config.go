// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the runtime settings for the papyrctl client.
type Config struct {

	// ServerURL is the base URL of the Papyr API server.
	ServerURL string `env:"PAPYR_SERVER_URL" envDefault:"http://localhost:8080"`

	// HistoryPath is the SQLite file holding the local search history.
	HistoryPath string `env:"PAPYR_HISTORY_PATH" envDefault:"papyr_history.db"`
}

// LoadConfig reads client settings from the environment.
func LoadConfig() (*Config, error) {
	configuration := &Config{}
	if err := env.Parse(configuration); err != nil {
		return nil, fmt.Errorf("parsing client environment: %w", err)
	}
	return configuration, nil
}
