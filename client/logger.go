package client

import (
	"github.com/rs/zerolog"

	ytlog "github.com/famomatic/ytinfo/internal/log"
)

func resolveLogger(cfg Config) zerolog.Logger {
	if cfg.Logger != nil {
		return cfg.Logger.With().Str("component", "client").Logger()
	}
	return ytlog.WithComponent("client")
}
