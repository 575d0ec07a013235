// coinched is the coinche game server.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decred/slog"

	"github.com/gyscos/coinched/domain"
	"github.com/gyscos/coinched/server"
)

func main() {
	addr := flag.String("addr", "", "listen address, overrides the config file")
	configPath := flag.String("config", "", "path to a YAML config file")
	logLevel := flag.String("loglevel", "", "log level, overrides the config file")
	flag.Parse()

	cfg := server.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = server.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	level, ok := slog.LevelFromString(cfg.LogLevel)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown log level %q\n", cfg.LogLevel)
		os.Exit(1)
	}
	backend := slog.NewBackend(os.Stdout)

	srvLog := backend.Logger("SRVR")
	srvLog.SetLevel(level)
	server.UseLogger(srvLog)

	gameLog := backend.Logger("GAME")
	gameLog.SetLevel(level)
	domain.UseLogger(gameLog)

	s := server.NewServer(cfg)
	defer s.Stop()
	if err := s.Start(); err != nil {
		srvLog.Errorf("server: %v", err)
		os.Exit(1)
	}
}
