// Package main is the entry point for the grids2midi API server
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/james-see/grids2midi/pkg/api"
	"github.com/james-see/grids2midi/pkg/logging"
)

func main() {
	port := flag.Int("port", 8080, "Server port")
	level := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	format := flag.String("log-format", "text", "Log format (text, json)")
	flag.Parse()

	logger, err := logging.New(*level, *format, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	slog.SetDefault(logger)

	logger.Info("starting grids2midi API server", "port", *port)
	logger.Info("swagger docs available", "url", fmt.Sprintf("http://localhost:%d/swagger/index.html", *port))

	if err := api.StartServer(*port); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
