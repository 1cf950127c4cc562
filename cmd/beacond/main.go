// Command beacond runs the Beacon notification daemon in the foreground.
package main

import (
	"context"
	"flag"
	"log"

	"beacon/internal/config"
	"beacon/internal/daemonrun"
)

func main() {
	configPath := flag.String("config", "", "configuration file path")
	logLevel := flag.String("log-level", "", "override the configured log level")
	flag.Parse()

	cfg, _, _, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := daemonrun.Run(context.Background(), cfg, daemonrun.Options{LogLevel: *logLevel}); err != nil {
		log.Fatalf("beacond: %v", err)
	}
}
