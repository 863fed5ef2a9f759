package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/dvwa-config/internal/config"
	"github.com/MKhiriev/dvwa-config/internal/dbconn"
	"github.com/MKhiriev/dvwa-config/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo(os.Stdout)

	log := logger.NewLogger("dvwaconf")
	if err := run(os.Args[1:], os.Stderr, log); err != nil {
		log.Fatal().Err(err).Str("key", config.ErrorKey(err)).Msg("error loading configuration")
	}
}

// run loads, validates and optionally dumps the configuration. Any error
// must stop the process; main turns it into a non-zero exit.
func run(args []string, stderr io.Writer, log *logger.Logger) error {
	flags, err := config.ParseFlags("dvwaconf", args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error parsing flags: %w", err)
	}

	if err := log.SetLevel(flags.LogLevel); err != nil {
		return fmt.Errorf("error setting log level: %w", err)
	}

	cfg, err := config.GetConfiguration(flags, log.Component("config"))
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	if flags.Validate {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}

	log.Info().Object("config", cfg).Msg("configuration loaded")

	db, err := dbconn.NewSettings(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("database settings unavailable")
	} else {
		log.Debug().Object("db", db).Msg("database settings")
	}

	if flags.DumpPath != "" {
		if err := config.WriteFile(flags.DumpPath, cfg); err != nil {
			return fmt.Errorf("error dumping configs: %w", err)
		}
		log.Info().Str("path", flags.DumpPath).Msg("configuration written")
	}

	return nil
}

func printBuildInfo(w io.Writer) {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Fprintf(w, "Build version: %s\n", buildVersion)
	fmt.Fprintf(w, "Build date: %s\n", buildDate)
	fmt.Fprintf(w, "Build commit: %s\n", buildCommit)
}
