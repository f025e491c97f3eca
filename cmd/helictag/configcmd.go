package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/BurntSushi/toml"

	"helictag/internal/config"
)

// runConfig prints the effective configuration as TOML, or writes the
// defaults to disk when -init is given.
func runConfig(args []string, logger *log.Logger) int {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	cf := registerCommonFlags(fs)
	initFlag := fs.Bool("init", false, "write default configuration to the resolved path and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	applyVerbosity(logger, cf)

	path := *cf.configPath
	if path == "" {
		path = config.DefaultPath()
	}

	if *initFlag {
		if err := config.Save(path, config.Default()); err != nil {
			logger.Printf("write default config: %v", err)
			return 1
		}
		fmt.Printf("wrote default configuration to %s\n", path)
		return 0
	}

	cfg, err := loadConfig(cf)
	if err != nil {
		logger.Printf("load config: %v", err)
		return 1
	}
	if err := toml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
		logger.Printf("encode config: %v", err)
		return 1
	}
	return 0
}
