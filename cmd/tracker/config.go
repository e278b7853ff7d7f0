package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/agalitsyn/flagutils"

	"github.com/agalitsyn/task-tracker/version"
)

const EnvPrefix = "TASK_TRACKER"

const (
	StorageText   = "text"
	StorageSQLite = "sqlite"
)

var defaultStoragePath = map[string]string{
	StorageText:   "db.txt",
	StorageSQLite: "db.sqlite",
}

type Config struct {
	Debug bool

	Log struct {
		Level string
	}

	Storage struct {
		Type string
		Path string
	}

	NoColor bool
}

func (c Config) String() string {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(0)
	}
	return string(b)
}

func ParseFlags() Config {
	var cfg Config

	printVersion := flag.Bool("version", false, "Show version.")
	logLevel := flag.String("log-level", "info", "Log level (debug | info).")
	storageType := flag.String("storage", StorageText, "Storage backend (text | sqlite).")
	storagePath := flag.String("db", "", "Path to the task database (default db.txt for text, db.sqlite for sqlite).")
	noColor := flag.Bool("no-color", false, "Disable colored output.")

	flagutils.Prefix = EnvPrefix
	flagutils.Parse()
	flag.Parse()

	if *printVersion {
		fmt.Fprintln(os.Stdout, version.String())
		os.Exit(0)
	}

	cfg.Log.Level = strings.ToLower(*logLevel)
	if cfg.Log.Level == "debug" {
		cfg.Debug = true
	}

	cfg.Storage.Type = strings.ToLower(*storageType)
	if _, ok := defaultStoragePath[cfg.Storage.Type]; !ok {
		fmt.Fprintf(os.Stderr, "unknown storage %q, expected %s or %s\n", *storageType, StorageText, StorageSQLite)
		os.Exit(2)
	}
	cfg.Storage.Path = *storagePath
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = defaultStoragePath[cfg.Storage.Type]
	}

	cfg.NoColor = *noColor

	return cfg
}
