package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/agalitsyn/flagutils"

	"github.com/agalitsyn/taskdash/version"
)

const EnvPrefix = "TASKDASH"

type Config struct {
	Debug bool

	Log struct {
		Level string
		File  string
	}

	File       string
	Delimiter  string
	DB         string
	ConfigFile string
	View       string
	Print      string
	NoColor    bool
}

func (c Config) String() string {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stdout, err)
		os.Exit(0)
	}
	return string(b)
}

// Interactive reports whether the terminal UI runs, as opposed to printing
// a single view.
func (c Config) Interactive() bool {
	return c.Print == ""
}

// DelimiterRune resolves the -delimiter flag; zero asks ingest to detect it.
func (c Config) DelimiterRune() rune {
	switch strings.ToLower(c.Delimiter) {
	case "":
		return 0
	case "tab", `\t`:
		return '\t'
	case "comma":
		return ','
	case "semicolon":
		return ';'
	case "pipe":
		return '|'
	default:
		return []rune(c.Delimiter)[0]
	}
}

func ParseFlags() Config {
	var cfg Config

	printVersion := flag.Bool("version", false, "Show version.")
	flag.StringVar(&cfg.Log.Level, "log-level", "info", "Log level (debug | info).")
	flag.StringVar(&cfg.Log.File, "log-file", "", "Write logs to this file while the terminal UI runs.")
	flag.StringVar(&cfg.File, "file", "", "Delimited text file with tasks.")
	flag.StringVar(&cfg.Delimiter, "delimiter", "", "Column delimiter (comma | tab | semicolon | pipe | any single character), detected when empty.")
	flag.StringVar(&cfg.DB, "db", "", "SQLite DSN for the task store, in memory when empty.")
	flag.StringVar(&cfg.ConfigFile, "config", "", "YAML file with view defaults.")
	flag.StringVar(&cfg.View, "view", "", "Initial view (list | analytics | calendar | schedule).")
	flag.StringVar(&cfg.Print, "print", "", "Print a view to stdout and exit instead of starting the UI.")
	flag.BoolVar(&cfg.NoColor, "no-color", false, "Disable colors in printed output.")

	flagutils.Prefix = EnvPrefix
	flagutils.Parse()
	flag.Parse()

	if strings.EqualFold(cfg.Log.Level, "debug") {
		cfg.Debug = true
	}

	if *printVersion {
		fmt.Fprintln(os.Stdout, version.String())
		os.Exit(0)
	}

	return cfg
}
