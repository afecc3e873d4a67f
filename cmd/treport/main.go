package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"treport/internal/di"
	"treport/internal/structures"
)

func parseFlags() *structures.CliFlags {
	flags := &structures.CliFlags{}
	pflag.StringVarP(&flags.StartDate, "start-date", "s", "", "YYYY-MM-DD report start date (inclusive)")
	pflag.StringVarP(&flags.EndDate, "end-date", "e", "", "YYYY-MM-DD report end date (inclusive)")
	pflag.StringVarP(&flags.ReportsDir, "reports-dir", "r", "reports/", "directory in which to output generated reports")
	pflag.StringVarP(&flags.CacheDir, "cache-dir", "c", "cache/", "directory in which to cache Trello board data")
	pflag.BoolVarP(&flags.DebugMode, "verbose", "v", false, "enable debug logging")
	pflag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the configuration file")
	pflag.Parse()
	return flags
}

func main() {
	flags := parseFlags()

	app, err := di.InitApp(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "treport: %s\n", err)
		os.Exit(1)
	}

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "treport: %s\n", err)
		os.Exit(1)
	}
}
