// Command checkdata verifies that every static asset the bot serves is
// present and well-formed, without touching Telegram. Useful before a
// deploy: exit code 1 means at least one required file is broken.
package main

import (
	"flag"
	"os"

	"github.com/medionuz/ClinicTgBOT/internal/tg_bot/diag"
	"github.com/sirupsen/logrus"
)

func main() {
	defaultPath := os.Getenv("DATA_PATH")
	if defaultPath == "" {
		defaultPath = "data"
	}
	dataPath := flag.String("data", defaultPath, "path to the bot data directory")
	flag.Parse()

	reports := diag.CheckDataFiles(*dataPath)
	diag.LogReport(reports)

	if missing := diag.Missing(reports); len(missing) > 0 {
		logrus.Warnf("%d data files are missing or invalid", len(missing))
		os.Exit(1)
	}
	logrus.Info("All data files are present")
}
