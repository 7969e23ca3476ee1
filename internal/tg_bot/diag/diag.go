// Package diag checks the presence and validity of the static data
// assets the bot serves: the three JSON content files and the per-language
// video notes. It never fails the process, it only reports.
package diag

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// FileReport describes one checked asset.
type FileReport struct {
	Path      string `json:"path"`
	Exists    bool   `json:"exists"`
	SizeBytes int64  `json:"sizeBytes"`
	ValidJSON bool   `json:"validJSON,omitempty"` // only meaningful for .json files
}

var jsonFiles = []string{"translations.json", "services.json", "contacts.json"}

var videoFiles = []string{
	"videos/location_ru.mp4",
	"videos/location_uz.mp4",
	"videos/clinic_ru.mp4",
	"videos/clinic_uz.mp4",
}

// CheckDataFiles inspects every expected asset under dataPath.
func CheckDataFiles(dataPath string) []FileReport {
	reports := make([]FileReport, 0, len(jsonFiles)+len(videoFiles))
	for _, name := range jsonFiles {
		report := statFile(filepath.Join(dataPath, name))
		if report.Exists {
			report.ValidJSON = isValidJSON(report.Path)
		}
		reports = append(reports, report)
	}
	for _, name := range videoFiles {
		reports = append(reports, statFile(filepath.Join(dataPath, name)))
	}
	return reports
}

// Missing returns the paths of absent or broken assets.
func Missing(reports []FileReport) []string {
	var missing []string
	for _, report := range reports {
		if !report.Exists {
			missing = append(missing, report.Path)
			continue
		}
		if filepath.Ext(report.Path) == ".json" && !report.ValidJSON {
			missing = append(missing, report.Path)
		}
	}
	return missing
}

// LogReport writes one logrus line per asset, warning about the absent ones.
func LogReport(reports []FileReport) {
	for _, report := range reports {
		switch {
		case !report.Exists:
			logrus.Warnf("Data file %s not found", report.Path)
		case filepath.Ext(report.Path) == ".json" && !report.ValidJSON:
			logrus.Warnf("Data file %s is not valid JSON", report.Path)
		default:
			logrus.Infof("Data file %s exists (%.1f KB)", report.Path, float64(report.SizeBytes)/1024)
		}
	}
}

func statFile(path string) FileReport {
	info, err := os.Stat(path)
	if err != nil {
		return FileReport{Path: path}
	}
	return FileReport{Path: path, Exists: true, SizeBytes: info.Size()}
}

func isValidJSON(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return json.Valid(data)
}
