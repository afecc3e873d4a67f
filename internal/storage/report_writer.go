package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	json "github.com/goccy/go-json"

	"treport/internal/models"
	"treport/internal/providers"
	"treport/internal/structures"
)

const reportFilePrefix = "trello-activity-"

type ReportWriterInterface interface {
	Save(reports map[string]*models.ReportRecord) error
}

// ReportWriter serializes aggregated reports to the reports directory,
// one pretty-printed JSON file per reporting period.
type ReportWriter struct {
	dir     string
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewReportWriter(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) ReportWriterInterface {
	return &ReportWriter{
		dir:     conf.ReportsDir,
		logger:  logger,
		metrics: metrics,
	}
}

// Save writes every period's report file. Unlike cache writes this is
// the run's output artifact, so any failure is returned as a hard error.
func (rw *ReportWriter) Save(reports map[string]*models.ReportRecord) error {
	if err := os.MkdirAll(rw.dir, 0755); err != nil {
		return fmt.Errorf("reports dir: %w", err)
	}

	keys := make([]string, 0, len(reports))
	for key := range reports {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		path := rw.filePath(key)
		if err := rw.writeReport(path, reports[key]); err != nil {
			return fmt.Errorf("report %s: %w", key, err)
		}
		rw.metrics.IncReportsWritten()
		rw.logger.Infof(providers.TypeReport, "Wrote report for period %s to %s", key, path)
	}
	return nil
}

func (rw *ReportWriter) writeReport(path string, report *models.ReportRecord) error {
	data, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		return err
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return err
	}

	return os.Rename(tmpFile, path)
}

func (rw *ReportWriter) filePath(periodKey string) string {
	return filepath.Join(rw.dir, reportFilePrefix+periodKey+".json")
}
