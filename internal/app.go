package internal

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"treport/internal/providers"
	"treport/internal/services"
	"treport/internal/storage"
	"treport/internal/structures"
	"treport/internal/trello"
)

// App sequences one reporting run: sync each configured board (via the
// caches), feed it into the aggregation, write the report files, and
// surface the unregistered recipient set.
type App struct {
	conf    *structures.Config
	logger  providers.Logger
	boards  trello.BoardFactoryInterface
	reports services.ReportServiceInterface
	writer  storage.ReportWriterInterface
}

func NewApp(conf *structures.Config, logger providers.Logger, boards trello.BoardFactoryInterface, reports services.ReportServiceInterface, writer storage.ReportWriterInterface) *App {
	return &App{
		conf:    conf,
		logger:  logger,
		boards:  boards,
		reports: reports,
		writer:  writer,
	}
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer a.logger.Close()

	a.logger.Infof(providers.TypeApp, "Starting %s", a.conf.AppName)
	if a.conf.TimeRange != nil {
		a.logger.Infof(providers.TypeApp, "Reporting period: %s", a.conf.TimeRange.PeriodKey())
	}

	synced := 0
	for _, job := range a.conf.Boards {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := a.boards.Sync(ctx, job.ID)
		if err != nil {
			// Best effort: one failed board must not sink the others.
			a.logger.Errorf(providers.TypeFetch, "Skipping board %s: %s", job.ID, err)
			continue
		}
		a.reports.RecordBoardActivity(data, job)
		synced++
	}
	if synced == 0 && len(a.conf.Boards) > 0 {
		return fmt.Errorf("all %d board fetches failed", len(a.conf.Boards))
	}

	a.logger.Infof(providers.TypeReport, "Saving activity report")
	if err := a.writer.Save(a.reports.Reports()); err != nil {
		return err
	}

	if unregistered := a.reports.UnregisteredRecipients(); len(unregistered) > 0 {
		a.logger.Infof(providers.TypeReport, "Unregistered recipients: %s", strings.Join(unregistered, ", "))
	}

	a.logMetricsSummary()
	a.logger.Infof(providers.TypeApp, "Run finished")
	return nil
}

// logMetricsSummary dumps the gathered run counters to the log. A
// single-shot process has no scrape surface, so the log line is the
// metrics output.
func (a *App) logMetricsSummary() {
	if !a.conf.Metrics.Enabled {
		return
	}
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		a.logger.Warnf(providers.TypeApp, "Failed to gather metrics: %s", err)
		return
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "treport_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			a.logger.Infof(providers.TypeApp, "metric %s%s = %g", mf.GetName(), labelString(m), metricValue(mf, m))
		}
	}
}

func labelString(m *dto.Metric) string {
	if len(m.GetLabel()) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(m.GetLabel()))
	for _, l := range m.GetLabel() {
		pairs = append(pairs, l.GetName()+"="+l.GetValue())
	}
	return "{" + strings.Join(pairs, ",") + "}"
}

func metricValue(mf *dto.MetricFamily, m *dto.Metric) float64 {
	switch mf.GetType() {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	case dto.MetricType_HISTOGRAM:
		return float64(m.GetHistogram().GetSampleCount())
	default:
		return m.GetUntyped().GetValue()
	}
}
