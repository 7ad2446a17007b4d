package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// SessionCounter reports how many sessions the node currently tracks.
type SessionCounter func(ctx context.Context) (int, error)

// HealthWorker periodically logs the process footprint and the session count.
type HealthWorker struct {
	log            *slog.Logger
	metricInterval time.Duration
	sessions       SessionCounter
}

func NewHealthWorker(log *slog.Logger, metricInterval time.Duration, sessions SessionCounter) *HealthWorker {
	return &HealthWorker{log: log, metricInterval: metricInterval, sessions: sessions}
}

func (w *HealthWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping health reports")
			return nil
		case <-ticker.C:
			w.report(ctx, p)
		}
	}
}

func (w *HealthWorker) report(ctx context.Context, p *process.Process) {
	attrs := []any{"pid", p.Pid}
	rss, cpu, err := getSelfStats(p)
	if err != nil {
		w.log.Debug("Failed to collect self stats", "error", err)
	} else {
		attrs = append(attrs, "rss_bytes", rss, "cpu_percent", cpu)
	}
	if w.sessions != nil {
		count, err := w.sessions(ctx)
		if err == nil {
			attrs = append(attrs, "sessions", count)
		}
	}
	w.log.Info("Health", attrs...)
}

func getSelfStats(p *process.Process) (uint64, float64, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, err
	}
	return memInfo.RSS, cpuPercent, nil
}
