package workers

import (
	"context"
	"log/slog"
	"reflect"
	"time"
)

// saturationRatio above which a channel is reported as a warning.
const saturationRatio = 0.8

type NamedChannel struct {
	Name    string
	Channel any
}

// ChannelCapacityWorker periodically reports the current channel capacity and length.
// Reading len(channel) and cap(channel) is non-blocking, so this won't interfere
// with other goroutines.
type ChannelCapacityWorker struct {
	log            *slog.Logger
	channels       []NamedChannel
	metricInterval time.Duration
}

func NewChannelCapacityWorker(log *slog.Logger, channels []NamedChannel, metricInterval time.Duration) *ChannelCapacityWorker {
	return &ChannelCapacityWorker{log: log, channels: channels, metricInterval: metricInterval}
}

func (w ChannelCapacityWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping channel capacity reports")
			return nil
		case <-ticker.C:
			for _, nc := range w.channels {
				w.report(nc)
			}
		}
	}
}

func (w ChannelCapacityWorker) report(nc NamedChannel) {
	v := reflect.ValueOf(nc.Channel)
	// Verify if this is a channel
	if v.Kind() != reflect.Chan {
		w.log.Error("Provided object is not a channel", "name", nc.Name)
		return
	}
	capacity, length := v.Cap(), v.Len()
	if capacity > 0 && float64(length) >= saturationRatio*float64(capacity) {
		w.log.Warn("Channel close to saturation", "name", nc.Name, "length", length, "capacity", capacity)
		return
	}
	w.log.Debug("Channel capacity", "name", nc.Name, "length", length, "capacity", capacity)
}
