// Package janitor periodically reports disk usage of the download tree. It
// only observes, it never deletes: partial files from failed attempts are
// kept by design and the next attempt overwrites them.
package janitor

import (
	"io/fs"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

// Janitor walks the output root on a fixed interval and logs what it finds.
type Janitor struct {
	scheduler gocron.Scheduler
	root      string
	interval  time.Duration
	logger    zerolog.Logger
}

// New creates a janitor for root.
func New(root string, interval time.Duration, logger zerolog.Logger) (*Janitor, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Janitor{
		scheduler: s,
		root:      root,
		interval:  interval,
		logger:    logger.With().Str("component", "janitor").Logger(),
	}, nil
}

// Start schedules the periodic report and begins running it.
func (j *Janitor) Start() error {
	_, err := j.scheduler.NewJob(
		gocron.DurationJob(j.interval),
		gocron.NewTask(j.report),
	)
	if err != nil {
		return err
	}
	j.scheduler.Start()
	return nil
}

// Stop shuts the scheduler down.
func (j *Janitor) Stop() error {
	return j.scheduler.Shutdown()
}

func (j *Janitor) report() {
	files, bytes := j.usage()
	j.logger.Info().
		Str("root", j.root).
		Int("files", files).
		Int64("bytes", bytes).
		Msg("download tree usage")
}

func (j *Janitor) usage() (int, int64) {
	var files int
	var bytes int64
	_ = filepath.WalkDir(j.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		files++
		if info, err := d.Info(); err == nil {
			bytes += info.Size()
		}
		return nil
	})
	return files, bytes
}
