package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DigestRunner is the driver the trigger invokes once per period.
type DigestRunner interface {
	RunForDate(ctx context.Context, date time.Time) (int, error)
}

// Daily fires the digest run once per cron period for "yesterday". A failed
// run is logged and forgotten; the next scheduled invocation starts fresh.
type Daily struct {
	cron   *cron.Cron
	runner DigestRunner
	logger *logrus.Logger
}

func NewDaily(spec string, runner DigestRunner, logger *logrus.Logger) (*Daily, error) {
	d := &Daily{cron: cron.New(), runner: runner, logger: logger}
	if _, err := d.cron.AddFunc(spec, d.RunOnce); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Daily) Start() { d.cron.Start() }

// Stop waits for an in-flight run to finish.
func (d *Daily) Stop() {
	<-d.cron.Stop().Done()
}

// RunOnce executes a single scheduled invocation. Errors never propagate to
// the cron runner.
func (d *Daily) RunOnce() {
	date := Yesterday(time.Now())
	total, err := d.runner.RunForDate(context.Background(), date)
	if err != nil {
		d.logger.WithError(err).WithFields(logrus.Fields{
			"date":  date.Format("2006-01-02"),
			"total": total,
		}).Error("daily notification job failed")
		return
	}
	d.logger.WithFields(logrus.Fields{
		"date":  date.Format("2006-01-02"),
		"total": total,
	}).Info("daily notification job completed")
}

// Yesterday truncates now to a calendar date and steps back one day.
func Yesterday(now time.Time) time.Time {
	y, m, day := now.AddDate(0, 0, -1).Date()
	return time.Date(y, m, day, 0, 0, 0, 0, now.Location())
}
