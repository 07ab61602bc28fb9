package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stockdesk/internal/config"
)

type countingJob struct {
	runs atomic.Int32
	err  error
}

func (j *countingJob) RunScheduled(context.Context) error {
	j.runs.Add(1)
	return j.err
}

func TestNewSchedulerRejectsUnknownTimezone(t *testing.T) {
	_, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "Nowhere/Atlantis"}, &countingJob{}, nil)
	assert.Error(t, err)
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "every day", Timezone: "UTC"}, &countingJob{}, nil)
	require.NoError(t, err)
	assert.Error(t, s.Start())
}

func TestRunReportsCallsJob(t *testing.T) {
	job := &countingJob{err: errors.New("backend down")}
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "UTC"}, job, nil)
	require.NoError(t, err)

	require.NoError(t, s.Start())
	s.runReports()
	s.Stop()

	assert.Equal(t, int32(1), job.runs.Load())
}
