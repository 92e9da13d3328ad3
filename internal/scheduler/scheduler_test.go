package scheduler

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/Dan9191/networth-service/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJobs struct {
	snapshots, digests int
	err                error
}

func (c *countingJobs) SnapshotBalances(context.Context) (int, error) {
	c.snapshots++
	return 3, c.err
}

func (c *countingJobs) SendDigests(context.Context) (int, error) {
	c.digests++
	return 1, c.err
}

func testConfig() *config.Config {
	return &config.Config{SnapshotSchedule: "0 2 * * *", DigestSchedule: "0 8 1 * *"}
}

func TestNewSchedulerRegistersJobs(t *testing.T) {
	s, err := NewScheduler(testConfig(), &countingJobs{}, logrus.New())
	require.NoError(t, err)
	assert.Len(t, s.cron.Entries(), 2)

	s.Start()
	<-s.Stop().Done()
}

func TestNewSchedulerRejectsBadSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.DigestSchedule = "monthly"
	_, err := NewScheduler(cfg, &countingJobs{}, logrus.New())
	assert.Error(t, err)
}

func TestRunLogsOutcome(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	jobs := &countingJobs{}
	s, err := NewScheduler(testConfig(), jobs, log)
	require.NoError(t, err)

	s.run("snapshot", jobs.SnapshotBalances)
	assert.Equal(t, 1, jobs.snapshots)
	assert.Contains(t, buf.String(), "Job finished")
	assert.Contains(t, buf.String(), "processed=3")

	buf.Reset()
	jobs.err = errors.New("db down")
	s.run("digest", jobs.SendDigests)
	assert.Contains(t, buf.String(), "Job failed: db down")
}
