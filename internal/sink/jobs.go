// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package sink

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-snip-sink/internal/logger"
)

// DefaultJobTimeout bounds a job's execution when the configuration does
// not say otherwise.
const DefaultJobTimeout = 30 * time.Second

// JobManager tracks outstanding and completed job ids and enforces
// at-most-once completion. Every started job carries a timer; expiry and
// explicit completion race safely because completion is the transfer of the
// id into the completed set, and only the first writer succeeds.
// Safe for concurrent use.
type JobManager struct {
	timeout   time.Duration
	onTimeout func(id string)
	log       *logger.Logger

	mu          sync.Mutex
	outstanding map[string]*time.Timer
	completed   map[string]struct{}
}

// NewJobManager returns a JobManager with the given per-job timeout; a
// non-positive timeout selects DefaultJobTimeout. onTimeout, when non-nil,
// runs on the expired timer's goroutine with no internal lock held, after
// the job has already been marked completed.
func NewJobManager(timeout time.Duration, onTimeout func(id string), log *logger.Logger) *JobManager {
	if timeout <= 0 {
		timeout = DefaultJobTimeout
	}

	return &JobManager{
		timeout:     timeout,
		onTimeout:   onTimeout,
		log:         log,
		outstanding: make(map[string]*time.Timer),
		completed:   make(map[string]struct{}),
	}
}

// StartJob registers id as outstanding and arms its timeout timer. It
// reports false when the id is already outstanding or has been completed
// before (a duplicate delivery).
func (j *JobManager) StartJob(id string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if _, running := j.outstanding[id]; running {
		j.log.Warn().Str("job_id", id).Msg("job already outstanding")
		return false
	}
	if _, done := j.completed[id]; done {
		j.log.Warn().Str("job_id", id).Msg("duplicate job dropped")
		return false
	}

	j.outstanding[id] = time.AfterFunc(j.timeout, func() { j.expire(id) })
	j.log.Debug().Str("job_id", id).Dur("timeout", j.timeout).Msg("job started")

	return true
}

// CompleteJob resolves id. It reports false when the id was already
// completed; the first resolution wins and any armed timer is dropped.
func (j *JobManager) CompleteJob(id string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if _, done := j.completed[id]; done {
		return false
	}
	if timer, running := j.outstanding[id]; running {
		timer.Stop()
		delete(j.outstanding, id)
	}
	j.completed[id] = struct{}{}

	return true
}

// ClearOutstanding cancels every outstanding timer and drops the
// outstanding set while keeping the completed set. Used on connection loss:
// pending timers could only produce acks no peer would receive, but the
// completed set must keep deduplicating re-deliveries after a reconnect.
func (j *JobManager) ClearOutstanding() {
	j.mu.Lock()
	defer j.mu.Unlock()

	for id, timer := range j.outstanding {
		timer.Stop()
		delete(j.outstanding, id)
	}
}

// ClearAll wipes both sets. Used on full stop; after a fresh start,
// previously seen ids are accepted again.
func (j *JobManager) ClearAll() {
	j.mu.Lock()
	defer j.mu.Unlock()

	for id, timer := range j.outstanding {
		timer.Stop()
		delete(j.outstanding, id)
	}
	j.completed = make(map[string]struct{})
}

// Counts returns the outstanding and completed set sizes.
func (j *JobManager) Counts() (outstanding, completed int) {
	j.mu.Lock()
	defer j.mu.Unlock()

	return len(j.outstanding), len(j.completed)
}

// expire is the timer path. The outstanding check re-runs under the lock
// because a completion or a clear may have won after the timer fired; the
// loser must not act.
func (j *JobManager) expire(id string) {
	j.mu.Lock()
	if _, running := j.outstanding[id]; !running {
		j.mu.Unlock()
		return
	}
	delete(j.outstanding, id)
	j.completed[id] = struct{}{}
	onTimeout := j.onTimeout
	j.mu.Unlock()

	j.log.Warn().Str("job_id", id).Dur("timeout", j.timeout).Msg("job timed out")
	if onTimeout != nil {
		onTimeout(id)
	}
}
