// Package jobstore persists job definitions and the build queue.
//
// The file format follows the file extension: .json is JSON, anything else is
// YAML.
//
//	version: 1
//	jobs:
//	  - id: nightly
//	    name: Nightly build
//	    schedule: |
//	      # weekdays only
//	      H 2 * * 1-5
//	    label: linux
//	    views: [main]
//	queue:
//	  - jobId: nightly
//	    queuedAt: 2024-03-01 10:30
//	    params: "[BRANCH=main]"
package jobstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/araddon/dateparse"
	"gopkg.in/yaml.v3"

	"github.com/crystaldolphin/scheduledisplay/internal/recurrence"
	"github.com/crystaldolphin/scheduledisplay/internal/schedule"
)

// ErrNotFound is returned when a job id is unknown.
var ErrNotFound = errors.New("jobstore: job not found")

// --------------------------------------------------------------------------
// Data types
// --------------------------------------------------------------------------

// JobRecord is one job as stored on disk.
type JobRecord struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	Enabled     *bool    `json:"enabled,omitempty" yaml:"enabled,omitempty"` // nil means enabled
	Schedule    string   `json:"schedule" yaml:"schedule"`
	Label       string   `json:"label,omitempty" yaml:"label,omitempty"`
	URL         string   `json:"url,omitempty" yaml:"url,omitempty"`
	Views       []string `json:"views,omitempty" yaml:"views,omitempty"`
	CreatedAtMs int64    `json:"createdAtMs,omitempty" yaml:"createdAtMs,omitempty"`
	UpdatedAtMs int64    `json:"updatedAtMs,omitempty" yaml:"updatedAtMs,omitempty"`
}

// IsEnabled reports whether the job takes part in scheduling.
func (r JobRecord) IsEnabled() bool { return r.Enabled == nil || *r.Enabled }

// InView reports whether the job belongs to view. The empty view holds
// every job.
func (r JobRecord) InView(view string) bool {
	return view == "" || slices.Contains(r.Views, view)
}

// Job converts the record into the scheduling view.
func (r JobRecord) Job() schedule.Job {
	return schedule.Job{
		ID:          r.ID,
		DisplayName: r.Name,
		Enabled:     r.IsEnabled(),
		Schedule:    []string{r.Schedule},
		TargetLabel: r.Label,
		URL:         r.URL,
	}
}

// QueueRecord is one waiting build. QueuedAt accepts any format understood
// by dateparse and is written back as RFC 3339.
type QueueRecord struct {
	JobID    string `json:"jobId" yaml:"jobId"`
	QueuedAt string `json:"queuedAt" yaml:"queuedAt"`
	Params   string `json:"params,omitempty" yaml:"params,omitempty"`
}

type document struct {
	Version int           `json:"version" yaml:"version"`
	Jobs    []JobRecord   `json:"jobs" yaml:"jobs"`
	Queue   []QueueRecord `json:"queue,omitempty" yaml:"queue,omitempty"`
}

// --------------------------------------------------------------------------
// Store
// --------------------------------------------------------------------------

// Store is a file-backed job list. All methods are safe for concurrent use.
type Store struct {
	path string

	mu  sync.Mutex
	doc document
	now func() time.Time
}

// New creates a Store for path. Nothing is read until Load.
func New(path string) *Store {
	return &Store{path: path, doc: document{Version: 1}, now: time.Now}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load (re)reads the file. A missing file yields an empty store.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.doc = document{Version: 1}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read jobs %s: %w", s.path, err)
	}

	var doc document
	if s.isJSON() {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return fmt.Errorf("parse jobs %s: %w", s.path, err)
	}
	if doc.Version == 0 {
		doc.Version = 1
	}
	s.doc = doc
	return nil
}

// Save writes the store back to its file.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create jobs dir: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if s.isJSON() {
		data, err = json.MarshalIndent(s.doc, "", "  ")
		data = append(data, '\n')
	} else {
		data, err = yaml.Marshal(s.doc)
	}
	if err != nil {
		return fmt.Errorf("marshal jobs: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write jobs %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) isJSON() bool {
	return strings.EqualFold(filepath.Ext(s.path), ".json")
}

// --------------------------------------------------------------------------
// Queries
// --------------------------------------------------------------------------

// Records returns a copy of all job records in file order.
func (s *Store) Records() []JobRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.doc.Jobs)
}

// Jobs returns the jobs of view in file order, disabled ones included.
func (s *Store) Jobs(view string) []schedule.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []schedule.Job
	for _, r := range s.doc.Jobs {
		if r.InView(view) {
			out = append(out, r.Job())
		}
	}
	return out
}

// Views returns the sorted set of view names used by any job.
func (s *Store) Views() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, r := range s.doc.Jobs {
		for _, v := range r.Views {
			if !slices.Contains(out, v) {
				out = append(out, v)
			}
		}
	}
	slices.Sort(out)
	return out
}

// Queue returns the parsed queue. Entries whose timestamp cannot be read are
// skipped and reported; bare timestamps are read in loc.
func (s *Store) Queue(loc *time.Location) ([]schedule.QueueEntry, []error) {
	if loc == nil {
		loc = time.Local
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		out  []schedule.QueueEntry
		errs []error
	)
	for i, q := range s.doc.Queue {
		at, err := dateparse.ParseIn(q.QueuedAt, loc)
		if err != nil {
			errs = append(errs, fmt.Errorf("queue entry %d (%s): %w", i+1, q.JobID, err))
			continue
		}
		out = append(out, schedule.QueueEntry{JobID: q.JobID, QueuedAt: at, Params: q.Params})
	}
	return out, errs
}

// --------------------------------------------------------------------------
// Mutations
// --------------------------------------------------------------------------

// Add validates rec and appends it. The schedule must parse strictly. An
// empty id is generated.
func (s *Store) Add(rec JobRecord) (JobRecord, error) {
	seed := rec.ID
	if _, err := recurrence.Parse(rec.Schedule, seed); err != nil {
		return JobRecord{}, fmt.Errorf("invalid schedule: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = s.shortID()
	}
	if s.indexLocked(rec.ID) >= 0 {
		return JobRecord{}, fmt.Errorf("job %q already exists", rec.ID)
	}
	now := s.now().UnixMilli()
	rec.CreatedAtMs = now
	rec.UpdatedAtMs = now

	s.doc.Jobs = append(s.doc.Jobs, rec)
	if err := s.saveLocked(); err != nil {
		return JobRecord{}, err
	}
	slog.Info("jobstore: added job", "id", rec.ID, "name", rec.Name)
	return rec, nil
}

// Remove deletes a job and its queue entries. It reports whether the job
// existed.
func (s *Store) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return false, nil
	}
	s.doc.Jobs = slices.Delete(s.doc.Jobs, i, i+1)
	s.doc.Queue = slices.DeleteFunc(s.doc.Queue, func(q QueueRecord) bool { return q.JobID == id })
	if err := s.saveLocked(); err != nil {
		return true, err
	}
	slog.Info("jobstore: removed job", "id", id)
	return true, nil
}

// Enable enables or disables a job.
func (s *Store) Enable(id string, enabled bool) (JobRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return JobRecord{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	rec := &s.doc.Jobs[i]
	rec.Enabled = &enabled
	rec.UpdatedAtMs = s.now().UnixMilli()
	if err := s.saveLocked(); err != nil {
		return JobRecord{}, err
	}
	return *rec, nil
}

// Enqueue appends a waiting build for an existing job.
func (s *Store) Enqueue(jobID string, at time.Time, params string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(jobID) < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, jobID)
	}
	s.doc.Queue = append(s.doc.Queue, QueueRecord{
		JobID:    jobID,
		QueuedAt: at.Format(time.RFC3339),
		Params:   params,
	})
	return s.saveLocked()
}

// ClearQueue drops the queue entries of jobID, or all entries when jobID is
// empty, and returns how many were removed.
func (s *Store) ClearQueue(jobID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.doc.Queue)
	s.doc.Queue = slices.DeleteFunc(s.doc.Queue, func(q QueueRecord) bool {
		return jobID == "" || q.JobID == jobID
	})
	removed := before - len(s.doc.Queue)
	if removed == 0 {
		return 0, nil
	}
	return removed, s.saveLocked()
}

// --------------------------------------------------------------------------
// Utility
// --------------------------------------------------------------------------

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.doc.Jobs, func(r JobRecord) bool { return r.ID == id })
}

func (s *Store) shortID() string {
	for n := s.now().UnixNano(); ; n++ {
		id := fmt.Sprintf("%08x", n&0xFFFFFFFF)
		if s.indexLocked(id) < 0 {
			return id
		}
	}
}
