package model

import (
	"time"

	"github.com/google/uuid"
)

// Job is a saved calendar configuration that can be regenerated at any time.
type Job struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	CreatedAt string          `json:"created_at"`
	Options   LaserCutOptions `json:"options"`
}

// NewJob creates a job with a fresh short ID.
func NewJob(name string, opts LaserCutOptions) Job {
	return Job{
		ID:        uuid.New().String()[:8],
		Name:      name,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Options:   opts,
	}
}

// JobStore holds a collection of saved jobs.
type JobStore struct {
	Jobs []Job `json:"jobs"`
}

// NewJobStore creates an empty job store.
func NewJobStore() JobStore {
	return JobStore{
		Jobs: []Job{},
	}
}

// Add adds a job to the store.
func (s *JobStore) Add(j Job) {
	s.Jobs = append(s.Jobs, j)
}

// Remove removes a job by ID. Returns true if found and removed.
func (s *JobStore) Remove(id string) bool {
	for i, j := range s.Jobs {
		if j.ID == id {
			s.Jobs = append(s.Jobs[:i], s.Jobs[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the job with the given ID, or nil.
func (s *JobStore) FindByID(id string) *Job {
	for i := range s.Jobs {
		if s.Jobs[i].ID == id {
			return &s.Jobs[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first job with the given name, or nil.
func (s *JobStore) FindByName(name string) *Job {
	for i := range s.Jobs {
		if s.Jobs[i].Name == name {
			return &s.Jobs[i]
		}
	}
	return nil
}

// Names returns the job names for UI dropdowns.
func (s *JobStore) Names() []string {
	names := make([]string, len(s.Jobs))
	for i, j := range s.Jobs {
		names[i] = j.Name
	}
	return names
}
