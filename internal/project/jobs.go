package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/seasoncut/internal/model"
)

// DefaultJobsPath returns the default file path for the jobs store,
// ~/.seasoncut/jobs.json.
func DefaultJobsPath() string {
	return filepath.Join(DefaultConfigDir(), "jobs.json")
}

// SaveJobs writes the job store to a JSON file.
func SaveJobs(path string, store model.JobStore) error {
	return writeJSON(path, store)
}

// LoadJobs reads a job store from a JSON file.
// If the file does not exist, returns an empty store.
func LoadJobs(path string) (model.JobStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewJobStore(), nil
		}
		return model.JobStore{}, err
	}
	var store model.JobStore
	if err := json.Unmarshal(data, &store); err != nil {
		return model.JobStore{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if store.Jobs == nil {
		store.Jobs = []model.Job{}
	}
	return store, nil
}
