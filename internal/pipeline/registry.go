package pipeline

import (
	"sort"
	"sync"

	"github.com/forPelevin/ytshorts/internal/types"
)

// Registry is the in-memory index of running jobs keyed by clip ID. Jobs
// leave it once their terminal event has been delivered.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]types.JobSummary
}

func NewRegistry() *Registry {
	return &Registry{jobs: make(map[string]types.JobSummary)}
}

func (r *Registry) add(job *types.Job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = types.JobSummary{
		ID:        job.ID,
		Stage:     job.Stage,
		URL:       job.URL,
		StartedAt: job.CreatedAt,
	}
}

func (r *Registry) update(id string, stage types.Stage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.jobs[id]; ok && stage != "" {
		s.Stage = stage
		r.jobs[id] = s
	}
}

func (r *Registry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.jobs, id)
}

func (r *Registry) List() []types.JobSummary {
	r.mu.RLock()
	out := make([]types.JobSummary, 0, len(r.jobs))
	for _, s := range r.jobs {
		out = append(out, s)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out
}
