package memory

import (
	"time"

	"soulstart-be/internal/dto"

	"github.com/patrickmn/go-cache"
)

// OutboxRepository holds dispatch job results in memory. Results expire an
// hour after their last write; nothing here survives a restart.
type OutboxRepository struct {
	cache *cache.Cache
}

func NewOutboxRepository() *OutboxRepository {
	// Default expiration 1 hour, expired jobs purged every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &OutboxRepository{
		cache: c,
	}
}

func (r *OutboxRepository) Save(job *dto.DispatchJobResult) {
	r.cache.Set(job.JobID, job, cache.DefaultExpiration)
}

func (r *OutboxRepository) Get(jobID string) (*dto.DispatchJobResult, bool) {
	if x, found := r.cache.Get(jobID); found {
		return x.(*dto.DispatchJobResult), true
	}
	return nil, false
}

func (r *OutboxRepository) Delete(jobID string) {
	r.cache.Delete(jobID)
}
