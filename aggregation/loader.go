package aggregation

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/densahealth/phcu-report-api/databases"
	"github.com/densahealth/phcu-report-api/models"
)

// RecordSource serves the full record set to the dashboard handlers and the
// summary scheduler
type RecordSource interface {
	Load(ctx context.Context) ([]models.Record, error)
	Invalidate()
}

// Loader reads all records through a bounded-lifetime cache. A successful
// write path must call Invalidate so the next read reflects it; reads between
// writes may be served up to TTL stale.
type Loader struct {
	db  databases.RecordDatabase
	ttl time.Duration

	mu        sync.Mutex
	cached    []models.Record
	fetchedAt time.Time
	valid     bool
}

// NewLoader creates a loader over the record store with the given cache TTL.
// A zero TTL disables caching entirely.
func NewLoader(db databases.RecordDatabase, ttl time.Duration) *Loader {
	return &Loader{db: db, ttl: ttl}
}

// Load returns every stored record, oldest submission first
func (l *Loader) Load(ctx context.Context) ([]models.Record, error) {
	l.mu.Lock()
	if l.valid && l.ttl > 0 && time.Since(l.fetchedAt) < l.ttl {
		out := make([]models.Record, len(l.cached))
		copy(out, l.cached)
		l.mu.Unlock()
		return out, nil
	}
	l.mu.Unlock()

	sort := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}})
	records, err := l.db.Find(ctx, bson.D{}, sort)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cached = records
	l.fetchedAt = time.Now()
	l.valid = true
	l.mu.Unlock()

	out := make([]models.Record, len(records))
	copy(out, records)
	return out, nil
}

// Invalidate drops the cached record set. The next Load always goes to the
// store.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	l.valid = false
	l.cached = nil
	l.mu.Unlock()
}
