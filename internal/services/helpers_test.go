package services

import (
	"context"
	"time"

	"github.com/metajournal/reward-engine/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeClock is a manually advanced clock for streak and expiry tests.
type fakeClock struct {
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// scriptedRand replays a fixed sequence of draws. Exhausted sequences fall
// back to values that never grant a variable reward.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.999999
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0] % n
	r.ints = r.ints[1:]
	return v
}

// memStore is an in-memory ProgressStore.
type memStore struct {
	states  map[primitive.ObjectID]*models.ProgressionState
	loadErr error
	saveErr error
	saves   int
}

func newMemStore() *memStore {
	return &memStore{states: make(map[primitive.ObjectID]*models.ProgressionState)}
}

func (m *memStore) Load(ctx context.Context, userID primitive.ObjectID) (*models.ProgressionState, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.states[userID], nil
}

func (m *memStore) Save(ctx context.Context, state *models.ProgressionState) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.states[state.UserID] = state
	m.saves++
	return nil
}
