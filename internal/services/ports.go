package services

import (
	"context"
	"math/rand"
	"time"

	"github.com/metajournal/reward-engine/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Clock supplies the current time. Injected so streak and expiry logic can be
// tested against fixed dates.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// RandomSource supplies uniform randomness for the scheduler and generator.
type RandomSource interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
}

// NewRandomSource returns a math/rand backed source seeded from the clock.
func NewRandomSource() RandomSource {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// ProgressStore is the durable store for progression documents. Load returns
// (nil, nil) when the user has no record yet.
type ProgressStore interface {
	Load(ctx context.Context, userID primitive.ObjectID) (*models.ProgressionState, error)
	Save(ctx context.Context, state *models.ProgressionState) error
}
