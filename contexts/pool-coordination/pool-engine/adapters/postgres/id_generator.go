package postgresadapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// SystemClock is the production time oracle.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
