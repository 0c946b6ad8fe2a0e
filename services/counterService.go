package services

import (
	"context"
	"errors"
	"log"

	"github.com/ClassroomPrayers/gateway"
)

const (
	counterPath  = "stats/school"
	counterField = "totalPrayers"
)

// CounterService owns the school-wide prayer counter. All read-modify-write
// races stay server-side: the only mutation is an atomic increment, with an
// explicit set-to-1 fallback for the create-on-first-use race.
type CounterService struct {
	store gateway.Store
}

var counterService *CounterService

func InitCounterService(store gateway.Store) {
	counterService = &CounterService{store: store}
	log.Println("Counter service initialized")
}

func GetCounterService() *CounterService {
	return counterService
}

// RecordAmen bumps the shared counter by one. When the counter document
// does not exist yet the increment reports not-found and we create it with
// an initial value instead.
func (s *CounterService) RecordAmen(ctx context.Context) error {
	err := s.store.Increment(ctx, counterPath, counterField, 1)
	if errors.Is(err, gateway.ErrNotFound) {
		return s.store.WriteMerge(ctx, counterPath, gateway.Fields{counterField: int64(1)})
	}
	return err
}

// Watch pushes the current total on every remote change.
func (s *CounterService) Watch(fn func(int64)) (gateway.CancelFunc, error) {
	return s.store.Subscribe(counterPath, func(doc gateway.Fields) {
		fn(counterTotal(doc))
	})
}

// Total reads the counter once; absent counter reads as zero.
func (s *CounterService) Total(ctx context.Context) (int64, error) {
	doc, err := s.store.ReadOnce(ctx, counterPath)
	if errors.Is(err, gateway.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return counterTotal(doc), nil
}

func counterTotal(doc gateway.Fields) int64 {
	switch v := doc[counterField].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}
