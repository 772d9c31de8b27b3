// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// ErrNotRunning is reported by Ready while no router is processing messages.
var ErrNotRunning = errors.New("event router is not running")

// EventRouter matches the eventprocessor.Router lifecycle.
type EventRouter interface {
	Run(ctx context.Context) error
	Running() <-chan struct{}
	Ready(ctx context.Context) error
	CleanupDedup() int
	DedupStats() (duplicates, unique int64, size int)
}

// RouterFactory builds a router with its handlers registered.
type RouterFactory func() (EventRouter, error)

// EventRouterService runs an event router under suture. Each Serve call
// builds a new router from the factory.
type EventRouterService struct {
	factory RouterFactory
	logger  zerolog.Logger
	name    string

	mu      sync.RWMutex
	current EventRouter
}

// NewEventRouterService creates the service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEventRouterService(factory RouterFactory, logger zerolog.Logger) *EventRouterService {
	return &EventRouterService{
		factory: factory,
		logger:  logger.With().Str("service", "event-router").Logger(),
		name:    "event-router",
	}
}

// Serve implements suture.Service.
func (s *EventRouterService) Serve(ctx context.Context) error {
	router, err := s.factory()
	if err != nil {
		return fmt.Errorf("build event router: %w", err)
	}

	s.setCurrent(router)
	defer s.setCurrent(nil)

	watchCtx, stopWatch := context.WithCancel(ctx)
	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		select {
		case <-router.Running():
			s.logger.Info().Msg("event router running")
		case <-watchCtx.Done():
		}
	}()
	defer func() {
		stopWatch()
		<-watchDone
	}()

	err = router.Run(ctx)
	if ctx.Err() != nil {
		s.logger.Info().Msg("event router stopped")
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("event router failed: %w", err)
	}
	return errors.New("event router stopped unexpectedly")
}

// Ready implements the readiness check for the current router.
func (s *EventRouterService) Ready(ctx context.Context) error {
	s.mu.RLock()
	router := s.current
	s.mu.RUnlock()

	if router == nil {
		return ErrNotRunning
	}
	return router.Ready(ctx)
}

// CleanupDedup sweeps the current router's dedup cache.
func (s *EventRouterService) CleanupDedup() int {
	s.mu.RLock()
	router := s.current
	s.mu.RUnlock()

	if router == nil {
		return 0
	}
	return router.CleanupDedup()
}

// DedupStats reports the current router's dedup counters, or zeros.
func (s *EventRouterService) DedupStats() (duplicates, unique int64, size int) {
	s.mu.RLock()
	router := s.current
	s.mu.RUnlock()

	if router == nil {
		return 0, 0, 0
	}
	return router.DedupStats()
}

func (s *EventRouterService) setCurrent(r EventRouter) {
	s.mu.Lock()
	s.current = r
	s.mu.Unlock()
}

// String implements fmt.Stringer; suture uses it in log messages.
func (s *EventRouterService) String() string {
	return s.name
}
