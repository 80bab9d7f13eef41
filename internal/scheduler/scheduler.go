// Package scheduler runs engine tasks on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

type Task func(ctx context.Context) error

// Scheduler wraps robfig/cron for a single named task.
type Scheduler struct {
	cron    *cron.Cron
	spec    string // e.g. "@every 6h"
	name    string
	task    Task
	onStart bool

	wg sync.WaitGroup
}

func New(spec, name string, task Task, runOnStart bool) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		spec:    spec,
		name:    name,
		task:    task,
		onStart: runOnStart,
	}
}

// Start registers the task and starts the cron loop. An empty spec only
// honours the run-on-start flag.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.spec != "" {
		if _, err := s.cron.AddFunc(s.spec, func() { s.run(ctx) }); err != nil {
			return fmt.Errorf("cron.AddFunc %q: %w", s.spec, err)
		}
		s.cron.Start()
		log.Printf("[scheduler] %s started, spec: %s", s.name, s.spec)
	}

	if s.onStart {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.run(ctx)
		}()
	}
	return nil
}

// Stop waits for running tasks to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.wg.Wait()
	log.Printf("[scheduler] %s stopped", s.name)
}

func (s *Scheduler) run(ctx context.Context) {
	if err := s.task(ctx); err != nil {
		log.Printf("[%s] error: %v", s.name, err)
	}
}
