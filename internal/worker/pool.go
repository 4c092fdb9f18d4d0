package worker

import (
	"context"
	"sync"

	"github.com/ppiankov/factly/internal/model"
)

// Verifier defines the interface for verifying a single claim
type Verifier interface {
	Verify(ctx context.Context, text string) (*model.VerificationResult, error)
}

// VerifyJob pairs a claim with the verifier that will process it
type VerifyJob struct {
	Claim    string
	Verifier Verifier
}

// VerifyOutcome is the terminal state of one claim's verification
type VerifyOutcome struct {
	Claim  string
	Result *model.VerificationResult
	Err    error
}

// GetError returns the error from the outcome
func (o *VerifyOutcome) GetError() error {
	return o.Err
}

// Pool runs claim verification jobs across a fixed set of workers
type Pool struct {
	workers    int
	jobQueue   chan VerifyJob
	results    chan *VerifyOutcome
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
}

// NewPool creates a new worker pool with the specified number of workers
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan VerifyJob, workers*2), // Buffered to prevent blocking
		results:    make(chan *VerifyOutcome, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start starts the worker pool
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result, err := job.Verifier.Verify(p.ctx, job.Claim)
			outcome := &VerifyOutcome{Claim: job.Claim, Result: result, Err: err}
			select {
			case p.results <- outcome:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit submits a job to the pool for execution
func (p *Pool) Submit(job VerifyJob) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobQueue <- job:
	}
}

// Wait waits for all submitted jobs to complete and returns their outcomes
func (p *Pool) Wait() []*VerifyOutcome {
	// Close job queue to signal workers to exit when done
	close(p.jobQueue)

	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	var outcomes []*VerifyOutcome
	for outcome := range p.results {
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

// Shutdown shuts down the worker pool immediately
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
