package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"investigacion/internal/infra"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueEmail = "jobs:email"

	JobRecuperacion = "email.recuperacion"
)

// Job is the envelope of every queued task.
type Job struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// Handler processes one job payload. A returned error sends the job to the DLQ.
type Handler func(ctx context.Context, payload json.RawMessage) error

// ErrSinHandler marks a job type nobody registered.
var ErrSinHandler = errors.New("worker: tipo de job sin handler")

// Dispatcher enqueues jobs into Redis lists; the pool pops them with BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueRecuperacion queues the password-recovery mail for email.
func (d *Dispatcher) EnqueueRecuperacion(ctx context.Context, email, link string) error {
	return d.enqueue(ctx, QueueEmail, JobRecuperacion, RecuperacionPayload{Email: email, Link: link})
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload any) error {
	job, err := nuevoJob(jobType, payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

func nuevoJob(jobType string, payload any) (Job, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Job{}, err
	}
	return Job{ID: uuid.NewString(), Type: jobType, Payload: data, EnqueuedAt: time.Now().UTC()}, nil
}

// ── Pool ──────────────────────────────────────────────────────────────────────

// Pool runs size goroutines blocked on BRPOP over the registered queues.
type Pool struct {
	rdb      *redis.Client
	size     int
	queues   []string
	handlers map[string]Handler
	metrics  *infra.Metrics

	// pause after a Redis error other than an empty pop
	backoff time.Duration

	// deadLetter defaults to SendToDLQ
	deadLetter func(ctx context.Context, queue string, job Job, reason string)
}

func NewPool(rdb *redis.Client, size int, metrics *infra.Metrics) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{rdb: rdb, size: size, queues: []string{QueueEmail}, handlers: map[string]Handler{}, metrics: metrics, backoff: time.Second}
	p.deadLetter = func(ctx context.Context, queue string, job Job, reason string) {
		SendToDLQ(ctx, rdb, queue, job, reason)
	}
	return p
}

// Handle registers h for jobs of jobType.
func (p *Pool) Handle(jobType string, h Handler) { p.handlers[jobType] = h }

// Start launches the workers. They stop when ctx is cancelled.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.size; i++ {
		go p.run(ctx, i)
	}
	log.Info().Int("workers", p.size).Strs("queues", p.queues).Msg("worker pool started")
}

func (p *Pool) run(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Int("worker", id).Msg("worker shutting down")
			return
		default:
			// waits up to 5s then loops to check ctx
			result, err := p.rdb.BRPop(ctx, 5*time.Second, p.queues...).Result()
			if err != nil {
				if !p.esperarTrasError(ctx, id, err) {
					return
				}
				continue
			}
			if len(result) < 2 {
				continue
			}
			p.process(ctx, result[0], result[1])
		}
	}
}

// esperarTrasError sleeps p.backoff on connection errors so a dead Redis does
// not spin the worker. redis.Nil is a plain timeout and returns at once.
// Reports false when ctx ended while waiting.
func (p *Pool) esperarTrasError(ctx context.Context, id int, err error) bool {
	if errors.Is(err, redis.Nil) {
		return true
	}
	if ctx.Err() != nil {
		return false
	}
	log.Warn().Err(err).Int("worker", id).Dur("backoff", p.backoff).Msg("worker: redis no disponible")
	select {
	case <-ctx.Done():
		return false
	case <-time.After(p.backoff):
		return true
	}
}

// process decodes and dispatches one raw job, returning the metric result label.
func (p *Pool) process(ctx context.Context, queue, raw string) string {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("worker: job ilegible")
		p.observe(queue, "invalid")
		return "invalid"
	}

	h, ok := p.handlers[job.Type]
	if !ok {
		p.deadLetter(ctx, queue, job, ErrSinHandler.Error())
		p.observe(queue, "dlq")
		return "dlq"
	}
	if err := h(ctx, job.Payload); err != nil {
		log.Error().Err(err).Str("job_id", job.ID).Str("type", job.Type).Msg("worker: job fallido")
		p.deadLetter(ctx, queue, job, err.Error())
		p.observe(queue, "dlq")
		return "dlq"
	}
	log.Debug().Str("job_id", job.ID).Str("type", job.Type).Msg("worker: job procesado")
	p.observe(queue, "ok")
	return "ok"
}

func (p *Pool) observe(queue, result string) {
	if p.metrics != nil {
		p.metrics.ObserveJob(queue, result)
	}
}
