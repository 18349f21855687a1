package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"investigacion/internal/dto"
	"investigacion/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu      sync.Mutex
	fallos  int
	enviado []string
	html    string
}

func (f *fakeSender) SendHTML(to, _, html, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fallos > 0 {
		f.fallos--
		return errors.New("smtp: connection refused")
	}
	f.enviado = append(f.enviado, to)
	f.html = html
	return nil
}

func newTestWorker(s Sender) *EmailWorker {
	w := NewEmailWorker(s, infra.NewCircuitBreaker(infra.CircuitBreakerConfig{Name: "smtp-test", FailureThreshold: 10}))
	w.backoff = time.Millisecond
	return w
}

func payload(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

// ── EmailWorker ───────────────────────────────────────────────────────────────

func TestProcessRecuperacion_RendersLink(t *testing.T) {
	s := &fakeSender{}
	w := newTestWorker(s)

	err := w.ProcessRecuperacion(context.Background(), payload(t, RecuperacionPayload{
		Email: "ana@uni.edu", Link: "http://front/reset?token=a.b.c",
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"ana@uni.edu"}, s.enviado)
	assert.Contains(t, s.html, `href="http://front/reset?token=a.b.c"`)
}

func TestProcessRecuperacion_RetriesTransientFailures(t *testing.T) {
	s := &fakeSender{fallos: 2}
	w := newTestWorker(s)

	err := w.ProcessRecuperacion(context.Background(), payload(t, RecuperacionPayload{Email: "a@b.c", Link: "http://x"}))
	require.NoError(t, err)
	assert.Len(t, s.enviado, 1)
}

func TestProcessRecuperacion_GivesUpAfterMaxAttempts(t *testing.T) {
	s := &fakeSender{fallos: 5}
	w := newTestWorker(s)

	err := w.ProcessRecuperacion(context.Background(), payload(t, RecuperacionPayload{Email: "a@b.c", Link: "http://x"}))
	assert.Error(t, err)
	assert.Empty(t, s.enviado)
	assert.Equal(t, 2, s.fallos, "three attempts consumed")
}

func TestProcessRecuperacion_InvalidPayload(t *testing.T) {
	w := newTestWorker(&fakeSender{})
	assert.Error(t, w.ProcessRecuperacion(context.Background(), json.RawMessage(`{"email":""}`)))
	assert.Error(t, w.ProcessRecuperacion(context.Background(), json.RawMessage(`not json`)))
}

func TestWithRetry_StopsOnOpenCircuit(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), 5, time.Millisecond, func(int) error {
		calls++
		return infra.ErrCircuitOpen
	})
	assert.ErrorIs(t, err, infra.ErrCircuitOpen)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_HonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := withRetry(ctx, 3, time.Hour, func(int) error { return errors.New("boom") })
	assert.ErrorIs(t, err, context.Canceled)
}

// ── Pool.process ──────────────────────────────────────────────────────────────

func newTestPool() (*Pool, *[]string) {
	p := NewPool(nil, 1, infra.NewMetrics())
	var dead []string
	p.deadLetter = func(_ context.Context, _ string, job Job, reason string) {
		dead = append(dead, job.Type+": "+reason)
	}
	return p, &dead
}

func encodedJob(t *testing.T, jobType string, v any) string {
	t.Helper()
	job, err := nuevoJob(jobType, v)
	require.NoError(t, err)
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return string(b)
}

func TestPoolProcess_DispatchesByType(t *testing.T) {
	p, dead := newTestPool()
	var got RecuperacionPayload
	p.Handle(JobRecuperacion, func(_ context.Context, raw json.RawMessage) error {
		return json.Unmarshal(raw, &got)
	})

	res := p.process(context.Background(), QueueEmail, encodedJob(t, JobRecuperacion, RecuperacionPayload{Email: "a@b.c", Link: "l"}))
	assert.Equal(t, "ok", res)
	assert.Equal(t, "a@b.c", got.Email)
	assert.Empty(t, *dead)
}

func TestPoolProcess_FailedJobGoesToDLQ(t *testing.T) {
	p, dead := newTestPool()
	p.Handle(JobRecuperacion, func(context.Context, json.RawMessage) error { return errors.New("smtp down") })

	res := p.process(context.Background(), QueueEmail, encodedJob(t, JobRecuperacion, RecuperacionPayload{}))
	assert.Equal(t, "dlq", res)
	assert.Equal(t, []string{JobRecuperacion + ": smtp down"}, *dead)
}

func TestPoolProcess_UnknownTypeAndGarbage(t *testing.T) {
	p, dead := newTestPool()

	assert.Equal(t, "dlq", p.process(context.Background(), QueueEmail, encodedJob(t, "otro", struct{}{})))
	assert.Len(t, *dead, 1)
	assert.Equal(t, "invalid", p.process(context.Background(), QueueEmail, "{"))
	assert.Len(t, *dead, 1, "unparseable jobs are dropped, not dead-lettered")
}

// ── Cron ──────────────────────────────────────────────────────────────────────

type contadorRecalculo struct {
	mu    sync.Mutex
	veces int
}

func (c *contadorRecalculo) Recalcular(context.Context) (*dto.EstadisticasResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.veces++
	return &dto.EstadisticasResponse{}, nil
}

func (c *contadorRecalculo) total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.veces
}

func TestEstadisticasCron_RunsUntilCancelled(t *testing.T) {
	svc := &contadorRecalculo{}
	ctx, cancel := context.WithCancel(context.Background())
	StartEstadisticasCron(ctx, svc, 5*time.Millisecond)

	assert.Eventually(t, func() bool { return svc.total() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)
	n := svc.total()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, svc.total())
}

func TestEstadisticasCron_DisabledWithZeroInterval(t *testing.T) {
	svc := &contadorRecalculo{}
	StartEstadisticasCron(context.Background(), svc, 0)
	time.Sleep(10 * time.Millisecond)
	assert.Zero(t, svc.total())
}

func TestPoolEsperarTrasError_BacksOffOnConnectionErrors(t *testing.T) {
	p := NewPool(nil, 1, nil)
	p.backoff = 50 * time.Millisecond

	start := time.Now()
	assert.True(t, p.esperarTrasError(context.Background(), 0, redis.Nil))
	assert.Less(t, time.Since(start), p.backoff, "empty pop does not wait")

	start = time.Now()
	assert.True(t, p.esperarTrasError(context.Background(), 0, errors.New("dial tcp: connection refused")))
	assert.GreaterOrEqual(t, time.Since(start), p.backoff)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, p.esperarTrasError(ctx, 0, errors.New("dial tcp: connection refused")))
}
