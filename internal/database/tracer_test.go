package database

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/deppfellow/fellows-tracker/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/multitracer"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tracerConfig(env string, threshold time.Duration) *config.Config {
	obs := config.DefaultObservabilityConfig()
	obs.Logging.SlowQueryThreshold = threshold
	return &config.Config{Primary: config.Primary{Env: env}, Observability: obs}
}

func TestNewTracer(t *testing.T) {
	log := zerolog.Nop()

	t.Run("nothing enabled", func(t *testing.T) {
		assert.Nil(t, newTracer(tracerConfig("production", 0), &log, nil))
	})

	t.Run("slow query log only", func(t *testing.T) {
		tracer := newTracer(tracerConfig("production", time.Second), &log, nil)

		mt, ok := tracer.(*multitracer.Tracer)
		require.True(t, ok)
		require.Len(t, mt.QueryTracers, 1)
		assert.IsType(t, &slowQueryTracer{}, mt.QueryTracers[0])
		assert.Empty(t, mt.BatchTracers)
	})

	t.Run("local env keeps batch and connect events", func(t *testing.T) {
		tracer := newTracer(tracerConfig("local", time.Second), &log, nil)

		mt, ok := tracer.(*multitracer.Tracer)
		require.True(t, ok)
		assert.Len(t, mt.QueryTracers, 2)
		require.Len(t, mt.BatchTracers, 1)
		assert.IsType(t, &tracelog.TraceLog{}, mt.BatchTracers[0])
		assert.Len(t, mt.ConnectTracers, 1)
		assert.Len(t, mt.PrepareTracers, 1)
		assert.Implements(t, (*pgx.BatchTracer)(nil), tracer)
	})
}

func TestSlowQueryTracer(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tracer := &slowQueryTracer{log: &log, threshold: 100 * time.Millisecond, now: func() time.Time { return clock }}

	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT id, name FROM fellows"})
	clock = clock.Add(20 * time.Millisecond)
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})
	assert.Empty(t, buf.String())

	ctx = tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "DELETE FROM posts WHERE fellow_id = $1"})
	clock = clock.Add(250 * time.Millisecond)
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})
	assert.Contains(t, buf.String(), `"message":"slow query"`)
	assert.Contains(t, buf.String(), "DELETE FROM posts")
}
