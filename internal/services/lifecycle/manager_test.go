package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManager_ShutdownReverseOrder(t *testing.T) {
	m := New(time.Second, nil)
	var order []string
	for _, name := range []string{"storage", "outbox", "http"} {
		m.Register(name, func(ctx context.Context) error {
			order = append(order, name)
			return nil
		})
	}
	m.Register("ignored", nil)

	require.NoError(t, m.Shutdown(context.Background()))
	require.Equal(t, []string{"http", "outbox", "storage"}, order)

	// hooks run once
	require.NoError(t, m.Shutdown(context.Background()))
	require.Len(t, order, 3)
}

func TestManager_ShutdownJoinsErrors(t *testing.T) {
	m := New(time.Second, nil)
	errA := errors.New("a")
	errB := errors.New("b")
	ran := false
	m.Register("a", func(ctx context.Context) error { return errA })
	m.Register("ok", func(ctx context.Context) error { ran = true; return nil })
	m.Register("b", func(ctx context.Context) error { return errB })

	err := m.Shutdown(context.Background())
	require.ErrorIs(t, err, errA)
	require.ErrorIs(t, err, errB)
	require.True(t, ran)
}

func TestManager_ShutdownHonoursTimeout(t *testing.T) {
	m := New(10*time.Millisecond, nil)
	m.Register("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	require.ErrorIs(t, m.Shutdown(context.Background()), context.DeadlineExceeded)
}

func TestManager_GoReportsFirstFailure(t *testing.T) {
	m := New(time.Second, nil)
	boom := errors.New("listen failed")
	m.Go("http", func() error { return boom })
	m.Go("quiet", func() error { return nil })

	select {
	case err := <-m.Errors():
		require.ErrorIs(t, err, boom)
	case <-time.After(time.Second):
		t.Fatal("component failure not reported")
	}
}
