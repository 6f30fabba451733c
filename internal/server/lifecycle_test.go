package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

type blockingService struct {
	started atomic.Bool
	stopped atomic.Bool
	startFn func() error
	onStop  func()
}

func (m *blockingService) Start() error {
	m.started.Store(true)
	if m.startFn != nil {
		return m.startFn()
	}
	for !m.stopped.Load() {
		time.Sleep(5 * time.Millisecond)
	}
	return nil
}

func (m *blockingService) Stop() {
	if m.onStop != nil {
		m.onStop()
	}
	m.stopped.Store(true)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 5*time.Millisecond)
}

func TestLifecycle_CancelStopsAllInReverseOrder(t *testing.T) {
	lc := NewLifecycle(zaptest.NewLogger(t))

	var mu sync.Mutex
	var order []string
	record := func(name string) func() {
		return func() {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
		}
	}
	svc1 := &blockingService{onStop: record("svc1")}
	svc2 := &blockingService{onStop: record("svc2")}
	lc.Add("svc1", svc1)
	lc.Add("svc2", svc2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- lc.Run(ctx) }()

	waitFor(t, func() bool { return svc1.started.Load() && svc2.started.Load() })
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("lifecycle did not shut down in time")
	}
	assert.Equal(t, []string{"svc2", "svc1"}, order)
}

func TestLifecycle_ServiceFailureReturnsError(t *testing.T) {
	lc := NewLifecycle(zaptest.NewLogger(t))
	healthy := &blockingService{}
	lc.Add("healthy", healthy)
	lc.Add("broken", &blockingService{startFn: func() error { return errors.New("bind: address in use") }})

	err := lc.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service broken")
	assert.True(t, healthy.stopped.Load())
}

func TestFuncService(t *testing.T) {
	started, stopped := false, false
	svc := &FuncService{
		StartFn: func() error { started = true; return nil },
		StopFn:  func() { stopped = true },
	}

	assert.NoError(t, svc.Start())
	assert.True(t, started)
	svc.Stop()
	assert.True(t, stopped)
}

func TestTickerService_RunsUntilStopped(t *testing.T) {
	var calls atomic.Int32
	svc := &TickerService{
		Name:     "probe",
		Interval: 5 * time.Millisecond,
		Logger:   zap.NewNop(),
		Fn: func(ctx context.Context) error {
			if calls.Add(1)%2 == 0 {
				return fmt.Errorf("flaky")
			}
			return nil
		},
	}

	done := make(chan error, 1)
	go func() { done <- svc.Start() }()
	waitFor(t, func() bool { return calls.Load() >= 3 })
	svc.Stop()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("ticker did not stop")
	}
}

func TestHTTPService_ServesAndShutsDown(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	svc := NewHTTPService(handler, HTTPOptions{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second}, zaptest.NewLogger(t))
	require.NoError(t, svc.Listen())

	done := make(chan error, 1)
	go func() { done <- svc.Start() }()

	resp, err := http.Get("http://" + svc.Addr() + "/")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	svc.Stop()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("http service did not stop")
	}
}
