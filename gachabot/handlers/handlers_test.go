package handlers

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

func TestThrottle_FailOpen(t *testing.T) {
	tests := []struct {
		name     string
		throttle *Throttle
	}{
		{name: "nil throttle", throttle: nil},
		{name: "no redis configured", throttle: NewThrottle(context.Background(), RedisConfig{}, 1, time.Second)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 5; i++ {
				if !tt.throttle.Allow(context.Background(), 42) {
					t.Fatalf("Throttle.Allow() call %d got = false, want true", i+1)
				}
			}
			if err := tt.throttle.Close(); err != nil {
				t.Errorf("Throttle.Close() error = %v", err)
			}
		})
	}
}

// Runs only when REDIS_ADDR points at a live server.
func TestThrottle_Redis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping integration test")
	}

	throttle := NewThrottle(context.Background(), RedisConfig{Addr: addr}, 2, 2*time.Second)
	if !throttle.Enabled() {
		t.Fatalf("NewThrottle() could not reach %s", addr)
	}
	defer throttle.Close()

	user := time.Now().UnixNano()
	for i := 0; i < 2; i++ {
		if !throttle.Allow(context.Background(), user) {
			t.Fatalf("Throttle.Allow() call %d got = false, want true", i+1)
		}
	}
	if throttle.Allow(context.Background(), user) {
		t.Errorf("Throttle.Allow() over the limit got = true, want false")
	}
}

func TestWrapper_Run(t *testing.T) {
	w := &Wrapper{Timeout: 50 * time.Millisecond}

	boom := errors.New("boom")
	if timedOut, err := w.run(func() error { return boom }); !errors.Is(err, boom) || timedOut {
		t.Errorf("Wrapper.run() got = %v, %v, want %v, false", err, timedOut, boom)
	}

	release := make(chan struct{})
	defer close(release)
	if timedOut, err := w.run(func() error { <-release; return nil }); err == nil || !timedOut {
		t.Errorf("Wrapper.run() on a stuck handler got = %v, %v, want timeout", err, timedOut)
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		took time.Duration
		want string
	}{
		{took: time.Millisecond, want: "success"},
		{took: 3 * time.Second, want: "slow"},
		{err: errors.New("x"), took: time.Millisecond, want: "failed"},
	}
	for _, tt := range tests {
		if got := outcome(tt.err, tt.took); got != tt.want {
			t.Errorf("outcome(%v, %v) got = %v, want %v", tt.err, tt.took, got, tt.want)
		}
	}
}
