package admission

import (
	"context"
	"testing"
	"time"
)

func TestControllerCapacityAndWindowReset(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	ctrl := NewController(Config{
		Capacity: 3,
		Window:   time.Minute,
		Now:      func() time.Time { return now },
	}, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := ctrl.TryAcquire(ctx, "1.2.3.4")
		if err != nil {
			t.Fatalf("acquire %d: %v", i+1, err)
		}
		if !allowed {
			t.Fatalf("request %d expected allowed", i+1)
		}
	}

	allowed, err := ctrl.TryAcquire(ctx, "1.2.3.4")
	if err != nil {
		t.Fatalf("acquire over capacity: %v", err)
	}
	if allowed {
		t.Fatalf("request 4 expected rejected")
	}

	// Another client has its own bucket.
	allowed, err = ctrl.TryAcquire(ctx, "5.6.7.8")
	if err != nil {
		t.Fatalf("acquire other client: %v", err)
	}
	if !allowed {
		t.Fatalf("other client expected allowed")
	}

	// A full window later the bucket resets to capacity, not one token.
	now = now.Add(time.Minute)
	for i := 0; i < 3; i++ {
		allowed, err := ctrl.TryAcquire(ctx, "1.2.3.4")
		if err != nil {
			t.Fatalf("post-reset acquire %d: %v", i+1, err)
		}
		if !allowed {
			t.Fatalf("post-reset request %d expected allowed", i+1)
		}
	}
	allowed, _ = ctrl.TryAcquire(ctx, "1.2.3.4")
	if allowed {
		t.Fatalf("post-reset request 4 expected rejected")
	}
}

func TestControllerPartialWindowDoesNotRefill(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	ctrl := NewController(Config{
		Capacity: 1,
		Window:   time.Minute,
		Now:      func() time.Time { return now },
	}, nil)
	ctx := context.Background()

	if allowed, _ := ctrl.TryAcquire(ctx, "a"); !allowed {
		t.Fatalf("first request expected allowed")
	}

	now = now.Add(59 * time.Second)
	if allowed, _ := ctrl.TryAcquire(ctx, "a"); allowed {
		t.Fatalf("request inside the window expected rejected")
	}
}

func TestControllerEmptyIDSharesUnknownBucket(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	ctrl := NewController(Config{
		Capacity: 1,
		Window:   time.Minute,
		Now:      func() time.Time { return now },
	}, nil)
	ctx := context.Background()

	if allowed, _ := ctrl.TryAcquire(ctx, ""); !allowed {
		t.Fatalf("first unknown request expected allowed")
	}
	if allowed, _ := ctrl.TryAcquire(ctx, UnknownClient); allowed {
		t.Fatalf("second unknown request expected rejected from the shared bucket")
	}
}

func TestClientID(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "absent header", header: "", want: UnknownClient},
		{name: "single value", header: "10.0.0.1", want: "10.0.0.1"},
		{name: "first of many", header: "10.0.0.1, 172.16.0.1, 192.168.0.1", want: "10.0.0.1"},
		{name: "padded", header: "  10.0.0.1  ", want: "10.0.0.1"},
		{name: "only commas", header: " , ", want: UnknownClient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClientID(tt.header); got != tt.want {
				t.Fatalf("ClientID(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}
