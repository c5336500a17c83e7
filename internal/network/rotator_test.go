package network

import (
	"errors"
	"testing"
	"time"
)

func TestRotatorRoundRobin(t *testing.T) {
	r, err := NewRotator([]string{"http://a:1", " ", "http://b:2"}, time.Minute)
	if err != nil {
		t.Fatalf("NewRotator() error = %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}

	want := []string{"http://a:1", "http://b:2", "http://a:1"}
	for i, w := range want {
		got, err := r.Next()
		if err != nil {
			t.Fatalf("Next() #%d error = %v", i, err)
		}
		if got.String() != w {
			t.Fatalf("Next() #%d = %q, want %q", i, got.String(), w)
		}
	}
}

func TestRotatorBansOnBlockedStatus(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r, err := NewRotator([]string{"http://a:1", "http://b:2"}, time.Minute)
	if err != nil {
		t.Fatalf("NewRotator() error = %v", err)
	}
	r.now = func() time.Time { return now }

	a, _ := r.Next()
	r.Report(a, 429)
	b, _ := r.Next()
	r.Report(b, 200)

	got, err := r.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if got.String() != "http://b:2" {
		t.Fatalf("Next() = %q, want banned proxy skipped", got.String())
	}

	r.Report(b, 403)
	if _, err := r.Next(); !errors.Is(err, ErrNoProxies) {
		t.Fatalf("Next() error = %v, want ErrNoProxies", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := r.Next(); err != nil {
		t.Fatalf("Next() after ban expiry error = %v", err)
	}
}

func TestRotatorEmpty(t *testing.T) {
	r, err := NewRotator(nil, 0)
	if err != nil {
		t.Fatalf("NewRotator() error = %v", err)
	}
	if _, err := r.Next(); !errors.Is(err, ErrNoProxies) {
		t.Fatalf("Next() error = %v, want ErrNoProxies", err)
	}
}

func TestNewRotatorRejectsBareHost(t *testing.T) {
	if _, err := NewRotator([]string{"proxy.local"}, time.Minute); err == nil {
		t.Fatalf("NewRotator() error = nil, want error for proxy without scheme")
	}
}
