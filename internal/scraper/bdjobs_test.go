package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestExtractJobID(t *testing.T) {
	cases := []struct {
		url    string
		want   string
		wantOK bool
	}{
		{"https://site.example/jobs/details/1436685?x=1", "1436685", true},
		{"https://bdjobs.com/jobs/details/123/ai-engineer", "123", true},
		{"https://site.example/about", "", false},
		{"https://bdjobs.com/jobs/details/abc", "", false},
		{"::not a url", "", false},
		{"/jobs/details/123", "", false},
		{"bdjobs.com/jobs/details/123", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ExtractJobID(tc.url)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("ExtractJobID(%q) = %q, %v, want %q, %v", tc.url, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestCanonicalURL(t *testing.T) {
	got, err := CanonicalURL("https://www.bdjobs.com/jobs/details/77?ln=1")
	if err != nil {
		t.Fatalf("CanonicalURL() error = %v", err)
	}
	if got != "https://bdjobs.com/jobs/details/77" {
		t.Fatalf("CanonicalURL() = %q", got)
	}
	if _, err := CanonicalURL("https://bdjobs.com/"); !errors.Is(err, ErrInvalidJobURL) {
		t.Fatalf("CanonicalURL() error = %v, want ErrInvalidJobURL", err)
	}
}

func TestBdjobsFetchHTML(t *testing.T) {
	doer := &stubDoer{status: 200, body: "<html><title>x</title></html>"}
	b := NewBdjobs(doer, zerolog.Nop())

	html, err := b.FetchHTML(context.Background(), "https://bdjobs.com/jobs/details/9")
	if err != nil {
		t.Fatalf("FetchHTML() error = %v", err)
	}
	if html != doer.body {
		t.Fatalf("FetchHTML() = %q, want %q", html, doer.body)
	}
	if got := doer.got.Header.Get("referer"); got != "https://bdjobs.com/" {
		t.Fatalf("referer = %q", got)
	}
	if b.Name() != SiteBdjobs {
		t.Fatalf("Name() = %q, want %q", b.Name(), SiteBdjobs)
	}
}

func TestBdjobsFetchHTMLWrapsErrors(t *testing.T) {
	boom := errors.New("boom")
	b := NewBdjobs(&stubDoer{err: boom}, zerolog.Nop())
	if _, err := b.FetchHTML(context.Background(), "https://bdjobs.com/jobs/details/9"); !errors.Is(err, boom) {
		t.Fatalf("FetchHTML() error = %v, want wrapped boom", err)
	}
	if _, err := b.FetchHTML(context.Background(), "  "); !errors.Is(err, ErrInvalidJobURL) {
		t.Fatalf("FetchHTML() error = %v, want ErrInvalidJobURL", err)
	}
}

func TestKnownHost(t *testing.T) {
	cases := map[string]bool{
		"bdjobs.com":          true,
		"WWW.BDJOBS.COM":      true,
		"jobs.bdjobs.com:443": true,
		"example.com":         false,
	}
	for host, want := range cases {
		if got := KnownHost(host); got != want {
			t.Fatalf("KnownHost(%q) = %v, want %v", host, got, want)
		}
	}
}
