package lists

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"
)

func newTestAggregator() *Aggregator {
	return NewAggregator(NewFetcher(5*time.Second, "test"))
}

func TestAggregate_NoSources(t *testing.T) {
	_, err := newTestAggregator().Aggregate(context.Background(), nil)
	if !errors.Is(err, ErrNoSources) {
		t.Errorf("Expected ErrNoSources, got: %v", err)
	}
}

func TestAggregate_DeduplicatesAndSorts(t *testing.T) {
	// Two sources in different formats with overlapping domains.
	plainList := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# plain list\nzulu.example.com\nalpha.example.com\nzulu.example.com\n"))
	}))
	defer plainList.Close()

	hostsList := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("0.0.0.0 zulu.example.com\n0.0.0.0 mike.example.com # seen in spam runs\n"))
	}))
	defer hostsList.Close()

	domains, err := newTestAggregator().Aggregate(context.Background(), []string{plainList.URL, hostsList.URL})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	want := []string{"alpha.example.com", "mike.example.com", "zulu.example.com"}
	if !reflect.DeepEqual(domains, want) {
		t.Errorf("Expected %v, got %v", want, domains)
	}
}

func TestAggregate_MixedFormats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(
			"||ads.example.net^\n" +
				"https://cdn.example.org/track.js\n" +
				"*.wild.example.com\n" +
				"192.168.0.1\n" +
				"not_a_domain\n"))
	}))
	defer server.Close()

	domains, err := newTestAggregator().Aggregate(context.Background(), []string{server.URL})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	want := []string{"ads.example.net", "cdn.example.org", "wild.example.com"}
	if !reflect.DeepEqual(domains, want) {
		t.Errorf("Expected %v, got %v", want, domains)
	}
}

func TestAggregate_FetchFailureAbortsRun(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("fine.example.com\n"))
	}))
	defer good.Close()

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	domains, err := newTestAggregator().Aggregate(context.Background(), []string{good.URL, bad.URL})
	if err == nil {
		t.Fatal("Expected error when a source fails")
	}
	if domains != nil {
		t.Errorf("Expected no partial result, got %v", domains)
	}
}

func TestAggregate_OversizedLine(t *testing.T) {
	// A single line far past any scanner buffer size must not abort the run.
	longLine := strings.Repeat("x", 2*1024*1024) + " big.example.com"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(longLine + "\nsmall.example.com\n"))
	}))
	defer server.Close()

	domains, err := newTestAggregator().Aggregate(context.Background(), []string{server.URL})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	want := []string{"big.example.com", "small.example.com"}
	if !reflect.DeepEqual(domains, want) {
		t.Errorf("Expected %v, got %v", want, domains)
	}
}

func TestAggregate_CRLFLines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("win.example.com\r\nother.example.com\r\n"))
	}))
	defer server.Close()

	domains, err := newTestAggregator().Aggregate(context.Background(), []string{server.URL})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	want := []string{"other.example.com", "win.example.com"}
	if !reflect.DeepEqual(domains, want) {
		t.Errorf("Expected %v, got %v", want, domains)
	}
}
