package wiktionary

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckerCachesTerminalStatus(t *testing.T) {
	calls := 0
	client := newLookupServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(definedPayload))
	})
	cacheDir := t.TempDir()
	corpus := NewTagCorpus(t.TempDir())

	checker := NewChecker(cacheDir, corpus, client, 3)
	for i := 0; i < 3; i++ {
		defined, err := checker.IsDefined(context.Background(), "HOUSE")
		if err != nil {
			t.Fatal(err)
		}
		if !defined {
			t.Fatal("expected HOUSE to be defined")
		}
	}
	if calls != 1 {
		t.Fatalf("expected 1 network call within a run, got %d", calls)
	}
	if err := checker.Flush(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(cacheDir, "5-defined.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "HOUSE") {
		t.Fatalf("flushed cache = %q, missing HOUSE", data)
	}

	// A fresh checker over the same cache dir must not hit the network.
	fresh := NewChecker(cacheDir, corpus, client, 3)
	defined, err := fresh.IsDefined(context.Background(), "HOUSE")
	if err != nil {
		t.Fatal(err)
	}
	if !defined || calls != 1 {
		t.Fatalf("cached word re-issued a lookup (defined=%v calls=%d)", defined, calls)
	}
}

// A Defined lookup result is downgraded when the tag corpus disqualifies
// every sense; the cache still records the raw lookup status so the
// downgrade tracks future tag corpus updates.
func TestCheckerTagDowngrade(t *testing.T) {
	client := newLookupServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(definedPayload))
	})
	cacheDir := t.TempDir()
	corpus := newTestCorpus(t, map[string][][]string{
		"slangy": {{"lb|en|slang"}},
	})

	checker := NewChecker(cacheDir, corpus, client, 3)
	defined, err := checker.IsDefined(context.Background(), "SLANGY")
	if err != nil {
		t.Fatal(err)
	}
	if defined {
		t.Fatal("expected SLANGY to be downgraded to excluded")
	}
	if err := checker.Flush(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(cacheDir, "6-defined.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "SLANGY") {
		t.Fatalf("cache should keep the raw defined status, got %q", data)
	}
}

func TestCheckerRetriesTransientErrors(t *testing.T) {
	calls := 0
	client := newLookupServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(definedPayload))
	})

	checker := NewChecker(t.TempDir(), NewTagCorpus(t.TempDir()), client, 3)
	defined, err := checker.IsDefined(context.Background(), "HOUSE")
	if err != nil {
		t.Fatal(err)
	}
	if !defined {
		t.Fatal("expected HOUSE defined after retries")
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestCheckerRetryExhaustionIsFatal(t *testing.T) {
	calls := 0
	client := newLookupServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})

	checker := NewChecker(t.TempDir(), NewTagCorpus(t.TempDir()), client, 3)
	if _, err := checker.IsDefined(context.Background(), "HOUSE"); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", calls)
	}
}

func TestCacheSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	content := "HOUSE\nAB\nWORLD\n"
	if err := os.WriteFile(filepath.Join(dir, "5-defined.txt"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cache := NewCache(dir, StatusDefined)
	if !cache.Has("HOUSE") || !cache.Has("WORLD") {
		t.Error("expected valid lines to load")
	}
	if cache.Has("AB") {
		t.Error("length-2 line should not load into any partition")
	}
}

func TestCacheOutOfRangeLengthNotPersisted(t *testing.T) {
	dir := t.TempDir()
	cache := NewCache(dir, StatusDefined)

	long := strings.Repeat("A", 25)
	cache.Register(long)
	if !cache.Has(long) {
		t.Error("in-memory registration should work regardless of length")
	}
	if err := cache.Flush(); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("out-of-range partition was persisted: %v", entries)
	}
}
