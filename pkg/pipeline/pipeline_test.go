package pipeline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wordbrew/wordbrew/pkg/config"
	"github.com/wordbrew/wordbrew/pkg/corpus"
	"github.com/wordbrew/wordbrew/pkg/ngram"
	"github.com/wordbrew/wordbrew/pkg/wiktionary"
)

const definedPayload = `{"en":[{"partOfSpeech":"Noun","definitions":[{"definition":"A dwelling."}]}]}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func tieredProfile(t *testing.T) config.Profile {
	t.Helper()
	profile, err := config.DefaultConfig().Profile()
	if err != nil {
		t.Fatal(err)
	}
	return profile
}

func TestRank(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "noway") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(definedPayload))
	}))
	t.Cleanup(server.Close)

	refDir := t.TempDir()
	writeFile(t, refDir, "3.txt", "ASS")
	writeFile(t, refDir, "5.txt", "ALPHA\nBETAS\nHELLO\nNOWAY\nQUOTA\nWORLD")

	inputDir := t.TempDir()
	writeFile(t, inputDir, "sample.txt",
		"#w\t2000\nALPHA\t5\nASS\t5\nBETAS\t5\nGHOST\t5\nHELLO\t3\t4,5\nNOWAY\t5\nQUOTA\t0\nWORLD\t5\n")

	ranker := &Ranker{
		Profanity:  corpus.NewProfanity(),
		Reference:  corpus.NewReference(refDir),
		Checker:    wiktionary.NewChecker(t.TempDir(), wiktionary.NewTagCorpus(t.TempDir()), wiktionary.NewClient(server.URL), 3),
		Profile:    tieredProfile(t),
		FlushEvery: 100,
	}

	outputDir := filepath.Join(t.TempDir(), "out")
	if err := ranker.Rank(context.Background(), inputDir, outputDir); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(outputDir, "sample.txt"))
	if err != nil {
		t.Fatal(err)
	}
	// ALPHA, BETAS and WORLD share a score; ties resolve alphabetically.
	// ASS is profane, GHOST is not in the reference corpus, NOWAY has no
	// definition and QUOTA scores below the length-5 bar.
	expected := "ALPHA\nBETAS\nWORLD\nHELLO"
	if string(data) != expected {
		t.Fatalf("ranked list = %q, want %q", data, expected)
	}
}

func TestRankEmptyInputDir(t *testing.T) {
	ranker := &Ranker{Profile: tieredProfile(t)}
	err := ranker.Rank(context.Background(), t.TempDir(), filepath.Join(t.TempDir(), "out"))
	if err == nil {
		t.Fatal("expected an error for an empty input directory")
	}
}

func TestRankRefusesNonEmptyOutputDir(t *testing.T) {
	inputDir := t.TempDir()
	writeFile(t, inputDir, "sample.txt", "#w\t2000\n")
	outputDir := t.TempDir()
	writeFile(t, outputDir, "stale.txt", "leftover")

	ranker := &Ranker{Profile: tieredProfile(t)}
	if err := ranker.Rank(context.Background(), inputDir, outputDir); err == nil {
		t.Fatal("expected an error for a non-empty output directory")
	}
}

func TestOutputName(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"corpus.txt.br", "corpus.txt"},
		{"corpus.br", "corpus.txt"},
		{"corpus.txt", "corpus.txt"},
		{"corpus", "corpus.txt"},
	}
	for _, tc := range testCases {
		if got := outputName(tc.input); got != tc.expected {
			t.Errorf("outputName(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestCondense(t *testing.T) {
	inputDir := t.TempDir()
	writeFile(t, inputDir, "a.txt",
		"hello\t2000,100,10\t2001,50,5\nWORLD!\t2000,7,7\nat\t2000,5,5\nhello\t1999,9,9\n")
	writeFile(t, inputDir, "b.txt", "HELLO\t2001,50,5\n")

	outputPath := filepath.Join(t.TempDir(), "condensed.txt")
	err := Condense(inputDir, outputPath, CondenseOptions{MinYear: 2000, MaxYear: 2002})
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	// WORLD! fails normalization, "at" is too short and 1999 falls below
	// the window. HELLO's 2001 counts merge across both files.
	expected := "#w\t2000\t2001\t2002\nHELLO\t2,1\t2,1"
	if string(data) != expected {
		t.Fatalf("condensed output = %q, want %q", data, expected)
	}
}

func TestCondenseRefusesExistingOutput(t *testing.T) {
	inputDir := t.TempDir()
	writeFile(t, inputDir, "a.txt", "hello\t2000,100,10\n")
	outputPath := writeFile(t, t.TempDir(), "condensed.txt", "old")

	err := Condense(inputDir, outputPath, CondenseOptions{MinYear: 2000, MaxYear: 2019})
	if err == nil {
		t.Fatal("expected an error for an existing output file")
	}
}

func TestCondenseYearAboveMaxIsFatal(t *testing.T) {
	inputDir := t.TempDir()
	writeFile(t, inputDir, "a.txt", "hello\t2020,100,10\n")

	err := Condense(inputDir, filepath.Join(t.TempDir(), "out.txt"),
		CondenseOptions{MinYear: 2000, MaxYear: 2019})
	if !errors.Is(err, ngram.ErrYearOutOfRange) {
		t.Fatalf("expected ErrYearOutOfRange, got %v", err)
	}
}

func TestCondenseEmptyInputDir(t *testing.T) {
	err := Condense(t.TempDir(), filepath.Join(t.TempDir(), "out.txt"),
		CondenseOptions{MinYear: 2000, MaxYear: 2019})
	if err == nil {
		t.Fatal("expected an error for an empty input directory")
	}
}

func TestEncodeYear(t *testing.T) {
	testCases := []struct {
		usage    ngram.Usage
		expected string
	}{
		{ngram.Usage{}, ""},
		{ngram.Usage{MatchCount: 1000, VolumeCount: 1000}, "3"},
		{ngram.Usage{MatchCount: 1000, VolumeCount: 10}, "3,1"},
		{ngram.Usage{MatchCount: 1000}, "3"}, // zero volume mirrors match
		{ngram.Usage{MatchCount: 5, VolumeCount: 5}, "1"},
	}
	for _, tc := range testCases {
		if got := encodeYear(tc.usage); got != tc.expected {
			t.Errorf("encodeYear(%+v) = %q, want %q", tc.usage, got, tc.expected)
		}
	}
}

func TestSplit(t *testing.T) {
	inputPath := writeFile(t, t.TempDir(), "words.txt",
		"hello\nworld\nhello\ncafe\nbad word!\nat\n")
	outputDir := filepath.Join(t.TempDir(), "out")

	if err := Split(inputPath, outputDir); err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		file     string
		expected string
	}{
		{"5.txt", "HELLO\nWORLD"},
		{"4.txt", "CAFE"},
		{"2.txt", "AT"},
	}
	for _, tc := range testCases {
		data, err := os.ReadFile(filepath.Join(outputDir, tc.file))
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != tc.expected {
			t.Errorf("%s = %q, want %q", tc.file, data, tc.expected)
		}
	}
	if _, err := os.Stat(filepath.Join(outputDir, "8.txt")); !os.IsNotExist(err) {
		t.Error("unexpected partition for length 8")
	}
}

func TestSplitRefusesNonEmptyOutputDir(t *testing.T) {
	inputPath := writeFile(t, t.TempDir(), "words.txt", "hello\n")
	outputDir := t.TempDir()
	writeFile(t, outputDir, "stale.txt", "leftover")

	if err := Split(inputPath, outputDir); err == nil {
		t.Fatal("expected an error for a non-empty output directory")
	}
}

func TestSplitInputMustBeFile(t *testing.T) {
	if err := Split(t.TempDir(), filepath.Join(t.TempDir(), "out")); err == nil {
		t.Fatal("expected an error for a directory input")
	}
}
