package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/quickevent/quickevent/pkg/config"
	"github.com/quickevent/quickevent/pkg/engine"
	"github.com/quickevent/quickevent/pkg/output"
	"github.com/quickevent/quickevent/pkg/source"
	"github.com/quickevent/quickevent/pkg/webhook"
)

var (
	projectRoot string
	rootOnce    sync.Once
)

// chdir changes to the project root directory for tests.
// Testdata paths are relative to project root.
func chdir(t *testing.T) {
	t.Helper()
	rootOnce.Do(func() {
		// Get the directory containing this test file, then go up one level
		_, filename, _, _ := runtime.Caller(0)
		projectRoot = filepath.Dir(filepath.Dir(filename))
	})
	if err := os.Chdir(projectRoot); err != nil {
		t.Fatalf("Failed to chdir to project root: %v", err)
	}
}

// requireFile fails the test if the required test file doesn't exist.
// We never skip tests - missing test data is a test failure.
func requireFile(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("Required test file not found: %s", path)
	}
}

// refMonday is a fixed reference instant so the pipeline is deterministic.
var refMonday = time.Date(2025, time.January, 20, 12, 0, 0, 0, time.UTC)

// TestE2E_ScheduleFile runs the full pipeline: config load, glob
// expansion, title reading, parsing, and aggregation.
func TestE2E_ScheduleFile(t *testing.T) {
	chdir(t)

	configFile := filepath.Join("testdata", "configs", "quickevent.yaml")
	titleFile := filepath.Join("testdata", "titles", "schedule.txt")
	requireFile(t, configFile)
	requireFile(t, titleFile)

	ctx := context.Background()

	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	files, err := source.ExpandGlobs([]string{filepath.Join("testdata", "titles", "*.txt")})
	if err != nil {
		t.Fatalf("Failed to expand globs: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("No title files found")
	}

	eng := engine.New(cfg.EngineOptions()...)

	titles := source.NewFileSource(files)
	defer titles.Close()

	var reports []*output.Report
	for {
		title, err := titles.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Reading titles failed: %v", err)
		}
		reports = append(reports, output.NewReport(title.Text, eng.ParseAt(title.Text, refMonday), refMonday))
	}

	batch := output.NewBatchReport(reports, files, refMonday, 0)

	t.Logf("Parsed %d titles, %d with dates", batch.Summary.TitlesParsed, batch.Summary.TitlesMatched)

	// schedule.txt has 8 titles, 6 with date expressions
	if batch.Summary.TitlesParsed != 8 {
		t.Errorf("Expected 8 titles parsed, got %d", batch.Summary.TitlesParsed)
	}
	if batch.Summary.TitlesMatched != 6 {
		t.Errorf("Expected 6 titles matched, got %d", batch.Summary.TitlesMatched)
	}

	// Spot-check individual resolutions
	byInput := make(map[string]*output.Report)
	for _, r := range reports {
		byInput[r.Input] = r
	}

	lunch := byInput["Lunch with Sam tomorrow 12:30pm"]
	if lunch == nil || !lunch.HasMatch() {
		t.Fatal("Expected lunch title to match")
	}
	if got := lunch.Result.Event.Start.Instant; !got.Equal(time.Date(2025, time.January, 21, 12, 30, 0, 0, time.UTC)) {
		t.Errorf("Lunch start = %v", got)
	}
	if lunch.Result.CleanTitle != "Lunch with Sam" {
		t.Errorf("Lunch clean title = %q", lunch.Result.CleanTitle)
	}
	// default_duration: 30m from the config file
	if got := lunch.Result.Event.End.Instant; !got.Equal(time.Date(2025, time.January, 21, 13, 0, 0, 0, time.UTC)) {
		t.Errorf("Lunch end = %v, want config default duration applied", got)
	}

	dentist := byInput["Dentist jan 27"]
	if dentist == nil || !dentist.HasMatch() {
		t.Fatal("Expected dentist title to match")
	}
	if dentist.Result.Event.Start.HasTime {
		t.Error("Dentist should be all-day")
	}

	for _, plain := range []string{"Weekly sync notes", "Groceries"} {
		if r := byInput[plain]; r == nil || r.HasMatch() {
			t.Errorf("Expected %q to have no date expression", plain)
		}
	}
}

// TestE2E_Formatters renders the same batch through every formatter.
func TestE2E_Formatters(t *testing.T) {
	chdir(t)

	ctx := context.Background()
	eng := engine.New()

	reports := []*output.Report{
		output.NewReport("Lunch tomorrow 12:30pm", eng.ParseAt("Lunch tomorrow 12:30pm", refMonday), refMonday),
		output.NewReport("Groceries", eng.ParseAt("Groceries", refMonday), refMonday),
	}
	batch := output.NewBatchReport(reports, nil, refMonday, 0)

	for _, name := range []string{"text", "json", "ics"} {
		formatter, err := output.ForName(name, output.FormatOptions{})
		if err != nil {
			t.Fatalf("ForName(%q) error: %v", name, err)
		}

		var buf bytes.Buffer
		if err := formatter.FormatBatch(ctx, batch, &buf); err != nil {
			t.Errorf("FormatBatch(%s) error: %v", name, err)
		}
		if buf.Len() == 0 {
			t.Errorf("FormatBatch(%s) produced no output", name)
		}
	}
}

// TestE2E_Webhook delivers a parse report to a local HTTP endpoint and
// verifies the payload round-trips.
func TestE2E_Webhook(t *testing.T) {
	var received []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	eng := engine.New()
	report := output.NewReport("Dinner friday 7pm", eng.ParseAt("Dinner friday 7pm", refMonday), refMonday)

	client := webhook.NewClient()
	resp := client.Send(context.Background(), report, webhook.SendOptions{URL: server.URL})
	if !resp.Success() {
		t.Fatalf("Webhook delivery failed: %v", resp.Error)
	}

	var payload output.Report
	if err := json.Unmarshal(received, &payload); err != nil {
		t.Fatalf("Payload is not valid JSON: %v", err)
	}
	if payload.Input != "Dinner friday 7pm" {
		t.Errorf("Payload input = %q", payload.Input)
	}
	if payload.Result == nil || !strings.Contains(payload.Result.CleanTitle, "Dinner") {
		t.Errorf("Payload result = %+v", payload.Result)
	}
}
