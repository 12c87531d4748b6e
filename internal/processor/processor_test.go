package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/debate-flow/internal/config"
	"github.com/nguyentantai21042004/debate-flow/internal/enrich"
	"github.com/nguyentantai21042004/debate-flow/internal/feedback"
	"github.com/nguyentantai21042004/debate-flow/internal/logger"
	"github.com/nguyentantai21042004/debate-flow/internal/speech"
	"github.com/nguyentantai21042004/debate-flow/internal/transcript"
)

type fakeExecutor struct {
	calls [][]string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return "", nil
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

type fakeGenerator struct {
	req feedback.Request
	res *feedback.Result
	err error
}

func (f *fakeGenerator) Generate(ctx context.Context, req feedback.Request) (*feedback.Result, error) {
	f.req = req
	return f.res, f.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{
		Paths: config.PathsConfig{
			Input:      filepath.Join(root, "input"),
			Processing: filepath.Join(root, "processing"),
			Output:     filepath.Join(root, "output"),
			Archived:   filepath.Join(root, "archived"),
		},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(cfg.Paths.Input, 0755); err != nil {
		t.Fatal(err)
	}
	return cfg
}

// words spaced stepMs apart covering [startMs, endMs)
func spoken(speaker string, startMs, endMs, stepMs int64) []transcript.Word {
	var out []transcript.Word
	for ts := startMs; ts < endMs; ts += stepMs {
		out = append(out, transcript.Word{Text: fmt.Sprintf("%s%d", speaker, ts), Start: ts, End: ts + stepMs, Speaker: speaker})
	}
	return out
}

func writeTranscript(t *testing.T, dir string, f transcript.File) string {
	t.Helper()
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "round1.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func debate() transcript.File {
	var words []transcript.Word
	words = append(words, spoken("C", 0, 60000, 5000)...) // chair's introduction
	words = append(words, spoken("A", 120000, 370000, 5000)...)
	words = append(words, spoken("B", 380000, 410000, 5000)...)
	words = append(words, spoken("A", 430000, 740000, 5000)...)
	words = append(words, spoken("B", 800000, 1200000, 5000)...)
	return transcript.File{
		TranscriptID: 53,
		Motion:       "This House would nationalise pharmaceuticals",
		Position:     "PM",
		AudioPath:    "/recordings/round1.mp3",
		Words:        words,
	}
}

func TestProcess(t *testing.T) {
	cfg := testConfig(t)
	cfg.FFmpeg.ClipAudio = true
	exec := &fakeExecutor{}
	gen := &fakeGenerator{res: &feedback.Result{
		StrategicOverview: feedback.Overview{StrategicAssessment: "Solid framing"},
		PlayableMoments: []enrich.Moment{
			{ChunkID: 1, Category: "weak", Severity: "critical", Issue: "no mechanism"},
			{ChunkID: 99, Category: "gap", Severity: "critical", Issue: "ghost chunk"},
		},
	}}
	p := New(cfg, exec, logger.New("error", "text"), gen)

	path := writeTranscript(t, cfg.Paths.Input, debate())
	if err := p.Process(context.Background(), path); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfg.Paths.Output, "round1.feedback.json"))
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	var r feedback.Report
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("decode report: %v", err)
	}

	if r.Primary.Speaker != "A" || r.Primary.StartMs != 120000 || r.Primary.EndMs != 740000 {
		t.Errorf("Primary = %+v, want A 120000-740000", r.Primary)
	}
	if r.DurationSec != 560 {
		t.Errorf("DurationSec = %v, want 560", r.DurationSec)
	}
	if r.OffsetMs != 120000 {
		t.Errorf("OffsetMs = %d, want 120000", r.OffsetMs)
	}
	if r.RunID == "" || r.Source != "round1.json" {
		t.Errorf("RunID = %q, Source = %q", r.RunID, r.Source)
	}

	if len(r.Moments) != 1 || len(r.Skipped) != 1 {
		t.Fatalf("Moments = %d, Skipped = %d; want 1 and 1", len(r.Moments), len(r.Skipped))
	}
	// chunk 1 starts 35s into the speech, 155s into the recording
	if m := r.Moments[0]; m.StartSeconds != 155 || m.StartTime != "00:35" {
		t.Errorf("moment = %+v, want absolute 155s and relative 00:35", m)
	}

	if gen.req.ActualDurationSec != 560 || len(gen.req.Chunks) == 0 || gen.req.Chunks[0].StartMs != 0 {
		t.Errorf("generator request = %+v", gen.req)
	}

	if _, err := os.Stat(filepath.Join(cfg.Paths.Output, "round1.feedback.docx")); err != nil {
		t.Errorf("docx not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.Archived, "round1.json")); err != nil {
		t.Errorf("transcript not archived: %v", err)
	}

	if len(exec.calls) != 1 {
		t.Fatalf("executor calls = %d, want 1", len(exec.calls))
	}
	cmd := strings.Join(exec.calls[0], " ")
	if !strings.Contains(cmd, "-ss 120.000 -to 740.000 -i /recordings/round1.mp3") {
		t.Errorf("ffmpeg command = %q", cmd)
	}
}

func TestProcessWithoutGenerator(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, &fakeExecutor{}, logger.New("error", "text"), nil)

	path := writeTranscript(t, cfg.Paths.Input, debate())
	if err := p.Process(context.Background(), path); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.Output, "round1.feedback.docx")); !os.IsNotExist(err) {
		t.Errorf("docx should not be written without feedback, stat error = %v", err)
	}
}

func TestProcessGeneratorFailure(t *testing.T) {
	cfg := testConfig(t)
	gen := &fakeGenerator{err: errors.New("all API keys exhausted")}
	p := New(cfg, &fakeExecutor{}, logger.New("error", "text"), gen)

	path := writeTranscript(t, cfg.Paths.Input, debate())
	if err := p.Process(context.Background(), path); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.Output, "round1.feedback.json")); err != nil {
		t.Errorf("report should still be written: %v", err)
	}
}

func TestProcessNoSubstantiveSpeech(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, &fakeExecutor{}, logger.New("error", "text"), nil)

	short := transcript.File{Words: spoken("A", 0, 200000, 5000)}
	path := writeTranscript(t, cfg.Paths.Input, short)

	err := p.Process(context.Background(), path)
	if !errors.Is(err, speech.ErrNoSubstantiveSpeech) {
		t.Fatalf("Process() error = %v, want ErrNoSubstantiveSpeech", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.Processing, "round1.json")); err != nil {
		t.Errorf("transcript should stay in processing: %v", err)
	}
}

func TestMsToSeconds(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0.000"},
		{120000, "120.000"},
		{61005, "61.005"},
	}
	for _, tt := range tests {
		if got := msToSeconds(tt.ms); got != tt.want {
			t.Errorf("msToSeconds(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		value   any
		wantErr bool
	}{
		{"report", filepath.Join(dir, "ok.json"), map[string]int{"duration_sec": 560}, false},
		{"unencodable value", filepath.Join(dir, "bad.json"), map[string]any{"f": func() {}}, true},
		{"missing directory", filepath.Join(dir, "missing", "x.json"), 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := writeJSON(tt.path, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("writeJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			data, err := os.ReadFile(tt.path)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(data), `"duration_sec": 560`) {
				t.Errorf("file = %s", data)
			}
		})
	}
}
