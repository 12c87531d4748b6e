package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/debate-flow/internal/speech"
)

func words(n int, stepMs int64) []speech.WordInterval {
	out := make([]speech.WordInterval, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, speech.WordInterval{
			Speaker:   "A",
			StartMs:   int64(i) * stepMs,
			EndMs:     int64(i+1) * stepMs,
			Text:      fmt.Sprintf("w%d", i),
			WordIndex: i,
		})
	}
	return out
}

func TestSplit(t *testing.T) {
	chunks := Split(words(40, 5000), Options{})

	want := []struct {
		start, end int64
		label      string
		count      int
	}{
		{0, 35000, "Hook & Opening", 7},
		{35000, 70000, "Model/Setup", 7},
		{70000, 105000, "Model/Setup", 7},
		{105000, 140000, "Model/Setup", 7},
		{140000, 175000, "Argument 2", 7},
		{175000, 200000, "Argument 3", 5},
	}

	if len(chunks) != len(want) {
		t.Fatalf("len(Split()) = %d, want %d", len(chunks), len(want))
	}
	for i, w := range want {
		c := chunks[i]
		if c.ID != i || c.StartMs != w.start || c.EndMs != w.end || c.Label != w.label || c.WordCount != w.count {
			t.Errorf("chunk %d = %+v, want %+v", i, c, w)
		}
	}
	if !strings.HasPrefix(chunks[0].Text, "w0 w1 w2") {
		t.Errorf("Text = %q", chunks[0].Text)
	}
}

func TestSplitEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		words []speech.WordInterval
		want  int
	}{
		{"no words", nil, 0},
		{"single word", words(1, 400), 1},
		{"short speech stays one chunk", words(10, 1000), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Split(tt.words, Options{}); len(got) != tt.want {
				t.Errorf("len(Split()) = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestSplitMaxDuration(t *testing.T) {
	// one long word crosses both limits at once
	ws := []speech.WordInterval{
		{Speaker: "A", StartMs: 0, EndMs: 1000, Text: "a"},
		{Speaker: "A", StartMs: 1000, EndMs: 60000, Text: "b"},
		{Speaker: "A", StartMs: 60000, EndMs: 61000, Text: "c"},
		{Speaker: "A", StartMs: 61000, EndMs: 62000, Text: "d"},
	}
	chunks := Split(ws, Options{TargetMs: 40000, MaxMs: 50000})
	if len(chunks) != 2 {
		t.Fatalf("len(Split()) = %d, want 2", len(chunks))
	}
	if chunks[0].EndMs != 60000 || chunks[1].StartMs != 60000 {
		t.Errorf("chunks = %+v", chunks)
	}
}

func TestFormatForLLM(t *testing.T) {
	chunks := []Chunk{
		{ID: 0, Label: "Hook & Opening", StartMs: 0, EndMs: 35000, Text: "hello house"},
		{ID: 1, Label: "Model/Setup", StartMs: 35000, EndMs: 65500, Text: "our model"},
	}

	out := FormatForLLM(chunks)
	for _, want := range []string{
		"[CHUNK_0] [00:00 - 00:35] Hook & Opening",
		"[CHUNK_1] [00:35 - 01:05] Model/Setup",
		`"our model"`,
		"Total chunks: 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatForLLM() missing %q", want)
		}
	}
}

func TestFind(t *testing.T) {
	chunks := []Chunk{{ID: 0}, {ID: 3}}
	if c, ok := Find(chunks, 3); !ok || c.ID != 3 {
		t.Errorf("Find(3) = %+v, %v", c, ok)
	}
	if _, ok := Find(chunks, 7); ok {
		t.Error("Find(7) should miss")
	}
}
