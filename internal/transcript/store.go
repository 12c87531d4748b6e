package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/nguyentantai21042004/debate-flow/internal/speech"
	postgrest "github.com/supabase-community/postgrest-go"
)

const insertBatchSize = 1000

// Row mirrors a transcript_words row.
type Row struct {
	TranscriptID int64   `json:"transcript_id"`
	WordIndex    int     `json:"word_index"`
	Text         string  `json:"text"`
	StartMs      int64   `json:"start_ms"`
	EndMs        int64   `json:"end_ms"`
	Confidence   float64 `json:"confidence"`
	Speaker      *string `json:"speaker"`
}

// Store reads and writes diarized words through Supabase PostgREST.
type Store struct {
	client *postgrest.Client
	table  string
}

// NewStore connects to the PostgREST endpoint of a Supabase project.
func NewStore(supabaseURL, serviceKey, table string) (*Store, error) {
	if supabaseURL == "" || serviceKey == "" {
		return nil, fmt.Errorf("supabase url and service key are required")
	}
	client := postgrest.NewClient(supabaseURL+"/rest/v1", "", map[string]string{
		"apikey":        serviceKey,
		"Authorization": fmt.Sprintf("Bearer %s", serviceKey),
	})
	if client.ClientError != nil {
		return nil, fmt.Errorf("init postgrest client: %w", client.ClientError)
	}
	return &Store{client: client, table: table}, nil
}

// Words returns a transcript's labeled words ordered by start time.
func (s *Store) Words(ctx context.Context, transcriptID int64) ([]speech.WordInterval, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, _, err := s.client.From(s.table).
		Select("word_index,text,start_ms,end_ms,confidence,speaker", "", false).
		Eq("transcript_id", strconv.FormatInt(transcriptID, 10)).
		Not("speaker", "is", "null").
		Order("start_ms", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("query %s for transcript %d: %w", s.table, transcriptID, err)
	}

	var rows []Row
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode %s rows: %w", s.table, err)
	}
	return rowsToIntervals(rows), nil
}

// SaveWords inserts a transcript's words in batches.
func (s *Store) SaveWords(ctx context.Context, transcriptID int64, words []speech.WordInterval) error {
	rows := intervalsToRows(transcriptID, words)
	for start := 0; start < len(rows); start += insertBatchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := start + insertBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		if _, _, err := s.client.From(s.table).Insert(rows[start:end], false, "", "minimal", "").Execute(); err != nil {
			return fmt.Errorf("insert words %d-%d of transcript %d: %w", start, end, transcriptID, err)
		}
	}
	return nil
}

func rowsToIntervals(rows []Row) []speech.WordInterval {
	out := make([]speech.WordInterval, 0, len(rows))
	for _, r := range rows {
		if r.Speaker == nil {
			continue
		}
		out = append(out, speech.WordInterval{
			Speaker:    *r.Speaker,
			StartMs:    r.StartMs,
			EndMs:      r.EndMs,
			Text:       r.Text,
			Confidence: r.Confidence,
			WordIndex:  r.WordIndex,
		})
	}
	return out
}

func intervalsToRows(transcriptID int64, words []speech.WordInterval) []Row {
	rows := make([]Row, 0, len(words))
	for _, w := range words {
		r := Row{
			TranscriptID: transcriptID,
			WordIndex:    w.WordIndex,
			Text:         w.Text,
			StartMs:      w.StartMs,
			EndMs:        w.EndMs,
			Confidence:   w.Confidence,
		}
		if w.Speaker != "" {
			spk := w.Speaker
			r.Speaker = &spk
		}
		rows = append(rows, r)
	}
	return rows
}
