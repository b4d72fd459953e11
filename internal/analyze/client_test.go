package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/marcosremar/autopodcast-editor-sub002/internal/timeline"
)

func chatReply(content string) string {
	reply := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	data, _ := json.Marshal(reply)
	return string(data)
}

func TestClientAnalyze(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s, want /chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization = %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Messages) != 2 {
			t.Errorf("message count = %d, want 2", len(req.Messages))
		}

		fmt.Fprint(w, chatReply(`{"interest_score": 8, "clarity_score": 6, "is_tangent": false, "is_repetition": false, "has_error": false}`))
	}))
	defer ts.Close()

	c := NewClient(Config{BaseURL: ts.URL, APIKey: "test-key"})

	got, err := c.Analyze(context.Background(), timeline.Segment{ID: "s1", Start: 0, End: 10, Text: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := timeline.Analysis{InterestScore: 8, ClarityScore: 6}
	if got != want {
		t.Errorf("analysis = %+v, want %+v", got, want)
	}
}

func TestClientAnalyze_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := NewClient(Config{BaseURL: ts.URL, APIKey: "test-key"})
	if _, err := c.Analyze(context.Background(), timeline.Segment{ID: "s1", Start: 0, End: 10}); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestParseAnalysis(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    timeline.Analysis
		wantErr bool
	}{
		{
			"plain JSON",
			`{"interest_score": 7, "clarity_score": 9, "is_tangent": true}`,
			timeline.Analysis{InterestScore: 7, ClarityScore: 9, IsTangent: true},
			false,
		},
		{
			"fenced JSON",
			"```json\n{\"interest_score\": 5, \"clarity_score\": 5}\n```",
			timeline.Analysis{InterestScore: 5, ClarityScore: 5},
			false,
		},
		{
			"scores clamped",
			`{"interest_score": 15, "clarity_score": 0}`,
			timeline.Analysis{InterestScore: 10, ClarityScore: 1},
			false,
		},
		{
			"not JSON",
			"the segment was great",
			timeline.Analysis{},
			true,
		},
	}
	for _, tt := range tests {
		got, err := parseAnalysis(tt.content)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("%s: analysis = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.json")
	content := `{"s1": {"interest_score": 9, "clarity_score": 8, "is_tangent": false}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write analysis file: %v", err)
	}

	fs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	got, err := fs.Analyze(context.Background(), timeline.Segment{ID: "s1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.InterestScore != 9 || got.ClarityScore != 8 {
		t.Errorf("analysis = %+v", got)
	}

	if _, err := fs.Analyze(context.Background(), timeline.Segment{ID: "missing"}); err == nil {
		t.Error("expected error for unknown segment")
	}
}
