package detection

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"testing"

	"voiceguard/types"
)

func parseConfidence(t *testing.T, s string) float64 {
	t.Helper()
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		t.Fatalf("confidence %q is not a number: %v", s, err)
	}
	return f
}

func TestNormalizeConfidence(t *testing.T) {
	cases := []struct {
		name     string
		status   string
		score    any
		wantConf float64
		wantAI   bool
	}{
		{"manipulated high", "MANIPULATED", 0.95, 95, true},
		{"manipulated zero", "MANIPULATED", 0.0, 0, true},
		{"manipulated one", "MANIPULATED", 1.0, 100, true},
		{"authentic low score", "AUTHENTIC", 0.1, 90, false},
		{"authentic high score", "AUTHENTIC", 0.8, 20, false},
		{"unknown status", "SUSPICIOUS", 0.3, 70, false},
		{"lowercase manipulated is not ai", "manipulated", 0.9, 10, false},
		{"empty status", "", 0.25, 75, false},
		{"string score", "MANIPULATED", "0.75", 75, true},
		{"int score", "AUTHENTIC", 1, 0, false},
		{"json number score", "MANIPULATED", json.Number("0.5"), 50, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			raw := map[string]any{"status": c.status, "score": c.score, "request_id": "req-1"}
			got := Normalize(raw, types.UnknownLanguage())

			if got.IsAIGenerated != c.wantAI {
				t.Fatalf("IsAIGenerated = %t; want %t", got.IsAIGenerated, c.wantAI)
			}
			if got.IsHuman == got.IsAIGenerated {
				t.Fatalf("IsHuman must be the negation of IsAIGenerated")
			}
			conf := parseConfidence(t, got.ConfidenceScore)
			if math.Abs(conf-c.wantConf) > 0.005 {
				t.Fatalf("ConfidenceScore = %s; want %.2f", got.ConfidenceScore, c.wantConf)
			}
			if got.Status != c.status {
				t.Fatalf("Status = %q; want %q", got.Status, c.status)
			}
		})
	}
}

func TestNormalizeConfidenceProperty(t *testing.T) {
	for i := 0; i <= 100; i++ {
		s := float64(i) / 100
		ai := Normalize(map[string]any{"status": "MANIPULATED", "score": s}, types.UnknownLanguage())
		if want := s * 100; math.Abs(parseConfidence(t, ai.ConfidenceScore)-want) > 0.005 || !ai.IsAIGenerated {
			t.Fatalf("score %.2f MANIPULATED: got %s ai=%t; want %.2f ai=true", s, ai.ConfidenceScore, ai.IsAIGenerated, want)
		}
		human := Normalize(map[string]any{"status": "AUTHENTIC", "score": s}, types.UnknownLanguage())
		if want := (1 - s) * 100; math.Abs(parseConfidence(t, human.ConfidenceScore)-want) > 0.005 || human.IsAIGenerated {
			t.Fatalf("score %.2f AUTHENTIC: got %s ai=%t; want %.2f ai=false", s, human.ConfidenceScore, human.IsAIGenerated, want)
		}
	}
}

func TestNormalizeMissingScore(t *testing.T) {
	for _, raw := range []map[string]any{
		{"status": "AUTHENTIC"},
		{"status": "AUTHENTIC", "score": nil},
	} {
		got := Normalize(raw, types.UnknownLanguage())
		if got.ConfidenceScore != "100.00" {
			t.Fatalf("ConfidenceScore = %q; want 100.00", got.ConfidenceScore)
		}
		if got.RawScore != 0 {
			t.Fatalf("RawScore = %v; want 0", got.RawScore)
		}
	}
}

func TestNormalizeRequestID(t *testing.T) {
	got := Normalize(map[string]any{"status": "AUTHENTIC", "score": 0.2, "request_id": "rd-123"}, types.UnknownLanguage())
	if got.RequestID != "rd-123" {
		t.Fatalf("RequestID = %q; want rd-123", got.RequestID)
	}

	for _, id := range []any{nil, ""} {
		raw := map[string]any{"status": "AUTHENTIC", "score": 0.2}
		if id != nil {
			raw["request_id"] = id
		}
		got := Normalize(raw, types.UnknownLanguage())
		if !strings.HasPrefix(got.RequestID, LocalRequestIDPrefix) {
			t.Fatalf("RequestID = %q; want %s prefix", got.RequestID, LocalRequestIDPrefix)
		}
		if len(got.RequestID) != len(LocalRequestIDPrefix)+8 {
			t.Fatalf("RequestID = %q; want 8 hex characters after the prefix", got.RequestID)
		}
	}

	a := Normalize(map[string]any{}, types.UnknownLanguage())
	b := Normalize(map[string]any{}, types.UnknownLanguage())
	if a.RequestID == b.RequestID {
		t.Fatalf("synthesized request ids should differ, both %q", a.RequestID)
	}
}

func TestNormalizeModels(t *testing.T) {
	got := Normalize(map[string]any{"status": "AUTHENTIC"}, types.UnknownLanguage())
	if got.Models == nil || len(got.Models) != 0 {
		t.Fatalf("Models = %#v; want empty non-nil slice", got.Models)
	}
	b, _ := json.Marshal(got)
	if !strings.Contains(string(b), `"models":[]`) {
		t.Fatalf("marshaled result should carry an empty models list: %s", b)
	}

	models := []any{
		map[string]any{"name": "rd-img-ensemble", "score": 0.9, "status": "MANIPULATED"},
		map[string]any{"name": "rd-voice", "score": 0.1, "status": "AUTHENTIC"},
	}
	got = Normalize(map[string]any{"status": "MANIPULATED", "score": 0.9, "models": models}, types.UnknownLanguage())
	if len(got.Models) != 2 {
		t.Fatalf("len(Models) = %d; want 2", len(got.Models))
	}
	if got.Models[0].(map[string]any)["name"] != "rd-img-ensemble" {
		t.Fatalf("models order not preserved: %#v", got.Models)
	}
}

func TestNormalizeLanguagePassThrough(t *testing.T) {
	tr := "namaste"
	lang := types.LanguageInfo{Language: "Hindi", LanguageCode: "hi", Transcription: &tr, Confidence: "91%"}
	got := Normalize(map[string]any{"status": "AUTHENTIC"}, lang)
	if got.LanguageInfo.Language != "Hindi" || got.LanguageInfo.Transcription == nil || *got.LanguageInfo.Transcription != tr {
		t.Fatalf("LanguageInfo = %#v; want pass-through", got.LanguageInfo)
	}
}

func TestNormalizeMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  any
	}{
		{"nil", nil},
		{"string", "provider exploded"},
		{"list", []any{1, 2}},
		{"non numeric score", map[string]any{"status": "MANIPULATED", "score": "high"}},
		{"nan score", map[string]any{"status": "MANIPULATED", "score": "NaN"}},
		{"object score", map[string]any{"status": "MANIPULATED", "score": map[string]any{"v": 1}}},
		{"models not a list", map[string]any{"status": "AUTHENTIC", "models": "none"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Normalize(c.raw, types.UnknownLanguage())
			if got.Status != types.StatusError {
				t.Fatalf("Status = %q; want ERROR", got.Status)
			}
			if got.IsAIGenerated {
				t.Fatalf("IsAIGenerated = true; want false")
			}
			if got.ConfidenceScore != "0" {
				t.Fatalf("ConfidenceScore = %q; want \"0\"", got.ConfidenceScore)
			}
			if !strings.HasPrefix(got.RequestID, ErrorRequestIDPrefix) {
				t.Fatalf("RequestID = %q; want %s prefix", got.RequestID, ErrorRequestIDPrefix)
			}
			if got.Models == nil || len(got.Models) != 0 {
				t.Fatalf("Models = %#v; want empty", got.Models)
			}
			if _, ok := got.RawResult.(string); !ok {
				t.Fatalf("RawResult = %T; want textual form", got.RawResult)
			}
			if got.Error == "" {
				t.Fatalf("Error should describe the failure")
			}
			if _, err := json.Marshal(got); err != nil {
				t.Fatalf("error result must marshal: %v", err)
			}
		})
	}
}
