package language

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"voiceguard/types"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiPrompt = `Identify the spoken language of this audio clip.
Reply with JSON only: {"language_code": "<ISO 639-1 code>", "transcription": "<first sentence>", "confidence": <0..1>}.
Use "unknown" as the code when no speech is present.`

// Gemini detects the spoken language with a Gemini multimodal model
type Gemini struct {
	APIKey string
	Model  string
}

// NewGemini creates a Gemini-backed detector
func NewGemini(apiKey, model string) *Gemini {
	return &Gemini{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

type geminiReply struct {
	LanguageCode  string  `json:"language_code"`
	Transcription string  `json:"transcription"`
	Confidence    float64 `json:"confidence"`
}

func (g *Gemini) Detect(ctx context.Context, path string) (types.LanguageInfo, error) {
	if g.APIKey == "" {
		return types.LanguageInfo{}, errors.New("GEMINI_API_KEY is empty")
	}
	audio, err := os.ReadFile(path)
	if err != nil {
		return types.LanguageInfo{}, fmt.Errorf("read audio: %w", err)
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(g.APIKey))
	if err != nil {
		return types.LanguageInfo{}, err
	}
	defer cl.Close()

	m := cl.GenerativeModel(g.Model)
	temp := float32(0)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}

	resp, err := m.GenerateContent(ctx,
		genai.Text(geminiPrompt),
		&genai.Blob{MIMEType: mimetype.Detect(audio).String(), Data: audio},
	)
	if err != nil {
		return types.LanguageInfo{}, fmt.Errorf("gemini language: %w", err)
	}

	txt := firstText(resp)
	if txt == "" {
		return types.LanguageInfo{}, errors.New("gemini language: empty response")
	}
	return parseReply(txt)
}

func parseReply(txt string) (types.LanguageInfo, error) {
	txt = stripCodeFences(strings.TrimSpace(txt))

	var reply geminiReply
	if err := json.Unmarshal([]byte(txt), &reply); err != nil {
		return types.LanguageInfo{}, fmt.Errorf("gemini language: bad JSON: %w", err)
	}

	code := strings.ToLower(strings.TrimSpace(reply.LanguageCode))
	info := types.LanguageInfo{
		Language:     Name(code),
		LanguageCode: code,
		Confidence:   fmt.Sprintf("%d%%", int(math.Round(clamp01(reply.Confidence)*100))),
	}
	if info.Language == "Unknown" {
		info.LanguageCode = "unknown"
	}
	if t := strings.TrimSpace(reply.Transcription); t != "" {
		info.Transcription = &t
	}
	return info, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, p := range cand.Content.Parts {
			if t, ok := p.(genai.Text); ok && strings.TrimSpace(string(t)) != "" {
				return string(t)
			}
		}
	}
	return ""
}

func stripCodeFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
