package detection

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"voiceguard/types"

	"github.com/google/uuid"
)

// Prefixes for request ids synthesized locally, so callers can tell them
// apart from provider-issued ids.
const (
	LocalRequestIDPrefix = "local-"
	ErrorRequestIDPrefix = "error-"
)

var errNotObject = errors.New("provider response is not an object")

// Normalize converts a raw provider response into a DetectionResult.
// It never fails: malformed input yields a result with status ERROR.
func Normalize(raw any, lang types.LanguageInfo) (result types.DetectionResult) {
	defer func() {
		if r := recover(); r != nil {
			result = errorResult(raw, lang, fmt.Errorf("panic: %v", r))
		}
	}()

	res, err := normalize(raw, lang)
	if err != nil {
		log.Printf("❌ Error parsing provider result: %v", err)
		return errorResult(raw, lang, err)
	}

	log.Printf("📊 Status: %s | Raw score: %.4f | Confidence: %s%% | AI: %t | Language: %s | Request ID: %s",
		res.Status, res.RawScore, res.ConfidenceScore, res.IsAIGenerated, lang.Language, res.RequestID)
	return res
}

func normalize(raw any, lang types.LanguageInfo) (types.DetectionResult, error) {
	obj, ok := raw.(types.RawResponse)
	if !ok {
		return types.DetectionResult{}, fmt.Errorf("%w: got %T", errNotObject, raw)
	}

	status := stringValue(obj["status"])

	score, err := toFloat(obj["score"])
	if err != nil {
		return types.DetectionResult{}, fmt.Errorf("invalid score: %w", err)
	}

	isAI := status == types.StatusManipulated
	confidence := Confidence(status, score)

	requestID := stringValue(obj["request_id"])
	if requestID == "" {
		requestID = NewRequestID(LocalRequestIDPrefix)
	}

	models, err := toModels(obj["models"])
	if err != nil {
		return types.DetectionResult{}, err
	}

	return types.DetectionResult{
		IsAIGenerated:   isAI,
		IsHuman:         !isAI,
		ConfidenceScore: strconv.FormatFloat(confidence, 'f', 2, 64),
		Status:          status,
		RequestID:       requestID,
		Models:          models,
		LanguageInfo:    lang,
		RawScore:        score,
		RawResult:       raw,
	}, nil
}

// Confidence returns the confidence, in percent, of the verdict implied by
// status: score*100 for MANIPULATED, (1-score)*100 for everything else.
func Confidence(status string, score float64) float64 {
	if status == types.StatusManipulated {
		return score * 100
	}
	return (1 - score) * 100
}

// NewRequestID returns prefix followed by 8 random hex characters.
func NewRequestID(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func errorResult(raw any, lang types.LanguageInfo, err error) types.DetectionResult {
	return types.DetectionResult{
		Error:           "Error parsing result: " + err.Error(),
		IsAIGenerated:   false,
		IsHuman:         true,
		ConfidenceScore: "0",
		Status:          types.StatusError,
		RequestID:       NewRequestID(ErrorRequestIDPrefix),
		Models:          []any{},
		LanguageInfo:    lang,
		RawResult:       fmt.Sprintf("%v", raw),
	}
}

func stringValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return fmt.Sprint(s)
	}
}

func toFloat(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, err
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, err
		}
		f = parsed
	case bool:
		if n {
			f = 1
		}
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite value %v", f)
	}
	return f, nil
}

func toModels(v any) ([]any, error) {
	switch m := v.(type) {
	case nil:
		return []any{}, nil
	case []any:
		return m, nil
	case []types.ModelResult:
		out := make([]any, len(m))
		for i := range m {
			out[i] = m[i]
		}
		return out, nil
	default:
		return nil, fmt.Errorf("invalid models: expected a list, got %T", v)
	}
}
