package api

import (
	"errors"
	"net/http"
	"strings"

	"voiceguard/config"
	"voiceguard/detection"
	"voiceguard/types"
	"voiceguard/upload"

	"github.com/gin-gonic/gin"
)

// APIDetectRequest is the body of POST /api/detect
type APIDetectRequest struct {
	AudioBase64 string `json:"audio_base64_format"`
	AudioFormat string `json:"audio_format"`
}

// APIDetectResponse is returned by POST /api/detect on success
type APIDetectResponse struct {
	Success   bool                  `json:"success"`
	Detection types.DetectionResult `json:"detection"`
}

// RegisterAPIDetectRoutes registers the key-protected base64 endpoint.
func RegisterAPIDetectRoutes(r *gin.Engine, svc *detectService, apiKey string, maxUploadSize int64) {
	// base64 inflates the payload by 4/3
	limit := maxUploadSize/3*4 + multipartOverhead
	r.POST("/api/detect", RequireAPIKey(apiKey), limitBody(limit), func(c *gin.Context) {
		handleAPIDetect(c, svc)
	})
}

func handleAPIDetect(c *gin.Context, svc *detectService) {
	var req APIDetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(c, http.StatusRequestEntityTooLarge, detection.KindPayloadTooLarge, upload.ErrTooLarge.Error())
			return
		}
		respondWithError(c, http.StatusBadRequest, detection.KindInvalidInput, "Invalid JSON payload: "+err.Error())
		return
	}

	if strings.TrimSpace(req.AudioBase64) == "" {
		respondWithError(c, http.StatusBadRequest, detection.KindInvalidInput, "audio_base64_format required")
		return
	}
	format := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(req.AudioFormat), "."))
	if format == "" {
		format = config.DefaultAudioFormat
	}
	if !upload.AllowedExtension(format) {
		respondWithError(c, http.StatusBadRequest, detection.KindUnsupportedType, "File type not allowed. Allowed types: "+upload.AllowedExtensionsList())
		return
	}

	path, err := svc.scratch.SaveBase64(req.AudioBase64, format)
	if err != nil {
		respondWithErr(c, err)
		return
	}

	res, err := svc.run(c.Request.Context(), path, "", "api")
	if err != nil {
		respondWithErr(c, err)
		return
	}

	c.JSON(http.StatusOK, APIDetectResponse{
		Success:   true,
		Detection: res,
	})
}
