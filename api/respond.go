package api

import (
	"log"
	"net/http"

	"voiceguard/detection"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success   bool                `json:"success"`
	Error     string              `json:"error"`
	ErrorKind detection.ErrorKind `json:"error_kind"`
}

// respondWithError sends an error response
func respondWithError(c *gin.Context, statusCode int, kind detection.ErrorKind, message string) {
	if statusCode >= 500 {
		log.Printf("❌ API Error: %s", message)
	}
	c.JSON(statusCode, ErrorResponse{
		Success:   false,
		Error:     message,
		ErrorKind: kind,
	})
}

// statusForKind maps an error kind onto its HTTP status
func statusForKind(kind detection.ErrorKind) int {
	switch kind {
	case detection.KindInvalidInput, detection.KindUnsupportedType:
		return http.StatusBadRequest
	case detection.KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case detection.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondWithErr classifies err with detection.KindOf and sends it
func respondWithErr(c *gin.Context, err error) {
	kind := detection.KindOf(err)
	respondWithError(c, statusForKind(kind), kind, err.Error())
}
