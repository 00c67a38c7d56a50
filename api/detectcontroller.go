package api

import (
	"errors"
	"log"
	"net/http"

	"voiceguard/detection"
	"voiceguard/types"
	"voiceguard/upload"

	"github.com/gin-gonic/gin"
)

// multipartOverhead is the slack allowed on top of the file size for
// multipart boundaries and headers.
const multipartOverhead = 1 << 20

// DetectResponse is returned by POST /detect on success
type DetectResponse struct {
	Success   bool                  `json:"success"`
	Filename  string                `json:"filename"`
	Detection types.DetectionResult `json:"detection"`
}

// RegisterDetectRoutes registers the browser upload endpoint.
func RegisterDetectRoutes(r *gin.Engine, svc *detectService, maxUploadSize int64) {
	r.POST("/detect", limitBody(maxUploadSize+multipartOverhead), func(c *gin.Context) {
		handleDetect(c, svc)
	})
}

func handleDetect(c *gin.Context, svc *detectService) {
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			respondWithError(c, http.StatusRequestEntityTooLarge, detection.KindPayloadTooLarge, upload.ErrTooLarge.Error())
		case c.Request.MultipartForm != nil && len(c.Request.MultipartForm.Value["file"]) > 0:
			// A file input submitted without a selection arrives as a plain value.
			respondWithError(c, http.StatusBadRequest, detection.KindInvalidInput, "No file selected")
		default:
			respondWithError(c, http.StatusBadRequest, detection.KindInvalidInput, "No file provided")
		}
		return
	}
	if fh.Filename == "" {
		respondWithError(c, http.StatusBadRequest, detection.KindInvalidInput, "No file selected")
		return
	}
	if fh.Size == 0 {
		respondWithError(c, http.StatusBadRequest, detection.KindInvalidInput, "Uploaded file is empty")
		return
	}

	// Disallowed types are reported with 200, which the upload page relies on.
	if !upload.AllowedFile(fh.Filename) {
		respondWithError(c, http.StatusOK, detection.KindUnsupportedType, "File type not allowed. Allowed types: "+upload.AllowedExtensionsList())
		return
	}

	path, filename, err := svc.scratch.SaveMultipart(fh)
	if err != nil {
		respondWithErr(c, err)
		return
	}
	log.Printf("📁 Processing file: %s", filename)

	res, err := svc.run(c.Request.Context(), path, filename, "upload")
	if err != nil {
		respondWithErr(c, err)
		return
	}

	c.JSON(http.StatusOK, DetectResponse{
		Success:   true,
		Filename:  filename,
		Detection: res,
	})
}

// limitBody caps the request body at n bytes
func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}
