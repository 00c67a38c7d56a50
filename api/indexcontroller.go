package api

import (
	"embed"
	"net/http"
	"strings"

	"voiceguard/upload"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// RegisterIndexRoutes serves the upload page.
func RegisterIndexRoutes(r *gin.Engine, serviceName string) {
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"ServiceName": serviceName,
			"Accept":      "." + strings.ReplaceAll(upload.AllowedExtensionsList(), ", ", ",."),
		})
	})
}
