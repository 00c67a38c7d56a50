package api

import (
	"context"
	"html/template"
	"log"
	"time"

	"voiceguard/config"
	"voiceguard/events"
	"voiceguard/language"
	"voiceguard/types"
	"voiceguard/upload"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// AudioDetector runs AI-voice detection on a scratch file
type AudioDetector interface {
	Detect(ctx context.Context, path string, lang types.LanguageInfo) (types.DetectionResult, error)
}

// Deps are the collaborators the HTTP layer needs
type Deps struct {
	ServiceName      string
	APIKey           string
	MaxUploadSize    int64
	Scratch          *upload.Scratch
	Detector         AudioDetector
	Language         language.Detector
	Publisher        events.Publisher
	CORSAllowOrigins []string
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(deps Deps) *gin.Engine {
	if deps.MaxUploadSize <= 0 {
		deps.MaxUploadSize = config.MaxUploadSize
	}
	if deps.Language == nil {
		deps.Language = language.Stub{}
	}
	if deps.Publisher == nil {
		deps.Publisher = events.NopPublisher{}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if gin.IsDebugging() {
		r.Use(gin.Logger())
	}
	r.Use(cors.New(corsConfig(deps.CORSAllowOrigins)))
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	svc := &detectService{
		scratch:   deps.Scratch,
		detector:  deps.Detector,
		language:  deps.Language,
		publisher: deps.Publisher,
	}

	RegisterHealthRoutes(r, deps.ServiceName)
	RegisterIndexRoutes(r, deps.ServiceName)
	RegisterDetectRoutes(r, svc, deps.MaxUploadSize)
	RegisterAPIDetectRoutes(r, svc, deps.APIKey, deps.MaxUploadSize)
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", apiKeyHeader},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// LogRoutes prints the registered endpoints at startup
func LogRoutes(r *gin.Engine) {
	log.Println("API endpoints available:")
	for _, route := range r.Routes() {
		log.Printf("  %-6s %s", route.Method, route.Path)
	}
}
