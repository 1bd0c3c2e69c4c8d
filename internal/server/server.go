package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/khetiai/kheti-server/internal/chat"
	"github.com/khetiai/kheti-server/internal/config"
	"github.com/khetiai/kheti-server/internal/speech"
	"github.com/khetiai/kheti-server/internal/vision"
)

// ChatService is the conversational collaborator used by the chat handlers.
type ChatService interface {
	Complete(ctx context.Context, messages []chat.Message, language string) (string, error)
}

// Server wires the HTTP API to the collaborator services.
type Server struct {
	cfg *config.Config

	chat        ChatService
	analyzer    vision.Analyzer
	transcriber speech.Transcriber
	synthesizer speech.Synthesizer

	version string
}

// New builds a server around the given collaborators. Any collaborator may
// be nil; the routes that need it then answer 503 instead of panicking,
// which keeps the health and analysis endpoints alive when, say, no OpenAI
// key is configured.
func New(cfg *config.Config, chatSvc ChatService, analyzer vision.Analyzer, transcriber speech.Transcriber, synthesizer speech.Synthesizer, version string) *Server {
	return &Server{
		cfg:         cfg,
		chat:        chatSvc,
		analyzer:    analyzer,
		transcriber: transcriber,
		synthesizer: synthesizer,
		version:     version,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	if !s.cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.MaxMultipartMemory = s.cfg.Upload.MaxBytes

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", s.handleRoot)
	r.GET("/health", s.handleHealth)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", s.handleHealth)
		v1.GET("/health/detailed", s.handleHealthDetailed)

		chatGroup := v1.Group("/chat")
		{
			chatGroup.POST("/message", s.handleChatMessage)
			chatGroup.POST("/voice", s.handleChatVoice)
			chatGroup.POST("/conversation", s.handleCreateConversation)
			chatGroup.GET("/conversations", s.handleListConversations)
			chatGroup.GET("/conversation/:id", s.handleGetConversation)
		}

		v1.POST("/crop-analysis/analyze", s.handleCropAnalysis)
	}

	return r
}

// Run serves HTTP until the context is cancelled, then shuts down
// gracefully with a short drain window.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// errorBody is the uniform JSON error shape.
func errorBody(msg string) gin.H {
	return gin.H{"error": msg}
}
