package server

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/khetiai/kheti-server/internal/chat"
	"github.com/khetiai/kheti-server/internal/speech"
)

// chatMessageRequest is the body of POST /api/v1/chat/message.
type chatMessageRequest struct {
	Message        string         `json:"message" binding:"required"`
	MessageType    string         `json:"message_type"`
	Language       string         `json:"language"`
	ConversationID string         `json:"conversation_id"`
	History        []chat.Message `json:"history"`
}

// chatMessageResponse mirrors the frontend's ChatResponse shape.
type chatMessageResponse struct {
	Response      string    `json:"response"`
	MessageID     string    `json:"message_id"`
	Timestamp     time.Time `json:"timestamp"`
	Language      string    `json:"language"`
	AudioResponse string    `json:"audio_response,omitempty"`
}

func (s *Server) handleChatMessage(c *gin.Context) {
	if s.chat == nil {
		c.JSON(http.StatusServiceUnavailable, errorBody("chat service not configured"))
		return
	}

	var req chatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("message is required"))
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}

	messages := append(req.History, chat.Message{Role: "user", Content: req.Message})
	reply, err := s.chat.Complete(c.Request.Context(), messages, req.Language)
	if err != nil {
		log.Printf("chat completion failed: %v", err)
		c.JSON(http.StatusBadGateway, errorBody("assistant is unavailable, please retry"))
		return
	}

	resp := chatMessageResponse{
		Response:  reply,
		MessageID: uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Language:  req.Language,
	}

	// Voice-origin messages get a spoken reply; synthesis failure degrades
	// to text only.
	if req.MessageType == "voice" && s.synthesizer != nil {
		if audio, err := s.synthesizer.Synthesize(c.Request.Context(), reply, req.Language); err != nil {
			log.Printf("tts failed: %v", err)
		} else {
			resp.AudioResponse = speech.NewEnvelope(audio).AudioBase64
		}
	}

	c.JSON(http.StatusOK, resp)
}

// voiceChatResponse is the body of POST /api/v1/chat/voice.
type voiceChatResponse struct {
	Transcript    string    `json:"transcript"`
	Response      string    `json:"response"`
	MessageID     string    `json:"message_id"`
	Timestamp     time.Time `json:"timestamp"`
	Language      string    `json:"language"`
	AudioResponse string    `json:"audio_response"`
}

func (s *Server) handleChatVoice(c *gin.Context) {
	if s.chat == nil || s.transcriber == nil || s.synthesizer == nil {
		c.JSON(http.StatusServiceUnavailable, errorBody("voice chat not configured"))
		return
	}

	language := c.DefaultPostForm("language", "en")

	fileHeader, err := c.FormFile("audio_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("audio_file is required"))
		return
	}
	if fileHeader.Size > s.cfg.Upload.MaxBytes {
		c.JSON(http.StatusBadRequest, errorBody(fmt.Sprintf("file too large, maximum %d bytes", s.cfg.Upload.MaxBytes)))
		return
	}
	if ct := fileHeader.Header.Get("Content-Type"); !strings.HasPrefix(ct, "audio/") {
		c.JSON(http.StatusBadRequest, errorBody("file must be an audio file"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("failed to read upload"))
		return
	}
	defer f.Close()
	audio, err := io.ReadAll(io.LimitReader(f, s.cfg.Upload.MaxBytes+1))
	if err != nil || int64(len(audio)) > s.cfg.Upload.MaxBytes {
		c.JSON(http.StatusBadRequest, errorBody("failed to read audio upload"))
		return
	}

	transcript, err := s.transcriber.Transcribe(c.Request.Context(), audio, fileHeader.Filename)
	if err != nil {
		log.Printf("transcription failed: %v", err)
		c.JSON(http.StatusBadRequest, errorBody("could not transcribe audio, please try again"))
		return
	}

	messages := []chat.Message{{Role: "user", Content: transcript}}
	reply, err := s.chat.Complete(c.Request.Context(), messages, language)
	if err != nil {
		log.Printf("chat completion failed: %v", err)
		c.JSON(http.StatusBadGateway, errorBody("assistant is unavailable, please retry"))
		return
	}

	var audioB64 string
	if synthesized, err := s.synthesizer.Synthesize(c.Request.Context(), reply, language); err != nil {
		log.Printf("tts failed: %v", err)
	} else {
		audioB64 = speech.NewEnvelope(synthesized).AudioBase64
	}

	c.JSON(http.StatusOK, voiceChatResponse{
		Transcript:    transcript,
		Response:      reply,
		MessageID:     uuid.NewString(),
		Timestamp:     time.Now().UTC(),
		Language:      language,
		AudioResponse: audioB64,
	})
}

// conversationRequest is the body of POST /api/v1/chat/conversation.
type conversationRequest struct {
	Title    string `json:"title"`
	Language string `json:"language"`
}

// conversationResponse is the stateless conversation envelope. Nothing is
// stored server-side; the ID lets the client correlate its own history.
type conversationResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Language     string    `json:"language"`
	CreatedAt    time.Time `json:"created_at"`
	MessageCount int       `json:"message_count"`
}

func (s *Server) handleCreateConversation(c *gin.Context) {
	var req conversationRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, errorBody("invalid conversation request"))
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}

	now := time.Now().UTC()
	title := req.Title
	if title == "" {
		title = "Conversation " + now.Format("2006-01-02 15:04")
	}

	c.JSON(http.StatusOK, conversationResponse{
		ID:        uuid.NewString(),
		Title:     title,
		Language:  req.Language,
		CreatedAt: now,
	})
}

func (s *Server) handleListConversations(c *gin.Context) {
	// No persistence: the server has no conversations to report.
	c.JSON(http.StatusOK, []conversationResponse{})
}

func (s *Server) handleGetConversation(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"id":         c.Param("id"),
		"title":      "Conversation",
		"language":   "en",
		"created_at": time.Now().UTC(),
		"messages":   []chat.Message{},
	})
}
