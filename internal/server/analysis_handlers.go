package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/khetiai/kheti-server/internal/config"
	"github.com/khetiai/kheti-server/internal/features"
	"github.com/khetiai/kheti-server/internal/imaging"
)

// allowedImageTypes is the upload content-type allowlist. GIF decodes fine
// but is rejected up front; animated farm photos are not a real use case.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// cropAnalysisResponse is the body of POST /api/v1/crop-analysis/analyze.
type cropAnalysisResponse struct {
	ID                string    `json:"id"`
	AnalysisType      string    `json:"analysis_type"`
	HealthScore       float64   `json:"health_score"`
	DiseaseDetected   string    `json:"disease_detected,omitempty"`
	DiseaseConfidence float64   `json:"disease_confidence,omitempty"`
	GrowthStage       string    `json:"growth_stage"`
	Recommendations   string    `json:"recommendations"`
	Observations      []string  `json:"observations,omitempty"`
	Language          string    `json:"language"`
	CreatedAt         time.Time `json:"created_at"`
	ProcessingTime    float64   `json:"processing_time"`

	// Features carries the locally measured report so the frontend can
	// render the raw numbers alongside the model verdict.
	Features *features.FeatureReport `json:"features,omitempty"`
}

func (s *Server) handleCropAnalysis(c *gin.Context) {
	if s.analyzer == nil {
		c.JSON(http.StatusServiceUnavailable, errorBody("vision analysis not configured"))
		return
	}

	started := time.Now()
	language := c.DefaultPostForm("language", "en")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("file is required"))
		return
	}
	if fileHeader.Size > s.cfg.Upload.MaxBytes {
		c.JSON(http.StatusBadRequest, errorBody(fmt.Sprintf("file too large, maximum %d bytes", s.cfg.Upload.MaxBytes)))
		return
	}
	if ct := fileHeader.Header.Get("Content-Type"); !allowedImageTypes[ct] {
		c.JSON(http.StatusBadRequest, errorBody(fmt.Sprintf("file type %q not allowed, use JPEG, PNG or WebP", ct)))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("failed to read upload"))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, s.cfg.Upload.MaxBytes+1))
	if err != nil || int64(len(data)) > s.cfg.Upload.MaxBytes {
		c.JSON(http.StatusBadRequest, errorBody("failed to read image upload"))
		return
	}

	img, _, err := imaging.Decode(data)
	if err != nil {
		var decodeErr *imaging.DecodeError
		if errors.As(err, &decodeErr) {
			c.JSON(http.StatusBadRequest, errorBody("invalid image: "+decodeErr.Reason))
			return
		}
		c.JSON(http.StatusBadRequest, errorBody("invalid image"))
		return
	}

	report, err := features.Extract(img)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("image could not be analyzed"))
		return
	}

	payload, err := imaging.PrepareForVision(img, payloadFormat(s.cfg.Vision))
	if err != nil {
		log.Printf("vision payload preparation failed: %v", err)
		c.JSON(http.StatusInternalServerError, errorBody("failed to prepare image for analysis"))
		return
	}

	analysis, err := s.analyzer.Analyze(c.Request.Context(), payload, report.ContextText(), language)
	if err != nil {
		log.Printf("vision analysis failed: %v", err)
		c.JSON(http.StatusBadGateway, errorBody("analysis service is unavailable, please retry"))
		return
	}

	c.JSON(http.StatusOK, cropAnalysisResponse{
		ID:                uuid.NewString(),
		AnalysisType:      "health",
		HealthScore:       analysis.HealthScore,
		DiseaseDetected:   analysis.DiseaseDetected,
		DiseaseConfidence: analysis.DiseaseConfidence,
		GrowthStage:       analysis.GrowthStage,
		Recommendations:   analysis.Recommendations,
		Observations:      analysis.Observations,
		Language:          language,
		CreatedAt:         time.Now().UTC(),
		ProcessingTime:    time.Since(started).Seconds(),
		Features:          report,
	})
}

func payloadFormat(cfg config.VisionConfig) imaging.PayloadFormat {
	if cfg.PayloadFormat == "webp" {
		return imaging.PayloadWebP
	}
	return imaging.PayloadJPEG
}
