package webapi

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"echominds-server-go/internal/domain/audio"
	"echominds-server-go/internal/domain/capture"
	"echominds-server-go/internal/domain/pipeline"
	"echominds-server-go/internal/domain/providers"
	"echominds-server-go/internal/domain/text"
	"echominds-server-go/internal/platform/config"
	"echominds-server-go/internal/platform/logging"
	"echominds-server-go/internal/platform/storage"
)

// RunService exposes pipeline runs over HTTP.
type RunService struct {
	logger       *logging.Logger
	cfg          *config.Config
	orchestrator *pipeline.Orchestrator
	runs         *storage.RunRepository
	captures     *capture.Manager
}

func NewRunService(
	cfg *config.Config,
	logger *logging.Logger,
	orchestrator *pipeline.Orchestrator,
	runs *storage.RunRepository,
	captures *capture.Manager,
) *RunService {
	return &RunService{
		logger:       logger,
		cfg:          cfg,
		orchestrator: orchestrator,
		runs:         runs,
		captures:     captures,
	}
}

func (s *RunService) Start(ctx context.Context, engine *gin.Engine, apiGroup *gin.RouterGroup) error {
	apiGroup.POST("/runs", s.handleCreate)
	apiGroup.GET("/runs", s.handleList)
	apiGroup.GET("/runs/:id", s.handleGet)
	apiGroup.GET("/runs/:id/audio", s.handleAudio)

	s.logger.InfoTag("HTTP", "run routes registered")
	return nil
}

type runView struct {
	ID             string  `json:"id"`
	VoiceID        string  `json:"voice_id"`
	SourceLang     string  `json:"source_lang"`
	TargetLang     string  `json:"target_lang"`
	Stage          string  `json:"stage"`
	FailReason     string  `json:"fail_reason,omitempty"`
	Transcript     string  `json:"transcript,omitempty"`
	Translation    string  `json:"translation,omitempty"`
	OutputPath     string  `json:"output_path,omitempty"`
	InputDuration  float64 `json:"input_duration"`
	OutputDuration float64 `json:"output_duration"`
	Progress       int     `json:"progress"`
}

func viewFromRun(run *pipeline.Run) runView {
	return runView{
		ID:             run.ID,
		VoiceID:        run.VoiceID,
		SourceLang:     string(run.Source),
		TargetLang:     string(run.Target),
		Stage:          string(run.Stage),
		FailReason:     string(run.Reason),
		Transcript:     run.Transcript,
		Translation:    run.Translation,
		OutputPath:     run.OutputPath,
		InputDuration:  run.InputSeconds,
		OutputDuration: run.OutputSeconds,
		Progress:       run.Progress,
	}
}

func viewFromRecord(rec *storage.PipelineRecord) runView {
	return runView{
		ID:             rec.ID,
		VoiceID:        rec.VoiceID,
		SourceLang:     rec.SourceLang,
		TargetLang:     rec.TargetLang,
		Stage:          rec.Stage,
		FailReason:     rec.FailReason,
		Transcript:     rec.Transcript,
		Translation:    rec.Translation,
		OutputPath:     rec.OutputPath,
		InputDuration:  rec.InputDuration,
		OutputDuration: rec.OutputDuration,
		Progress:       rec.Progress,
	}
}

// handleCreate starts a run from an uploaded WAV file or a finished
// websocket capture.
func (s *RunService) handleCreate(c *gin.Context) {
	voiceID := c.PostForm("voice_id")
	if voiceID == "" {
		respondError(c, http.StatusBadRequest, "voice_id is required", nil)
		return
	}

	source, err := text.ParseLanguage(c.DefaultPostForm("source_lang", s.cfg.Translate.DefaultSource))
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	target, err := text.ParseLanguage(c.DefaultPostForm("target_lang", s.cfg.Translate.DefaultTarget))
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if target == text.LangAuto {
		respondError(c, http.StatusBadRequest, "target_lang cannot be auto", nil)
		return
	}

	opts := providers.SynthesisOptions{
		Stability:  s.cfg.Synthesis.Stability,
		Similarity: s.cfg.Synthesis.Similarity,
		Model:      s.cfg.Synthesis.Model,
	}
	if preset := c.PostForm("preset"); preset != "" {
		opts, err = providers.ParsePreset(preset)
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
	}

	asset, inputPath, ok := s.resolveInput(c)
	if !ok {
		return
	}

	run, err := s.orchestrator.Execute(c.Request.Context(), pipeline.Request{
		Asset:     asset,
		InputPath: inputPath,
		VoiceID:   voiceID,
		Source:    source,
		Target:    target,
		Options:   opts,
	})
	if err != nil {
		respondError(c, http.StatusUnprocessableEntity, err.Error(), viewFromRun(run))
		return
	}
	respondSuccess(c, http.StatusCreated, viewFromRun(run), "run completed")
}

// resolveInput loads audio either from the "audio" form file or from a
// prior capture referenced by "capture_id".
func (s *RunService) resolveInput(c *gin.Context) (*audio.Asset, string, bool) {
	if captureID := c.PostForm("capture_id"); captureID != "" {
		result, ok := s.captures.Get(captureID)
		if !ok {
			respondError(c, http.StatusNotFound, "unknown capture_id", nil)
			return nil, "", false
		}
		return result.Asset, result.Path, true
	}

	file, _, err := c.Request.FormFile("audio")
	if err != nil {
		respondError(c, http.StatusBadRequest, "audio file or capture_id is required", nil)
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, http.StatusBadRequest, "failed to read audio file", nil)
		return nil, "", false
	}
	asset, err := audio.DecodeWAV(data)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid WAV file: "+err.Error(), nil)
		return nil, "", false
	}
	return asset, "", true
}

func (s *RunService) handleList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	records, err := s.runs.List(c.Request.Context(), limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	views := make([]runView, len(records))
	for i, rec := range records {
		views[i] = viewFromRecord(rec)
	}
	respondSuccess(c, http.StatusOK, views, "")
}

func (s *RunService) handleGet(c *gin.Context) {
	record, err := s.runs.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	if record == nil {
		respondError(c, http.StatusNotFound, "run not found", nil)
		return
	}
	respondSuccess(c, http.StatusOK, viewFromRecord(record), "")
}

// handleAudio streams the synthesized output of a finished run.
func (s *RunService) handleAudio(c *gin.Context) {
	record, err := s.runs.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	if record == nil || record.OutputPath == "" {
		respondError(c, http.StatusNotFound, "no audio for this run", nil)
		return
	}
	c.Header("Content-Type", "audio/mpeg")
	c.File(record.OutputPath)
}
