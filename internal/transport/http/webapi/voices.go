package webapi

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"echominds-server-go/internal/domain/audio"
	"echominds-server-go/internal/domain/eventbus"
	"echominds-server-go/internal/domain/providers"
	"echominds-server-go/internal/platform/config"
	"echominds-server-go/internal/platform/logging"
	"echominds-server-go/internal/platform/storage"
)

// VoiceService manages cloned voice profiles over HTTP.
type VoiceService struct {
	logger *logging.Logger
	cfg    *config.Config
	cloner providers.Cloner
	voices *storage.VoiceRepository
}

func NewVoiceService(
	cfg *config.Config,
	logger *logging.Logger,
	cloner providers.Cloner,
	voices *storage.VoiceRepository,
) *VoiceService {
	return &VoiceService{
		logger: logger,
		cfg:    cfg,
		cloner: cloner,
		voices: voices,
	}
}

func (s *VoiceService) Start(ctx context.Context, engine *gin.Engine, apiGroup *gin.RouterGroup) error {
	apiGroup.POST("/voices", s.handleClone)
	apiGroup.GET("/voices", s.handleList)
	apiGroup.GET("/voices/:id", s.handleGet)
	apiGroup.DELETE("/voices/:id", s.handleDelete)

	s.logger.InfoTag("HTTP", "voice routes registered")
	return nil
}

// handleClone validates the uploaded samples against the cloning profile
// before spending a provider call on them.
func (s *VoiceService) handleClone(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		respondError(c, http.StatusBadRequest, "name is required", nil)
		return
	}
	description := c.PostForm("description")

	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "multipart form required", nil)
		return
	}
	files := form.File["samples"]
	if len(files) == 0 {
		respondError(c, http.StatusBadRequest, "at least one sample file is required", nil)
		return
	}

	profile := audio.CloningProfile()
	samples := make([][]byte, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			respondError(c, http.StatusBadRequest, "failed to open sample", nil)
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			respondError(c, http.StatusBadRequest, "failed to read sample", nil)
			return
		}

		asset, err := audio.DecodeWAV(data)
		if err != nil {
			respondError(c, http.StatusBadRequest,
				header.Filename+": invalid WAV file: "+err.Error(), nil)
			return
		}
		if result := audio.Validate(asset, profile); !result.OK {
			respondError(c, http.StatusUnprocessableEntity,
				header.Filename+": "+result.Detail,
				gin.H{"reason": string(result.Reason)})
			return
		}
		samples = append(samples, data)
	}

	voiceID, err := s.cloner.Clone(c.Request.Context(), name, description, samples)
	if err != nil {
		respondError(c, http.StatusBadGateway, err.Error(), nil)
		return
	}

	profileRecord := &storage.VoiceProfile{
		VoiceID:     voiceID,
		Name:        name,
		Description: description,
		Provider:    s.cfg.Selected.Clone,
	}
	if err := s.voices.Save(c.Request.Context(), profileRecord); err != nil {
		s.logger.WarnTag("HTTP", "voice %s cloned but not persisted: %v", voiceID, err)
	}

	eventbus.PublishAsync(eventbus.EventVoiceCloned, eventbus.VoiceEventData{
		VoiceID: voiceID,
		Name:    name,
	})
	respondSuccess(c, http.StatusCreated, gin.H{"voice_id": voiceID}, "voice cloned")
}

func (s *VoiceService) handleList(c *gin.Context) {
	voices, err := s.cloner.ListVoices(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	respondSuccess(c, http.StatusOK, voices, "")
}

func (s *VoiceService) handleGet(c *gin.Context) {
	voice, err := s.cloner.GetVoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if voice == nil {
		respondError(c, http.StatusNotFound, "voice not found", nil)
		return
	}
	respondSuccess(c, http.StatusOK, voice, "")
}

func (s *VoiceService) handleDelete(c *gin.Context) {
	voiceID := c.Param("id")
	if err := s.cloner.DeleteVoice(c.Request.Context(), voiceID); err != nil {
		respondError(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if err := s.voices.Delete(c.Request.Context(), voiceID); err != nil {
		s.logger.WarnTag("HTTP", "voice %s deleted upstream but not locally: %v", voiceID, err)
	}

	eventbus.PublishAsync(eventbus.EventVoiceDeleted, eventbus.VoiceEventData{VoiceID: voiceID})
	respondSuccess(c, http.StatusOK, nil, "voice deleted")
}
