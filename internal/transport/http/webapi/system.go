package webapi

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"echominds-server-go/internal/domain/audio"
	"echominds-server-go/internal/domain/capture"
	"echominds-server-go/internal/domain/providers"
	"echominds-server-go/internal/domain/text"
	"echominds-server-go/internal/platform/config"
	"echominds-server-go/internal/platform/logging"
)

// SystemService reports server health plus the static capability lists
// clients need to build their UI.
type SystemService struct {
	logger   *logging.Logger
	cfg      *config.Config
	captures *capture.Manager
	started  time.Time
}

func NewSystemService(cfg *config.Config, logger *logging.Logger, captures *capture.Manager) *SystemService {
	return &SystemService{
		logger:   logger,
		cfg:      cfg,
		captures: captures,
		started:  time.Now(),
	}
}

func (s *SystemService) Start(ctx context.Context, engine *gin.Engine, apiGroup *gin.RouterGroup) error {
	apiGroup.GET("/system/status", s.handleStatus)
	apiGroup.GET("/system/languages", s.handleLanguages)
	apiGroup.GET("/system/presets", s.handlePresets)
	apiGroup.POST("/system/probe", s.handleProbe)

	s.logger.InfoTag("HTTP", "system routes registered")
	return nil
}

func (s *SystemService) handleStatus(c *gin.Context) {
	status := gin.H{
		"uptime_seconds": int(time.Since(s.started).Seconds()),
		"captures_held":  s.captures.Count(),
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		status["cpu_percent"] = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		status["memory_percent"] = vm.UsedPercent
	}
	if du, err := disk.Usage("/"); err == nil {
		status["disk_percent"] = du.UsedPercent
	}

	respondSuccess(c, http.StatusOK, status, "")
}

type languageView struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (s *SystemService) handleLanguages(c *gin.Context) {
	langs := text.SupportedLanguages()
	views := make([]languageView, len(langs))
	for i, l := range langs {
		views[i] = languageView{Code: string(l), Name: l.Name()}
	}
	respondSuccess(c, http.StatusOK, views, "")
}

// handleProbe checks a short test recording for signal. The client either
// uploads a WAV probe or references a finished capture.
func (s *SystemService) handleProbe(c *gin.Context) {
	var asset *audio.Asset

	if captureID := c.PostForm("capture_id"); captureID != "" {
		result, ok := s.captures.Get(captureID)
		if !ok {
			respondError(c, http.StatusNotFound, "unknown capture_id", nil)
			return
		}
		asset = result.Asset
	} else {
		file, _, err := c.Request.FormFile("audio")
		if err != nil {
			respondError(c, http.StatusBadRequest, "audio file or capture_id is required", nil)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			respondError(c, http.StatusBadRequest, "failed to read audio file", nil)
			return
		}
		asset, err = audio.DecodeWAV(data)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid WAV file: "+err.Error(), nil)
			return
		}
	}

	result := capture.Probe(asset)
	if !result.Signal {
		s.logger.WarnTag("HTTP", "probe detected no signal (peak %.4f)", result.Peak)
	}
	respondSuccess(c, http.StatusOK, result, "")
}

type presetView struct {
	Name       string  `json:"name"`
	Stability  float64 `json:"stability"`
	Similarity float64 `json:"similarity"`
	Model      string  `json:"model"`
}

func (s *SystemService) handlePresets(c *gin.Context) {
	presets := providers.Presets()
	views := make([]presetView, 0, len(presets))
	for _, p := range presets {
		opts, err := providers.ParsePreset(string(p))
		if err != nil {
			continue
		}
		views = append(views, presetView{
			Name:       string(p),
			Stability:  opts.Stability,
			Similarity: opts.Similarity,
			Model:      opts.Model,
		})
	}
	respondSuccess(c, http.StatusOK, views, "")
}
