package ws

import (
	"context"
	"encoding/binary"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"echominds-server-go/internal/domain/capture"
	"echominds-server-go/internal/domain/eventbus"
	"echominds-server-go/internal/platform/config"
	"echominds-server-go/internal/platform/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// IngestService accepts PCM-16 audio frames over a websocket and feeds
// them to a recorder. Binary messages carry little-endian samples; the
// text message "stop" ends the capture early.
type IngestService struct {
	logger   *logging.Logger
	cfg      *config.Config
	captures *capture.Manager
}

func NewIngestService(cfg *config.Config, logger *logging.Logger, captures *capture.Manager) *IngestService {
	return &IngestService{
		logger:   logger,
		cfg:      cfg,
		captures: captures,
	}
}

func (s *IngestService) Start(ctx context.Context, engine *gin.Engine, apiGroup *gin.RouterGroup) error {
	engine.GET("/ws/capture", s.handleCapture)

	s.logger.InfoTag("WebSocket", "capture ingest route registered")
	return nil
}

type captureResponse struct {
	CaptureID string  `json:"capture_id,omitempty"`
	Duration  float64 `json:"duration_seconds,omitempty"`
	Elapsed   float64 `json:"elapsed_seconds,omitempty"`
	Frames    int     `json:"frames,omitempty"`
	Path      string  `json:"path,omitempty"`
	Error     string  `json:"error,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

func (s *IngestService) handleCapture(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.WarnTag("WebSocket", "upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	maxDuration := s.cfg.Capture.DefaultDuration
	if raw := c.Query("max_duration"); raw != "" {
		if seconds, err := strconv.ParseFloat(raw, 64); err == nil && seconds > 0 {
			maxDuration = time.Duration(seconds * float64(time.Second))
		}
	}
	if maxDuration > s.cfg.Capture.MaxDuration {
		maxDuration = s.cfg.Capture.MaxDuration
	}

	captureID := uuid.NewString()
	queue := capture.NewFrameQueue()
	session := capture.NewSession()
	recorder := capture.NewRecorder(queue, capture.Options{
		SampleRate:   s.cfg.Audio.SampleRate,
		Channels:     s.cfg.Audio.Channels,
		PollInterval: s.cfg.Capture.PollInterval,
		TempDir:      s.cfg.Paths.TempDir,
		Logger:       s.logger,
	})

	eventbus.PublishAsync(eventbus.EventCaptureStarted, eventbus.CaptureEventData{
		SessionID: captureID,
	})

	done := make(chan struct{})
	var result *capture.Result
	var recordErr error
	go func() {
		defer close(done)
		result, recordErr = recorder.Record(c.Request.Context(), session, maxDuration)
	}()

	// Reader loop. It exits when the client disconnects, sends stop, or
	// the recorder has finished.
	for {
		if session.State() == capture.StateStopped || session.State() == capture.StateFailed {
			break
		}

		conn.SetReadDeadline(time.Now().Add(time.Second))
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				// Read timeout, keep polling session state.
				continue
			}
			queue.Close()
			break
		}

		switch msgType {
		case websocket.BinaryMessage:
			queue.Enqueue(decodeFrame(data))
		case websocket.TextMessage:
			if string(data) == "stop" {
				session.Cancel()
			}
		}
	}

	<-done

	if recordErr != nil {
		eventbus.PublishAsync(eventbus.EventCaptureFailed, eventbus.CaptureEventData{
			SessionID: captureID,
			Reason:    string(session.Reason()),
		})
		conn.WriteJSON(captureResponse{
			Error:  recordErr.Error(),
			Reason: string(session.Reason()),
		})
		return
	}

	s.captures.Put(captureID, result)
	eventbus.PublishAsync(eventbus.EventCaptureStopped, eventbus.CaptureEventData{
		SessionID: captureID,
		Frames:    result.Frames,
		Duration:  result.Asset.Seconds(),
	})
	conn.WriteJSON(captureResponse{
		CaptureID: captureID,
		Duration:  result.Asset.Seconds(),
		Elapsed:   result.Elapsed.Seconds(),
		Frames:    result.Frames,
		Path:      result.Path,
	})
}

// decodeFrame converts little-endian PCM-16 bytes to samples. A trailing
// odd byte is dropped.
func decodeFrame(data []byte) capture.Frame {
	samples := make(capture.Frame, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
	}
	return samples
}
