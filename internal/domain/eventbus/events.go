package eventbus

// Event topics.
const (
	EventCaptureStarted = "capture:started"
	EventCaptureStopped = "capture:stopped"
	EventCaptureFailed  = "capture:failed"

	EventPipelineStage    = "pipeline:stage"
	EventPipelineProgress = "pipeline:progress"
	EventPipelineFailed   = "pipeline:failed"
	EventPipelineDone     = "pipeline:done"

	EventVoiceCloned  = "voice:cloned"
	EventVoiceDeleted = "voice:deleted"
)

type CaptureEventData struct {
	SessionID string  `json:"session_id"`
	Frames    int     `json:"frames"`
	Duration  float64 `json:"duration_seconds,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

type PipelineEventData struct {
	RunID    string `json:"run_id"`
	Stage    string `json:"stage"`
	Progress int    `json:"progress"`
	Reason   string `json:"reason,omitempty"`
}

type VoiceEventData struct {
	VoiceID string `json:"voice_id"`
	Name    string `json:"name,omitempty"`
}
