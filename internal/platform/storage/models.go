package storage

import (
	"time"

	"gorm.io/datatypes"
)

// VoiceProfile is the persisted record of a cloned voice.
type VoiceProfile struct {
	ID          uint           `gorm:"primaryKey"`
	VoiceID     string         `gorm:"uniqueIndex;size:64"`
	Name        string         `gorm:"size:128"`
	Description string         `gorm:"size:512"`
	Provider    string         `gorm:"size:32"`
	Labels      datatypes.JSON `gorm:"type:json"`
	SamplePath  string         `gorm:"size:256"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PipelineRecord tracks one clone-and-translate run through its stages.
type PipelineRecord struct {
	ID             string `gorm:"primaryKey;size:36"`
	VoiceID        string `gorm:"index;size:64"`
	SourceLang     string `gorm:"size:8"`
	TargetLang     string `gorm:"size:8"`
	Stage          string `gorm:"size:24"`
	FailReason     string `gorm:"size:64"`
	Transcript     string
	Translation    string
	InputPath      string `gorm:"size:256"`
	OutputPath     string `gorm:"size:256"`
	InputDuration  float64
	OutputDuration float64
	Progress       int
	Metadata       datatypes.JSON `gorm:"type:json"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
