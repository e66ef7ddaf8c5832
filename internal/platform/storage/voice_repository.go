package storage

import (
	"context"

	"gorm.io/gorm"

	"echominds-server-go/internal/platform/errors"
)

// VoiceRepository persists cloned voice profiles.
type VoiceRepository struct {
	db *gorm.DB
}

func NewVoiceRepository(db *gorm.DB) *VoiceRepository {
	return &VoiceRepository{db: db}
}

func (r *VoiceRepository) Save(ctx context.Context, profile *VoiceProfile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return errors.Wrap(errors.KindStorage, "voice.save", "failed to save voice profile", err)
	}
	return nil
}

// FindByVoiceID returns nil without error when the profile does not exist.
func (r *VoiceRepository) FindByVoiceID(ctx context.Context, voiceID string) (*VoiceProfile, error) {
	var profile VoiceProfile
	if err := r.db.WithContext(ctx).Where("voice_id = ?", voiceID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(errors.KindStorage, "voice.find_by_voice_id", "failed to find voice profile", err)
	}
	return &profile, nil
}

func (r *VoiceRepository) List(ctx context.Context) ([]*VoiceProfile, error) {
	var profiles []*VoiceProfile
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, errors.Wrap(errors.KindStorage, "voice.list", "failed to list voice profiles", err)
	}
	return profiles, nil
}

func (r *VoiceRepository) Delete(ctx context.Context, voiceID string) error {
	if err := r.db.WithContext(ctx).Where("voice_id = ?", voiceID).Delete(&VoiceProfile{}).Error; err != nil {
		return errors.Wrap(errors.KindStorage, "voice.delete", "failed to delete voice profile", err)
	}
	return nil
}
