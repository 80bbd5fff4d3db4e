package dto

import (
	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
)

// UpsertSettingRequest defines the payload for writing a setting.
type UpsertSettingRequest struct {
	Value string `json:"value" binding:"required,max=4000"`
}

// SettingResponse is the public representation of a setting.
type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ToListSettingsResponse converts domain settings to DTOs.
func ToListSettingsResponse(settings []domain.Setting) []SettingResponse {
	responses := make([]SettingResponse, len(settings))
	for i, s := range settings {
		responses[i] = SettingResponse{Key: s.Key, Value: s.Value}
	}
	return responses
}
