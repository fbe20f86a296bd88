// FILE: internal/dto/devotion_dto.go
package dto

import "soulstart-be/pkg/devotion"

type DevotionMessageResponse struct {
	Date    string `json:"date"`
	Slot    string `json:"slot"`
	Message string `json:"message"`
}

type TodayDevotionResponse struct {
	Date    string          `json:"date"`
	Morning devotion.Record `json:"morning"`
	Night   devotion.Record `json:"night"`
}
