package models

import (
	"time"

	"github.com/slotline/bookingengine/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на обновление policy-настроек бизнеса.
// Это полная замена настроек, а не частичное обновление: клиент присылает
// желаемое состояние целиком.
type UpdateSettingsRequest struct {
	FullDayMode       bool `json:"fullDayMode"`
	RequireAdvance    bool `json:"requireAdvance"`
	AdvancePercentage int  `json:"advancePercentage"`
	OneBookingPerDay  bool `json:"oneBookingPerDay"`
	AutoConfirm       bool `json:"autoConfirm"`
}

// UpdateHoursRequest запрос на обновление рабочих часов
type UpdateHoursRequest struct {
	OpenTime            string `json:"openTime"`
	CloseTime           string `json:"closeTime"`
	SlotDurationMinutes int    `json:"slotDurationMinutes"`
	BufferMinutes       int    `json:"bufferMinutes"`
}

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Name            string   `json:"name"`
	DurationMinutes int      `json:"durationMinutes"`
	CapacityPerSlot int      `json:"capacityPerSlot"`
	Price           *float64 `json:"price,omitempty"`
}

// UpdateServiceRequest запрос на обновление услуги. Полная замена полей услуги.
type UpdateServiceRequest struct {
	Name            string   `json:"name"`
	DurationMinutes int      `json:"durationMinutes"`
	CapacityPerSlot int      `json:"capacityPerSlot"`
	Price           *float64 `json:"price,omitempty"`
}

// Response модели

// SettingsResponse policy-настройки бизнеса
type SettingsResponse struct {
	BusinessID        int64  `json:"businessId"`
	FullDayMode       bool   `json:"fullDayMode"`
	RequireAdvance    bool   `json:"requireAdvance"`
	AdvancePercentage int    `json:"advancePercentage"`
	OneBookingPerDay  bool   `json:"oneBookingPerDay"`
	AutoConfirm       bool   `json:"autoConfirm"`
	UpdatedAt         string `json:"updatedAt"`
}

// HoursResponse рабочие часы бизнеса
type HoursResponse struct {
	BusinessID          int64  `json:"businessId"`
	OpenTime            string `json:"openTime"`
	CloseTime           string `json:"closeTime"`
	SlotDurationMinutes int    `json:"slotDurationMinutes"`
	BufferMinutes       int    `json:"bufferMinutes"`
	UpdatedAt           string `json:"updatedAt"`
}

// ServiceResponse услуга бизнеса
type ServiceResponse struct {
	ID              int64    `json:"id"`
	BusinessID      int64    `json:"businessId"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"durationMinutes"`
	CapacityPerSlot int      `json:"capacityPerSlot"`
	Price           *float64 `json:"price,omitempty"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
}

// ServiceListResponse список услуг бизнеса
type ServiceListResponse struct {
	Services []*ServiceResponse `json:"services"`
	Total    int                `json:"total"`
}

// ConfigurationResponse полная конфигурация бизнеса: настройки, часы, услуги
type ConfigurationResponse struct {
	Settings *SettingsResponse  `json:"settings"`
	Hours    *HoursResponse     `json:"hours,omitempty"`
	Services []*ServiceResponse `json:"services"`
}

// FromDomainSettings конвертирует domain.BookingSettings в SettingsResponse
func FromDomainSettings(s *domain.BookingSettings) *SettingsResponse {
	return &SettingsResponse{
		BusinessID:        s.BusinessID,
		FullDayMode:       s.FullDayMode,
		RequireAdvance:    s.RequireAdvance,
		AdvancePercentage: s.AdvancePercentage,
		OneBookingPerDay:  s.OneBookingPerDay,
		AutoConfirm:       s.AutoConfirm,
		UpdatedAt:         s.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainHours конвертирует domain.BusinessHours в HoursResponse
func FromDomainHours(h *domain.BusinessHours) *HoursResponse {
	return &HoursResponse{
		BusinessID:          h.BusinessID,
		OpenTime:            h.OpenTime.String(),
		CloseTime:           h.CloseTime.String(),
		SlotDurationMinutes: h.SlotDurationMinutes,
		BufferMinutes:       h.BufferMinutes,
		UpdatedAt:           h.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainService конвертирует domain.Service в ServiceResponse
func FromDomainService(svc *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              svc.ID,
		BusinessID:      svc.BusinessID,
		Name:            svc.Name,
		DurationMinutes: svc.DurationMinutes,
		CapacityPerSlot: svc.CapacityPerSlot,
		Price:           svc.Price,
		CreatedAt:       svc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       svc.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainServiceList конвертирует список domain.Service
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	result := make([]*ServiceResponse, len(services))
	for i, svc := range services {
		result[i] = FromDomainService(svc)
	}
	return &ServiceListResponse{
		Services: result,
		Total:    len(result),
	}
}
