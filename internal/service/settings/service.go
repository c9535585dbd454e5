package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/slotline/bookingengine/internal/domain"
	settingsRepo "github.com/slotline/bookingengine/internal/infra/storage/settings"
	"github.com/slotline/bookingengine/internal/service/settings/models"
	"github.com/slotline/bookingengine/pkg/types"
)

// Service сервис конфигурации бизнеса: policy-флаги, рабочие часы и каталог
// услуг. Движок бронирования не ходит сюда - он читает репозиторий напрямую,
// этот сервис обслуживает только административный контур.
type Service struct {
	settingsRepo SettingsRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	settingsRepo SettingsRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetConfiguration получает полную конфигурацию бизнеса: настройки, рабочие
// часы и каталог услуг. Отсутствие рабочих часов не является ошибкой - поле
// hours в ответе остаётся пустым.
func (s *Service) GetConfiguration(ctx context.Context, businessID int64) (*models.ConfigurationResponse, error) {
	s.logger.Info("GetConfiguration: fetching configuration for business=%d", businessID)

	settings, err := s.settingsRepo.GetSettings(ctx, businessID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Warn("GetConfiguration: business id=%d has no settings", businessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("GetConfiguration: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetConfiguration - repository error: %v", ErrInternal, err)
	}

	resp := &models.ConfigurationResponse{
		Settings: models.FromDomainSettings(settings),
	}

	hours, err := s.settingsRepo.GetHours(ctx, businessID)
	if err != nil && !errors.Is(err, settingsRepo.ErrHoursNotFound) {
		s.logger.Error("GetConfiguration: hours error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetConfiguration - hours error: %v", ErrInternal, err)
	}
	if hours != nil {
		resp.Hours = models.FromDomainHours(hours)
	}

	services, err := s.settingsRepo.ListServices(ctx, businessID)
	if err != nil {
		s.logger.Error("GetConfiguration: services error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetConfiguration - services error: %v", ErrInternal, err)
	}
	resp.Services = models.FromDomainServiceList(services).Services

	return resp, nil
}

// UpdateSettings заменяет policy-настройки бизнеса.
// advancePercentage вне [1,100] отклоняется, даже когда requireAdvance
// выключен: конфигурация с мусорным процентом не должна существовать.
func (s *Service) UpdateSettings(ctx context.Context, businessID int64, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: business=%d, fullDay=%t, requireAdvance=%t, pct=%d, onePerDay=%t",
		businessID, req.FullDayMode, req.RequireAdvance, req.AdvancePercentage, req.OneBookingPerDay)

	if businessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}
	if req.AdvancePercentage < domain.MinAdvancePercentage || req.AdvancePercentage > domain.MaxAdvancePercentage {
		s.logger.Warn("UpdateSettings: business=%d rejected advancePercentage=%d", businessID, req.AdvancePercentage)
		return nil, fmt.Errorf("%w: advancePercentage must be between %d and %d",
			ErrInvalidInput, domain.MinAdvancePercentage, domain.MaxAdvancePercentage)
	}

	updated, err := s.settingsRepo.UpsertSettings(ctx, &domain.BookingSettings{
		BusinessID:        businessID,
		FullDayMode:       req.FullDayMode,
		RequireAdvance:    req.RequireAdvance,
		AdvancePercentage: req.AdvancePercentage,
		OneBookingPerDay:  req.OneBookingPerDay,
		AutoConfirm:       req.AutoConfirm,
	})
	if err != nil {
		s.logger.Error("UpdateSettings: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSettings: business=%d settings saved", businessID)
	return models.FromDomainSettings(updated), nil
}

// UpdateHours заменяет рабочие часы бизнеса
func (s *Service) UpdateHours(ctx context.Context, businessID int64, req *models.UpdateHoursRequest) (*models.HoursResponse, error) {
	s.logger.Info("UpdateHours: business=%d, open=%s, close=%s, slot=%d, buffer=%d",
		businessID, req.OpenTime, req.CloseTime, req.SlotDurationMinutes, req.BufferMinutes)

	if businessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	open, err := types.NewTimeStringFromString(req.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("%w: openTime must be in HH:MM format", ErrInvalidInput)
	}
	closeTime, err := types.NewTimeStringFromString(req.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("%w: closeTime must be in HH:MM format", ErrInvalidInput)
	}
	if !open.IsBefore(closeTime) {
		return nil, fmt.Errorf("%w: closeTime must be after openTime", ErrInvalidInput)
	}
	if req.SlotDurationMinutes < domain.MinSlotDurationMinutes || req.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return nil, fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if req.BufferMinutes < domain.MinBufferMinutes || req.BufferMinutes > domain.MaxBufferMinutes {
		return nil, fmt.Errorf("%w: bufferMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	updated, err := s.settingsRepo.UpsertHours(ctx, &domain.BusinessHours{
		BusinessID:          businessID,
		OpenTime:            open,
		CloseTime:           closeTime,
		SlotDurationMinutes: req.SlotDurationMinutes,
		BufferMinutes:       req.BufferMinutes,
	})
	if err != nil {
		s.logger.Error("UpdateHours: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: UpdateHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateHours: business=%d hours saved", businessID)
	return models.FromDomainHours(updated), nil
}

// ListServices получает каталог услуг бизнеса
func (s *Service) ListServices(ctx context.Context, businessID int64) (*models.ServiceListResponse, error) {
	services, err := s.settingsRepo.ListServices(ctx, businessID)
	if err != nil {
		s.logger.Error("ListServices: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// CreateService добавляет услугу в каталог бизнеса
func (s *Service) CreateService(ctx context.Context, businessID int64, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: business=%d, name=%q, duration=%d, capacity=%d",
		businessID, req.Name, req.DurationMinutes, req.CapacityPerSlot)

	if businessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.DurationMinutes < domain.MinSlotDurationMinutes || req.DurationMinutes > domain.MaxSlotDurationMinutes {
		return nil, fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if req.CapacityPerSlot < domain.MinCapacityPerSlot || req.CapacityPerSlot > domain.MaxCapacityPerSlot {
		return nil, fmt.Errorf("%w: capacityPerSlot must be between %d and %d",
			ErrInvalidInput, domain.MinCapacityPerSlot, domain.MaxCapacityPerSlot)
	}
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	created, err := s.settingsRepo.CreateService(ctx, &domain.Service{
		BusinessID:      businessID,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		CapacityPerSlot: req.CapacityPerSlot,
		Price:           req.Price,
	})
	if err != nil {
		s.logger.Error("CreateService: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: business=%d created service id=%d", businessID, created.ID)
	return models.FromDomainService(created), nil
}

// UpdateService обновляет услугу в каталоге бизнеса
func (s *Service) UpdateService(ctx context.Context, businessID, serviceID int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("UpdateService: business=%d, service=%d, name=%q, duration=%d, capacity=%d",
		businessID, serviceID, req.Name, req.DurationMinutes, req.CapacityPerSlot)

	if businessID <= 0 || serviceID <= 0 {
		return nil, fmt.Errorf("%w: businessID and serviceID must be positive", ErrInvalidInput)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.DurationMinutes < domain.MinSlotDurationMinutes || req.DurationMinutes > domain.MaxSlotDurationMinutes {
		return nil, fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if req.CapacityPerSlot < domain.MinCapacityPerSlot || req.CapacityPerSlot > domain.MaxCapacityPerSlot {
		return nil, fmt.Errorf("%w: capacityPerSlot must be between %d and %d",
			ErrInvalidInput, domain.MinCapacityPerSlot, domain.MaxCapacityPerSlot)
	}
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	updated, err := s.settingsRepo.UpdateService(ctx, &domain.Service{
		ID:              serviceID,
		BusinessID:      businessID,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		CapacityPerSlot: req.CapacityPerSlot,
		Price:           req.Price,
	})
	if err != nil {
		if errors.Is(err, settingsRepo.ErrServiceNotFound) {
			s.logger.Warn("UpdateService: business=%d service id=%d not found", businessID, serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateService: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateService: business=%d updated service id=%d", businessID, serviceID)
	return models.FromDomainService(updated), nil
}

// DeleteService удаляет услугу из каталога.
// Последнюю услугу бизнеса, работающего не в full-day режиме, удалить нельзя:
// без услуг такому бизнесу нечего бронировать. Проверка количества и само
// удаление выполняются в одной транзакции.
func (s *Service) DeleteService(ctx context.Context, businessID, serviceID int64) error {
	s.logger.Info("DeleteService: business=%d, service=%d", businessID, serviceID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.settingsRepo.GetService(txCtx, businessID, serviceID); err != nil {
			if errors.Is(err, settingsRepo.ErrServiceNotFound) {
				return ErrServiceNotFound
			}
			return fmt.Errorf("%w: DeleteService - repository error: %v", ErrInternal, err)
		}

		settings, err := s.settingsRepo.GetSettings(txCtx, businessID)
		if err != nil {
			if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
				return ErrBusinessNotFound
			}
			return fmt.Errorf("%w: DeleteService - settings error: %v", ErrInternal, err)
		}

		if !settings.FullDayMode {
			count, err := s.settingsRepo.CountServices(txCtx, businessID)
			if err != nil {
				return fmt.Errorf("%w: DeleteService - count error: %v", ErrInternal, err)
			}
			if count <= 1 {
				s.logger.Warn("DeleteService: business=%d refused to delete last service id=%d",
					businessID, serviceID)
				return ErrLastService
			}
		}

		if err := s.settingsRepo.DeleteService(txCtx, businessID, serviceID); err != nil {
			if errors.Is(err, settingsRepo.ErrServiceNotFound) {
				return ErrServiceNotFound
			}
			return fmt.Errorf("%w: DeleteService - repository error: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.logger.Info("DeleteService: business=%d deleted service id=%d", businessID, serviceID)
	return nil
}
