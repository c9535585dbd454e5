package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/slotline/bookingengine/internal/domain"
	"github.com/slotline/bookingengine/pkg/dbmetrics"
	"github.com/slotline/bookingengine/pkg/psqlbuilder"
)

// Repository репозиторий конфигурации бизнеса: policy-флаги, рабочие часы,
// каталог услуг. Настройки читаются заново при каждом обращении движка -
// никакого кеширования политики, изменение действует со следующего же решения.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSettings получает policy-настройки бизнеса
func (r *Repository) GetSettings(ctx context.Context, businessID int64) (*domain.BookingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"business_id",
		"full_day_mode",
		"require_advance",
		"advance_percentage",
		"one_booking_per_day",
		"auto_confirm",
		"updated_at",
	).
		From("booking_settings").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.BookingSettings
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.BusinessID,
		&s.FullDayMode,
		&s.RequireAdvance,
		&s.AdvancePercentage,
		&s.OneBookingPerDay,
		&s.AutoConfirm,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - scan settings: %w", ErrScanRow, err)
	}

	s.UpdatedAt = updatedAt.Time
	return &s, nil
}

// UpsertSettings создает или обновляет policy-настройки бизнеса
func (r *Repository) UpsertSettings(ctx context.Context, s *domain.BookingSettings) (*domain.BookingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_settings").
		Columns(
			"business_id",
			"full_day_mode",
			"require_advance",
			"advance_percentage",
			"one_booking_per_day",
			"auto_confirm",
		).
		Values(
			s.BusinessID,
			s.FullDayMode,
			s.RequireAdvance,
			s.AdvancePercentage,
			s.OneBookingPerDay,
			s.AutoConfirm,
		).
		Suffix(`ON CONFLICT (business_id) DO UPDATE SET
			full_day_mode = EXCLUDED.full_day_mode,
			require_advance = EXCLUDED.require_advance,
			advance_percentage = EXCLUDED.advance_percentage,
			one_booking_per_day = EXCLUDED.one_booking_per_day,
			auto_confirm = EXCLUDED.auto_confirm,
			updated_at = NOW()
			RETURNING updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertSettings - build upsert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertSettings - execute upsert: %w", ErrExecQuery, err)
	}

	s.UpdatedAt = updatedAt.Time
	return s, nil
}

// GetHours получает рабочие часы бизнеса
func (r *Repository) GetHours(ctx context.Context, businessID int64) (*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"business_id",
		"open_time",
		"close_time",
		"slot_duration_minutes",
		"buffer_minutes",
		"updated_at",
	).
		From("business_hours").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetHours - build select query: %v", ErrBuildQuery, err)
	}

	var h domain.BusinessHours
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&h.BusinessID,
		&h.OpenTime,
		&h.CloseTime,
		&h.SlotDurationMinutes,
		&h.BufferMinutes,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetHours - scan hours: %w", ErrScanRow, err)
	}

	h.UpdatedAt = updatedAt.Time
	return &h, nil
}

// UpsertHours создает или обновляет рабочие часы бизнеса
func (r *Repository) UpsertHours(ctx context.Context, h *domain.BusinessHours) (*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("business_hours").
		Columns(
			"business_id",
			"open_time",
			"close_time",
			"slot_duration_minutes",
			"buffer_minutes",
		).
		Values(
			h.BusinessID,
			h.OpenTime,
			h.CloseTime,
			h.SlotDurationMinutes,
			h.BufferMinutes,
		).
		Suffix(`ON CONFLICT (business_id) DO UPDATE SET
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			buffer_minutes = EXCLUDED.buffer_minutes,
			updated_at = NOW()
			RETURNING updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertHours - build upsert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertHours - execute upsert: %w", ErrExecQuery, err)
	}

	h.UpdatedAt = updatedAt.Time
	return h, nil
}

var serviceColumns = []string{
	"id",
	"business_id",
	"name",
	"duration_minutes",
	"capacity_per_slot",
	"price",
	"created_at",
	"updated_at",
}

// GetService получает услугу бизнеса по ID
func (r *Repository) GetService(ctx context.Context, businessID, serviceID int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": serviceID, "business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	svc, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %w", ErrScanRow, err)
	}

	return svc, nil
}

// ListServices получает все услуги бизнеса
func (r *Repository) ListServices(ctx context.Context, businessID int64) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan row: %w", ErrScanRow, err)
		}
		services = append(services, svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows error: %w", ErrScanRow, err)
	}

	return services, nil
}

// CountServices возвращает количество услуг бизнеса
func (r *Repository) CountServices(ctx context.Context, businessID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("services").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountServices - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountServices - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// CreateService создает новую услугу
func (r *Repository) CreateService(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("services").
		Columns(
			"business_id",
			"name",
			"duration_minutes",
			"capacity_per_slot",
			"price",
		).
		Values(
			svc.BusinessID,
			svc.Name,
			svc.DurationMinutes,
			svc.CapacityPerSlot,
			svc.Price,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - execute insert: %w", ErrExecQuery, err)
	}

	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	return svc, nil
}

// UpdateService обновляет услугу бизнеса
func (r *Repository) UpdateService(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("name", svc.Name).
		Set("duration_minutes", svc.DurationMinutes).
		Set("capacity_per_slot", svc.CapacityPerSlot).
		Set("price", svc.Price).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": svc.ID, "business_id": svc.BusinessID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateService - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateService - execute update: %w", ErrExecQuery, err)
	}

	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	return svc, nil
}

// DeleteService удаляет услугу.
// Проверка "нельзя удалить последнюю услугу" выполняется на уровне сервиса
// настроек внутри транзакции.
func (r *Repository) DeleteService(ctx context.Context, businessID, serviceID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("services").
		Where(squirrel.Eq{"id": serviceID, "business_id": businessID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteService - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteService - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteService - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var svc domain.Service
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&svc.ID,
		&svc.BusinessID,
		&svc.Name,
		&svc.DurationMinutes,
		&svc.CapacityPerSlot,
		&svc.Price,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time
	return &svc, nil
}
