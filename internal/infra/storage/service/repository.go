package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с услугами и квалификацией мастеров
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"duration_minutes",
		"price",
		"discount_percent",
		"active",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.Name,
		&s.DurationMinutes,
		&s.Price,
		&s.DiscountPercent,
		&s.Active,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}

	return &s, nil
}

// GetQualifiedMasters получает активных мастеров, выполняющих услугу
func (r *Repository) GetQualifiedMasters(ctx context.Context, serviceID int64) ([]*domain.Master, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"m.id",
		"m.name",
		"m.timezone",
		"m.active",
		"m.created_at",
		"m.updated_at",
	).
		From("masters m").
		Join("service_masters sm ON sm.master_id = m.id").
		Where(squirrel.Eq{"sm.service_id": serviceID}).
		Where(squirrel.Eq{"m.active": true}).
		OrderBy("m.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetQualifiedMasters - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetQualifiedMasters - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	masters := make([]*domain.Master, 0)
	for rows.Next() {
		var m domain.Master
		if err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Timezone,
			&m.Active,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetQualifiedMasters - scan row: %v", ErrScanRow, err)
		}
		masters = append(masters, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetQualifiedMasters - rows iteration: %v", ErrExecQuery, err)
	}

	return masters, nil
}

// IsMasterQualified проверяет, что мастер выполняет услугу
func (r *Repository) IsMasterQualified(ctx context.Context, serviceID, masterID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("service_masters").
		Where(squirrel.Eq{"service_id": serviceID, "master_id": masterID}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsMasterQualified - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsMasterQualified - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}
