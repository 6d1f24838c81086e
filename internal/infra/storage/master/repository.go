package master

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Repository репозиторий для работы с мастерами, их графиками и окнами недоступности
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает мастера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Master, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"timezone",
		"active",
		"created_at",
		"updated_at",
	).
		From("masters").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var m domain.Master
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&m.ID,
		&m.Name,
		&m.Timezone,
		&m.Active,
		&m.CreatedAt,
		&m.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrMasterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan master: %v", ErrScanRow, err)
	}

	return &m, nil
}

// GetWeeklyTemplate получает недельный шаблон рабочих часов мастера
// На один день недели может приходиться несколько интервалов
func (r *Repository) GetWeeklyTemplate(ctx context.Context, masterID int64) (domain.WeeklyTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"weekday",
		"open_time",
		"close_time",
	).
		From("master_weekly_templates").
		Where(squirrel.Eq{"master_id": masterID}).
		OrderBy("weekday ASC, open_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyTemplate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyTemplate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tpl := domain.WeeklyTemplate{}
	for rows.Next() {
		var weekday int
		var open, closeAt types.TimeString
		if err := rows.Scan(&weekday, &open, &closeAt); err != nil {
			return nil, fmt.Errorf("%w: GetWeeklyTemplate - scan row: %v", ErrScanRow, err)
		}
		wd := time.Weekday(weekday)
		tpl[wd] = append(tpl[wd], domain.TemplateInterval{Open: open, Close: closeAt})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyTemplate - rows iteration: %v", ErrExecQuery, err)
	}

	return tpl, nil
}

// GetUnavailability получает окна недоступности мастера, способные затронуть
// период [from, to): как обычные пересекающие окна, так и повторяющиеся,
// чей период повторения еще не закончился. Это грубый префильтр:
// точное разворачивание повторений делает calendar geometry, а не SQL.
// Сравнение repeat_until (DATE) с from делается с запасом в сутки,
// чтобы не зависеть от session timezone при касте DATE -> timestamptz.
func (r *Repository) GetUnavailability(ctx context.Context, masterID int64, from, to time.Time) ([]domain.Unavailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"master_id",
		"start_at",
		"end_at",
		"reason",
		"repeat_until",
		"created_at",
	).
		From("master_unavailability").
		Where(squirrel.Eq{"master_id": masterID}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Or{
			squirrel.Gt{"end_at": from},
			squirrel.Expr("repeat_until >= (?::timestamptz - interval '1 day')::date", from),
		}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetUnavailability - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnavailability - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]domain.Unavailability, 0)
	for rows.Next() {
		var w domain.Unavailability
		if err := rows.Scan(
			&w.ID,
			&w.MasterID,
			&w.StartAt,
			&w.EndAt,
			&w.Reason,
			&w.RepeatUntil,
			&w.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetUnavailability - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetUnavailability - rows iteration: %v", ErrExecQuery, err)
	}

	return windows, nil
}

// CreateUnavailability создает окно недоступности (отпуск, перерыв)
func (r *Repository) CreateUnavailability(ctx context.Context, w *domain.Unavailability) (*domain.Unavailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("master_unavailability").
		Columns("master_id", "start_at", "end_at", "reason", "repeat_until").
		Values(w.MasterID, w.StartAt, w.EndAt, w.Reason, w.RepeatUntil).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateUnavailability - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateUnavailability - execute insert: %v", ErrExecQuery, err)
	}

	return w, nil
}
