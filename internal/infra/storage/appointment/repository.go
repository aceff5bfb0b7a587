package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/Nithin050/qline-service/internal/domain"
	"github.com/Nithin050/qline-service/pkg/dbmetrics"
	"github.com/Nithin050/qline-service/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL для нарушения уникальности
const pgUniqueViolation = "23505"

const appointmentColumns = "id, user_id, org_id, name, phone, date, time_slot, status, created_at, updated_at"

// Repository репозиторий для работы с записями на приём
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись со статусом Booked.
// Если в контексте передана активная транзакция, использует её.
//
// Вставка защищена частичным уникальным индексом
// (org_id, date, time_slot) WHERE status = 'Booked': при гонке за один слот
// ровно одна транзакция коммитится, остальные получают ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"user_id",
			"org_id",
			"name",
			"phone",
			"date",
			"time_slot",
			"status",
		).
		Values(
			appt.UserID,
			appt.OrgID,
			appt.Name,
			appt.Phone,
			appt.Date,
			appt.TimeSlot,
			appt.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := r.scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// ExistsBooked проверяет, занят ли слот (org, date, time_slot) записью
// со статусом Booked
func (r *Repository) ExistsBooked(ctx context.Context, orgID int64, date time.Time, timeSlot string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("appointments").
		Where(squirrel.Eq{
			"org_id":    orgID,
			"date":      date,
			"time_slot": timeSlot,
			"status":    domain.StatusBooked,
		}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsBooked - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsBooked - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// CountBooked подсчитывает активные (Booked) записи пользователя в организации.
// Используется для проверки лимита бронирований.
func (r *Repository) CountBooked(ctx context.Context, userID, orgID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{
			"user_id": userID,
			"org_id":  orgID,
			"status":  domain.StatusBooked,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountBooked - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountBooked - scan: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetActiveByUser получает активные (Booked) записи пользователя,
// отсортированные по дате и времени слота
func (r *Repository) GetActiveByUser(ctx context.Context, userID int64) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns).
		From("appointments").
		Where(squirrel.Eq{"user_id": userID, "status": domain.StatusBooked}).
		OrderBy("date ASC, time_slot ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// GetHistoryByUser получает завершённые записи пользователя (все, кроме Booked),
// сначала новые
func (r *Repository) GetHistoryByUser(ctx context.Context, userID int64) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns).
		From("appointments").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.NotEq{"status": domain.StatusBooked}).
		OrderBy("date DESC, time_slot DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetHistoryByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetHistoryByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// GetByOrgWithFilter получает записи организации с фильтрацией по дате,
// статусу, периоду (today/upcoming) и подстроке имени клиента.
//
// Внутри транзакции с фильтром по конкретной дате добавляет FOR UPDATE:
// бронирующая транзакция блокирует строки дня и сериализует конкурентов.
func (r *Repository) GetByOrgWithFilter(ctx context.Context, filter domain.OrgAppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns).
		From("appointments").
		Where(squirrel.Eq{"org_id": filter.OrgID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"date": *filter.Date})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	switch filter.Scope {
	case domain.QueueScopeToday:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"date": filter.Today})
	case domain.QueueScopeUpcoming:
		selectBuilder = selectBuilder.Where(squirrel.Gt{"date": filter.Today})
	}

	if filter.SearchName != "" {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"name": "%" + filter.SearchName + "%"})
	}

	selectBuilder = selectBuilder.OrderBy("date ASC, time_slot ASC")

	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrgWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrgWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// GetOrgHistory получает завершённые записи организации, сначала недавно
// обновлённые. Опциональный поиск по имени клиента.
func (r *Repository) GetOrgHistory(ctx context.Context, orgID int64, searchName string) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns).
		From("appointments").
		Where(squirrel.Eq{"org_id": orgID}).
		Where(squirrel.NotEq{"status": domain.StatusBooked}).
		OrderBy("updated_at DESC")

	if searchName != "" {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"name": "%" + searchName + "%"})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOrgHistory - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOrgHistory - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// GetDashboardCounts собирает счётчики дашборда организации одним запросом
func (r *Repository) GetDashboardCounts(ctx context.Context, orgID int64, today time.Time) (*domain.DashboardCounts, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE date = ?)", today)).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE date > ? AND status = ?)", today, domain.StatusBooked)).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE status = ?)", domain.StatusCompleted)).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE status = ?)", domain.StatusMissed)).
		From("appointments").
		Where(squirrel.Eq{"org_id": orgID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDashboardCounts - build select query: %v", ErrBuildQuery, err)
	}

	var counts domain.DashboardCounts
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&counts.Today,
		&counts.Upcoming,
		&counts.Completed,
		&counts.Missed,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDashboardCounts - scan: %v", ErrScanRow, err)
	}

	return &counts, nil
}

// UpdateStatusFrom переводит запись из статуса from в статус to и обновляет
// updated_at. Условие WHERE status = from делает переход атомарным: если
// запись уже в другом статусе, строка не обновляется и возвращается false.
func (r *Repository) UpdateStatusFrom(ctx context.Context, id int64, from, to domain.AppointmentStatus) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatusFrom - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatusFrom - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatusFrom - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// Delete физически удаляет запись организации (деструктивное действие
// администратора, не часть обычного жизненного цикла)
func (r *Repository) Delete(ctx context.Context, id, orgID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id, "org_id": orgID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanAppointment сканирует одну запись
func (r *Repository) scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.UserID,
		&appt.OrgID,
		&appt.Name,
		&appt.Phone,
		&appt.Date,
		&appt.TimeSlot,
		&appt.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := r.scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
