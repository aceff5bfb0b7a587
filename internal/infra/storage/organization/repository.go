package organization

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/Nithin050/qline-service/internal/domain"
	"github.com/Nithin050/qline-service/pkg/dbmetrics"
	"github.com/Nithin050/qline-service/pkg/psqlbuilder"
)

const organizationColumns = "id, staff_id, name, service_type, location, branch_address, " +
	"phone_number, working_hours, appointment_duration, is_active, disabled_since, created_at"

// Repository репозиторий для работы с организациями, шаблонами слотов и выходными
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория организаций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую организацию
func (r *Repository) Create(ctx context.Context, org *domain.Organization) (*domain.Organization, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("organizations").
		Columns(
			"staff_id",
			"name",
			"service_type",
			"location",
			"branch_address",
			"phone_number",
			"working_hours",
			"appointment_duration",
		).
		Values(
			org.StaffID,
			org.Name,
			org.ServiceType,
			org.Location,
			org.BranchAddress,
			org.PhoneNumber,
			org.WorkingHours,
			org.AppointmentDuration,
		).
		Suffix("RETURNING id, is_active, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&org.ID, &org.IsActive, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	org.CreatedAt = createdAt.Time
	return org, nil
}

// GetByID получает организацию по ID, включая отключённые
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Organization, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(organizationColumns).
		From("organizations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	org, err := scanOrganization(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrOrganizationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan organization: %v", ErrScanRow, err)
	}

	return org, nil
}

// Search ищет организации по типу услуги и локации (точное совпадение
// без учёта регистра). Используется каталогом филиалов.
func (r *Repository) Search(ctx context.Context, search domain.OrganizationSearch) ([]*domain.Organization, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(organizationColumns).
		From("organizations").
		OrderBy("name ASC")

	if search.ServiceType != "" {
		selectBuilder = selectBuilder.Where(
			squirrel.Expr("LOWER(service_type) = ?", strings.ToLower(string(search.ServiceType))))
	}
	if search.Location != "" {
		selectBuilder = selectBuilder.Where(
			squirrel.Expr("LOWER(location) = ?", strings.ToLower(search.Location)))
	}
	if search.ActiveOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Search - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Search - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	orgs := make([]*domain.Organization, 0)
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: Search - scan row: %v", ErrScanRow, err)
		}
		orgs = append(orgs, org)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Search - rows error: %v", ErrScanRow, err)
	}

	return orgs, nil
}

// SetActive включает или отключает организацию.
// При отключении фиксирует disabled_since, при включении сбрасывает.
func (r *Repository) SetActive(ctx context.Context, id int64, active bool, disabledSince *time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("organizations").
		Set("is_active", active).
		Set("disabled_since", disabledSince).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrOrganizationNotFound
	}

	return nil
}

// ListTemplates получает шаблоны слотов организации в порядке объявления
func (r *Repository) ListTemplates(ctx context.Context, orgID int64) ([]*domain.TimeSlotTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "org_id", "slot_range", "is_active", "position").
		From("time_slot_templates").
		Where(squirrel.Eq{"org_id": orgID}).
		OrderBy("position ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListTemplates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTemplates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	templates := make([]*domain.TimeSlotTemplate, 0)
	for rows.Next() {
		var t domain.TimeSlotTemplate
		if err := rows.Scan(&t.ID, &t.OrgID, &t.Range, &t.IsActive, &t.Position); err != nil {
			return nil, fmt.Errorf("%w: ListTemplates - scan row: %v", ErrScanRow, err)
		}
		templates = append(templates, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTemplates - rows error: %v", ErrScanRow, err)
	}

	return templates, nil
}

// CreateTemplate добавляет шаблон слотов организации
func (r *Repository) CreateTemplate(ctx context.Context, orgID int64, slotRange string, position int) (*domain.TimeSlotTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_slot_templates").
		Columns("org_id", "slot_range", "position").
		Values(orgID, slotRange, position).
		Suffix("RETURNING id, is_active").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateTemplate - build insert query: %v", ErrBuildQuery, err)
	}

	t := domain.TimeSlotTemplate{OrgID: orgID, Range: slotRange, Position: position}
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.IsActive); err != nil {
		return nil, fmt.Errorf("%w: CreateTemplate - execute insert: %v", ErrExecQuery, err)
	}

	return &t, nil
}

// UpdateTemplate изменяет диапазон или активность шаблона
func (r *Repository) UpdateTemplate(ctx context.Context, id, orgID int64, slotRange string, isActive bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slot_templates").
		Set("slot_range", slotRange).
		Set("is_active", isActive).
		Where(squirrel.Eq{"id": id, "org_id": orgID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateTemplate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateTemplate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateTemplate - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

// DeleteTemplate удаляет шаблон слотов
func (r *Repository) DeleteTemplate(ctx context.Context, id, orgID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_slot_templates").
		Where(squirrel.Eq{"id": id, "org_id": orgID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteTemplate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteTemplate - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteTemplate - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

// HasHoliday проверяет, объявлен ли выходной на дату.
// Дубликаты строк допустимы и на результат не влияют.
func (r *Repository) HasHoliday(ctx context.Context, orgID int64, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("holidays").
		Where(squirrel.Eq{"org_id": orgID, "date": date}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasHoliday - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasHoliday - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// ListHolidays получает выходные организации по возрастанию даты
func (r *Repository) ListHolidays(ctx context.Context, orgID int64) ([]*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "org_id", "date").
		From("holidays").
		Where(squirrel.Eq{"org_id": orgID}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListHolidays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListHolidays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	holidays := make([]*domain.Holiday, 0)
	for rows.Next() {
		var h domain.Holiday
		if err := rows.Scan(&h.ID, &h.OrgID, &h.Date); err != nil {
			return nil, fmt.Errorf("%w: ListHolidays - scan row: %v", ErrScanRow, err)
		}
		holidays = append(holidays, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListHolidays - rows error: %v", ErrScanRow, err)
	}

	return holidays, nil
}

// CreateHoliday объявляет выходной
func (r *Repository) CreateHoliday(ctx context.Context, orgID int64, date time.Time) (*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("holidays").
		Columns("org_id", "date").
		Values(orgID, date).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateHoliday - build insert query: %v", ErrBuildQuery, err)
	}

	h := domain.Holiday{OrgID: orgID, Date: date}
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&h.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateHoliday - execute insert: %v", ErrExecQuery, err)
	}

	return &h, nil
}

// DeleteHoliday удаляет выходной
func (r *Repository) DeleteHoliday(ctx context.Context, id, orgID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("holidays").
		Where(squirrel.Eq{"id": id, "org_id": orgID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteHoliday - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteHoliday - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteHoliday - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrHolidayNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanOrganization сканирует одну организацию
func scanOrganization(row rowScanner) (*domain.Organization, error) {
	var org domain.Organization
	var disabledSince sql.NullTime
	var createdAt sql.NullTime

	err := row.Scan(
		&org.ID,
		&org.StaffID,
		&org.Name,
		&org.ServiceType,
		&org.Location,
		&org.BranchAddress,
		&org.PhoneNumber,
		&org.WorkingHours,
		&org.AppointmentDuration,
		&org.IsActive,
		&disabledSince,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if disabledSince.Valid {
		org.DisabledSince = &disabledSince.Time
	}
	org.CreatedAt = createdAt.Time

	return &org, nil
}
