package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBooking/pkg/psqlbuilder"
)

const (
	tableBookings = "bookings"

	// pgUniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
	pgUniqueViolation = "23505"
)

var bookingColumns = []string{
	"id",
	"booking_date",
	"time_slot",
	"slot_start_minutes",
	"customer_name",
	"address",
	"note",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Insert сохраняет новое бронирование.
// Уникальный частичный индекс bookings_active_slot_uniq не допускает двух
// активных бронирований на одну пару (дата, слот) - в этом случае возвращается ErrSlotTaken.
func (r *Repository) Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"id",
			"booking_date",
			"time_slot",
			"slot_start_minutes",
			"customer_name",
			"address",
			"note",
			"status",
		).
		Values(
			booking.ID,
			domain.DateKey(booking.Date),
			booking.TimeSlot,
			booking.SlotStartMinutes,
			booking.CustomerName,
			booking.Address,
			booking.Note,
			booking.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Insert - execute insert: %v", ErrExecQuery, err)
	}

	booking.Date = domain.NormalizeDate(booking.Date)
	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// Find ищет бронирование на пару (дата, слот) в указанном статусе.
// Для статуса booked результат не более одной записи (уникальный индекс).
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) Find(ctx context.Context, date time.Time, timeSlot string, status domain.BookingStatus) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{
			"booking_date": domain.DateKey(date),
			"time_slot":    timeSlot,
			"status":       status,
		}).
		OrderBy("created_at DESC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Find - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Find - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// UpdateStatus переводит бронирование из статуса from в статус to.
// Обновление условное: если текущий статус уже не from, возвращается ErrStatusChanged,
// поэтому повторный вызов не меняет состояние.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusChanged
	}

	return nil
}

// List возвращает бронирования по фильтру, упорядоченные по (дата, слот).
//
// Примеры:
//
// 1. Все активные бронирования:
//	filter := domain.BookingsFilter{Statuses: []domain.BookingStatus{domain.StatusBooked}}
//
// 2. Бронирования за период:
//	filter := domain.BookingsFilter{StartDate: &from, EndDate: &to}
//
// 3. Поиск по имени, адресу или заметке:
//	filter := domain.BookingsFilter{Search: "lenina"}
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings)

	// Фильтрация по статусам
	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(filter.Statuses)})
	}

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": domain.DateKey(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": domain.DateKey(*filter.EndDate)})
	}

	// Поиск без учета регистра
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"customer_name": pattern},
			squirrel.ILike{"address": pattern},
			squirrel.ILike{"note": pattern},
		})
	}

	selectBuilder = selectBuilder.OrderBy("booking_date ASC", "slot_start_minutes ASC", "time_slot ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// FullyBookedDates возвращает даты периода, на которых заняты все слоты из slots
// бронированиями в одном из статусов statuses
func (r *Repository) FullyBookedDates(
	ctx context.Context,
	from, to time.Time,
	slots []string,
	statuses []domain.BookingStatus,
) ([]time.Time, error) {
	if len(slots) == 0 || len(statuses) == 0 {
		return []time.Time{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("booking_date").
		From(tableBookings).
		Where(squirrel.GtOrEq{"booking_date": domain.DateKey(from)}).
		Where(squirrel.LtOrEq{"booking_date": domain.DateKey(to)}).
		Where(squirrel.Eq{"status": statusStrings(statuses)}).
		Where(squirrel.Eq{"time_slot": slots}).
		GroupBy("booking_date").
		Having("COUNT(DISTINCT time_slot) = ?", len(slots)).
		OrderBy("booking_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FullyBookedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FullyBookedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("%w: FullyBookedDates - scan date: %v", ErrScanRow, err)
		}
		dates = append(dates, domain.NormalizeDate(date))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FullyBookedDates - rows iteration: %v", ErrScanRow, err)
	}

	return dates, nil
}

// Вспомогательные функции

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking domain.Booking
		note    sql.NullString
	)

	err := row.Scan(
		&booking.ID,
		&booking.Date,
		&booking.TimeSlot,
		&booking.SlotStartMinutes,
		&booking.CustomerName,
		&booking.Address,
		&note,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Date = domain.NormalizeDate(booking.Date)
	if note.Valid {
		booking.Note = &note.String
	}

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows iteration: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
