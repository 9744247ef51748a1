package get_disabled_dates

import (
	"context"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// UseCase use case для получения недоступных для выбора дат
type UseCase struct {
	bookingRepo    BookingRepository
	catalog        *domain.SlotCatalog
	policy         domain.OccupancyPolicy
	maxRangeDays   int
	maxAdvanceDays int
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case.
// policy - статусы, занимающие слот при выборе даты (по умолчанию только booked).
func NewUseCase(
	bookingRepo BookingRepository,
	catalog *domain.SlotCatalog,
	policy domain.OccupancyPolicy,
	maxRangeDays int,
	logger Logger,
) *UseCase {
	if len(policy) == 0 {
		policy = domain.InteractiveOccupancy
	}
	if maxRangeDays <= 0 {
		maxRangeDays = domain.DefaultMaxRangeDays
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		policy:       policy,
		maxRangeDays: maxRangeDays,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithMaxAdvanceDays отключает даты дальше горизонта бронирования (0 - без ограничения)
func (uc *UseCase) WithMaxAdvanceDays(days int) *UseCase {
	uc.maxAdvanceDays = days
	return uc
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case.
// Дата недоступна, если она в прошлом, выходной, дальше горизонта бронирования
// или на ней заняты все слоты.
// Если хранилище недоступно, возвращаются только прошедшие даты и выходные (Degraded).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	from := domain.NormalizeDate(req.From)
	to := domain.NormalizeDate(req.To)

	// 1. Валидация периода
	if err := validateRange(from, to, uc.maxRangeDays); err != nil {
		uc.logger.Warn("GetDisabledDates: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetDisabledDates: from=%s, to=%s", domain.DateKey(from), domain.DateKey(to))

	now := uc.timeProvider.Now()
	resp := &Response{From: from, To: to}

	// 2. Получаем полностью занятые даты из хранилища
	fullyBooked := domain.NewDateSet()
	dates, err := uc.bookingRepo.FullyBookedDates(ctx, from, to, uc.catalog.Labels(), uc.policy)
	if err != nil {
		// 3. Хранилище недоступно - fail open
		uc.logger.Warn("GetDisabledDates: store unavailable, fully booked dates skipped: %v", err)
		resp.Degraded = true
		resp.Warning = DegradedWarning
	} else {
		for _, d := range dates {
			fullyBooked.Add(d)
		}
	}

	// 4. Применяем правила недоступности ко всем датам периода
	disabled := domain.DisabledDates(uc.catalog, domain.DatesBetween(from, to), fullyBooked, now, uc.maxAdvanceDays)

	resp.DisabledDates = make([]DisabledDate, 0, len(disabled))
	for _, d := range disabled {
		resp.DisabledDates = append(resp.DisabledDates, DisabledDate{
			Date:   d.Date,
			Reason: string(d.Reason),
		})
	}

	uc.logger.Info("GetDisabledDates: %d dates disabled, %d fully booked", len(resp.DisabledDates), len(fullyBooked))

	return resp, nil
}
