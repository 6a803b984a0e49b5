package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prashsamosa/web-analytics-service/internal/analytics/core/domain"
	"github.com/prashsamosa/web-analytics-service/internal/analytics/core/ports"
	events "github.com/prashsamosa/web-analytics-service/internal/events/core/domain"
)

var (
	ErrInvalidEventType = errors.New("invalid event_type, must be one of: view, click, location")
	ErrInvalidDate      = errors.New("invalid date, expected YYYY-MM-DD")
)

const dateLayout = "2006-01-02"

type GetCountsUseCase struct {
	reader ports.AnalyticsReaderPort
}

func NewGetCountsUseCase(reader ports.AnalyticsReaderPort) *GetCountsUseCase {
	return &GetCountsUseCase{reader: reader}
}

type TotalCountInput struct {
	EventType *string
	StartDate *string
	EndDate   *string
}

// GetTotalCount validates the filters, expands calendar dates to a closed
// UTC interval and delegates to the reader.
func (uc *GetCountsUseCase) GetTotalCount(ctx context.Context, in TotalCountInput) (int64, error) {

	var eventType *events.EventType
	if in.EventType != nil {
		parsed, err := events.ParseEventType(*in.EventType)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidEventType, *in.EventType)
		}
		eventType = &parsed
	}

	start, end, err := parseWindow(in.StartDate, in.EndDate)
	if err != nil {
		return 0, err
	}

	return uc.reader.CountEvents(ctx, ports.CountFilter{
		EventType: eventType,
		Start:     start,
		End:       end,
	})
}

type CountsByTypeInput struct {
	StartDate *string
	EndDate   *string
}

// GetCountsByType returns per-type counts for the window, always carrying
// all three type keys. The raw store result may omit zero-count types;
// the merge into a zero-filled TypeCounts is explicit here.
func (uc *GetCountsUseCase) GetCountsByType(ctx context.Context, in CountsByTypeInput) (domain.TypeCounts, error) {

	start, end, err := parseWindow(in.StartDate, in.EndDate)
	if err != nil {
		return domain.TypeCounts{}, err
	}

	raw, err := uc.reader.CountEventsByType(ctx, start, end)
	if err != nil {
		return domain.TypeCounts{}, err
	}

	return domain.MergeTypeCounts(raw), nil
}

// parseWindow expands date-only bounds to the full days they denote: the
// start date maps to 00:00:00.000000, the end date to 23:59:59.999999,
// both inclusive. Getting this wrong silently drops boundary events.
func parseWindow(startDate, endDate *string) (start, end *time.Time, err error) {
	if startDate != nil {
		d, perr := time.Parse(dateLayout, *startDate)
		if perr != nil {
			return nil, nil, fmt.Errorf("%w: start_date %q", ErrInvalidDate, *startDate)
		}
		s := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		start = &s
	}

	if endDate != nil {
		d, perr := time.Parse(dateLayout, *endDate)
		if perr != nil {
			return nil, nil, fmt.Errorf("%w: end_date %q", ErrInvalidDate, *endDate)
		}
		e := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 999999000, time.UTC)
		end = &e
	}

	return start, end, nil
}
