package currency

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	errs "github.com/auctionhub/currency-service/internal/domain/error"
	"github.com/auctionhub/currency-service/internal/domain/port/persistence"
	"github.com/auctionhub/currency-service/internal/domain/port/usecase"
)

const dateOnlyLayout = "2006-01-02"

// ListTransactions returns a page of the user's own history, newest first
func (s *Service) ListTransactions(ctx context.Context, filter usecase.TransactionFilter) (*usecase.TransactionPage, error) {
	if filter.UserID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	query, err := buildTransactionQuery(filter.UserID, filter.Type, filter.StartDate, filter.EndDate, "")
	if err != nil {
		return nil, err
	}

	return s.listTransactions(ctx, query, filter.Page, filter.PageSize)
}

func (s *Service) listTransactions(ctx context.Context, query persistence.TransactionQuery, page, pageSize int) (*usecase.TransactionPage, error) {
	page, pageSize = usecase.NormalizePage(page, pageSize, s.config.MaxPageSize)
	query.Offset = usecase.Offset(page, pageSize)
	query.Limit = pageSize

	items, count, err := s.uow.GetTransactionRepository(ctx).List(ctx, query)
	if err != nil {
		s.logger.Error("Failed to list transactions", map[string]any{
			"user_id": query.UserID,
			"error":   err.Error(),
		})
		return nil, err
	}

	return &usecase.TransactionPage{
		Items:    items,
		Count:    count,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func buildTransactionQuery(userID uint64, txType, startDate, endDate, search string) (persistence.TransactionQuery, error) {
	query := persistence.TransactionQuery{
		UserID: userID,
		Search: strings.TrimSpace(search),
	}

	if strings.TrimSpace(txType) != "" {
		parsed, err := entity.ParseTransactionType(txType)
		if err != nil {
			return query, err
		}
		query.Type = parsed
	}

	from, err := ParseDateBound(startDate, false)
	if err != nil {
		return query, err
	}
	to, err := ParseDateBound(endDate, true)
	if err != nil {
		return query, err
	}
	if from != nil && to != nil && !from.Before(*to) {
		return query, fmt.Errorf("%w: start_date is after end_date", errs.ErrInvalidDateRange)
	}

	query.From = from
	query.To = to
	return query, nil
}

// ParseDateBound parses an RFC3339 timestamp or a YYYY-MM-DD date in UTC.
// End bounds are exclusive: a bare date yields the next midnight so the whole
// day is covered, a timestamp yields the instant right after it. Empty input yields nil.
func ParseDateBound(value string, end bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		t = t.UTC()
		if end {
			t = t.Add(time.Nanosecond)
		}
		return &t, nil
	}

	day, err := time.Parse(dateOnlyLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is neither RFC3339 nor YYYY-MM-DD", errs.ErrInvalidDateRange, value)
	}
	if end {
		day = day.AddDate(0, 0, 1)
	}
	return &day, nil
}
