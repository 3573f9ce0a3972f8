package currency

import (
	"context"
	"strings"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	errs "github.com/auctionhub/currency-service/internal/domain/error"
	"github.com/auctionhub/currency-service/internal/domain/port/persistence"
	"github.com/auctionhub/currency-service/internal/domain/port/usecase"
)

// AdminListCurrencies lists ledgers, optionally searching by username or email
func (s *Service) AdminListCurrencies(ctx context.Context, filter usecase.AdminCurrencyFilter) (*usecase.CurrencyPage, error) {
	page, pageSize := usecase.NormalizePage(filter.Page, filter.PageSize, s.config.MaxPageSize)

	items, count, err := s.uow.GetCurrencyRepository(ctx).List(ctx, persistence.CurrencyQuery{
		Search: strings.TrimSpace(filter.Search),
		Offset: usecase.Offset(page, pageSize),
		Limit:  pageSize,
	})
	if err != nil {
		return nil, err
	}

	return &usecase.CurrencyPage{Items: items, Count: count, Page: page, PageSize: pageSize}, nil
}

// AdminGetCurrency returns a user's ledger with owner identity; it never creates one
func (s *Service) AdminGetCurrency(ctx context.Context, userID uint64) (*persistence.CurrencyView, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	user, err := s.uow.GetUserRepository(ctx).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ledger, err := s.uow.GetCurrencyRepository(ctx).GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &persistence.CurrencyView{Currency: ledger, Username: user.Username, Email: user.Email}, nil
}

// AdminListTransactions lists transactions across users
func (s *Service) AdminListTransactions(ctx context.Context, filter usecase.AdminTransactionFilter) (*usecase.TransactionPage, error) {
	query, err := buildTransactionQuery(filter.UserID, filter.Type, filter.StartDate, filter.EndDate, filter.Search)
	if err != nil {
		return nil, err
	}
	return s.listTransactions(ctx, query, filter.Page, filter.PageSize)
}

// AdminGetTransaction returns one transaction row
func (s *Service) AdminGetTransaction(ctx context.Context, id uint64) (*entity.CurrencyTransaction, error) {
	if id == 0 {
		return nil, errs.ErrTransactionNotFound
	}
	return s.uow.GetTransactionRepository(ctx).GetByID(ctx, id)
}
