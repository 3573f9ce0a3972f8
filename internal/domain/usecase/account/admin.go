package account

import (
	"context"
	"strings"

	"github.com/auctionhub/currency-service/internal/domain/port/persistence"
	"github.com/auctionhub/currency-service/internal/domain/port/usecase"
)

// AdminListUsers lists users, optionally filtered by suspension and searched by username or email
func (s *Service) AdminListUsers(ctx context.Context, filter usecase.AdminUserFilter) (*usecase.UserPage, error) {
	page, pageSize := usecase.NormalizePage(filter.Page, filter.PageSize, s.maxPageSize)

	items, count, err := s.uow.GetUserRepository(ctx).List(ctx, persistence.UserQuery{
		Search:    strings.TrimSpace(filter.Search),
		Suspended: filter.Suspended,
		Offset:    usecase.Offset(page, pageSize),
		Limit:     pageSize,
	})
	if err != nil {
		return nil, err
	}

	return &usecase.UserPage{Items: items, Count: count, Page: page, PageSize: pageSize}, nil
}

// AdminListProfiles lists profiles, optionally filtered by level and searched by username
func (s *Service) AdminListProfiles(ctx context.Context, filter usecase.AdminProfileFilter) (*usecase.ProfilePage, error) {
	page, pageSize := usecase.NormalizePage(filter.Page, filter.PageSize, s.maxPageSize)

	items, count, err := s.uow.GetProfileRepository(ctx).List(ctx, persistence.ProfileQuery{
		Search: strings.TrimSpace(filter.Search),
		Level:  filter.Level,
		Offset: usecase.Offset(page, pageSize),
		Limit:  pageSize,
	})
	if err != nil {
		return nil, err
	}

	return &usecase.ProfilePage{Items: items, Count: count, Page: page, PageSize: pageSize}, nil
}
