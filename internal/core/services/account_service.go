package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/westbrown1/ripple/internal/core/domain"
	portsrepo "github.com/westbrown1/ripple/internal/core/ports/repositories"
	portssvc "github.com/westbrown1/ripple/internal/core/ports/services"
	"github.com/westbrown1/ripple/internal/dto"
	"github.com/westbrown1/ripple/internal/schema"
)

// accountService provides business logic for accounts. The limit fields it
// forwards are versioned: the store turns them into version rotations, the
// service only decides which fields the caller actually supplied.
type accountService struct {
	store portsrepo.RecordStore
}

// NewAccountService creates a new account service backed by the given store.
func NewAccountService(store portsrepo.RecordStore) portssvc.AccountSvcFacade {
	return &accountService{store: store}
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	fields := schema.Record{"name": req.Name}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if req.Balance != nil {
		fields["balance"] = *req.Balance
	}
	if req.Relationship != nil {
		fields["relationship"] = *req.Relationship
	}
	if req.Node != nil {
		fields["node"] = *req.Node
	}
	applyLimitFields(fields, req.UpperLimit, req.LowerLimit, req.LimitsEffectiveTime, req.LimitsExpiryTime)

	rec, err := s.store.Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create account in service: %w", err)
	}
	acct := recordToAccount(rec)
	return &acct, nil
}

func (s *accountService) GetAccount(ctx context.Context, name string) (*domain.Account, error) {
	rec, err := s.store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get account in service: %w", err)
	}
	acct := recordToAccount(rec)
	return &acct, nil
}

func (s *accountService) ListAccounts(ctx context.Context, req dto.ListAccountsRequest) ([]domain.Account, error) {
	criteria := schema.Record{}
	if req.Relationship != nil {
		criteria["relationship"] = *req.Relationship
	}
	if req.Node != nil {
		criteria["node"] = *req.Node
	}
	if req.IsActive != nil {
		criteria["is_active"] = *req.IsActive
	}
	recs, err := s.store.Filter(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts in service: %w", err)
	}
	accts := make([]domain.Account, len(recs))
	for i, rec := range recs {
		accts[i] = recordToAccount(rec)
	}
	return accts, nil
}

func (s *accountService) ListAccountLimits(ctx context.Context, name string) ([]domain.Version, error) {
	versions, err := s.store.VersionHistory(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to list account limits in service: %w", err)
	}
	return versionsToDomain(versions), nil
}

func (s *accountService) UpdateAccount(ctx context.Context, name string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	changes := schema.Record{}
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.IsActive != nil {
		changes["is_active"] = *req.IsActive
	}
	if req.Balance != nil {
		changes["balance"] = *req.Balance
	}
	if req.Relationship != nil {
		changes["relationship"] = *req.Relationship
	}
	if req.Node != nil {
		changes["node"] = *req.Node
	}
	applyLimitFields(changes, req.UpperLimit, req.LowerLimit, req.LimitsEffectiveTime, req.LimitsExpiryTime)

	rec, err := s.store.Update(ctx, []string{name}, changes)
	if err != nil {
		return nil, fmt.Errorf("failed to update account in service: %w", err)
	}
	acct := recordToAccount(rec)
	return &acct, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, name string) error {
	if err := s.store.Delete(ctx, name); err != nil {
		return fmt.Errorf("failed to delete account in service: %w", err)
	}
	return nil
}

// applyLimitFields copies the supplied limit fields into the record. Any one
// of them is enough to make the store rotate the limit version.
func applyLimitFields(fields schema.Record, upper, lower *decimal.Decimal, effective, expiry *time.Time) {
	if upper != nil {
		fields["upper_limit"] = *upper
	}
	if lower != nil {
		fields["lower_limit"] = *lower
	}
	if effective != nil {
		fields["limits_effective_time"] = *effective
	}
	if expiry != nil {
		fields["limits_expiry_time"] = *expiry
	}
}
