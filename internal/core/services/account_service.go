package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dayatwork/sismo-v2-sub002/internal/apperrors"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	portsrepo "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/repositories"
	portssvc "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/services"
	"github.com/dayatwork/sismo-v2-sub002/internal/dto"
	"github.com/dayatwork/sismo-v2-sub002/internal/utils/accounting"
)

// accountService implements the AccountSvcFacade.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	lineReader  portsrepo.EntryLineReader
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAuthorizer adds the authorizer dependency
func WithAuthorizer(authorizer portssvc.AuthorizerSvc) AccountServiceOption {
	return func(s *accountService) {
		s.Authorizer = authorizer
	}
}

// WithEntryLineReader adds the entry line reader used by the balance calculator
func WithEntryLineReader(reader portsrepo.EntryLineReader) AccountServiceOption {
	return func(s *accountService) {
		s.lineReader = reader
	}
}

// NewAccountService creates a new account service with the provided options.
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account. The normal balance side is derived
// from the account type, never taken from the request.
func (s *accountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, organizationID, userID, domain.ManageFinance); err != nil {
		s.LogError(ctx, err, "User not authorized to create account",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	normalBalance := req.AccountType.NormalBalance()
	if normalBalance == "" {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, string(req.AccountType))
	}

	parentID := ""
	if req.ParentAccountID != nil {
		parentID = *req.ParentAccountID
		parentAccount, err := s.accountRepo.FindAccountByID(ctx, parentID)
		if err != nil {
			s.LogError(ctx, err, "Failed to find parent account", slog.String("parent_id", parentID))
			return nil, fmt.Errorf("invalid parent account: %w", err)
		}
		if parentAccount.OrganizationID != organizationID {
			err := apperrors.ErrValidation
			s.LogError(ctx, err, "Parent account belongs to different organization",
				slog.String("parent_organization", parentAccount.OrganizationID),
				slog.String("requested_organization", organizationID))
			return nil, fmt.Errorf("parent account belongs to different organization: %w", err)
		}
	}

	now := time.Now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		OrganizationID:  organizationID,
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		NormalBalance:   normalBalance,
		CurrencyCode:    req.CurrencyCode,
		ParentAccountID: parentID,
		Description:     req.Description,
		IsActive:        true,
		OpeningBalance:  req.OpeningBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account code %s already in use", apperrors.ErrDuplicate, req.Code)
		}
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("organization_id", organizationID))
	return &account, nil
}

// findAccountInOrganization fetches an account and verifies it belongs to the
// organization. Callers are expected to have authorized the user already.
func (s *accountService) findAccountInOrganization(ctx context.Context, organizationID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}

	if account.OrganizationID != organizationID {
		// Obscure existence from other organizations.
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// GetAccountByID retrieves a specific account by its unique identifier.
func (s *accountService) GetAccountByID(ctx context.Context, organizationID string, accountID string, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, organizationID, userID, domain.ManageFinance); err != nil {
		return nil, err
	}
	return s.findAccountInOrganization(ctx, organizationID, accountID)
}

// GetAccountsByIDs retrieves multiple accounts by their IDs.
func (s *accountService) GetAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string, userID string) (map[string]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, organizationID, userID, domain.ManageFinance); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts by IDs")
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}

	// Drop anything outside the caller's organization.
	for id, account := range accounts {
		if account.OrganizationID != organizationID {
			delete(accounts, id)
		}
	}
	return accounts, nil
}

// ListAccounts retrieves a paginated list of accounts for an organization.
func (s *accountService) ListAccounts(ctx context.Context, organizationID string, limit int, offset int, userID string) ([]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, organizationID, userID, domain.ManageFinance); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, organizationID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

// UpdateAccount updates an existing account's details. Account type and its
// derived normal balance are immutable here; a miscreated account gets
// deactivated and recreated instead.
func (s *accountService) UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, organizationID, userID, domain.ManageFinance); err != nil {
		return nil, err
	}

	account, err := s.findAccountInOrganization(ctx, organizationID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount marks an account as inactive.
func (s *accountService) DeactivateAccount(ctx context.Context, organizationID string, accountID string, userID string) error {
	if err := s.AuthorizeUser(ctx, organizationID, userID, domain.ManageFinance); err != nil {
		return err
	}

	if _, err := s.findAccountInOrganization(ctx, organizationID, accountID); err != nil {
		return err
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	s.LogInfo(ctx, "Account deactivated successfully", slog.String("account_id", accountID))
	return nil
}

// GetAccountBalance computes the account's current balance from its opening
// balance and the signed contribution of every entry line, optionally bounded
// by the half-open date range [from, to).
func (s *accountService) GetAccountBalance(ctx context.Context, organizationID string, accountID string, from, to *time.Time, userID string) (*domain.AccountBalance, error) {
	if err := s.AuthorizeUser(ctx, organizationID, userID, domain.ManageFinance); err != nil {
		return nil, err
	}

	account, err := s.findAccountInOrganization(ctx, organizationID, accountID)
	if err != nil {
		return nil, err
	}

	if s.lineReader == nil {
		return nil, fmt.Errorf("balance calculation unavailable: no entry line reader configured")
	}

	lines, err := s.lineReader.ListLinesByAccountID(ctx, organizationID, accountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entry lines for balance calculation",
			slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to load entry lines: %w", err)
	}

	currentBalance, err := accounting.CurrentBalance(account.NormalBalance, account.OpeningBalance, lines)
	if err != nil {
		// Stored data failing the calculator means the write path let
		// something invalid through; surface it loudly.
		s.LogError(ctx, err, "Balance calculation failed on stored lines",
			slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to compute balance for account %s: %w", accountID, err)
	}

	return &domain.AccountBalance{
		AccountID:      account.AccountID,
		NormalBalance:  account.NormalBalance,
		OpeningBalance: account.OpeningBalance,
		CurrentBalance: currentBalance,
		PercentChange:  accounting.PercentChange(account.OpeningBalance, currentBalance),
		LineCount:      len(lines),
	}, nil
}
