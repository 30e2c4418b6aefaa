package partner

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/invoicemgr/backend/internal/domain/partner"
	"github.com/invoicemgr/backend/internal/domain/shared"
)

// BankAccountService handles bank account master data operations
type BankAccountService struct {
	accountRepo partner.BankAccountRepository
	logger      *zap.Logger
}

// NewBankAccountService creates a new BankAccountService
func NewBankAccountService(accountRepo partner.BankAccountRepository, logger *zap.Logger) *BankAccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BankAccountService{
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// Create creates a new bank account
func (s *BankAccountService) Create(ctx context.Context, req CreateBankAccountRequest) (*BankAccountResponse, error) {
	account, err := partner.NewBankAccount(req.BankName, req.AccountNumber, req.AccountName)
	if err != nil {
		return nil, err
	}
	if req.IsDefault {
		account.MarkDefault()
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	response := ToBankAccountResponse(account)
	return &response, nil
}

// List returns all active bank accounts
func (s *BankAccountService) List(ctx context.Context) ([]BankAccountResponse, error) {
	accounts, err := s.accountRepo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]BankAccountResponse, 0, len(accounts))
	for idx := range accounts {
		responses = append(responses, ToBankAccountResponse(&accounts[idx]))
	}
	return responses, nil
}

// SetDefault marks an account as the default for new invoices
func (s *BankAccountService) SetDefault(ctx context.Context, id uuid.UUID) error {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if account == nil {
		return shared.ErrNotFound
	}
	account.MarkDefault()
	return s.accountRepo.Save(ctx, account)
}

// Delete removes a bank account
func (s *BankAccountService) Delete(ctx context.Context, id uuid.UUID) error {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if account == nil {
		return shared.ErrNotFound
	}
	return s.accountRepo.Delete(ctx, id)
}
