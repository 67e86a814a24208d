package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/JoeShih716/go-mem-bank/internal/app/bank/domain"
)

// DefaultFirstAccountNumber 第一個帳號
const DefaultFirstAccountNumber int64 = 1000

// TransferGuard 決定轉帳前的餘額檢查方式
type TransferGuard string

const (
	// TransferGuardCompat 只比較轉出方原始餘額 >= 金額，不考慮手續費
	// 檢查通過但轉出方提款被拒時，轉入方仍會入帳 (與既有紀錄相容)
	TransferGuardCompat TransferGuard = "compat"
	// TransferGuardStrict 以轉出方帳戶自己的提款規則檢查 (含手續費)
	TransferGuardStrict TransferGuard = "strict"
)

// Options 帳本設定
type Options struct {
	FirstAccountNumber int64
	TransferGuard      TransferGuard
}

// Outcome 單次操作的結果
type Outcome struct {
	// Customer: 主要客戶 (轉帳時為轉出方)
	Customer *domain.Customer
	// Counterparty: 轉帳時的轉入方
	Counterparty *domain.Customer
	// SourceRejected: 相容模式下轉帳檢查通過，但轉出方提款仍被拒
	SourceRejected bool
	// AuditErr: 稽核紀錄寫入失敗 (包裝 domain.ErrAuditUnavailable)，帳務變更不回滾
	AuditErr error
}

// Bank 是帳本核心業務邏輯層
//
// 單一執行緒使用，不做任何鎖定
type Bank struct {
	customers         CustomerRepository
	audit             AuditLog
	logger            *zap.Logger
	nextAccountNumber int64
	transferGuard     TransferGuard
	now               func() time.Time
}

// NewBank 建立帳本
//
// 參數:
//
//	customers: 客戶名冊
//	audit: 稽核紀錄輸出
//	logger: 日誌
//	opts: 帳本設定，零值使用預設
func NewBank(customers CustomerRepository, audit AuditLog, logger *zap.Logger, opts Options) *Bank {
	if opts.FirstAccountNumber == 0 {
		opts.FirstAccountNumber = DefaultFirstAccountNumber
	}
	if opts.TransferGuard == "" {
		opts.TransferGuard = TransferGuardCompat
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bank{
		customers:         customers,
		audit:             audit,
		logger:            logger,
		nextAccountNumber: opts.FirstAccountNumber,
		transferGuard:     opts.TransferGuard,
		now:               time.Now,
	}
}

// AddCustomer 開戶
//
// 初始存款直接作為餘額，不套用利息或手續費。一律成功；
// 稽核失敗只反映在 Outcome.AuditErr
func (b *Bank) AddCustomer(ctx context.Context, name string, kind domain.AccountKind, initialDeposit decimal.Decimal) Outcome {
	number := b.nextAccountNumber
	b.nextAccountNumber++

	account := domain.NewAccount(kind, number, initialDeposit)
	customer := domain.NewCustomer(int64(b.customers.Count()+1), name, account)
	b.customers.Add(customer)

	b.logger.Info("customer created",
		zap.Int64("customer_id", customer.ID),
		zap.Int64("account_number", number),
		zap.Stringer("kind", kind),
	)

	record := &domain.CustomerRecord{
		RecordID:      uuid.New(),
		CustomerID:    customer.ID,
		Name:          name,
		AccountNumber: number,
		AccountKind:   kind,
		Balance:       account.Balance(),
		CreatedAt:     b.now().UnixMilli(),
	}
	outcome := Outcome{Customer: customer}
	if err := b.audit.RecordCustomer(ctx, record); err != nil {
		outcome.AuditErr = b.auditFailed(err, customer.ID)
	}
	return outcome
}

// FindCustomer 依客戶 ID 查詢
func (b *Bank) FindCustomer(id int64) (*domain.Customer, bool) {
	return b.customers.Find(id)
}

// Customers 依建立順序回傳所有客戶
func (b *Bank) Customers() []*domain.Customer {
	return b.customers.List()
}

// Deposit 存款，稽核紀錄的金額為要求的原始金額
func (b *Bank) Deposit(ctx context.Context, id int64, amount decimal.Decimal) (Outcome, error) {
	customer, ok := b.customers.Find(id)
	if !ok {
		return Outcome{}, fmt.Errorf("deposit to customer %d: %w", id, domain.ErrCustomerNotFound)
	}
	customer.Account.Deposit(amount)

	outcome := Outcome{Customer: customer}
	outcome.AuditErr = b.recordTransactions(ctx, b.transaction(id, domain.TransactionTypeDeposit, 0, amount))
	return outcome, nil
}

// Withdraw 提款
//
// 不論提款是否因餘額不足被拒，都會寫入 Withdraw 稽核紀錄
func (b *Bank) Withdraw(ctx context.Context, id int64, amount decimal.Decimal) (Outcome, error) {
	customer, ok := b.customers.Find(id)
	if !ok {
		return Outcome{}, fmt.Errorf("withdraw from customer %d: %w", id, domain.ErrCustomerNotFound)
	}
	withdrawErr := customer.Account.Withdraw(amount)

	outcome := Outcome{Customer: customer}
	outcome.AuditErr = b.recordTransactions(ctx, b.transaction(id, domain.TransactionTypeWithdraw, 0, amount))
	if withdrawErr != nil {
		return outcome, fmt.Errorf("withdraw from customer %d: %w", id, withdrawErr)
	}
	return outcome, nil
}

// Transfer 轉帳
//
// 任一客戶不存在或檢查未通過時不做任何變更。
// 檢查通過後轉出方提款、轉入方存款，各自套用自己帳戶的規則
func (b *Bank) Transfer(ctx context.Context, fromID, toID int64, amount decimal.Decimal) (Outcome, error) {
	from, okFrom := b.customers.Find(fromID)
	to, okTo := b.customers.Find(toID)
	if !okFrom || !okTo {
		return Outcome{}, fmt.Errorf("transfer %d -> %d: one or both customers not found: %w", fromID, toID, domain.ErrCustomerNotFound)
	}
	if !b.canTransfer(from.Account, amount) {
		return Outcome{}, fmt.Errorf("transfer %d -> %d: %w", fromID, toID, domain.ErrInsufficientFunds)
	}

	outcome := Outcome{Customer: from, Counterparty: to}
	if err := from.Account.Withdraw(amount); err != nil {
		// 只有相容模式會走到這裡：原始餘額夠但不夠付手續費
		outcome.SourceRejected = true
		b.logger.Warn("transfer source withdraw rejected after guard passed",
			zap.Int64("from", fromID),
			zap.Int64("to", toID),
			zap.String("amount", amount.String()),
			zap.Error(err),
		)
	}
	to.Account.Deposit(amount)

	outcome.AuditErr = b.recordTransactions(ctx,
		b.transaction(fromID, domain.TransactionTypeTransferOut, toID, amount),
		b.transaction(toID, domain.TransactionTypeTransferIn, fromID, amount),
	)
	return outcome, nil
}

// canTransfer 依設定的檢查方式判斷轉出方是否足以轉帳
func (b *Bank) canTransfer(account domain.Account, amount decimal.Decimal) bool {
	if b.transferGuard == TransferGuardStrict {
		return account.CanWithdraw(amount)
	}
	return account.Balance().GreaterThanOrEqual(amount)
}

func (b *Bank) transaction(customerID int64, txType domain.TransactionType, counterparty int64, amount decimal.Decimal) *domain.TransactionRecord {
	return &domain.TransactionRecord{
		RecordID:     uuid.New(),
		CustomerID:   customerID,
		Type:         txType,
		Counterparty: counterparty,
		Amount:       amount,
		CreatedAt:    b.now().UnixMilli(),
	}
}

// recordTransactions 依序寫入交易紀錄，失敗不中斷後續紀錄
func (b *Bank) recordTransactions(ctx context.Context, records ...*domain.TransactionRecord) error {
	var errs []error
	for _, r := range records {
		if err := b.audit.RecordTransaction(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return b.auditFailed(errors.Join(errs...), records[0].CustomerID)
}

func (b *Bank) auditFailed(err error, customerID int64) error {
	b.logger.Warn("audit record not written", zap.Int64("customer_id", customerID), zap.Error(err))
	return fmt.Errorf("%w: %w", domain.ErrAuditUnavailable, err)
}
