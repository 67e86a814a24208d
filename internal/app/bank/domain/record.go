package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType 交易類型
type TransactionType uint8

const (
	// 存款
	TransactionTypeDeposit TransactionType = 1
	// 提款
	TransactionTypeWithdraw TransactionType = 2
	// 轉出
	TransactionTypeTransferOut TransactionType = 3
	// 轉入
	TransactionTypeTransferIn TransactionType = 4
)

// CustomerRecord 開戶稽核紀錄
type CustomerRecord struct {
	// RecordID: 稽核紀錄追蹤號 (UUID)
	RecordID      uuid.UUID       `json:"record_id"`
	CustomerID    int64           `json:"customer_id"`
	Name          string          `json:"name"`
	AccountNumber int64           `json:"account_number"`
	AccountKind   AccountKind     `json:"account_kind"`
	Balance       decimal.Decimal `json:"balance"`
	// CreatedAt: 紀錄時間 (Unix milli)
	CreatedAt int64 `json:"created_at"`
}

// Line 回傳寫入 customers 紀錄檔的單行文字，格式固定不可更動
func (r *CustomerRecord) Line() string {
	return fmt.Sprintf("Customer ID: %d, Name: %s, Account Number: %d, Account Type: %s, Balance: %s",
		r.CustomerID,
		r.Name,
		r.AccountNumber,
		r.AccountKind,
		FormatAmount(r.Balance),
	)
}

// TransactionRecord 交易稽核紀錄
// Amount 為呼叫端要求的原始金額，不含利息或手續費
type TransactionRecord struct {
	RecordID   uuid.UUID       `json:"record_id"`
	CustomerID int64           `json:"customer_id"`
	Type       TransactionType `json:"type"`
	// Counterparty: 轉帳對手客戶 ID，存提款為 0
	Counterparty int64           `json:"counterparty,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	CreatedAt    int64           `json:"created_at"`
}

// Description 回傳紀錄檔中 Transaction 欄位的文字
func (r *TransactionRecord) Description() string {
	switch r.Type {
	case TransactionTypeDeposit:
		return "Deposit"
	case TransactionTypeWithdraw:
		return "Withdraw"
	case TransactionTypeTransferOut:
		return fmt.Sprintf("Transfer to %d", r.Counterparty)
	case TransactionTypeTransferIn:
		return fmt.Sprintf("Transfer from %d", r.Counterparty)
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(r.Type))
	}
}

// Line 回傳寫入 transactions 紀錄檔的單行文字，格式固定不可更動
func (r *TransactionRecord) Line() string {
	return fmt.Sprintf("Customer ID: %d, Transaction: %s, Amount: $%s",
		r.CustomerID,
		r.Description(),
		FormatAmount(r.Amount),
	)
}
