package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountKind 帳戶類型，建立後不可變更
type AccountKind uint8

const (
	// 儲蓄帳戶
	AccountKindSavings AccountKind = 1
	// 支票帳戶
	AccountKindChecking AccountKind = 2
)

func (k AccountKind) String() string {
	switch k {
	case AccountKindSavings:
		return "Savings"
	case AccountKindChecking:
		return "Checking"
	default:
		return fmt.Sprintf("AccountKind(%d)", uint8(k))
	}
}

// ParseAccountKind 解析使用者輸入的帳戶類型
// 不分大小寫比對 "Savings"，其餘一律視為 Checking
func ParseAccountKind(s string) AccountKind {
	if strings.EqualFold(strings.TrimSpace(s), AccountKindSavings.String()) {
		return AccountKindSavings
	}
	return AccountKindChecking
}

// Account 是帳戶的共同能力，存提款規則由各類型自行決定
//
// 餘額只能透過 Deposit / Withdraw 變動；金額正負不做檢查，由呼叫端負責
type Account interface {
	Number() int64
	Balance() decimal.Decimal
	Kind() AccountKind
	// Deposit 依帳戶規則存款
	Deposit(amount decimal.Decimal)
	// Withdraw 依帳戶規則提款，餘額不足時回傳 ErrInsufficientFunds 且餘額不變
	Withdraw(amount decimal.Decimal) error
	// CanWithdraw 回傳 Withdraw(amount) 是否會成功
	CanWithdraw(amount decimal.Decimal) bool
	// Describe 回傳帳戶明細 (帳號與餘額)
	Describe() string
}

// NewAccount 依類型建立帳戶，初始餘額直接寫入不套用存款規則
func NewAccount(kind AccountKind, number int64, balance decimal.Decimal) Account {
	if kind == AccountKindSavings {
		return NewSavingsAccount(number, balance)
	}
	return NewCheckingAccount(number, balance)
}

type baseAccount struct {
	number  int64
	balance decimal.Decimal
}

func (a *baseAccount) Number() int64 {
	return a.number
}

func (a *baseAccount) Balance() decimal.Decimal {
	return a.balance
}

func (a *baseAccount) describe(kind AccountKind) string {
	return fmt.Sprintf("%s Account Number: %d\nBalance: $%s", kind, a.number, FormatAmount(a.balance))
}

// SavingsAccount 儲蓄帳戶：存款加碼 5%，提款無手續費
type SavingsAccount struct {
	baseAccount
}

func NewSavingsAccount(number int64, balance decimal.Decimal) *SavingsAccount {
	return &SavingsAccount{
		baseAccount: baseAccount{number: number, balance: balance},
	}
}

func (a *SavingsAccount) Kind() AccountKind {
	return AccountKindSavings
}

// Deposit 加碼只依存入金額計算，與現有餘額無關
func (a *SavingsAccount) Deposit(amount decimal.Decimal) {
	a.balance = a.balance.Add(amount).Add(amount.Mul(SavingsInterestRate))
}

func (a *SavingsAccount) CanWithdraw(amount decimal.Decimal) bool {
	return amount.LessThanOrEqual(a.balance)
}

func (a *SavingsAccount) Withdraw(amount decimal.Decimal) error {
	if !a.CanWithdraw(amount) {
		return ErrInsufficientFunds
	}
	a.balance = a.balance.Sub(amount)
	return nil
}

func (a *SavingsAccount) Describe() string {
	return a.describe(AccountKindSavings)
}

// CheckingAccount 支票帳戶：每筆存款與提款都收取固定手續費
type CheckingAccount struct {
	baseAccount
}

func NewCheckingAccount(number int64, balance decimal.Decimal) *CheckingAccount {
	return &CheckingAccount{
		baseAccount: baseAccount{number: number, balance: balance},
	}
}

func (a *CheckingAccount) Kind() AccountKind {
	return AccountKindChecking
}

// Deposit 即使存款金額小於手續費也照扣，餘額可能因此減少
func (a *CheckingAccount) Deposit(amount decimal.Decimal) {
	a.balance = a.balance.Add(amount).Sub(CheckingTransactionFee)
}

func (a *CheckingAccount) CanWithdraw(amount decimal.Decimal) bool {
	return amount.Add(CheckingTransactionFee).LessThanOrEqual(a.balance)
}

func (a *CheckingAccount) Withdraw(amount decimal.Decimal) error {
	if !a.CanWithdraw(amount) {
		return ErrInsufficientFunds
	}
	a.balance = a.balance.Sub(amount.Add(CheckingTransactionFee))
	return nil
}

func (a *CheckingAccount) Describe() string {
	return a.describe(AccountKindChecking)
}

var (
	_ Account = (*SavingsAccount)(nil)
	_ Account = (*CheckingAccount)(nil)
)
