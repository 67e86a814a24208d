package domain

import "errors"

var (
	// ErrCustomerNotFound 找不到客戶
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrInsufficientFunds 餘額不足
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAuditUnavailable 稽核紀錄寫入失敗 (不影響已完成的帳務變更)
	ErrAuditUnavailable = errors.New("audit log unavailable")
)
