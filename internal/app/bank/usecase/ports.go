package usecase

import (
	"context"

	"github.com/JoeShih716/go-mem-bank/internal/app/bank/domain"
)

// CustomerRepository 是客戶名冊的介面
type CustomerRepository interface {
	// Add 加入客戶，呼叫端保證 ID 不重複
	Add(customer *domain.Customer)
	// Find 依客戶 ID 查詢，找不到回傳 false
	Find(id int64) (*domain.Customer, bool)
	// List 依建立順序回傳所有客戶
	List() []*domain.Customer
	// Count 客戶數量
	Count() int
}

// AuditLog 是稽核紀錄的輸出介面 (只新增，不讀回帳本)
type AuditLog interface {
	RecordCustomer(ctx context.Context, record *domain.CustomerRecord) error
	RecordTransaction(ctx context.Context, record *domain.TransactionRecord) error
}
