package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/JoeShih716/go-mem-bank/internal/app/bank/domain"
	"github.com/JoeShih716/go-mem-bank/internal/app/bank/usecase"
)

// sqlCustomerAudit 對應資料庫的 customer_audits 表
type sqlCustomerAudit struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	RefID         []byte `gorm:"column:ref_id;type:binary(16);uniqueIndex"` // 對應 domain.CustomerRecord.RecordID
	CustomerID    int64  `gorm:"index"`
	Name          string
	AccountNumber int64
	AccountType   string `gorm:"size:16"`
	Balance       string `gorm:"size:64"`
	Line          string `gorm:"type:text"`
	CreatedAt     int64
}

func (*sqlCustomerAudit) TableName() string {
	return "customer_audits"
}

// sqlTransactionAudit 對應資料庫的 transaction_audits 表
type sqlTransactionAudit struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	RefID        []byte `gorm:"column:ref_id;type:binary(16);uniqueIndex"` // 對應 domain.TransactionRecord.RecordID
	CustomerID   int64  `gorm:"index"`
	Type         uint8
	Counterparty int64
	Amount       string `gorm:"size:64"`
	Line         string `gorm:"type:text"`
	CreatedAt    int64
}

func (*sqlTransactionAudit) TableName() string {
	return "transaction_audits"
}

// AuditLog 將稽核紀錄寫入 MySQL，只新增不更新
type AuditLog struct {
	db *gorm.DB
}

func NewAuditLog(db *gorm.DB) *AuditLog {
	return &AuditLog{
		db: db,
	}
}

// Migrate 建立或更新稽核資料表
func (a *AuditLog) Migrate(ctx context.Context) error {
	return a.db.WithContext(ctx).AutoMigrate(&sqlCustomerAudit{}, &sqlTransactionAudit{})
}

// RecordCustomer 寫入開戶紀錄
func (a *AuditLog) RecordCustomer(ctx context.Context, record *domain.CustomerRecord) error {
	row := sqlCustomerAudit{
		RefID:         record.RecordID[:],
		CustomerID:    record.CustomerID,
		Name:          record.Name,
		AccountNumber: record.AccountNumber,
		AccountType:   record.AccountKind.String(),
		Balance:       record.Balance.String(),
		Line:          record.Line(),
		CreatedAt:     record.CreatedAt,
	}
	if err := a.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert customer audit: %w", err)
	}
	return nil
}

// RecordTransaction 寫入交易紀錄
func (a *AuditLog) RecordTransaction(ctx context.Context, record *domain.TransactionRecord) error {
	row := sqlTransactionAudit{
		RefID:        record.RecordID[:],
		CustomerID:   record.CustomerID,
		Type:         uint8(record.Type),
		Counterparty: record.Counterparty,
		Amount:       record.Amount.String(),
		Line:         record.Line(),
		CreatedAt:    record.CreatedAt,
	}
	if err := a.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert transaction audit: %w", err)
	}
	return nil
}

var _ usecase.AuditLog = (*AuditLog)(nil)
