package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JoeShih716/go-mem-bank/internal/app/bank/domain"
	"github.com/JoeShih716/go-mem-bank/internal/app/bank/usecase"
	"github.com/JoeShih716/go-mem-bank/pkg/appendlog"
)

const (
	// DefaultCustomersFile 開戶紀錄檔名
	DefaultCustomersFile = "customers.txt"
	// DefaultTransactionsFile 交易紀錄檔名
	DefaultTransactionsFile = "transactions.txt"
)

// AuditLog 以純文字檔保存稽核紀錄，一筆一行
type AuditLog struct {
	customersPath    string
	transactionsPath string
}

// NewAuditLog 建立文字檔稽核紀錄
//
// 參數:
//
//	dir: 紀錄檔所在目錄，不存在時會建立
//	customersFile, transactionsFile: 檔名，空字串使用預設
func NewAuditLog(dir, customersFile, transactionsFile string) (*AuditLog, error) {
	if customersFile == "" {
		customersFile = DefaultCustomersFile
	}
	if transactionsFile == "" {
		transactionsFile = DefaultTransactionsFile
	}
	if dir != "" {
		if err := os.MkdirAll(dir, appendlog.FileModeDir); err != nil {
			return nil, fmt.Errorf("create audit dir: %w", err)
		}
	}
	return &AuditLog{
		customersPath:    filepath.Join(dir, customersFile),
		transactionsPath: filepath.Join(dir, transactionsFile),
	}, nil
}

func (a *AuditLog) CustomersPath() string {
	return a.customersPath
}

func (a *AuditLog) TransactionsPath() string {
	return a.transactionsPath
}

func (a *AuditLog) RecordCustomer(_ context.Context, record *domain.CustomerRecord) error {
	if err := appendlog.Append(a.customersPath, record.Line()); err != nil {
		return fmt.Errorf("append %s: %w", a.customersPath, err)
	}
	return nil
}

func (a *AuditLog) RecordTransaction(_ context.Context, record *domain.TransactionRecord) error {
	if err := appendlog.Append(a.transactionsPath, record.Line()); err != nil {
		return fmt.Errorf("append %s: %w", a.transactionsPath, err)
	}
	return nil
}

var _ usecase.AuditLog = (*AuditLog)(nil)
