package usecase

import (
	"context"
	"errors"

	"github.com/JoeShih716/go-mem-bank/internal/app/bank/domain"
)

// TeeAuditLog 將稽核紀錄同時寫入多個後端
// 單一後端失敗不會中斷其他後端，錯誤以 errors.Join 合併回傳
type TeeAuditLog struct {
	logs []AuditLog
}

func NewTeeAuditLog(logs ...AuditLog) *TeeAuditLog {
	return &TeeAuditLog{logs: logs}
}

func (t *TeeAuditLog) RecordCustomer(ctx context.Context, record *domain.CustomerRecord) error {
	var errs []error
	for _, l := range t.logs {
		if err := l.RecordCustomer(ctx, record); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *TeeAuditLog) RecordTransaction(ctx context.Context, record *domain.TransactionRecord) error {
	var errs []error
	for _, l := range t.logs {
		if err := l.RecordTransaction(ctx, record); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ AuditLog = (*TeeAuditLog)(nil)
