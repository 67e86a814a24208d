package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/JoeShih716/go-mem-bank/internal/app/bank/domain"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestAuditLog_RecordCustomer(t *testing.T) {
	db, mock := newMockDB(t)
	audit := NewAuditLog(db)

	mock.ExpectExec("INSERT INTO `customer_audits`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := audit.RecordCustomer(context.Background(), &domain.CustomerRecord{
		RecordID:      uuid.New(),
		CustomerID:    1,
		Name:          "Alice",
		AccountNumber: 1000,
		AccountKind:   domain.AccountKindSavings,
		Balance:       decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLog_RecordTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	audit := NewAuditLog(db)

	mock.ExpectExec("INSERT INTO `transaction_audits`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := audit.RecordTransaction(context.Background(), &domain.TransactionRecord{
		RecordID:     uuid.New(),
		CustomerID:   1,
		Type:         domain.TransactionTypeTransferOut,
		Counterparty: 2,
		Amount:       decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLog_InsertError(t *testing.T) {
	db, mock := newMockDB(t)
	audit := NewAuditLog(db)

	mock.ExpectExec("INSERT INTO `transaction_audits`").
		WillReturnError(errors.New("connection refused"))

	err := audit.RecordTransaction(context.Background(), &domain.TransactionRecord{
		RecordID:   uuid.New(),
		CustomerID: 1,
		Type:       domain.TransactionTypeDeposit,
		Amount:     decimal.NewFromInt(10),
	})
	assert.ErrorContains(t, err, "insert transaction audit")
	assert.NoError(t, mock.ExpectationsWereMet())
}
