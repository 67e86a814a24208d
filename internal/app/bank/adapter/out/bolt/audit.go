package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/JoeShih716/go-mem-bank/internal/app/bank/domain"
	"github.com/JoeShih716/go-mem-bank/internal/app/bank/usecase"
)

// Bucket names.
const (
	BucketCustomers    = "customers"
	BucketTransactions = "transactions"
)

// AuditLog stores audit records in an embedded bbolt file.
// Keys are the bucket sequence (big-endian uint64) so iteration follows write order.
type AuditLog struct {
	db *bolt.DB
}

// Open opens (or creates) the bolt file and initializes buckets.
func Open(path string) (*AuditLog, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt audit log: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range []string{BucketCustomers, BucketTransactions} {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &AuditLog{db: db}, nil
}

// Close closes the database.
func (a *AuditLog) Close() error {
	return a.db.Close()
}

func (a *AuditLog) RecordCustomer(_ context.Context, record *domain.CustomerRecord) error {
	return a.append(BucketCustomers, record)
}

func (a *AuditLog) RecordTransaction(_ context.Context, record *domain.TransactionRecord) error {
	return a.append(BucketTransactions, record)
}

// Customers replays customer records in write order.
func (a *AuditLog) Customers(fn func(*domain.CustomerRecord) error) error {
	return a.each(BucketCustomers, func(raw []byte) error {
		var r domain.CustomerRecord
		if err := json.Unmarshal(raw, &r); err != nil {
			return err
		}
		return fn(&r)
	})
}

// Transactions replays transaction records in write order.
func (a *AuditLog) Transactions(fn func(*domain.TransactionRecord) error) error {
	return a.each(BucketTransactions, func(raw []byte) error {
		var r domain.TransactionRecord
		if err := json.Unmarshal(raw, &r); err != nil {
			return err
		}
		return fn(&r)
	})
}

func (a *AuditLog) append(bucketName string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	return a.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(itob(seq), data)
	})
}

func (a *AuditLog) each(bucketName string, fn func(raw []byte) error) error {
	return a.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}
		return b.ForEach(func(_, v []byte) error {
			return fn(v)
		})
	})
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

var _ usecase.AuditLog = (*AuditLog)(nil)
