package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/JoeShih716/go-mem-bank/internal/app/bank/adapter/out/file"
	"github.com/JoeShih716/go-mem-bank/internal/app/bank/adapter/out/memory"
	"github.com/JoeShih716/go-mem-bank/internal/app/bank/domain"
	"github.com/JoeShih716/go-mem-bank/internal/app/bank/usecase"
)

var creds = Credentials{UserID: "teller", Password: "s3cret"}

type brokenAudit struct{}

func (brokenAudit) RecordCustomer(context.Context, *domain.CustomerRecord) error {
	return errors.New("read-only file system")
}

func (brokenAudit) RecordTransaction(context.Context, *domain.TransactionRecord) error {
	return errors.New("read-only file system")
}

// session 以腳本輸入執行一次 Shell，回傳畫面輸出
func session(t *testing.T, audit usecase.AuditLog, script ...string) (string, error) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	bank := usecase.NewBank(memory.NewRegistry(), audit, logger, usecase.Options{})
	in := strings.NewReader(strings.Join(script, "\n") + "\n")
	var out bytes.Buffer
	err := New(bank, creds, in, &out, logger, WithoutColor()).Run(context.Background())
	return out.String(), err
}

func login(lines ...string) []string {
	return append([]string{creds.UserID, creds.Password}, lines...)
}

func TestRun_SavingsSessionWritesAuditFiles(t *testing.T) {
	dir := t.TempDir()
	audit, err := file.NewAuditLog(dir, "", "")
	require.NoError(t, err)

	out, err := session(t, audit, login(
		"1", "Alice", "savings", "100",
		"2", "1", "50",
		"3", "1", "30",
		"5", "1",
		"6",
	)...)
	require.NoError(t, err)

	assert.Contains(t, out, "Login successful! Welcome to the Online Banking System.")
	assert.Contains(t, out, "Account created successfully for Alice with Savings account.")
	assert.Contains(t, out, "Deposited $50.0 with interest. New balance: $152.5")
	assert.Contains(t, out, "Withdrawn $30.0. New balance: $122.5")
	assert.Contains(t, out, "Customer ID: 1\nName: Alice\nSavings Account Number: 1000\nBalance: $122.5")
	assert.Contains(t, out, "Exiting the system. Thank you!")

	customers, err := os.ReadFile(filepath.Join(dir, file.DefaultCustomersFile))
	require.NoError(t, err)
	assert.Equal(t, "Customer ID: 1, Name: Alice, Account Number: 1000, Account Type: Savings, Balance: 100.0\n", string(customers))

	transactions, err := os.ReadFile(filepath.Join(dir, file.DefaultTransactionsFile))
	require.NoError(t, err)
	assert.Equal(t,
		"Customer ID: 1, Transaction: Deposit, Amount: $50.0\n"+
			"Customer ID: 1, Transaction: Withdraw, Amount: $30.0\n",
		string(transactions))
}

func TestRun_CheckingAndTransfer(t *testing.T) {
	out, err := session(t, &memoryAudit{}, login(
		"1", "Bob", "Checking", "50",
		"2", "1", "20",
		"3", "1", "10",
		"1", "Carol", "Savings", "0",
		"4", "1", "2", "8",
		"4", "1", "2", "500",
		"4", "1", "9", "1",
		"6",
	)...)
	require.NoError(t, err)

	assert.Contains(t, out, "Deposited $20.0 after fee. New balance: $69.0")
	assert.Contains(t, out, "Withdrawn $10.0 after fee. New balance: $58.0")
	assert.Contains(t, out, "Withdrawn $8.0 after fee. New balance: $49.0")
	assert.Contains(t, out, "Deposited $8.0 with interest. New balance: $8.4")
	assert.Contains(t, out, "Transfer successful.")
	assert.Contains(t, out, "Insufficient funds for transfer!")
	assert.Contains(t, out, "One or both customers not found!")
}

func TestRun_TransferSourceRejectedUnderCompatGuard(t *testing.T) {
	out, err := session(t, &memoryAudit{}, login(
		"1", "Bob", "Checking", "50",
		"1", "Carol", "Savings", "0",
		"4", "1", "2", "50",
		"6",
	)...)
	require.NoError(t, err)

	assert.Contains(t, out, "Insufficient funds!\nDeposited $50.0 with interest. New balance: $52.5\nTransfer successful.")
}

func TestRun_InvalidCredentials(t *testing.T) {
	out, err := session(t, &memoryAudit{}, "teller", "wrong", "1")
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Contains(t, out, "Invalid credentials! Access denied.")
	assert.NotContains(t, out, "Create Account")
}

func TestRun_NotFoundAndInvalidInput(t *testing.T) {
	out, err := session(t, &memoryAudit{}, login(
		"2", "7", "10",
		"3", "7", "10",
		"5", "7",
		"9",
		"abc",
		"2", "x",
		"3", "1", "ten",
		"6",
	)...)
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(out, "Customer not found!"))
	assert.Equal(t, 2, strings.Count(out, "Invalid choice! Please try again."))
	assert.Equal(t, 2, strings.Count(out, "Invalid input! Please enter a number."))
}

func TestRun_WithdrawInsufficientFunds(t *testing.T) {
	audit := &memoryAudit{}
	out, err := session(t, audit, login(
		"1", "Alice", "Savings", "10",
		"3", "1", "11",
		"6",
	)...)
	require.NoError(t, err)

	assert.Contains(t, out, "Insufficient funds!")
	assert.Equal(t, []string{"Customer ID: 1, Transaction: Withdraw, Amount: $11.0"}, audit.transactions)
}

func TestRun_AuditFailureIsReported(t *testing.T) {
	out, err := session(t, brokenAudit{}, login(
		"1", "Alice", "Savings", "10",
		"2", "1", "10",
		"5", "1",
		"6",
	)...)
	require.NoError(t, err)

	assert.Contains(t, out, "Account created successfully for Alice with Savings account.\nError saving customer information!")
	assert.Contains(t, out, "Deposited $10.0 with interest. New balance: $20.5\nError saving transaction!")
	assert.Contains(t, out, "Balance: $20.5")
}

func TestRun_EndOfInputExitsCleanly(t *testing.T) {
	out, err := session(t, &memoryAudit{}, login("1", "Alice")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Enter Account Type (Savings/Checking): ")
}

func TestRun_CancelledContext(t *testing.T) {
	bank := usecase.NewBank(memory.NewRegistry(), &memoryAudit{}, nil, usecase.Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(login("6"), "\n"))
	err := New(bank, creds, in, &out, nil, WithoutColor()).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithPasswordReader(t *testing.T) {
	bank := usecase.NewBank(memory.NewRegistry(), &memoryAudit{}, nil, usecase.Options{})
	var out bytes.Buffer
	in := strings.NewReader("teller\n6\n")
	sh := New(bank, creds, in, &out, nil, WithoutColor(), WithPasswordReader(func() (string, error) {
		return "s3cret", nil
	}))

	require.NoError(t, sh.Run(context.Background()))
	assert.Contains(t, out.String(), "Login successful!")
}

type memoryAudit struct {
	transactions []string
}

func (*memoryAudit) RecordCustomer(context.Context, *domain.CustomerRecord) error {
	return nil
}

func (m *memoryAudit) RecordTransaction(_ context.Context, r *domain.TransactionRecord) error {
	m.transactions = append(m.transactions, r.Line())
	return nil
}
