package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/JoeShih716/go-mem-bank/internal/app/bank/domain"
	"github.com/JoeShih716/go-mem-bank/internal/app/bank/usecase"
)

// ErrAccessDenied 登入帳密錯誤
var ErrAccessDenied = errors.New("invalid credentials")

// errBadInput 數字格式錯誤，回到選單
var errBadInput = errors.New("bad input")

const menu = "\n1. Create Account\n2. Deposit\n3. Withdraw\n4. Transfer\n5. Display Customer Details\n6. Exit"

// Ledger 是互動介面需要的帳本操作
type Ledger interface {
	AddCustomer(ctx context.Context, name string, kind domain.AccountKind, initialDeposit decimal.Decimal) usecase.Outcome
	FindCustomer(id int64) (*domain.Customer, bool)
	Deposit(ctx context.Context, id int64, amount decimal.Decimal) (usecase.Outcome, error)
	Withdraw(ctx context.Context, id int64, amount decimal.Decimal) (usecase.Outcome, error)
	Transfer(ctx context.Context, fromID, toID int64, amount decimal.Decimal) (usecase.Outcome, error)
}

// Credentials 固定的一組登入帳密，由設定注入
type Credentials struct {
	UserID   string
	Password string
}

// Option 設定 Shell
type Option func(*Shell)

// WithoutColor 關閉 ANSI 顏色輸出
func WithoutColor() Option {
	return func(s *Shell) {
		for _, c := range []*color.Color{s.success, s.failure, s.details} {
			c.DisableColor()
		}
	}
}

// WithPasswordReader 替換密碼讀取方式
func WithPasswordReader(read func() (string, error)) Option {
	return func(s *Shell) {
		s.readPassword = read
	}
}

// Shell 是帳本的互動式命令列介面
type Shell struct {
	ledger       Ledger
	creds        Credentials
	in           *bufio.Scanner
	out          io.Writer
	logger       *zap.Logger
	readPassword func() (string, error)

	success *color.Color
	failure *color.Color
	details *color.Color
}

// New 建立 Shell
//
// in 為終端機時，密碼以不回顯方式讀取
func New(ledger Ledger, creds Credentials, in io.Reader, out io.Writer, logger *zap.Logger, opts ...Option) *Shell {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Shell{
		ledger:  ledger,
		creds:   creds,
		in:      bufio.NewScanner(in),
		out:     out,
		logger:  logger,
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		details: color.New(color.FgBlue),
	}
	s.readPassword = s.readLine
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		s.readPassword = func() (string, error) {
			raw, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(s.out)
			return string(raw), err
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run 登入後進入選單迴圈，直到選擇離開、輸入結束或 ctx 取消
//
// 回傳:
//
//	error: 帳密錯誤時為 ErrAccessDenied；輸入結束視為正常離開
func (s *Shell) Run(ctx context.Context) error {
	if err := s.login(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.details.Fprintln(s.out, menu)
		choice, err := s.promptInt("Enter your choice: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, errBadInput) {
			s.failure.Fprintln(s.out, "Invalid choice! Please try again.")
			continue
		}
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = s.createAccount(ctx)
		case 2:
			err = s.deposit(ctx)
		case 3:
			err = s.withdraw(ctx)
		case 4:
			err = s.transfer(ctx)
		case 5:
			err = s.displayCustomer()
		case 6:
			s.success.Fprintln(s.out, "Exiting the system. Thank you!")
			return nil
		default:
			s.failure.Fprintln(s.out, "Invalid choice! Please try again.")
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, errBadInput):
			s.failure.Fprintln(s.out, "Invalid input! Please enter a number.")
		default:
			return err
		}
	}
}

func (s *Shell) login() error {
	userID, err := s.prompt("Enter UserID: ")
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, "Enter Password: ")
	password, err := s.readPassword()
	if err != nil {
		return err
	}
	if userID != s.creds.UserID || password != s.creds.Password {
		s.logger.Warn("login rejected", zap.String("user_id", userID))
		s.failure.Fprintln(s.out, "Invalid credentials! Access denied.")
		return ErrAccessDenied
	}
	s.success.Fprintln(s.out, "Login successful! Welcome to the Online Banking System.")
	return nil
}

func (s *Shell) createAccount(ctx context.Context) error {
	name, err := s.prompt("Enter Customer Name: ")
	if err != nil {
		return err
	}
	rawKind, err := s.prompt("Enter Account Type (Savings/Checking): ")
	if err != nil {
		return err
	}
	initial, err := s.promptAmount("Enter Initial Deposit: ")
	if err != nil {
		return err
	}

	kind := domain.ParseAccountKind(rawKind)
	out := s.ledger.AddCustomer(ctx, name, kind, initial)
	s.success.Fprintf(s.out, "Account created successfully for %s with %s account.\n", name, kind)
	if out.AuditErr != nil {
		s.failure.Fprintln(s.out, "Error saving customer information!")
	}
	return nil
}

func (s *Shell) deposit(ctx context.Context) error {
	id, err := s.promptInt("Enter Customer ID: ")
	if err != nil {
		return err
	}
	amount, err := s.promptAmount("Enter Deposit Amount: ")
	if err != nil {
		return err
	}

	out, err := s.ledger.Deposit(ctx, id, amount)
	if errors.Is(err, domain.ErrCustomerNotFound) {
		s.failure.Fprintln(s.out, "Customer not found!")
		return nil
	}
	if err != nil {
		return err
	}
	s.printDeposit(out.Customer.Account, amount)
	s.printAuditErr(out)
	return nil
}

func (s *Shell) withdraw(ctx context.Context) error {
	id, err := s.promptInt("Enter Customer ID: ")
	if err != nil {
		return err
	}
	amount, err := s.promptAmount("Enter Withdraw Amount: ")
	if err != nil {
		return err
	}

	out, err := s.ledger.Withdraw(ctx, id, amount)
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		s.failure.Fprintln(s.out, "Customer not found!")
		return nil
	case errors.Is(err, domain.ErrInsufficientFunds):
		s.failure.Fprintln(s.out, "Insufficient funds!")
	case err != nil:
		return err
	default:
		s.printWithdraw(out.Customer.Account, amount)
	}
	s.printAuditErr(out)
	return nil
}

func (s *Shell) transfer(ctx context.Context) error {
	fromID, err := s.promptInt("Enter Sender Customer ID: ")
	if err != nil {
		return err
	}
	toID, err := s.promptInt("Enter Receiver Customer ID: ")
	if err != nil {
		return err
	}
	amount, err := s.promptAmount("Enter Transfer Amount: ")
	if err != nil {
		return err
	}

	out, err := s.ledger.Transfer(ctx, fromID, toID, amount)
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		s.failure.Fprintln(s.out, "One or both customers not found!")
		return nil
	case errors.Is(err, domain.ErrInsufficientFunds):
		s.failure.Fprintln(s.out, "Insufficient funds for transfer!")
		return nil
	case err != nil:
		return err
	}

	if out.SourceRejected {
		s.failure.Fprintln(s.out, "Insufficient funds!")
	} else {
		s.printWithdraw(out.Customer.Account, amount)
	}
	s.printDeposit(out.Counterparty.Account, amount)
	s.printAuditErr(out)
	s.success.Fprintln(s.out, "Transfer successful.")
	return nil
}

func (s *Shell) displayCustomer() error {
	id, err := s.promptInt("Enter Customer ID: ")
	if err != nil {
		return err
	}
	customer, ok := s.ledger.FindCustomer(id)
	if !ok {
		s.failure.Fprintln(s.out, "Customer not found!")
		return nil
	}
	s.details.Fprintln(s.out, customer.Describe())
	return nil
}

func (s *Shell) printDeposit(account domain.Account, amount decimal.Decimal) {
	how := "after fee"
	if account.Kind() == domain.AccountKindSavings {
		how = "with interest"
	}
	s.success.Fprintf(s.out, "Deposited $%s %s. New balance: $%s\n",
		domain.FormatAmount(amount), how, domain.FormatAmount(account.Balance()))
}

func (s *Shell) printWithdraw(account domain.Account, amount decimal.Decimal) {
	how := ""
	if account.Kind() == domain.AccountKindChecking {
		how = " after fee"
	}
	s.success.Fprintf(s.out, "Withdrawn $%s%s. New balance: $%s\n",
		domain.FormatAmount(amount), how, domain.FormatAmount(account.Balance()))
}

func (s *Shell) printAuditErr(out usecase.Outcome) {
	if out.AuditErr != nil {
		s.failure.Fprintln(s.out, "Error saving transaction!")
	}
}

func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	return s.readLine()
}

func (s *Shell) promptInt(label string) (int64, error) {
	raw, err := s.prompt(label)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errBadInput, raw)
	}
	return v, nil
}

func (s *Shell) promptAmount(label string) (decimal.Decimal, error) {
	raw, err := s.prompt(label)
	if err != nil {
		return decimal.Zero, err
	}
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", errBadInput, raw)
	}
	return v, nil
}

func (s *Shell) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.in.Text(), nil
}
