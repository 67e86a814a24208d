package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/JoeShih716/go-mem-bank/pkg/logger"
	"github.com/JoeShih716/go-mem-bank/pkg/mysql"
)

// 稽核紀錄後端
const (
	BackendFile  = "file"
	BackendMySQL = "mysql"
	BackendBolt  = "bolt"
)

// 環境變數覆寫
const (
	EnvUserID   = "BANK_USER_ID"
	EnvPassword = "BANK_PASSWORD"
	EnvAuditDir = "BANK_AUDIT_DIR"
)

type Config struct {
	Shell  ShellConfig   `yaml:"shell"`
	Ledger LedgerConfig  `yaml:"ledger"`
	Audit  AuditConfig   `yaml:"audit"`
	MySQL  mysql.Config  `yaml:"mysql" validate:"-"` // 只有啟用 mysql 後端時才檢查
	Log    logger.Config `yaml:"log"`
}

// ShellConfig 互動介面的登入帳密 (固定一組)
type ShellConfig struct {
	UserID   string `yaml:"user_id" validate:"required"`
	Password string `yaml:"password" validate:"required"`
}

type LedgerConfig struct {
	FirstAccountNumber int64  `yaml:"first_account_number" validate:"gte=1"`
	TransferGuard      string `yaml:"transfer_guard" validate:"oneof=compat strict"`
}

type AuditConfig struct {
	Backends         []string `yaml:"backends" validate:"min=1,dive,oneof=file mysql bolt"`
	Dir              string   `yaml:"dir"`
	CustomersFile    string   `yaml:"customers_file" validate:"required"`
	TransactionsFile string   `yaml:"transactions_file" validate:"required"`
	BoltPath         string   `yaml:"bolt_path"`
}

// Uses 回傳是否啟用指定的稽核後端
func (a *AuditConfig) Uses(backend string) bool {
	return slices.Contains(a.Backends, backend)
}

// LoadDotEnv 載入 .env，檔案不存在時忽略
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load 讀取 YAML 設定檔，套用環境變數與預設值後驗證
// 設定檔不存在時只使用預設值與環境變數
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvUserID); v != "" {
		c.Shell.UserID = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		c.Shell.Password = v
	}
	if v := os.Getenv(EnvAuditDir); v != "" {
		c.Audit.Dir = v
	}
}

func (c *Config) applyDefaults() {
	if c.Ledger.FirstAccountNumber == 0 {
		c.Ledger.FirstAccountNumber = 1000
	}
	if c.Ledger.TransferGuard == "" {
		c.Ledger.TransferGuard = "compat"
	}
	if len(c.Audit.Backends) == 0 {
		c.Audit.Backends = []string{BackendFile}
	}
	if c.Audit.CustomersFile == "" {
		c.Audit.CustomersFile = "customers.txt"
	}
	if c.Audit.TransactionsFile == "" {
		c.Audit.TransactionsFile = "transactions.txt"
	}
	if c.Audit.Uses(BackendMySQL) {
		c.MySQL.ApplyDefaults()
	}
}

// Validate 以 struct tag 驗證設定
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Audit.Uses(BackendBolt) && c.Audit.BoltPath == "" {
		return errors.New("invalid config: audit.bolt_path is required for the bolt backend")
	}
	if c.Audit.Uses(BackendMySQL) {
		if err := validate.Struct(&c.MySQL); err != nil {
			return fmt.Errorf("invalid mysql config: %w", err)
		}
	}
	return nil
}
