package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/JoeShih716/go-mem-bank/internal/app/bank/adapter/in/shell"
	bolt_adapter "github.com/JoeShih716/go-mem-bank/internal/app/bank/adapter/out/bolt"
	file_adapter "github.com/JoeShih716/go-mem-bank/internal/app/bank/adapter/out/file"
	memory_adapter "github.com/JoeShih716/go-mem-bank/internal/app/bank/adapter/out/memory"
	mysql_adapter "github.com/JoeShih716/go-mem-bank/internal/app/bank/adapter/out/mysql"
	"github.com/JoeShih716/go-mem-bank/internal/app/bank/usecase"
	"github.com/JoeShih716/go-mem-bank/internal/config"
	"github.com/JoeShih716/go-mem-bank/pkg/logger"
	"github.com/JoeShih716/go-mem-bank/pkg/mysql"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML config file")
	flag.Parse()

	// 1. 載入設定
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// 2. 初始化 Logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. 初始化稽核紀錄後端
	audit, closeAudit, err := buildAuditLog(ctx, cfg, log)
	if err != nil {
		log.Error("failed to init audit log", zap.Error(err))
		return 1
	}
	defer closeAudit()

	// 4. 初始化帳本 (UseCase)
	bank := usecase.NewBank(memory_adapter.NewRegistry(), audit, log, usecase.Options{
		FirstAccountNumber: cfg.Ledger.FirstAccountNumber,
		TransferGuard:      usecase.TransferGuard(cfg.Ledger.TransferGuard),
	})

	// 5. 啟動互動介面 (Driving Adapter)
	sh := shell.New(bank, shell.Credentials{
		UserID:   cfg.Shell.UserID,
		Password: cfg.Shell.Password,
	}, os.Stdin, os.Stdout, log)

	done := make(chan error, 1)
	go func() {
		done <- sh.Run(ctx)
	}()

	// 讀取 stdin 時無法中斷，收到訊號直接結束並關閉資源
	select {
	case err = <-done:
	case <-ctx.Done():
		log.Info("interrupted, shutting down")
		return 130
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, shell.ErrAccessDenied):
		return 2
	default:
		log.Error("shell exited", zap.Error(err))
		return 1
	}
}

// buildAuditLog 依設定組合稽核紀錄後端，回傳關閉函式
func buildAuditLog(ctx context.Context, cfg *config.Config, log *zap.Logger) (usecase.AuditLog, func(), error) {
	var logs []usecase.AuditLog
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	for _, backend := range cfg.Audit.Backends {
		switch backend {
		case config.BackendFile:
			fileLog, err := file_adapter.NewAuditLog(cfg.Audit.Dir, cfg.Audit.CustomersFile, cfg.Audit.TransactionsFile)
			if err != nil {
				closeAll()
				return nil, nil, err
			}
			logs = append(logs, fileLog)
			log.Info("file audit log ready",
				zap.String("customers", fileLog.CustomersPath()),
				zap.String("transactions", fileLog.TransactionsPath()),
			)
		case config.BackendMySQL:
			client, err := mysql.NewClient(cfg.MySQL, log)
			if err != nil {
				closeAll()
				return nil, nil, err
			}
			closers = append(closers, func() { _ = client.Close() })
			mysqlLog := mysql_adapter.NewAuditLog(client.DB())
			if err := mysqlLog.Migrate(ctx); err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("migrate audit tables: %w", err)
			}
			logs = append(logs, mysqlLog)
			log.Info("mysql audit log ready", zap.String("host", cfg.MySQL.Host), zap.String("db", cfg.MySQL.DBName))
		case config.BackendBolt:
			boltLog, err := bolt_adapter.Open(cfg.Audit.BoltPath)
			if err != nil {
				closeAll()
				return nil, nil, err
			}
			closers = append(closers, func() { _ = boltLog.Close() })
			logs = append(logs, boltLog)
			log.Info("bolt audit log ready", zap.String("path", cfg.Audit.BoltPath))
		default:
			closeAll()
			return nil, nil, fmt.Errorf("unknown audit backend %q", backend)
		}
	}

	if len(logs) == 1 {
		return logs[0], closeAll, nil
	}
	return usecase.NewTeeAuditLog(logs...), closeAll, nil
}
