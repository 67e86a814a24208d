package domain

import "github.com/shopspring/decimal"

var (
	// SavingsInterestRate 儲蓄帳戶每次存款的加碼比例 (5%)
	SavingsInterestRate = decimal.RequireFromString("0.05")

	// CheckingTransactionFee 支票帳戶每筆交易的手續費
	CheckingTransactionFee = decimal.RequireFromString("1.00")
)

// FormatAmount 將金額格式化為稽核紀錄與畫面使用的字串
// 整數金額保留一位小數 (100.0)，其餘以最短的精確小數表示 (152.5)
func FormatAmount(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return d.StringFixed(1)
	}
	return d.String()
}
