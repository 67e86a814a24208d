package domain

import "fmt"

// Customer 客戶，與帳戶一對一且同生命週期
type Customer struct {
	ID      int64
	Name    string
	Account Account
}

func NewCustomer(id int64, name string, account Account) *Customer {
	return &Customer{
		ID:      id,
		Name:    name,
		Account: account,
	}
}

// Describe 回傳客戶明細，含帳戶資訊
func (c *Customer) Describe() string {
	return fmt.Sprintf("Customer ID: %d\nName: %s\n%s", c.ID, c.Name, c.Account.Describe())
}
