package memory

import (
	"github.com/JoeShih716/go-mem-bank/internal/app/bank/domain"
	"github.com/JoeShih716/go-mem-bank/internal/app/bank/usecase"
)

// Registry 是記憶體內的客戶名冊
//
// 結構:
//
//	byID: 客戶 ID 索引
//	ordered: 依建立順序排列，只供列出使用
type Registry struct {
	byID    map[int64]*domain.Customer
	ordered []*domain.Customer
}

// NewRegistry 建立空的客戶名冊
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[int64]*domain.Customer),
		ordered: make([]*domain.Customer, 0),
	}
}

// Add 加入客戶
func (r *Registry) Add(customer *domain.Customer) {
	r.byID[customer.ID] = customer
	r.ordered = append(r.ordered, customer)
}

// Find 依客戶 ID 查詢
func (r *Registry) Find(id int64) (*domain.Customer, bool) {
	customer, ok := r.byID[id]
	return customer, ok
}

// List 回傳名冊的複本，避免呼叫端改動內部切片
func (r *Registry) List() []*domain.Customer {
	out := make([]*domain.Customer, len(r.ordered))
	copy(out, r.ordered)
	return out
}

func (r *Registry) Count() int {
	return len(r.ordered)
}

var _ usecase.CustomerRepository = (*Registry)(nil)
