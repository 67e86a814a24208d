package memory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeShih716/go-mem-bank/internal/app/bank/domain"
)

func TestRegistry_KeepsInsertionOrder(t *testing.T) {
	r := NewRegistry()
	for i, name := range []string{"Carol", "Alice", "Bob"} {
		id := int64(i + 1)
		r.Add(domain.NewCustomer(id, name, domain.NewSavingsAccount(1000+id, decimal.Zero)))
	}

	require.Equal(t, 3, r.Count())
	list := r.List()
	assert.Equal(t, "Carol", list[0].Name)
	assert.Equal(t, "Alice", list[1].Name)
	assert.Equal(t, "Bob", list[2].Name)

	c, ok := r.Find(2)
	require.True(t, ok)
	assert.Equal(t, "Alice", c.Name)
}

func TestRegistry_FindUnknown(t *testing.T) {
	r := NewRegistry()
	c, ok := r.Find(42)
	assert.False(t, ok)
	assert.Nil(t, c)
}

func TestRegistry_ListIsACopy(t *testing.T) {
	r := NewRegistry()
	r.Add(domain.NewCustomer(1, "Alice", domain.NewCheckingAccount(1000, decimal.Zero)))

	list := r.List()
	list[0] = nil
	assert.NotNil(t, r.List()[0])
}
