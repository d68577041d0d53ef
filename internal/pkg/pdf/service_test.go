package pdf

import (
	"testing"
	"time"

	"github.com/gamevault/game-library-backend/internal/config"
	"github.com/gamevault/game-library-backend/internal/domain/order"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReceiptHTML(t *testing.T) {
	s := NewService(config.ReceiptConfig{
		CompanyName:    "GameVault",
		CompanyEmail:   "support@gamevault.example",
		CompanyWebsite: "https://gamevault.example",
	})
	s.now = func() time.Time { return time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) }

	o := &order.Order{
		OrderNumber:   "ORD-20260301-00042",
		TotalAmount:   decimal.RequireFromString("59.98"),
		PaymentMethod: order.PaymentMethodCreditCard,
		CreatedAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Items: []order.OrderItem{
			{Position: 1, GameTitle: "Hades & Friends", Price: decimal.RequireFromString("19.99")},
			{Position: 2, GameTitle: "Celeste", Price: decimal.RequireFromString("39.99")},
		},
	}

	html, err := s.RenderReceiptHTML(o, "alice")
	require.NoError(t, err)

	assert.Contains(t, html, "RCT-ORD-20260301-00042")
	assert.Contains(t, html, "March 2, 2026")
	assert.Contains(t, html, "<strong>alice</strong>")
	assert.Contains(t, html, "Hades &amp; Friends")
	assert.Contains(t, html, "$19.99")
	assert.Contains(t, html, "$59.98")
	assert.NotContains(t, html, "{{")
}
