package pdf

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBill(t *testing.T) {
	provider := New()

	reader, err := provider.GenerateBill(context.Background(), BillData{
		StoreName:    "Sri Velavan Crackers",
		StoreAddress: "Sivakasi Main Road, Tamil Nadu",
		StorePhone:   "+91 98765 43210",
		BillNo:       "SV42",
		Date:         "29/08/2026",
		CustomerName: "Walk-in Customer",
		PaymentMode:  "cash",
		Items: []BillLine{
			{Name: "Flower Pot", Quantity: 2, Price: "50.00", Total: "100.00"},
			{Name: "Sparkler 10cm", Quantity: 5, Price: "10.00", Total: "50.00"},
		},
		Subtotal:  "150.00",
		GSTAmount: "27.00",
		Total:     "177.00",
		PaperSize: "A4",
	})
	require.NoError(t, err)

	raw, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	assert.Equal(t, "%PDF", string(raw[:4]))
}
