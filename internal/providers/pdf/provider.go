package pdf

import (
	"context"
	"io"
)

// Provider renders a printable bill for download.
type Provider interface {
	GenerateBill(ctx context.Context, data BillData) (io.Reader, error)
}
