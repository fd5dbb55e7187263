package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type BillData struct {
	StoreName    string
	StoreAddress string
	StorePhone   string
	StoreWebsite string
	GSTNumber    string

	BillNo       string
	Date         string
	CustomerName string
	Phone        string
	PaymentMode  string

	Items []BillLine

	Subtotal  string
	GSTAmount string
	Discount  string
	Total     string

	PaperSize string
}

type BillLine struct {
	Name     string
	Quantity int
	Price    string
	Total    string
}

type billProvider struct{}

func New() Provider {
	return &billProvider{}
}

func (p *billProvider) GenerateBill(ctx context.Context, data BillData) (io.Reader, error) {
	size := pagesize.A4
	if data.PaperSize == "A5" {
		size = pagesize.A5
	}

	cfg := config.NewBuilder().
		WithPageSize(size).
		Build()

	m := maroto.New(cfg)

	// Store header
	m.AddRow(12,
		text.NewCol(12, data.StoreName, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	m.AddRow(6,
		text.NewCol(12, data.StoreAddress, props.Text{Size: 9, Align: align.Center}),
	)
	m.AddRow(6,
		text.NewCol(12, "Phone: "+data.StorePhone, props.Text{Size: 9, Align: align.Center}),
	)
	if data.GSTNumber != "" {
		m.AddRow(6,
			text.NewCol(12, "GSTIN: "+data.GSTNumber, props.Text{Size: 9, Align: align.Center}),
		)
	}

	m.AddRow(10,
		text.NewCol(12, "TAX INVOICE", props.Text{
			Size:  12,
			Style: fontstyle.Bold,
			Align: align.Center,
			Top:   3,
		}),
	)

	// Bill meta
	m.AddRow(18,
		col.New(6).Add(
			text.New("Bill No: "+data.BillNo, props.Text{Style: fontstyle.Bold}),
			text.New("Date: "+data.Date, props.Text{Top: 5}),
		),
		col.New(6).Add(
			text.New("Customer: "+data.CustomerName, props.Text{Align: align.Right}),
			text.New("Phone: "+data.Phone, props.Text{Top: 5, Align: align.Right}),
			text.New("Payment: "+data.PaymentMode, props.Text{Top: 10, Align: align.Right}),
		),
	)

	// Items table
	m.AddRow(8,
		text.NewCol(6, "Item", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	for _, item := range data.Items {
		m.AddRow(7,
			text.NewCol(6, item.Name, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", item.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.Price, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.Total, props.Text{Size: 9, Align: align.Right}),
		)
	}

	// Totals
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, data.Subtotal, props.Text{Size: 9, Align: align.Right}),
	)
	if data.GSTAmount != "" {
		m.AddRow(8,
			col.New(8),
			text.NewCol(2, "GST", props.Text{Size: 9}),
			text.NewCol(2, data.GSTAmount, props.Text{Size: 9, Align: align.Right}),
		)
	}
	if data.Discount != "" {
		m.AddRow(8,
			col.New(8),
			text.NewCol(2, "Discount", props.Text{Size: 9}),
			text.NewCol(2, data.Discount, props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Grand Total", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(2, data.Total, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)

	// Footer
	m.AddRow(14,
		text.NewCol(12, "Thank you for shopping with us!", props.Text{
			Size:  10,
			Align: align.Center,
			Top:   6,
		}),
	)
	if data.StoreWebsite != "" {
		m.AddRow(6,
			text.NewCol(12, data.StoreWebsite, props.Text{Size: 8, Align: align.Center}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}
