package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	billingdomain "github.com/velavancrackers/pos/internal/billing/domain"
	"github.com/velavancrackers/pos/internal/providers/pdf"
	"go.uber.org/zap"
)

func (s *Server) CreateBill(c *gin.Context) {
	var req billingdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "error": err.Error()})
		return
	}

	bill, err := s.bills.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, billingdomain.ErrEmptyItems),
			errors.Is(err, billingdomain.ErrInvalidQuantity),
			errors.Is(err, billingdomain.ErrMissingPaymentMode):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid bill request", "error": err.Error()})
		default:
			c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating bill", "error": err.Error()})
		}
		return
	}

	s.metrics.BillCreated()
	c.JSON(http.StatusOK, gin.H{
		"message": "Bill generated successfully",
		"bill": gin.H{
			"bill_no":        bill.BillNo,
			"customer_name":  bill.CustomerName,
			"customer_phone": bill.Phone,
			"subtotal":       bill.Subtotal,
			"discount":       bill.Discount,
			"gst_amount":     bill.GSTAmount,
			"total":          bill.Total,
			"payment_mode":   bill.PaymentMode,
			"items":          req.Items,
		},
	})
}

func (s *Server) ListBills(c *gin.Context) {
	filter, err := billListFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	bills, err := s.bills.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching bills", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bills)
}

func (s *Server) GetBill(c *gin.Context) {
	detail, err := s.bills.GetByNumber(c.Request.Context(), c.Param("bill_no"))
	if err != nil {
		if errors.Is(err, billingdomain.ErrBillNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Bill not found."})
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching bill", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bill": detail.Bill, "items": detail.Items})
}

func (s *Server) DeleteBill(c *gin.Context) {
	err := s.bills.Delete(c.Request.Context(), c.Param("bill_no"))
	if err != nil {
		if errors.Is(err, billingdomain.ErrBillNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Bill not found"})
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting bill", "error": err.Error()})
		return
	}

	s.metrics.BillDeleted()
	c.JSON(http.StatusOK, gin.H{"message": "Bill deleted successfully and stock restored"})
}

func (s *Server) DownloadBill(c *gin.Context) {
	billNo := c.Param("bill_no")

	detail, err := s.bills.GetByNumber(c.Request.Context(), billNo)
	if err != nil {
		if errors.Is(err, billingdomain.ErrBillNotFound) {
			c.String(http.StatusNotFound, "Bill not found")
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching bill", "error": err.Error()})
		return
	}

	shopSettings, err := s.settings.Get(c.Request.Context())
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching settings", "error": err.Error()})
		return
	}

	data := pdf.BillData{
		StoreName:    s.cfg.Store.Name,
		StoreAddress: s.cfg.Store.Address,
		StorePhone:   s.cfg.Store.Phone,
		StoreWebsite: s.cfg.Store.Website,
		BillNo:       detail.BillNo,
		Date:         detail.CreatedAt.Format("02/01/2006"),
		CustomerName: detail.CustomerName,
		PaymentMode:  detail.PaymentMode,
		Subtotal:     detail.Subtotal.StringFixed(2),
		Total:        detail.Total.StringFixed(2),
		PaperSize:    shopSettings.PaperSize,
	}
	if detail.Phone != nil {
		data.Phone = *detail.Phone
	}
	if shopSettings.EnableGST {
		data.GSTNumber = shopSettings.GSTNumber
		data.GSTAmount = detail.GSTAmount.StringFixed(2)
	}
	if detail.Discount.IsPositive() {
		data.Discount = detail.Discount.StringFixed(2)
	}
	for _, item := range detail.Items {
		data.Items = append(data.Items, pdf.BillLine{
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Price:    item.Price.StringFixed(2),
			Total:    item.Total.StringFixed(2),
		})
	}

	reader, err := s.pdf.GenerateBill(c.Request.Context(), data)
	if err != nil {
		s.log.Error("failed to render bill pdf", zap.String("bill_no", billNo), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating PDF", "error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename=bill_`+billNo+`.pdf`)
	c.Header("Content-Type", "application/pdf")
	if _, err := io.Copy(c.Writer, reader); err != nil {
		s.log.Warn("bill pdf stream interrupted", zap.String("bill_no", billNo), zap.Error(err))
	}
}
