package server

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	billingdomain "github.com/velavancrackers/pos/internal/billing/domain"
)

const dateLayout = "2006-01-02"

// billListFilter reads the optional startDate/endDate query parameters.
// Both bounds are inclusive calendar dates and each may be given alone.
func billListFilter(c *gin.Context) (billingdomain.ListFilter, error) {
	var filter billingdomain.ListFilter

	if raw := c.Query("startDate"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			return filter, fmt.Errorf("invalid startDate %q", raw)
		}
		filter.From = from
	}
	if raw := c.Query("endDate"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			return filter, fmt.Errorf("invalid endDate %q", raw)
		}
		filter.To = to
	}
	return filter, nil
}
