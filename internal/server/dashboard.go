package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) Dashboard(c *gin.Context) {
	summary, err := s.dashboard.Summary(c.Request.Context())
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching dashboard", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
