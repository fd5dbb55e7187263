package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	settingsdomain "github.com/velavancrackers/pos/internal/settings/domain"
)

func (s *Server) GetSettings(c *gin.Context) {
	shopSettings, err := s.settings.Get(c.Request.Context())
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching settings", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, shopSettings)
}

func (s *Server) UpdateSettings(c *gin.Context) {
	var req settingsdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	updated, err := s.settings.Update(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating settings", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Settings updated successfully", "settings": updated})
}
