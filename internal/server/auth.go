package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/velavancrackers/pos/internal/auth/domain"
)

func (s *Server) Login(c *gin.Context) {
	var req authdomain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	admin, err := s.auth.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, authdomain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Login error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "email": admin.Email})
}

func (s *Server) Register(c *gin.Context) {
	var req authdomain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	_, err := s.auth.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrInvalidEmail), errors.Is(err, authdomain.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		case errors.Is(err, authdomain.ErrEmailExists):
			c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
		default:
			c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration error", "error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Registration successful"})
}

func (s *Server) UpdateCredentials(c *gin.Context) {
	var req authdomain.UpdateCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if err := s.auth.UpdateCredentials(c.Request.Context(), req); err != nil {
		switch {
		case errors.Is(err, authdomain.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Current password is incorrect"})
		case errors.Is(err, authdomain.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating credentials", "error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Credentials updated successfully"})
}
