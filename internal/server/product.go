package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	productdomain "github.com/velavancrackers/pos/internal/product/domain"
	"github.com/velavancrackers/pos/internal/uploads"
)

func (s *Server) ListProducts(c *gin.Context) {
	filter := productdomain.SearchFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		LowStock: c.Query("stock") == "low",
	}

	rows, err := s.products.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching products", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) CreateProduct(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	price, priceErr := decimal.NewFromString(strings.TrimSpace(c.PostForm("price")))
	category := strings.TrimSpace(c.PostForm("category"))
	if name == "" || priceErr != nil || category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, price, and category are required"})
		return
	}
	stock, _ := strconv.Atoi(c.PostForm("stock"))

	imagePath, ok := s.saveUploadedImage(c)
	if !ok {
		return
	}

	_, err := s.products.Create(c.Request.Context(), productdomain.CreateRequest{
		ProductID: c.PostForm("product_id"),
		Name:      name,
		Price:     price,
		Category:  category,
		Stock:     stock,
		ImagePath: imagePath,
	})
	if err != nil {
		if errors.Is(err, productdomain.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Category '" + category + "' not found"})
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding product", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product added successfully"})
}

func (s *Server) UpdateProduct(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	price, priceErr := decimal.NewFromString(strings.TrimSpace(c.PostForm("price")))
	category := strings.TrimSpace(c.PostForm("category"))
	if name == "" || priceErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name and price are required"})
		return
	}
	stock, _ := strconv.Atoi(c.PostForm("stock"))

	imagePath, ok := s.saveUploadedImage(c)
	if !ok {
		return
	}

	var previousImage *string
	if imagePath != nil {
		if existing, err := s.products.Get(c.Request.Context(), c.Param("id")); err == nil {
			previousImage = existing.ImagePath
		}
	}

	_, err := s.products.Update(c.Request.Context(), productdomain.UpdateRequest{
		ProductID: c.Param("id"),
		Name:      name,
		Price:     price,
		Category:  category,
		Stock:     stock,
		ImagePath: imagePath,
	})
	if err != nil {
		switch {
		case errors.Is(err, productdomain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		case errors.Is(err, productdomain.ErrInvalidCategory):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category"})
		default:
			c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating product", "error": err.Error()})
		}
		return
	}

	if previousImage != nil {
		s.uploads.Remove(*previousImage)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
}

func (s *Server) DeleteProduct(c *gin.Context) {
	deleted, err := s.products.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, productdomain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting product", "error": err.Error()})
		return
	}

	if deleted.ImagePath != nil {
		s.uploads.Remove(*deleted.ImagePath)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func (s *Server) ListCategories(c *gin.Context) {
	categories, err := s.products.Categories(c.Request.Context())
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching categories", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// saveUploadedImage stores the optional "image" form file. The bool result is
// false when a response has already been written.
func (s *Server) saveUploadedImage(c *gin.Context) (*string, bool) {
	header, err := c.FormFile("image")
	if err != nil {
		// no file attached
		return nil, true
	}

	webPath, err := s.uploads.Save(header)
	if err != nil {
		switch {
		case errors.Is(err, uploads.ErrNotAnImage):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Only image files are allowed"})
		case errors.Is(err, uploads.ErrTooLarge):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Image must be 5MB or smaller"})
		default:
			c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error saving image", "error": err.Error()})
		}
		return nil, false
	}
	return &webPath, true
}
