package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	templatedomain "github.com/smallbiznis/recibo/internal/receipttemplate/domain"
)

func (s *Server) CreateReceiptTemplate(c *gin.Context) {
	var req templatedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.templateSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListReceiptTemplates(c *gin.Context) {
	isDefault, err := parseOptionalBool(c.Query("is_default"))
	if err != nil {
		AbortWithError(c, newValidationError("is_default", "invalid_is_default", "invalid is_default"))
		return
	}
	req := templatedomain.ListRequest{
		Name:      strings.TrimSpace(c.Query("name")),
		IsDefault: isDefault,
	}

	resp, err := s.templateSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetReceiptTemplateByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	resp, err := s.templateSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateReceiptTemplate(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req templatedomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = id

	resp, err := s.templateSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SetDefaultReceiptTemplate(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	resp, err := s.templateSvc.SetDefault(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteReceiptTemplate(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.templateSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ApplyReceiptTemplate returns the receipt content a template pre-fills.
func (s *Server) ApplyReceiptTemplate(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	resp, err := s.templateSvc.Apply(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
