package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	receiptdomain "github.com/smallbiznis/recibo/internal/receipt/domain"
)

func (s *Server) CreateReceipt(c *gin.Context) {
	var req receiptdomain.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.receiptSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListReceipts(c *gin.Context) {
	req, err := parseListReceiptRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.receiptSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      resp.Receipts,
		"page_info": resp.PageInfo,
	})
}

func (s *Server) GetReceiptByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	resp, err := s.receiptSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateReceipt(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req receiptdomain.UpdateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = id

	resp, err := s.receiptSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateReceiptStatus(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req receiptdomain.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = id

	resp, err := s.receiptSvc.UpdateStatus(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteReceipt(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.receiptSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) NextReceiptNumber(c *gin.Context) {
	resp, err := s.receiptSvc.NextNumber(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
