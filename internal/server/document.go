package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smallbiznis/recibo/internal/render"
	"github.com/smallbiznis/recibo/internal/rendering"
)

func (s *Server) GetReceiptDocument(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	resp, err := s.renderSvc.Document(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) PreviewReceipt(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	out, err := s.renderSvc.Screen(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, render.ContentTypeHTML, []byte(out))
}

func (s *Server) PrintReceipt(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	out, err := s.renderSvc.Print(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, render.ContentTypeHTML, []byte(out))
}

func (s *Server) DownloadReceiptPDF(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	file, err := s.renderSvc.PDF(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	writeAttachment(c, file)
}

func (s *Server) DispatchReceipt(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	resp, err := s.renderSvc.Dispatch(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"data": resp})
}

func (s *Server) PreviewDraft(c *gin.Context) {
	var req rendering.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.renderSvc.Preview(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func writeAttachment(c *gin.Context, file rendering.File) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
