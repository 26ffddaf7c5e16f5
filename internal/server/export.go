package server

import (
	"github.com/gin-gonic/gin"

	"github.com/smallbiznis/recibo/internal/export"
	"github.com/smallbiznis/recibo/internal/rendering"
)

const exportFileName = "recibos.xlsx"

func (s *Server) ExportReceipts(c *gin.Context) {
	req, err := parseListReceiptRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data, err := s.exportSvc.ReceiptsXLSX(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	writeAttachment(c, rendering.File{
		Name:        exportFileName,
		ContentType: export.ContentTypeXLSX,
		Data:        data,
	})
}
