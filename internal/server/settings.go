package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	settingsdomain "github.com/smallbiznis/recibo/internal/settings/domain"
)

const maxSettingsBody = 64 << 10

func (s *Server) GetSettings(c *gin.Context) {
	resp, err := s.settingsSvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// UpdateSettings checks the raw body against the settings schema before decoding it.
func (s *Server) UpdateSettings(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSettingsBody))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if err := settingsdomain.ValidateUpdatePayload(raw); err != nil {
		AbortWithError(c, err)
		return
	}

	var req settingsdomain.UpdateSettingsRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.settingsSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
