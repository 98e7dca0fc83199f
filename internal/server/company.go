package server

import (
	"net/http"

	companydomain "github.com/faktur-app/faktur/internal/company/domain"
	"github.com/gin-gonic/gin"
)

// @Summary      Get Company Profile
// @Tags         company
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  companydomain.Profile
// @Router       /company [get]
func (s *Server) GetCompanyProfile(c *gin.Context) {
	resp, err := s.companySvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateCompanyProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Address  *string `json:"address,omitempty"`
	LogoURL  *string `json:"logo_url,omitempty"`
	Currency *string `json:"currency,omitempty"`
	Language *string `json:"language,omitempty"`
}

// @Summary      Update Company Profile
// @Description  Update the seller identity shown on rendered documents
// @Tags         company
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request body updateCompanyProfileRequest true "Update Company Profile Request"
// @Success      200  {object}  companydomain.Profile
// @Router       /company [put]
func (s *Server) UpdateCompanyProfile(c *gin.Context) {
	var req updateCompanyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.companySvc.Update(c.Request.Context(), companydomain.UpdateProfileRequest{
		Name:     req.Name,
		Address:  req.Address,
		LogoURL:  req.LogoURL,
		Currency: req.Currency,
		Language: req.Language,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "company.update", "company_profile", resp.ID.String(), map[string]any{
		"name": resp.Name,
	})
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
