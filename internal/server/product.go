package server

import (
	"net/http"
	"strings"

	catalogdomain "github.com/faktur-app/faktur/internal/catalog/domain"
	"github.com/faktur-app/faktur/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

type createProductRequest struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Unit      string `json:"unit"`
}

// @Summary      Create Product
// @Description  Create a new catalog product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request body createProductRequest true "Create Product Request"
// @Success      200  {object}  catalogdomain.Product
// @Router       /products [post]
func (s *Server) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.Create(c.Request.Context(), catalogdomain.CreateRequest{
		Name:      strings.TrimSpace(req.Name),
		UnitPrice: req.UnitPrice,
		Unit:      catalogdomain.Unit(strings.TrimSpace(req.Unit)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "product.create", "product", resp.ID.String(), map[string]any{
		"name": resp.Name,
	})
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Products
// @Tags         products
// @Produce      json
// @Security     ApiKeyAuth
// @Param        name        query  string  false  "Name"
// @Param        page_token  query  string  false  "Page Token"
// @Param        page_size   query  int     false  "Page Size"
// @Success      200  {object}  catalogdomain.ListResponse
// @Router       /products [get]
func (s *Server) ListProducts(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Name string `form:"name"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.List(c.Request.Context(), catalogdomain.ListRequest{
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
		Name:      strings.TrimSpace(query.Name),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Product
// @Tags         products
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path  string  true  "Product ID"
// @Success      200  {object}  catalogdomain.Product
// @Router       /products/{id} [get]
func (s *Server) GetProduct(c *gin.Context) {
	resp, err := s.catalogSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateProductRequest struct {
	Name      *string `json:"name,omitempty"`
	UnitPrice *int64  `json:"unit_price,omitempty"`
	Unit      *string `json:"unit,omitempty"`
}

// @Summary      Update Product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id       path  string                true  "Product ID"
// @Param        request  body  updateProductRequest  true  "Update Product Request"
// @Success      200  {object}  catalogdomain.Product
// @Router       /products/{id} [put]
func (s *Server) UpdateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	domainReq := catalogdomain.UpdateRequest{
		ID:        c.Param("id"),
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
	}
	if req.Unit != nil {
		unit := catalogdomain.Unit(strings.TrimSpace(*req.Unit))
		domainReq.Unit = &unit
	}

	resp, err := s.catalogSvc.Update(c.Request.Context(), domainReq)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "product.update", "product", resp.ID.String(), map[string]any{
		"name": resp.Name,
	})
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Product
// @Tags         products
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path  string  true  "Product ID"
// @Success      200  {object}  map[string]string
// @Router       /products/{id} [delete]
func (s *Server) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := s.catalogSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "product.delete", "product", id, nil)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
