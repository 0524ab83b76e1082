package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taffe/snackindex/internal/models"
	"github.com/taffe/snackindex/pkg/logging"
)

// CompanyStore is the company read surface the handlers depend on
type CompanyStore interface {
	List(ctx context.Context) ([]models.Company, error)
}

// CompanyAPI serves the company endpoints
type CompanyAPI struct {
	companies CompanyStore
	logger    *zap.Logger
}

// NewCompanyAPI creates a new company API
func NewCompanyAPI(companies CompanyStore) *CompanyAPI {
	return &CompanyAPI{
		companies: companies,
		logger:    logging.WithComponent("company-api"),
	}
}

// List handles GET /companies
func (a *CompanyAPI) List(c *gin.Context) {
	companies, err := a.companies.List(c.Request.Context())
	if err != nil {
		respondError(c, a.logger, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}
