package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/taffe/snackindex/internal/models"
)

const defaultRecentDays = 7

// MentionStore is the mention read surface the handlers depend on. All
// methods degrade to an empty slice on store failure, so none return errors.
type MentionStore interface {
	List(ctx context.Context, limit int) []models.Mention
	BySnack(ctx context.Context, snackID int64, limit int) []models.Mention
	BySource(ctx context.Context, source string, limit int) []models.Mention
	Recent(ctx context.Context, days int, limit int) []models.Mention
}

// MentionAPI serves the mention endpoints
type MentionAPI struct {
	mentions MentionStore
}

// NewMentionAPI creates a new mention API
func NewMentionAPI(mentions MentionStore) *MentionAPI {
	return &MentionAPI{mentions: mentions}
}

// List handles GET /mentions?limit=
func (a *MentionAPI) List(c *gin.Context) {
	c.JSON(http.StatusOK, a.mentions.List(c.Request.Context(), queryInt(c, "limit", 0)))
}

// BySnack handles GET /mentions/snack/:id?limit=
func (a *MentionAPI) BySnack(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "invalid snack id")
		return
	}
	c.JSON(http.StatusOK, a.mentions.BySnack(c.Request.Context(), id, queryInt(c, "limit", 0)))
}

// BySource handles GET /mentions/source/:source?limit=
func (a *MentionAPI) BySource(c *gin.Context) {
	c.JSON(http.StatusOK, a.mentions.BySource(c.Request.Context(), c.Param("source"), queryInt(c, "limit", 0)))
}

// Recent handles GET /mentions/recent?days=&limit=
func (a *MentionAPI) Recent(c *gin.Context) {
	days := queryInt(c, "days", defaultRecentDays)
	if days <= 0 {
		days = defaultRecentDays
	}
	c.JSON(http.StatusOK, a.mentions.Recent(c.Request.Context(), days, queryInt(c, "limit", 0)))
}

func queryInt(c *gin.Context, name string, defaultValue int) int {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		return defaultValue
	}
	return parsed
}
