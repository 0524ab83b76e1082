package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/taffe/snackindex/internal/models"
)

type fakeMentionStore struct {
	mentions []models.Mention

	lastLimit  int
	lastDays   int
	lastSource string
}

func (f *fakeMentionStore) List(ctx context.Context, limit int) []models.Mention {
	f.lastLimit = limit
	return f.capped(f.mentions, limit)
}

func (f *fakeMentionStore) BySnack(ctx context.Context, snackID int64, limit int) []models.Mention {
	f.lastLimit = limit
	var out []models.Mention
	for _, m := range f.mentions {
		if m.SnackID == snackID {
			out = append(out, m)
		}
	}
	return f.capped(out, limit)
}

func (f *fakeMentionStore) BySource(ctx context.Context, source string, limit int) []models.Mention {
	f.lastSource = source
	return f.capped(f.mentions, limit)
}

func (f *fakeMentionStore) Recent(ctx context.Context, days int, limit int) []models.Mention {
	f.lastDays = days
	return f.capped(f.mentions, limit)
}

func (f *fakeMentionStore) capped(mentions []models.Mention, limit int) []models.Mention {
	if mentions == nil {
		return []models.Mention{}
	}
	if limit > 0 && len(mentions) > limit {
		return mentions[:limit]
	}
	return mentions
}

func serveMentions(store *fakeMentionStore) *gin.Engine {
	engine := gin.New()
	mentionAPI := NewMentionAPI(store)
	engine.GET("/mentions", mentionAPI.List)
	engine.GET("/mentions/recent", mentionAPI.Recent)
	engine.GET("/mentions/snack/:id", mentionAPI.BySnack)
	engine.GET("/mentions/source/:source", mentionAPI.BySource)
	return engine
}

func TestMentionsEmptyIsOK(t *testing.T) {
	// Soft read path: nothing to show is still a 200 with an empty array
	rec := doRequest(t, serveMentions(&fakeMentionStore{}), "/mentions")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("body = %s, want []", body)
	}
}

func TestMentionsLimit(t *testing.T) {
	store := &fakeMentionStore{mentions: []models.Mention{{ID: 1}, {ID: 2}, {ID: 3}}}
	rec := doRequest(t, serveMentions(store), "/mentions?limit=2")

	var mentions []models.Mention
	if err := json.Unmarshal(rec.Body.Bytes(), &mentions); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(mentions) != 2 {
		t.Errorf("expected 2 mentions, got %d", len(mentions))
	}
	if store.lastLimit != 2 {
		t.Errorf("limit = %d, want 2", store.lastLimit)
	}
}

func TestMentionsRecentDefaultDays(t *testing.T) {
	store := &fakeMentionStore{}
	doRequest(t, serveMentions(store), "/mentions/recent")
	if store.lastDays != 7 {
		t.Errorf("default days = %d, want 7", store.lastDays)
	}

	doRequest(t, serveMentions(store), "/mentions/recent?days=3")
	if store.lastDays != 3 {
		t.Errorf("days = %d, want 3", store.lastDays)
	}
}

func TestMentionsBySnackInvalidID(t *testing.T) {
	rec := doRequest(t, serveMentions(&fakeMentionStore{}), "/mentions/snack/abc")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestMentionsBySource(t *testing.T) {
	store := &fakeMentionStore{mentions: []models.Mention{{ID: 1, Source: "Reddit Submission"}}}
	rec := doRequest(t, serveMentions(store), "/mentions/source/Reddit%20Submission")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if store.lastSource != "Reddit Submission" {
		t.Errorf("source = %q, want %q", store.lastSource, "Reddit Submission")
	}
}
