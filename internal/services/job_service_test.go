package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"

	"jobboard-api/internal/apperrors"
	"jobboard-api/internal/cache/memory"
	"jobboard-api/internal/dtos"
	"jobboard-api/internal/models"
	"jobboard-api/internal/query"
)

func TestCreateRejectsIncompleteRequest(t *testing.T) {
	s := NewJobService(nil, nil, 0, zap.NewNop())

	_, err := s.Create(context.Background(), &dtos.JobRequest{Title: "Only a title"}, "user_1")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if apperrors.AsDomainError(err).Type != apperrors.ErrTypeInvalidInput {
		t.Errorf("error type = %s, want INVALID_INPUT", apperrors.AsDomainError(err).Type)
	}
}

func TestListServedFromCache(t *testing.T) {
	c := memory.New()
	defer c.Close()

	// A nil store proves the cache hit short-circuits the read pipeline.
	s := NewJobService(nil, c, time.Minute, zap.NewNop())
	ctx := context.Background()

	filters := query.Filters{Search: "React"}
	page := query.Page{Page: 1, Limit: 10}
	want := dtos.JobListResponse{
		Jobs:       []models.Job{{Title: "Frontend Developer", CompanyName: "TechCorp"}},
		Pagination: query.Pagination{Page: 1, Limit: 10, Total: 1, Pages: 1},
	}

	raw, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	key := s.listCacheKey(ctx, filters, "recent", page)
	if err := c.Set(ctx, key, string(raw), time.Minute); err != nil {
		t.Fatalf("prewarm: %v", err)
	}

	got, err := s.List(ctx, filters, "recent", page)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got.Jobs) != 1 || got.Jobs[0].Title != "Frontend Developer" {
		t.Errorf("jobs = %+v", got.Jobs)
	}
	if got.Pagination != want.Pagination {
		t.Errorf("pagination = %+v, want %+v", got.Pagination, want.Pagination)
	}
}

func TestInvalidateListCacheChangesKeys(t *testing.T) {
	c := memory.New()
	defer c.Close()
	s := NewJobService(nil, c, time.Minute, zap.NewNop())
	ctx := context.Background()

	filters := query.Filters{}
	page := query.Page{Page: 1, Limit: 10}

	before := s.listCacheKey(ctx, filters, "recent", page)
	s.invalidateListCache(ctx)
	after := s.listCacheKey(ctx, filters, "recent", page)

	if before == after {
		t.Error("invalidation must move the list cache namespace")
	}
}
