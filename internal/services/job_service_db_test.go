package services

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"jobboard-api/internal/apperrors"
	"jobboard-api/internal/dtos"
	"jobboard-api/internal/models"
)

// newTestDB opens a throwaway sqlite store with the full schema so service
// behavior that spans queries (provisioning, counters, partial updates) runs
// against a real database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "jobboard.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Job{}, &models.Application{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func validJobRequest() *dtos.JobRequest {
	return &dtos.JobRequest{
		Title:           "Platform Engineer",
		CompanyName:     "TechCorp",
		Description:     "Keep the lights on.",
		EmploymentType:  "Full-time",
		ExperienceLevel: "Senior",
		Category:        "Software",
		Location:        "Berlin",
		SalaryMin:       70000,
		SalaryMax:       100000,
		ContactEmail:    "jobs@techcorp.com",
	}
}

func TestCreateProvisionsRecruiterOwner(t *testing.T) {
	db := newTestDB(t)
	s := NewJobService(db, nil, 0, zap.NewNop())

	job, err := s.Create(context.Background(), validJobRequest(), "user_new")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var owner models.User
	if err := db.Where("clerk_id = ?", "user_new").First(&owner).Error; err != nil {
		t.Fatalf("owner row not provisioned: %v", err)
	}
	if owner.Role != models.RoleRecruiter {
		t.Errorf("provisioned owner role = %q, want %q", owner.Role, models.RoleRecruiter)
	}
	if job.RecruiterID != owner.ID {
		t.Errorf("job recruiter id = %d, want %d", job.RecruiterID, owner.ID)
	}

	// Posting again under the same reference reuses the row.
	if _, err := s.Create(context.Background(), validJobRequest(), "user_new"); err != nil {
		t.Fatalf("second create: %v", err)
	}
	var owners int64
	if err := db.Model(&models.User{}).Where("clerk_id = ?", "user_new").Count(&owners).Error; err != nil {
		t.Fatalf("count owners: %v", err)
	}
	if owners != 1 {
		t.Errorf("owner rows = %d, want 1", owners)
	}
}

func TestCreateKeepsExistingOwnerRole(t *testing.T) {
	db := newTestDB(t)
	seeker := models.User{ClerkID: "user_seeker", Role: models.RoleJobSeeker}
	if err := db.Create(&seeker).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	s := NewJobService(db, nil, 0, zap.NewNop())

	if _, err := s.Create(context.Background(), validJobRequest(), "user_seeker"); err != nil {
		t.Fatalf("create: %v", err)
	}

	var owner models.User
	if err := db.First(&owner, seeker.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if owner.Role != models.RoleJobSeeker {
		t.Errorf("existing owner role changed to %q", owner.Role)
	}
}

func TestGetIncrementsViewCountPerFetch(t *testing.T) {
	db := newTestDB(t)
	s := NewJobService(db, nil, 0, zap.NewNop())

	created, err := s.Create(context.Background(), validJobRequest(), "user_views")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := s.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("first get: %v", err)
	}
	if first.ViewCount != 0 {
		t.Errorf("first fetch view count = %d, want 0", first.ViewCount)
	}

	second, err := s.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if second.ViewCount != 1 {
		t.Errorf("second fetch view count = %d, want 1", second.ViewCount)
	}

	var stored models.Job
	if err := db.First(&stored, created.ID).Error; err != nil {
		t.Fatalf("reload job: %v", err)
	}
	if stored.ViewCount != 2 {
		t.Errorf("stored view count = %d after two fetches, want 2", stored.ViewCount)
	}
}

func TestUpdatePersistsZeroValues(t *testing.T) {
	db := newTestDB(t)
	s := NewJobService(db, nil, 0, zap.NewNop())

	req := validJobRequest()
	req.TestRequired = true
	created, err := s.Create(context.Background(), req, "user_upd")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var upd dtos.JobUpdateRequest
	if err := json.Unmarshal([]byte(`{"test_required":false,"salary_min":0,"company_logo_url":""}`), &upd); err != nil {
		t.Fatalf("decode: %v", err)
	}

	updated, err := s.Update(context.Background(), created.ID, created.RecruiterID, &upd)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.TestRequired {
		t.Error("test_required=false was not applied")
	}
	if updated.SalaryMin != 0 {
		t.Errorf("salary_min = %d, want 0", updated.SalaryMin)
	}
	if updated.Title != "Platform Engineer" {
		t.Errorf("unsent field changed: title = %q", updated.Title)
	}

	var stored models.Job
	if err := db.First(&stored, created.ID).Error; err != nil {
		t.Fatalf("reload job: %v", err)
	}
	if stored.TestRequired || stored.SalaryMin != 0 {
		t.Errorf("zero values not persisted: test_required=%v salary_min=%d", stored.TestRequired, stored.SalaryMin)
	}
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	db := newTestDB(t)
	s := NewJobService(db, nil, 0, zap.NewNop())

	created, err := s.Create(context.Background(), validJobRequest(), "user_owner")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var upd dtos.JobUpdateRequest
	if err := json.Unmarshal([]byte(`{"title":"Hijacked"}`), &upd); err != nil {
		t.Fatalf("decode: %v", err)
	}

	_, err = s.Update(context.Background(), created.ID, created.RecruiterID+1, &upd)
	if apperrors.AsDomainError(err).Type != apperrors.ErrTypeForbidden {
		t.Errorf("error type = %v, want FORBIDDEN", err)
	}
}
