package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/TeemXTech/Grievance-sub002/internal/adapters/http/middleware"
	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/models"
	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/repositories"
	"github.com/TeemXTech/Grievance-sub002/internal/config"
	"github.com/TeemXTech/Grievance-sub002/internal/core/domain"
	"github.com/TeemXTech/Grievance-sub002/internal/core/services"
	"github.com/TeemXTech/Grievance-sub002/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type stubGrievanceRepo struct {
	grievances map[uint]*models.Grievance
}

func (s *stubGrievanceRepo) Create(ctx context.Context, g *models.Grievance) error {
	g.ID = uint(len(s.grievances) + 1)
	s.grievances[g.ID] = g
	return nil
}

func (s *stubGrievanceRepo) GetByID(ctx context.Context, id uint) (*models.Grievance, error) {
	g, ok := s.grievances[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return g, nil
}

func (s *stubGrievanceRepo) GetByTrackingNo(ctx context.Context, trackingNo string) (*models.Grievance, error) {
	for _, g := range s.grievances {
		if g.TrackingNo == trackingNo {
			return g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubGrievanceRepo) Update(ctx context.Context, g *models.Grievance) error {
	s.grievances[g.ID] = g
	return nil
}

func (s *stubGrievanceRepo) Delete(ctx context.Context, id uint) error {
	delete(s.grievances, id)
	return nil
}

func (s *stubGrievanceRepo) List(ctx context.Context, filter *repositories.GrievanceFilter, offset, limit int) ([]*models.Grievance, int64, error) {
	var out []*models.Grievance
	for _, g := range s.grievances {
		out = append(out, g)
	}
	return out, int64(len(out)), nil
}

func (s *stubGrievanceRepo) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

type stubUpdateRepo struct {
	updates []*models.GrievanceUpdate
}

func (s *stubUpdateRepo) Create(ctx context.Context, u *models.GrievanceUpdate) error {
	s.updates = append(s.updates, u)
	return nil
}

func (s *stubUpdateRepo) ListByGrievance(ctx context.Context, grievanceID uint) ([]*models.GrievanceUpdate, error) {
	return s.updates, nil
}

type stubCategoryRepo struct{}

func (s *stubCategoryRepo) Create(ctx context.Context, c *models.Category) error { return nil }
func (s *stubCategoryRepo) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return &models.Category{ID: id, Code: "WATER", Name: "Water Supply", SLADays: 7}, nil
}
func (s *stubCategoryRepo) List(ctx context.Context) ([]*models.Category, error) { return nil, nil }
func (s *stubCategoryRepo) Update(ctx context.Context, c *models.Category) error { return nil }
func (s *stubCategoryRepo) Delete(ctx context.Context, id uint) error            { return nil }

// newGrievanceTestApp wires a real gate, handler, and service over stub
// repositories with one NEW grievance filed by the citizen account.
func newGrievanceTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: handlerTestSecret, ExpiryDays: 7},
	}

	accounts := &stubAccountRepo{accounts: map[uint]*models.Account{
		1: {ID: 1, Email: "admin@example.com", Name: "Admin", Role: domain.RoleAdmin, IsActive: true},
		2: {ID: 2, Email: "back@example.com", Name: "Back Officer", Role: domain.RoleBackOfficer, IsActive: true},
		3: {ID: 3, Email: "citizen@example.com", Name: "Citizen", Role: domain.RoleCitizen, IsActive: true},
	}}
	revoked := &stubRevokedRepo{hashes: map[string]bool{}}
	grievances := &stubGrievanceRepo{grievances: map[uint]*models.Grievance{
		1: {ID: 1, TrackingNo: "GRV-AAAA0000", CitizenID: 3, Subject: "No water", Status: models.StatusNew, Priority: models.PriorityNormal},
	}}

	svc := services.NewGrievanceService(grievances, &stubUpdateRepo{}, &stubCategoryRepo{}, accounts)
	handler := NewGrievanceHandler(svc)

	app := fiber.New()
	app.Use(middleware.Gate(cfg, middleware.DefaultRouteMatrix(), accounts, revoked))
	app.Post("/api/v1/grievances/:id/triage", handler.Triage)
	app.Delete("/api/v1/grievances/:id", handler.Delete)

	return app
}

func grievanceToken(t *testing.T, account *models.Account) string {
	t.Helper()
	token, err := jwt.Generate(account.ID, account.Email, account.Name, account.Role, handlerTestSecret, 7)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

func doAuthed(t *testing.T, app *fiber.App, method, path, token string) *http.Response {
	t.Helper()
	var body io.Reader
	if method == http.MethodPost {
		body = strings.NewReader(`{"note":"checked"}`)
	}
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestCitizenCannotDriveLifecycle(t *testing.T) {
	app := newGrievanceTestApp(t)
	citizen := grievanceToken(t, &models.Account{ID: 3, Email: "citizen@example.com", Name: "Citizen", Role: domain.RoleCitizen})

	resp := doAuthed(t, app, http.MethodPost, "/api/v1/grievances/1/triage", citizen)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("triage by citizen: status = %d, want 403", resp.StatusCode)
	}

	resp = doAuthed(t, app, http.MethodDelete, "/api/v1/grievances/1", citizen)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("delete by citizen: status = %d, want 403", resp.StatusCode)
	}
}

func TestStaffLifecycleRoleSplit(t *testing.T) {
	app := newGrievanceTestApp(t)
	backOfficer := grievanceToken(t, &models.Account{ID: 2, Email: "back@example.com", Name: "Back Officer", Role: domain.RoleBackOfficer})
	admin := grievanceToken(t, &models.Account{ID: 1, Email: "admin@example.com", Name: "Admin", Role: domain.RoleAdmin})

	resp := doAuthed(t, app, http.MethodPost, "/api/v1/grievances/1/triage", backOfficer)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("triage by back officer: status = %d, want 200", resp.StatusCode)
	}

	// Deletion stays with admin
	resp = doAuthed(t, app, http.MethodDelete, "/api/v1/grievances/1", backOfficer)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("delete by back officer: status = %d, want 403", resp.StatusCode)
	}
	resp = doAuthed(t, app, http.MethodDelete, "/api/v1/grievances/1", admin)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("delete by admin: status = %d, want 200", resp.StatusCode)
	}
}
