package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/models"
	"github.com/TeemXTech/Grievance-sub002/internal/core/domain"
)

type grievanceFixture struct {
	svc        *GrievanceService
	grievances *fakeGrievanceRepo
	updates    *fakeUpdateRepo
	accounts   *fakeAccountRepo
}

func newGrievanceFixture(t *testing.T) *grievanceFixture {
	t.Helper()

	grievances := newFakeGrievanceRepo()
	updates := &fakeUpdateRepo{}
	categories := &fakeCategoryRepo{categories: map[uint]*models.Category{
		1: {ID: 1, Code: "WATER", Name: "Water Supply", SLADays: 7},
	}}
	accounts := newFakeAccountRepo()

	// IDs are assigned in order: 1 citizen, 2 back officer, 3 field
	// officer, 4 second citizen, 5 admin
	ctx := context.Background()
	for _, a := range []*models.Account{
		{Email: "citizen@example.com", Name: "Citizen", Role: domain.RoleCitizen, IsActive: true},
		{Email: "back@example.com", Name: "Back Officer", Role: domain.RoleBackOfficer, IsActive: true},
		{Email: "field@example.com", Name: "Field Officer", Role: domain.RoleFieldOfficer, IsActive: true},
		{Email: "other@example.com", Name: "Other Citizen", Role: domain.RoleCitizen, IsActive: true},
		{Email: "admin@example.com", Name: "Admin", Role: domain.RoleAdmin, IsActive: true},
	} {
		if err := accounts.Create(ctx, a); err != nil {
			t.Fatalf("failed to seed account: %v", err)
		}
	}

	return &grievanceFixture{
		svc:        NewGrievanceService(grievances, updates, categories, accounts),
		grievances: grievances,
		updates:    updates,
		accounts:   accounts,
	}
}

func (f *grievanceFixture) submit(t *testing.T) *models.Grievance {
	t.Helper()
	g, err := f.svc.Submit(context.Background(), 1, &SubmitInput{
		Subject:     "No water supply",
		Description: "Street has had no water for three days",
		CategoryID:  1,
		District:    "NORTH",
	}, "10.0.0.1")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	return g
}

func TestSubmitGrievance(t *testing.T) {
	f := newGrievanceFixture(t)
	g := f.submit(t)

	if !strings.HasPrefix(g.TrackingNo, "GRV-") || len(g.TrackingNo) != 12 {
		t.Errorf("tracking number %q should be GRV- plus 8 chars", g.TrackingNo)
	}
	if g.Status != models.StatusNew {
		t.Errorf("Status = %q, want NEW", g.Status)
	}
	if g.Priority != models.PriorityNormal {
		t.Errorf("Priority = %q, want NORMAL", g.Priority)
	}
	if g.DueDate == nil {
		t.Fatal("expected a due date derived from the category SLA")
	}
	wantDue := time.Now().AddDate(0, 0, 7)
	if diff := g.DueDate.Sub(wantDue); diff < -time.Minute || diff > time.Minute {
		t.Errorf("due date %v not within the 7-day SLA window", g.DueDate)
	}

	// Submission must leave a history row
	history, err := f.svc.History(context.Background(), g.ID, 1, domain.RoleCitizen)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 1 || history[0].Action != models.ActionSubmit {
		t.Errorf("expected a single SUBMIT history row, got %+v", history)
	}
}

func TestSubmitUnknownCategory(t *testing.T) {
	f := newGrievanceFixture(t)
	_, err := f.svc.Submit(context.Background(), 1, &SubmitInput{
		Subject:     "x",
		Description: "y",
		CategoryID:  99,
	}, "")
	if err != ErrCategoryNotFound {
		t.Errorf("error = %v, want ErrCategoryNotFound", err)
	}
}

func TestLifecycleHappyPath(t *testing.T) {
	f := newGrievanceFixture(t)
	ctx := context.Background()
	g := f.submit(t)

	if _, err := f.svc.Triage(ctx, g.ID, 2, domain.RoleBackOfficer, models.PriorityHigh, "looks urgent", ""); err != nil {
		t.Fatalf("Triage failed: %v", err)
	}
	if g, _ := f.grievances.GetByID(ctx, g.ID); g.Status != models.StatusInReview || g.Priority != models.PriorityHigh {
		t.Fatalf("after triage: status=%q priority=%q", g.Status, g.Priority)
	}

	if _, err := f.svc.Assign(ctx, g.ID, 2, domain.RoleBackOfficer, 3, "take this", ""); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if _, err := f.svc.Progress(ctx, g.ID, 3, domain.RoleFieldOfficer, "on site", ""); err != nil {
		t.Fatalf("Progress failed: %v", err)
	}

	resolved, err := f.svc.Resolve(ctx, g.ID, 3, domain.RoleFieldOfficer, "valve replaced", "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.ResolvedAt == nil {
		t.Error("ResolvedAt should be set")
	}
	if resolved.ResolutionNote != "valve replaced" {
		t.Errorf("ResolutionNote = %q", resolved.ResolutionNote)
	}

	if _, err := f.svc.Close(ctx, g.ID, 5, domain.RoleAdmin, "confirmed", ""); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	history, err := f.svc.History(ctx, g.ID, 2, domain.RoleBackOfficer)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 6 {
		t.Errorf("expected 6 history rows (submit..close), got %d", len(history))
	}
}

func TestInvalidTransitions(t *testing.T) {
	f := newGrievanceFixture(t)
	ctx := context.Background()
	g := f.submit(t)

	// NEW cannot jump straight to assigned, resolved, or closed
	if _, err := f.svc.Assign(ctx, g.ID, 2, domain.RoleBackOfficer, 3, "", ""); err != ErrInvalidTransition {
		t.Errorf("Assign from NEW: error = %v, want ErrInvalidTransition", err)
	}
	if _, err := f.svc.Resolve(ctx, g.ID, 3, domain.RoleFieldOfficer, "done", ""); err != ErrInvalidTransition {
		t.Errorf("Resolve from NEW: error = %v, want ErrInvalidTransition", err)
	}
	if _, err := f.svc.Close(ctx, g.ID, 5, domain.RoleAdmin, "", ""); err != ErrInvalidTransition {
		t.Errorf("Close from NEW: error = %v, want ErrInvalidTransition", err)
	}
	// And a NEW grievance cannot be reopened
	if _, err := f.svc.Reopen(ctx, g.ID, 1, "", ""); err != ErrInvalidTransition {
		t.Errorf("Reopen from NEW: error = %v, want ErrInvalidTransition", err)
	}
}

func TestAssignRequiresFieldOfficer(t *testing.T) {
	f := newGrievanceFixture(t)
	ctx := context.Background()
	g := f.submit(t)

	if _, err := f.svc.Triage(ctx, g.ID, 2, domain.RoleBackOfficer, "", "", ""); err != nil {
		t.Fatalf("Triage failed: %v", err)
	}

	// Account 2 is a back officer, not a field officer
	if _, err := f.svc.Assign(ctx, g.ID, 2, domain.RoleBackOfficer, 2, "", ""); err != ErrAssigneeNotOfficer {
		t.Errorf("error = %v, want ErrAssigneeNotOfficer", err)
	}
	// Unknown assignee
	if _, err := f.svc.Assign(ctx, g.ID, 2, domain.RoleBackOfficer, 99, "", ""); err != ErrAssigneeNotOfficer {
		t.Errorf("error = %v, want ErrAssigneeNotOfficer", err)
	}
}

func TestCitizenOwnership(t *testing.T) {
	f := newGrievanceFixture(t)
	ctx := context.Background()
	g := f.submit(t)

	// Another citizen cannot read it
	if _, err := f.svc.Get(ctx, g.ID, 4, domain.RoleCitizen); err != ErrNotGrievanceOwner {
		t.Errorf("Get by other citizen: error = %v, want ErrNotGrievanceOwner", err)
	}
	// Staff can
	if _, err := f.svc.Get(ctx, g.ID, 2, domain.RoleBackOfficer); err != nil {
		t.Errorf("Get by back officer failed: %v", err)
	}
}

func TestReopenOwnerOnly(t *testing.T) {
	f := newGrievanceFixture(t)
	ctx := context.Background()
	g := f.submit(t)

	// Walk it to RESOLVED
	if _, err := f.svc.Triage(ctx, g.ID, 2, domain.RoleBackOfficer, "", "", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Assign(ctx, g.ID, 2, domain.RoleBackOfficer, 3, "", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Progress(ctx, g.ID, 3, domain.RoleFieldOfficer, "", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Resolve(ctx, g.ID, 3, domain.RoleFieldOfficer, "done", ""); err != nil {
		t.Fatal(err)
	}

	if _, err := f.svc.Reopen(ctx, g.ID, 4, "not fixed", ""); err != ErrNotGrievanceOwner {
		t.Errorf("Reopen by non-owner: error = %v, want ErrNotGrievanceOwner", err)
	}

	reopened, err := f.svc.Reopen(ctx, g.ID, 1, "still no water", "")
	if err != nil {
		t.Fatalf("Reopen by owner failed: %v", err)
	}
	if reopened.Status != models.StatusReopened {
		t.Errorf("Status = %q, want REOPENED", reopened.Status)
	}
	// A reopened grievance goes back through review
	if _, err := f.svc.Triage(ctx, g.ID, 2, domain.RoleBackOfficer, "", "", ""); err != nil {
		t.Errorf("Triage after reopen failed: %v", err)
	}
}

func TestTrack(t *testing.T) {
	f := newGrievanceFixture(t)
	g := f.submit(t)

	found, err := f.svc.Track(context.Background(), g.TrackingNo)
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if found.ID != g.ID {
		t.Errorf("Track returned grievance %d, want %d", found.ID, g.ID)
	}

	if _, err := f.svc.Track(context.Background(), "GRV-NOPE0000"); err != ErrGrievanceNotFound {
		t.Errorf("error = %v, want ErrGrievanceNotFound", err)
	}
}

func TestMarkOverdue(t *testing.T) {
	f := newGrievanceFixture(t)
	ctx := context.Background()
	g := f.submit(t)

	past := time.Now().AddDate(0, 0, -1)
	g.DueDate = &past
	if err := f.grievances.Update(ctx, g); err != nil {
		t.Fatal(err)
	}

	n, err := f.svc.MarkOverdue(ctx)
	if err != nil {
		t.Fatalf("MarkOverdue failed: %v", err)
	}
	if n != 1 {
		t.Errorf("flagged %d grievances, want 1", n)
	}
	if g, _ := f.grievances.GetByID(ctx, g.ID); !g.IsOverdue {
		t.Error("grievance should be flagged overdue")
	}
}

func TestLifecycleRejectsCitizen(t *testing.T) {
	f := newGrievanceFixture(t)
	ctx := context.Background()
	g := f.submit(t)

	// Account 1 filed this grievance; owning it grants no staff powers
	steps := []struct {
		name string
		call func() error
	}{
		{"triage", func() error {
			_, err := f.svc.Triage(ctx, g.ID, 1, domain.RoleCitizen, "", "", "")
			return err
		}},
		{"assign", func() error {
			_, err := f.svc.Assign(ctx, g.ID, 1, domain.RoleCitizen, 3, "", "")
			return err
		}},
		{"progress", func() error {
			_, err := f.svc.Progress(ctx, g.ID, 1, domain.RoleCitizen, "", "")
			return err
		}},
		{"resolve", func() error {
			_, err := f.svc.Resolve(ctx, g.ID, 1, domain.RoleCitizen, "done", "")
			return err
		}},
		{"close", func() error {
			_, err := f.svc.Close(ctx, g.ID, 1, domain.RoleCitizen, "", "")
			return err
		}},
		{"reject", func() error {
			_, err := f.svc.Reject(ctx, g.ID, 1, domain.RoleCitizen, "", "")
			return err
		}},
		{"delete", func() error {
			return f.svc.Delete(ctx, g.ID, 1, domain.RoleCitizen)
		}},
	}
	for _, s := range steps {
		if err := s.call(); err != ErrRoleNotAllowed {
			t.Errorf("%s by citizen: error = %v, want ErrRoleNotAllowed", s.name, err)
		}
	}

	// The grievance must be untouched
	if g, _ := f.grievances.GetByID(ctx, g.ID); g.Status != models.StatusNew {
		t.Errorf("Status = %q, want NEW", g.Status)
	}
}

func TestLifecycleRoleSplit(t *testing.T) {
	f := newGrievanceFixture(t)
	ctx := context.Background()
	g := f.submit(t)

	// Field officers work assignments, they do not run the desk
	if _, err := f.svc.Triage(ctx, g.ID, 3, domain.RoleFieldOfficer, "", "", ""); err != ErrRoleNotAllowed {
		t.Errorf("Triage by field officer: error = %v, want ErrRoleNotAllowed", err)
	}
	if _, err := f.svc.Triage(ctx, g.ID, 2, domain.RoleBackOfficer, "", "", ""); err != nil {
		t.Fatalf("Triage failed: %v", err)
	}

	if _, err := f.svc.Assign(ctx, g.ID, 3, domain.RoleFieldOfficer, 3, "", ""); err != ErrRoleNotAllowed {
		t.Errorf("Assign by field officer: error = %v, want ErrRoleNotAllowed", err)
	}
	if _, err := f.svc.Assign(ctx, g.ID, 2, domain.RoleBackOfficer, 3, "", ""); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	// Back officers hand work out, they do not perform it
	if _, err := f.svc.Progress(ctx, g.ID, 2, domain.RoleBackOfficer, "", ""); err != ErrRoleNotAllowed {
		t.Errorf("Progress by back officer: error = %v, want ErrRoleNotAllowed", err)
	}
	if _, err := f.svc.Progress(ctx, g.ID, 3, domain.RoleFieldOfficer, "", ""); err != nil {
		t.Fatalf("Progress failed: %v", err)
	}
	if _, err := f.svc.Resolve(ctx, g.ID, 2, domain.RoleBackOfficer, "done", ""); err != ErrRoleNotAllowed {
		t.Errorf("Resolve by back officer: error = %v, want ErrRoleNotAllowed", err)
	}
	if _, err := f.svc.Resolve(ctx, g.ID, 3, domain.RoleFieldOfficer, "done", ""); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	// Closure and removal stay with admin
	if _, err := f.svc.Close(ctx, g.ID, 2, domain.RoleBackOfficer, "", ""); err != ErrRoleNotAllowed {
		t.Errorf("Close by back officer: error = %v, want ErrRoleNotAllowed", err)
	}
	if _, err := f.svc.Close(ctx, g.ID, 5, domain.RoleAdmin, "confirmed", ""); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := f.svc.Delete(ctx, g.ID, 2, domain.RoleBackOfficer); err != ErrRoleNotAllowed {
		t.Errorf("Delete by back officer: error = %v, want ErrRoleNotAllowed", err)
	}
	if err := f.svc.Delete(ctx, g.ID, 5, domain.RoleAdmin); err != nil {
		t.Errorf("Delete by admin failed: %v", err)
	}
}
