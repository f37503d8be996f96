package services

import (
	"context"
	"time"

	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/models"
	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Map-backed repository fakes shared by the service tests.

type fakeAccountRepo struct {
	accounts map[uint]*models.Account
	nextID   uint
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[uint]*models.Account{}, nextID: 1}
}

func (f *fakeAccountRepo) Create(ctx context.Context, a *models.Account) error {
	for _, existing := range f.accounts {
		if existing.Email == a.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	a.ID = f.nextID
	f.nextID++
	f.accounts[a.ID] = a
	return nil
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (f *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	for _, a := range f.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccountRepo) Update(ctx context.Context, a *models.Account) error {
	if _, ok := f.accounts[a.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.accounts[a.ID] = a
	return nil
}

func (f *fakeAccountRepo) Delete(ctx context.Context, id uint) error {
	delete(f.accounts, id)
	return nil
}

func (f *fakeAccountRepo) List(ctx context.Context, offset, limit int) ([]*models.Account, int64, error) {
	var out []*models.Account
	for _, a := range f.accounts {
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAccountRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

type fakeRevokedRepo struct {
	tokens map[string]*models.RevokedToken
}

func newFakeRevokedRepo() *fakeRevokedRepo {
	return &fakeRevokedRepo{tokens: map[string]*models.RevokedToken{}}
}

func (f *fakeRevokedRepo) Create(ctx context.Context, t *models.RevokedToken) error {
	f.tokens[t.TokenHash] = t
	return nil
}

func (f *fakeRevokedRepo) ExistsByTokenHash(ctx context.Context, hash string) (bool, error) {
	t, ok := f.tokens[hash]
	if !ok {
		return false, nil
	}
	return !t.IsExpired(), nil
}

func (f *fakeRevokedRepo) DeleteExpired(ctx context.Context) error {
	for hash, t := range f.tokens {
		if t.IsExpired() {
			delete(f.tokens, hash)
		}
	}
	return nil
}

type fakeGrievanceRepo struct {
	grievances map[uint]*models.Grievance
	nextID     uint
}

func newFakeGrievanceRepo() *fakeGrievanceRepo {
	return &fakeGrievanceRepo{grievances: map[uint]*models.Grievance{}, nextID: 1}
}

func (f *fakeGrievanceRepo) Create(ctx context.Context, g *models.Grievance) error {
	g.ID = f.nextID
	f.nextID++
	f.grievances[g.ID] = g
	return nil
}

func (f *fakeGrievanceRepo) GetByID(ctx context.Context, id uint) (*models.Grievance, error) {
	g, ok := f.grievances[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return g, nil
}

func (f *fakeGrievanceRepo) GetByTrackingNo(ctx context.Context, trackingNo string) (*models.Grievance, error) {
	for _, g := range f.grievances {
		if g.TrackingNo == trackingNo {
			return g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGrievanceRepo) Update(ctx context.Context, g *models.Grievance) error {
	if _, ok := f.grievances[g.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.grievances[g.ID] = g
	return nil
}

func (f *fakeGrievanceRepo) Delete(ctx context.Context, id uint) error {
	delete(f.grievances, id)
	return nil
}

func (f *fakeGrievanceRepo) List(ctx context.Context, filter *repositories.GrievanceFilter, offset, limit int) ([]*models.Grievance, int64, error) {
	var out []*models.Grievance
	for _, g := range f.grievances {
		if filter != nil {
			if filter.CitizenID != 0 && g.CitizenID != filter.CitizenID {
				continue
			}
			if filter.Status != "" && g.Status != filter.Status {
				continue
			}
			if filter.AssignedTo != 0 && (g.AssignedTo == nil || *g.AssignedTo != filter.AssignedTo) {
				continue
			}
		}
		out = append(out, g)
	}
	return out, int64(len(out)), nil
}

func (f *fakeGrievanceRepo) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for _, g := range f.grievances {
		if g.DueDate == nil || g.IsOverdue {
			continue
		}
		switch g.Status {
		case models.StatusResolved, models.StatusClosed, models.StatusRejected:
			continue
		}
		if g.DueDate.Before(now) {
			g.IsOverdue = true
			n++
		}
	}
	return n, nil
}

type fakeUpdateRepo struct {
	updates []*models.GrievanceUpdate
}

func (f *fakeUpdateRepo) Create(ctx context.Context, u *models.GrievanceUpdate) error {
	f.updates = append(f.updates, u)
	return nil
}

func (f *fakeUpdateRepo) ListByGrievance(ctx context.Context, grievanceID uint) ([]*models.GrievanceUpdate, error) {
	var out []*models.GrievanceUpdate
	for _, u := range f.updates {
		if u.GrievanceID == grievanceID {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeCategoryRepo struct {
	categories map[uint]*models.Category
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *models.Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, c *models.Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id uint) error {
	delete(f.categories, id)
	return nil
}
