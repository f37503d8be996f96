package services

import (
	"context"
	"time"

	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/models"
	"github.com/TeemXTech/Grievance-sub002/internal/core/domain"

	"gorm.io/gorm"
)

// DashboardService handles dashboard aggregation queries
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// ============================================================
// Admin Dashboard
// ============================================================

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	// Account statistics
	TotalAccounts int64 `json:"total_accounts"`
	TotalCitizens int64 `json:"total_citizens"`
	TotalOfficers int64 `json:"total_officers"`

	// Grievance statistics
	TotalGrievances    int64 `json:"total_grievances"`
	OpenGrievances     int64 `json:"open_grievances"`
	ResolvedGrievances int64 `json:"resolved_grievances"`
	OverdueGrievances  int64 `json:"overdue_grievances"`

	// Monthly statistics
	GrievancesThisMonth int64 `json:"grievances_this_month"`
	ResolvedThisMonth   int64 `json:"resolved_this_month"`

	// Breakdowns
	ByStatus   []StatusCount   `json:"by_status"`
	ByCategory []CategoryCount `json:"by_category"`
	ByDistrict []DistrictCount `json:"by_district"`

	// Recent activity
	RecentGrievances []GrievanceSummary `json:"recent_grievances"`

	// Officer workload
	OfficerWorkload []OfficerStats `json:"officer_workload"`
}

// StatusCount represents a per-status tally
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// CategoryCount represents a per-category tally
type CategoryCount struct {
	CategoryID uint   `json:"category_id"`
	Name       string `json:"name"`
	Count      int64  `json:"count"`
}

// DistrictCount represents a per-district tally
type DistrictCount struct {
	District string `json:"district"`
	Count    int64  `json:"count"`
}

// GrievanceSummary represents a grievance summary row
type GrievanceSummary struct {
	ID         uint      `json:"id"`
	TrackingNo string    `json:"tracking_no"`
	Subject    string    `json:"subject"`
	Status     string    `json:"status"`
	Priority   string    `json:"priority"`
	District   string    `json:"district"`
	CreatedAt  time.Time `json:"created_at"`
}

// OfficerStats represents field officer workload
type OfficerStats struct {
	OfficerID  uint   `json:"officer_id"`
	Name       string `json:"name"`
	Assigned   int64  `json:"assigned"`
	InProgress int64  `json:"in_progress"`
	Resolved   int64  `json:"resolved"`
}

var openStatuses = []string{
	models.StatusNew,
	models.StatusInReview,
	models.StatusAssigned,
	models.StatusInProgress,
	models.StatusReopened,
}

// GetAdminDashboard returns the full system overview
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{}

	// Account counts
	s.db.WithContext(ctx).Table("accounts").Where("deleted_at IS NULL").Count(&data.TotalAccounts)
	s.db.WithContext(ctx).Table("accounts").Where("role = ? AND deleted_at IS NULL", domain.RoleCitizen).Count(&data.TotalCitizens)
	s.db.WithContext(ctx).Table("accounts").
		Where("role IN ? AND deleted_at IS NULL", []domain.Role{domain.RoleBackOfficer, domain.RoleFieldOfficer}).
		Count(&data.TotalOfficers)

	// Grievance counts
	s.db.WithContext(ctx).Table("grievances").Where("deleted_at IS NULL").Count(&data.TotalGrievances)
	s.db.WithContext(ctx).Table("grievances").
		Where("status IN ? AND deleted_at IS NULL", openStatuses).
		Count(&data.OpenGrievances)
	s.db.WithContext(ctx).Table("grievances").
		Where("status = ? AND deleted_at IS NULL", models.StatusResolved).
		Count(&data.ResolvedGrievances)
	s.db.WithContext(ctx).Table("grievances").
		Where("is_overdue = ? AND deleted_at IS NULL", true).
		Count(&data.OverdueGrievances)

	// Monthly
	monthStart := time.Now().AddDate(0, 0, 1-time.Now().Day()).Truncate(24 * time.Hour)
	s.db.WithContext(ctx).Table("grievances").
		Where("created_at >= ? AND deleted_at IS NULL", monthStart).
		Count(&data.GrievancesThisMonth)
	s.db.WithContext(ctx).Table("grievances").
		Where("resolved_at >= ? AND deleted_at IS NULL", monthStart).
		Count(&data.ResolvedThisMonth)

	// Breakdowns
	s.db.WithContext(ctx).Table("grievances").
		Select("status, COUNT(*) as count").
		Where("deleted_at IS NULL").
		Group("status").
		Scan(&data.ByStatus)

	s.db.WithContext(ctx).Table("grievances").
		Select("grievances.category_id, categories.name, COUNT(*) as count").
		Joins("JOIN categories ON categories.id = grievances.category_id").
		Where("grievances.deleted_at IS NULL").
		Group("grievances.category_id, categories.name").
		Scan(&data.ByCategory)

	s.db.WithContext(ctx).Table("grievances").
		Select("district, COUNT(*) as count").
		Where("deleted_at IS NULL AND district != ''").
		Group("district").
		Scan(&data.ByDistrict)

	// Recent
	s.db.WithContext(ctx).Table("grievances").
		Select("id, tracking_no, subject, status, priority, district, created_at").
		Where("deleted_at IS NULL").
		Order("created_at DESC").
		Limit(10).
		Scan(&data.RecentGrievances)

	// Officer workload
	s.db.WithContext(ctx).Table("grievances").
		Select(`accounts.id as officer_id, accounts.name,
			SUM(CASE WHEN grievances.status = 'ASSIGNED' THEN 1 ELSE 0 END) as assigned,
			SUM(CASE WHEN grievances.status = 'IN_PROGRESS' THEN 1 ELSE 0 END) as in_progress,
			SUM(CASE WHEN grievances.status = 'RESOLVED' THEN 1 ELSE 0 END) as resolved`).
		Joins("JOIN accounts ON accounts.id = grievances.assigned_to").
		Where("grievances.deleted_at IS NULL").
		Group("accounts.id, accounts.name").
		Scan(&data.OfficerWorkload)

	return data, nil
}

// ============================================================
// Minister Dashboard
// ============================================================

// MinisterDashboardData represents the minister/PA summary view
type MinisterDashboardData struct {
	OpenGrievances    int64              `json:"open_grievances"`
	OverdueGrievances int64              `json:"overdue_grievances"`
	ResolvedThisMonth int64              `json:"resolved_this_month"`
	ByDistrict        []DistrictCount    `json:"by_district"`
	ByCategory        []CategoryCount    `json:"by_category"`
	UrgentGrievances  []GrievanceSummary `json:"urgent_grievances"`
}

// GetMinisterDashboard returns the aggregate view for the minister's office
func (s *DashboardService) GetMinisterDashboard(ctx context.Context) (*MinisterDashboardData, error) {
	data := &MinisterDashboardData{}

	s.db.WithContext(ctx).Table("grievances").
		Where("status IN ? AND deleted_at IS NULL", openStatuses).
		Count(&data.OpenGrievances)
	s.db.WithContext(ctx).Table("grievances").
		Where("is_overdue = ? AND deleted_at IS NULL", true).
		Count(&data.OverdueGrievances)

	monthStart := time.Now().AddDate(0, 0, 1-time.Now().Day()).Truncate(24 * time.Hour)
	s.db.WithContext(ctx).Table("grievances").
		Where("resolved_at >= ? AND deleted_at IS NULL", monthStart).
		Count(&data.ResolvedThisMonth)

	s.db.WithContext(ctx).Table("grievances").
		Select("district, COUNT(*) as count").
		Where("deleted_at IS NULL AND district != ''").
		Group("district").
		Scan(&data.ByDistrict)

	s.db.WithContext(ctx).Table("grievances").
		Select("grievances.category_id, categories.name, COUNT(*) as count").
		Joins("JOIN categories ON categories.id = grievances.category_id").
		Where("grievances.deleted_at IS NULL").
		Group("grievances.category_id, categories.name").
		Scan(&data.ByCategory)

	s.db.WithContext(ctx).Table("grievances").
		Select("id, tracking_no, subject, status, priority, district, created_at").
		Where("priority = ? AND status IN ? AND deleted_at IS NULL", models.PriorityUrgent, openStatuses).
		Order("created_at ASC").
		Limit(10).
		Scan(&data.UrgentGrievances)

	return data, nil
}

// ============================================================
// Officer Dashboard
// ============================================================

// OfficerDashboardData represents an officer's personal queue
type OfficerDashboardData struct {
	Assigned       int64              `json:"assigned"`
	InProgress     int64              `json:"in_progress"`
	ResolvedTotal  int64              `json:"resolved_total"`
	Overdue        int64              `json:"overdue"`
	PendingTriage  int64              `json:"pending_triage"`
	MyGrievances   []GrievanceSummary `json:"my_grievances"`
}

// GetOfficerDashboard returns the queue for one officer
func (s *DashboardService) GetOfficerDashboard(ctx context.Context, officerID uint) (*OfficerDashboardData, error) {
	data := &OfficerDashboardData{}

	s.db.WithContext(ctx).Table("grievances").
		Where("assigned_to = ? AND status = ? AND deleted_at IS NULL", officerID, models.StatusAssigned).
		Count(&data.Assigned)
	s.db.WithContext(ctx).Table("grievances").
		Where("assigned_to = ? AND status = ? AND deleted_at IS NULL", officerID, models.StatusInProgress).
		Count(&data.InProgress)
	s.db.WithContext(ctx).Table("grievances").
		Where("assigned_to = ? AND status = ? AND deleted_at IS NULL", officerID, models.StatusResolved).
		Count(&data.ResolvedTotal)
	s.db.WithContext(ctx).Table("grievances").
		Where("assigned_to = ? AND is_overdue = ? AND deleted_at IS NULL", officerID, true).
		Count(&data.Overdue)
	s.db.WithContext(ctx).Table("grievances").
		Where("status IN ? AND deleted_at IS NULL", []string{models.StatusNew, models.StatusReopened}).
		Count(&data.PendingTriage)

	s.db.WithContext(ctx).Table("grievances").
		Select("id, tracking_no, subject, status, priority, district, created_at").
		Where("assigned_to = ? AND status IN ? AND deleted_at IS NULL", officerID, openStatuses).
		Order("created_at ASC").
		Limit(20).
		Scan(&data.MyGrievances)

	return data, nil
}

// ============================================================
// Citizen Dashboard
// ============================================================

// CitizenDashboardData represents a citizen's own summary
type CitizenDashboardData struct {
	Total        int64              `json:"total"`
	Open         int64              `json:"open"`
	Resolved     int64              `json:"resolved"`
	MyGrievances []GrievanceSummary `json:"my_grievances"`
}

// GetCitizenDashboard returns a citizen's own grievance summary
func (s *DashboardService) GetCitizenDashboard(ctx context.Context, citizenID uint) (*CitizenDashboardData, error) {
	data := &CitizenDashboardData{}

	s.db.WithContext(ctx).Table("grievances").
		Where("citizen_id = ? AND deleted_at IS NULL", citizenID).
		Count(&data.Total)
	s.db.WithContext(ctx).Table("grievances").
		Where("citizen_id = ? AND status IN ? AND deleted_at IS NULL", citizenID, openStatuses).
		Count(&data.Open)
	s.db.WithContext(ctx).Table("grievances").
		Where("citizen_id = ? AND status IN ? AND deleted_at IS NULL", citizenID,
			[]string{models.StatusResolved, models.StatusClosed}).
		Count(&data.Resolved)

	s.db.WithContext(ctx).Table("grievances").
		Select("id, tracking_no, subject, status, priority, district, created_at").
		Where("citizen_id = ? AND deleted_at IS NULL", citizenID).
		Order("created_at DESC").
		Limit(10).
		Scan(&data.MyGrievances)

	return data, nil
}
