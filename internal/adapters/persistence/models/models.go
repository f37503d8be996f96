package models

import (
	"time"

	"github.com/TeemXTech/Grievance-sub002/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Auth & Account Tables
// ============================================================

// Account represents accounts table
type Account struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Role      domain.Role    `gorm:"size:20;default:'CITIZEN'" json:"role"`
	Phone     string         `gorm:"size:20" json:"phone,omitempty"`
	District  string         `gorm:"size:50" json:"district,omitempty"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Account) TableName() string {
	return "accounts"
}

// AccountResponse DTO
type AccountResponse struct {
	ID        uint        `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	Phone     string      `json:"phone,omitempty"`
	District  string      `json:"district,omitempty"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
}

func (a *Account) ToResponse() *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		Role:      a.Role,
		Phone:     a.Phone,
		District:  a.District,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
}

// RevokedToken represents revoked_tokens table.
// Identity tokens are stateless; a row here denylists one token (by hash)
// until its natural expiry, so logout takes effect server-side.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AccountID uint      `gorm:"index;not null" json:"account_id"`
	TokenHash string    `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (RevokedToken) TableName() string {
	return "revoked_tokens"
}

func (t *RevokedToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// ============================================================
// Master Tables
// ============================================================

// Category is a grievance category (master data)
type Category struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Code        string         `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	SLADays     int            `gorm:"not null;default:14" json:"sla_days"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

// District is an administrative district (master data)
type District struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Code      string         `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (District) TableName() string {
	return "districts"
}

// ============================================================
// Grievance Tables
// ============================================================

// Grievance statuses
const (
	StatusNew        = "NEW"
	StatusInReview   = "IN_REVIEW"
	StatusAssigned   = "ASSIGNED"
	StatusInProgress = "IN_PROGRESS"
	StatusResolved   = "RESOLVED"
	StatusClosed     = "CLOSED"
	StatusRejected   = "REJECTED"
	StatusReopened   = "REOPENED"
)

// Grievance priorities
const (
	PriorityLow    = "LOW"
	PriorityNormal = "NORMAL"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// Grievance is the main grievance table
type Grievance struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	TrackingNo     string         `gorm:"size:30;uniqueIndex;not null" json:"tracking_no"`
	CitizenID      uint           `gorm:"not null;index" json:"citizen_id"`
	Subject        string         `gorm:"size:200;not null" json:"subject"`
	Description    string         `gorm:"type:text" json:"description"`
	CategoryID     uint           `gorm:"not null;index" json:"category_id"`
	District       string         `gorm:"size:50;index" json:"district"`
	Location       string         `gorm:"size:200" json:"location"`
	Status         string         `gorm:"size:20;not null;default:'NEW';index" json:"status"`
	Priority       string         `gorm:"size:10;not null;default:'NORMAL'" json:"priority"`
	AssignedTo     *uint          `gorm:"index" json:"assigned_to"`
	TriagedBy      *uint          `json:"triaged_by"`
	DueDate        *time.Time     `json:"due_date"`
	IsOverdue      bool           `gorm:"default:false" json:"is_overdue"`
	ResolvedAt     *time.Time     `json:"resolved_at"`
	ResolutionNote string         `gorm:"type:text" json:"resolution_note"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Citizen  *Account          `gorm:"foreignKey:CitizenID" json:"citizen,omitempty"`
	Category *Category         `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Assignee *Account          `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	Updates  []GrievanceUpdate `gorm:"foreignKey:GrievanceID" json:"updates,omitempty"`
}

func (Grievance) TableName() string {
	return "grievances"
}

// GrievanceResponse DTO
type GrievanceResponse struct {
	ID             uint       `json:"id"`
	TrackingNo     string     `json:"tracking_no"`
	CitizenID      uint       `json:"citizen_id"`
	CitizenName    string     `json:"citizen_name,omitempty"`
	Subject        string     `json:"subject"`
	Description    string     `json:"description"`
	CategoryID     uint       `json:"category_id"`
	CategoryName   string     `json:"category_name,omitempty"`
	District       string     `json:"district"`
	Location       string     `json:"location"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	AssignedTo     *uint      `json:"assigned_to"`
	AssigneeName   string     `json:"assignee_name,omitempty"`
	DueDate        *time.Time `json:"due_date"`
	IsOverdue      bool       `json:"is_overdue"`
	ResolvedAt     *time.Time `json:"resolved_at"`
	ResolutionNote string     `json:"resolution_note"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (g *Grievance) ToResponse() *GrievanceResponse {
	resp := &GrievanceResponse{
		ID:             g.ID,
		TrackingNo:     g.TrackingNo,
		CitizenID:      g.CitizenID,
		Subject:        g.Subject,
		Description:    g.Description,
		CategoryID:     g.CategoryID,
		District:       g.District,
		Location:       g.Location,
		Status:         g.Status,
		Priority:       g.Priority,
		AssignedTo:     g.AssignedTo,
		DueDate:        g.DueDate,
		IsOverdue:      g.IsOverdue,
		ResolvedAt:     g.ResolvedAt,
		ResolutionNote: g.ResolutionNote,
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
	}

	if g.Citizen != nil {
		resp.CitizenName = g.Citizen.Name
	}
	if g.Category != nil {
		resp.CategoryName = g.Category.Name
	}
	if g.Assignee != nil {
		resp.AssigneeName = g.Assignee.Name
	}

	return resp
}

// Grievance update action types
const (
	ActionSubmit   = "SUBMIT"
	ActionTriage   = "TRIAGE"
	ActionAssign   = "ASSIGN"
	ActionProgress = "PROGRESS"
	ActionResolve  = "RESOLVE"
	ActionClose    = "CLOSE"
	ActionReject   = "REJECT"
	ActionReopen   = "REOPEN"
	ActionEscalate = "ESCALATE"
	ActionNote     = "NOTE"
)

// GrievanceUpdate is the per-grievance history/audit row
type GrievanceUpdate struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	GrievanceID uint      `gorm:"not null;index" json:"grievance_id"`
	Action      string    `gorm:"size:20;not null" json:"action"`
	FromStatus  string    `gorm:"size:20" json:"from_status"`
	ToStatus    string    `gorm:"size:20" json:"to_status"`
	Note        string    `gorm:"type:text" json:"note"`
	PerformedBy uint      `gorm:"not null" json:"performed_by"`
	IPAddress   string    `gorm:"size:50" json:"ip_address"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Grievance *Grievance `gorm:"foreignKey:GrievanceID" json:"grievance,omitempty"`
	Performer *Account   `gorm:"foreignKey:PerformedBy" json:"performer,omitempty"`
}

func (GrievanceUpdate) TableName() string {
	return "grievance_updates"
}

// ============================================================
// Calendar Tables
// ============================================================

// Event is a calendar event for the minister's office
type Event struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Location    string         `gorm:"size:200" json:"location"`
	StartsAt    time.Time      `gorm:"not null;index" json:"starts_at"`
	EndsAt      time.Time      `gorm:"not null" json:"ends_at"`
	CreatedBy   uint           `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Creator *Account `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

func (Event) TableName() string {
	return "events"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Auth
		&Account{},
		&RevokedToken{},
		// Master
		&Category{},
		&District{},
		// Grievances
		&Grievance{},
		&GrievanceUpdate{},
		// Calendar
		&Event{},
	)
}
