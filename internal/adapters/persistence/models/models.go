package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Identity & Session Tables
// ============================================================

// Identity roles
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Identity represents identities table (directory of society members)
type Identity struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	FullName  string         `gorm:"size:100;not null" json:"full_name"`
	Phone     string         `gorm:"uniqueIndex;size:20;not null" json:"phone"`
	FlatID    string         `gorm:"size:20;not null" json:"flat_id"`
	Role      string         `gorm:"size:20;default:'member'" json:"role"`
	MPINHash  string         `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Identity) TableName() string {
	return "identities"
}

// IdentityResponse DTO - never carries the MPIN hash
type IdentityResponse struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	FlatID    string    `json:"flat_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *Identity) ToResponse() *IdentityResponse {
	return &IdentityResponse{
		ID:        i.ID,
		FullName:  i.FullName,
		Phone:     i.Phone,
		FlatID:    i.FlatID,
		Role:      i.Role,
		CreatedAt: i.CreatedAt,
	}
}

// DeviceSession represents device_sessions table.
// One row per device; RememberedPhone survives logout so returning users
// land on the MPIN screen, IdentityID is cleared on logout.
type DeviceSession struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	DeviceID        string    `gorm:"uniqueIndex;size:64;not null" json:"device_id"`
	RememberedPhone string    `gorm:"size:20" json:"remembered_phone"`
	IdentityID      *uint     `gorm:"index" json:"identity_id"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DeviceSession) TableName() string {
	return "device_sessions"
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	IdentityID uint       `gorm:"index;not null" json:"identity_id"`
	TokenHash  string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt  *time.Time `gorm:"index" json:"revoked_at"`
	Identity   Identity   `gorm:"foreignKey:IdentityID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Society Collections
// ============================================================

// Notice types
const (
	NoticeAnnouncement = "Announcement"
	NoticeEvent        = "Event"
	NoticeReminder     = "Reminder"
)

// Notice represents notices table
type Notice struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"size:200;not null" json:"title"`
	Content   string         `gorm:"type:text" json:"content"`
	Type      string         `gorm:"size:20;default:'Announcement'" json:"type"`
	Tags      string         `gorm:"size:200" json:"tags"` // comma separated
	PostedBy  string         `gorm:"size:100" json:"posted_by"`
	PostedAt  time.Time      `gorm:"autoCreateTime" json:"posted_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Notice) TableName() string {
	return "notices"
}

// NoticeRead is a per-identity read receipt for a notice
type NoticeRead struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	NoticeID   uint      `gorm:"index:idx_notice_identity,unique;not null" json:"notice_id"`
	IdentityID uint      `gorm:"index:idx_notice_identity,unique;not null" json:"identity_id"`
	ReadAt     time.Time `gorm:"autoCreateTime" json:"read_at"`
}

func (NoticeRead) TableName() string {
	return "notice_reads"
}

// Issue statuses
const (
	IssuePending    = "Pending"
	IssueInProgress = "In Progress"
	IssueResolved   = "Resolved"
	IssueClosed     = "Closed"
)

// Issue represents issues table (member complaints)
type Issue struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	IdentityID  uint           `gorm:"index;not null" json:"identity_id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Category    string         `gorm:"size:30;not null" json:"category"` // Plumbing, Electrical, Security, Maintenance, Other
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"size:20;default:'Pending'" json:"status"`
	Resolution  string         `gorm:"type:text" json:"resolution,omitempty"`
	ResolvedAt  *time.Time     `json:"resolved_at,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Issue) TableName() string {
	return "issues"
}

// Vendor statuses (computed from contract dates, not stored)
const (
	VendorActive   = "Active"
	VendorExpiring = "Expiring"
	VendorExpired  = "Expired"
)

// Vendor represents vendors table (service contracts)
type Vendor struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"size:100;not null" json:"name"`
	Service       string         `gorm:"size:100;not null" json:"service"`
	ContractStart time.Time      `gorm:"not null" json:"contract_start"`
	ContractEnd   time.Time      `gorm:"not null" json:"contract_end"`
	Phone         string         `gorm:"size:20" json:"phone,omitempty"`
	Email         string         `gorm:"size:100" json:"email,omitempty"`
	ContactPerson string         `gorm:"size:100" json:"contact_person,omitempty"`
	Description   string         `gorm:"type:text" json:"description,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Vendor) TableName() string {
	return "vendors"
}

// VendorResponse carries the computed contract status
type VendorResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Service       string    `json:"service"`
	Status        string    `json:"status"`
	ExpiresInDays int       `json:"expires_in_days,omitempty"`
	ContractStart time.Time `json:"contract_start"`
	ContractEnd   time.Time `json:"contract_end"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Description   string    `json:"description,omitempty"`
}

// Expense categories: Utility, Salary, Maintenance, Security, Event, Other

// Expense represents expenses table (society spend register)
type Expense struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Title      string         `gorm:"size:200;not null" json:"title"`
	Category   string         `gorm:"size:30;not null" json:"category"`
	Amount     float64        `gorm:"type:decimal(12,2);not null" json:"amount"`
	Date       time.Time      `gorm:"not null" json:"date"`
	ProofURL   string         `gorm:"size:500" json:"proof_url"`
	RecordedBy string         `gorm:"size:100" json:"recorded_by"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Expense) TableName() string {
	return "expenses"
}

// Task statuses and priorities
const (
	TaskPending   = "Pending"
	TaskCompleted = "Completed"

	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Task represents tasks table (member action items)
type Task struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	DueDate     time.Time      `json:"due_date"`
	Status      string         `gorm:"size:20;default:'Pending'" json:"status"`
	Priority    string         `gorm:"size:10;default:'Medium'" json:"priority"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Task) TableName() string {
	return "tasks"
}

// Payment statuses and methods
const (
	PaymentPaid          = "Paid"
	PaymentPending       = "Pending"
	PaymentPartiallyPaid = "Partially Paid"

	MethodUPI    = "UPI"
	MethodCash   = "Cash"
	MethodCheque = "Cheque"
)

// PaymentRecord represents payment_records table (maintenance dues)
type PaymentRecord struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	IdentityID uint           `gorm:"index;not null" json:"identity_id"`
	Amount     float64        `gorm:"type:decimal(12,2);not null" json:"amount"`
	Period     string         `gorm:"size:30;not null" json:"period"` // e.g. "June 2025"
	Method     string         `gorm:"size:10;default:'UPI'" json:"method"`
	Status     string         `gorm:"size:20;default:'Pending'" json:"status"`
	ProofURL   string         `gorm:"size:500" json:"proof_url,omitempty"`
	Type       string         `gorm:"size:30;default:'Maintenance'" json:"type"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PaymentRecord) TableName() string {
	return "payment_records"
}

// AGM statuses
const (
	AGMActive    = "Active"
	AGMUpcoming  = "Upcoming"
	AGMCompleted = "Completed"
)

// AGMSession represents agm_sessions table (annual general meetings)
type AGMSession struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Year      int            `gorm:"uniqueIndex;not null" json:"year"`
	Date      string         `gorm:"size:40" json:"date"`
	Time      string         `gorm:"size:20" json:"time"`
	Venue     string         `gorm:"size:100" json:"venue"`
	Status    string         `gorm:"size:20;default:'Upcoming'" json:"status"`
	Quorum    string         `gorm:"size:20" json:"quorum"`
	Present   int            `json:"present"`
	Absent    int            `json:"absent"`
	Agenda    []AgendaItem   `gorm:"foreignKey:AGMSessionID" json:"agenda"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AGMSession) TableName() string {
	return "agm_sessions"
}

// Agenda item outcomes
const (
	AgendaApproved = "Approved"
	AgendaRejected = "Rejected"
	AgendaDeferred = "Deferred"
)

// AgendaItem represents agm_agenda_items table
type AgendaItem struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	AGMSessionID uint   `gorm:"index;not null" json:"agm_session_id"`
	Title        string `gorm:"size:200;not null" json:"title"`
	ProposedDate string `gorm:"size:40" json:"proposed_date"`
	Status       string `gorm:"size:20;default:'Deferred'" json:"status"`
	YesVotes     int    `json:"yes_votes"`
	NoVotes      int    `json:"no_votes"`
}

func (AgendaItem) TableName() string {
	return "agm_agenda_items"
}

// AutoMigrate creates all tables if they do not exist
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Identity{},
		&DeviceSession{},
		&RefreshToken{},
		&Notice{},
		&NoticeRead{},
		&Issue{},
		&Vendor{},
		&Expense{},
		&Task{},
		&PaymentRecord{},
		&AGMSession{},
		&AgendaItem{},
	)
}
