package domain

import "time"

// Property is a single inventory item belonging to a tenant.
type Property struct {
	ID                 string           `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID           string           `json:"tenant_id" gorm:"type:uuid;not null;index"`
	Title              string           `json:"title" gorm:"type:varchar(255);not null"`
	Price              int64            `json:"price" gorm:"not null"`
	Bedrooms           int              `json:"bedrooms"`
	Location           string           `json:"location" gorm:"type:varchar(255)"`
	PropertyType       string           `json:"property_type" gorm:"type:varchar(32)"`
	PropertyCategory   PropertyCategory `json:"property_category" gorm:"type:varchar(16)"`
	IsFeatured         bool             `json:"is_featured" gorm:"default:false"`
	IsAvailable        bool             `json:"is_available" gorm:"default:true"`
	IsOffPlan          bool             `json:"is_off_plan" gorm:"default:false"`
	IsUrgent           bool             `json:"is_urgent" gorm:"default:false"`
	GoldenVisaEligible bool             `json:"golden_visa_eligible" gorm:"default:false"`
	ExpectedROI        float64          `json:"expected_roi"`
	MediaRefs          StringSet        `json:"media_refs" gorm:"type:jsonb"`
	CreatedAt          time.Time        `json:"created_at" gorm:"autoCreateTime"`
}

// TableName sets the table name for Property.
func (Property) TableName() string { return "properties" }

// MatchesLead reports whether p satisfies lead's qualifying slots: price
// within [budget_min, budget_max] (a hard ceiling, no 10% flex), bedrooms
// within range when both bounds are set, and property type and category
// equality when set. Preferred locations are not checked.
func (p Property) MatchesLead(l Lead) bool {
	if l.BudgetMin > 0 && p.Price < l.BudgetMin {
		return false
	}
	if l.BudgetMax > 0 && p.Price > l.BudgetMax {
		return false
	}
	if l.BedroomsMin > 0 && l.BedroomsMax > 0 {
		if p.Bedrooms < l.BedroomsMin || p.Bedrooms > l.BedroomsMax {
			return false
		}
	}
	if l.PropertyType != "" && p.PropertyType != l.PropertyType {
		return false
	}
	if l.PropertyCategory != "" && p.PropertyCategory != l.PropertyCategory {
		return false
	}
	return true
}

// KnowledgeEntry is a single piece of tenant knowledge used for FAQ
// tolerance and trust/education snippets (§4.4).
type KnowledgeEntry struct {
	ID       string   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID string   `json:"tenant_id" gorm:"type:uuid;not null;index"`
	Category string   `json:"category" gorm:"type:varchar(64)"`
	Title    string   `json:"title" gorm:"type:varchar(255)"`
	Content  string   `json:"content" gorm:"type:text"`
	Language Language `json:"language" gorm:"type:varchar(8)"`
	Keywords StringSet `json:"keywords" gorm:"type:jsonb"`
	Priority int      `json:"priority"`
	IsActive bool     `json:"is_active" gorm:"default:true"`
}

// TableName sets the table name for KnowledgeEntry.
func (KnowledgeEntry) TableName() string { return "knowledge" }

// ScheduleSlot is a bookable viewing slot.
type ScheduleSlot struct {
	ID        string    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID  string    `json:"tenant_id" gorm:"type:uuid;not null;index"`
	DayOfWeek int       `json:"day_of_week"` // 0=Sunday
	StartTime string    `json:"start_time"`  // "HH:MM"
	EndTime   string    `json:"end_time"`
	IsBooked  bool      `json:"is_booked" gorm:"default:false"`
}

// TableName sets the table name for ScheduleSlot.
func (ScheduleSlot) TableName() string { return "schedule_slots" }

// Appointment links a Lead to a booked ScheduleSlot.
type Appointment struct {
	ID        string            `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID  string            `json:"tenant_id" gorm:"type:uuid;not null;index"`
	LeadID    string            `json:"lead_id" gorm:"type:uuid;not null;index"`
	SlotID    string            `json:"slot_id" gorm:"type:uuid;not null;uniqueIndex"`
	Status    AppointmentStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending'"`
	CreatedAt time.Time         `json:"created_at" gorm:"autoCreateTime"`
}

// TableName sets the table name for Appointment.
func (Appointment) TableName() string { return "appointments" }

// PropertyNotification records that a lead has already been notified about
// a property match, implementing the per-(lead, property) de-duplication
// table the source omitted (§9 Open Questions, §4.8).
type PropertyNotification struct {
	ID         string    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID   string    `json:"tenant_id" gorm:"type:uuid;not null;index"`
	LeadID     string    `json:"lead_id" gorm:"type:uuid;not null;uniqueIndex:uni_lead_property"`
	PropertyID string    `json:"property_id" gorm:"type:uuid;not null;uniqueIndex:uni_lead_property"`
	NotifiedAt time.Time `json:"notified_at" gorm:"autoCreateTime"`
}

// TableName sets the table name for PropertyNotification.
func (PropertyNotification) TableName() string { return "property_notifications" }
