package domain

import "time"

// LeadState is one of the ten dialogue states of §4.1 (COMPLETED included).
type LeadState string

const (
	StateStart             LeadState = "START"
	StateLanguageSelected   LeadState = "LANGUAGE_SELECTED"
	StateWarmup             LeadState = "WARMUP"
	StateCaptureContact     LeadState = "CAPTURE_CONTACT"
	StateSlotFilling        LeadState = "SLOT_FILLING"
	StateValueProposition   LeadState = "VALUE_PROPOSITION"
	StateHardGate           LeadState = "HARD_GATE"
	StateEngagement         LeadState = "ENGAGEMENT"
	StateHandoffSchedule    LeadState = "HANDOFF_SCHEDULE"
	StateCompleted          LeadState = "COMPLETED"
)

// Slot names used in filled_slots / pending_slot.
const (
	SlotGoal             = "goal"
	SlotTransactionType  = "transaction_type"
	SlotPropertyCategory = "property_category"
	SlotBudget           = "budget"
	SlotPropertyType     = "property_type"
	SlotBedrooms         = "bedrooms"
	SlotLocation         = "location"
	SlotPaymentMethod    = "payment_method"
	SlotPhone            = "phone"
)

// Lead is one prospect per (tenant_id, channel identity) — invariant 2.
type Lead struct {
	ID       string `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID string `json:"tenant_id" gorm:"type:uuid;not null;uniqueIndex:uni_lead_tenant_channel"`

	// Identity
	Name             string    `json:"name" gorm:"type:varchar(255)"`
	Phone            string    `json:"phone" gorm:"type:varchar(32)"` // normalised E.164, empty until captured
	Language         Language  `json:"language" gorm:"type:varchar(8);not null;default:'EN'"`
	ChannelType      string    `json:"channel_type" gorm:"type:varchar(32);not null"` // "telegram" | "gateway"
	ChannelIdentity  string    `json:"channel_identity" gorm:"type:varchar(255);not null;uniqueIndex:uni_lead_tenant_channel"`
	Vertical         string    `json:"vertical" gorm:"type:varchar(64)"`

	// Qualification slots
	Goal                Goal             `json:"goal" gorm:"type:varchar(32)"`
	TransactionType     TransactionType  `json:"transaction_type" gorm:"type:varchar(16)"`
	PropertyCategory    PropertyCategory `json:"property_category" gorm:"type:varchar(16)"`
	PropertyType        string           `json:"property_type" gorm:"type:varchar(32)"`
	BudgetMin           int64            `json:"budget_min"`
	BudgetMax           int64            `json:"budget_max"`
	BedroomsMin         int              `json:"bedrooms_min"`
	BedroomsMax         int              `json:"bedrooms_max"`
	PreferredLocations  StringSet        `json:"preferred_locations" gorm:"type:jsonb"`
	PaymentMethod       string           `json:"payment_method" gorm:"type:varchar(64)"`
	Purpose             string           `json:"purpose" gorm:"type:varchar(64)"`

	// Dialogue state
	State             LeadState `json:"state" gorm:"type:varchar(32);not null;default:'START'"`
	PendingSlot       string    `json:"pending_slot" gorm:"type:varchar(32)"`
	FilledSlots       StringSet `json:"filled_slots" gorm:"type:jsonb"`
	ConversationData  JSONB     `json:"conversation_data" gorm:"type:jsonb"`
	LastInteraction   time.Time `json:"last_interaction"`
	GhostReminderSent bool      `json:"ghost_reminder_sent" gorm:"default:false"`
	FomoMessagesSent  int       `json:"fomo_messages_sent" gorm:"default:0"`
	UrgencyScore      int       `json:"urgency_score" gorm:"default:0"`

	// Engagement metrics
	MessagesCount      int     `json:"messages_count" gorm:"default:0"`
	VoiceMessagesCount int     `json:"voice_messages_count" gorm:"default:0"`
	QRScanCount        int     `json:"qr_scan_count" gorm:"default:0"`
	CatalogViews       int     `json:"catalog_views" gorm:"default:0"`
	LeadScore          int     `json:"lead_score" gorm:"default:0"`
	Temperature        Temperature `json:"temperature" gorm:"type:varchar(16);default:'cold'"`

	// Audit
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	Status    LeadStatus `json:"status" gorm:"type:varchar(32);not null;default:'new'"`
}

// TableName sets the table name for Lead.
func (Lead) TableName() string { return "leads" }

// HasSlot reports whether slot has been filled and recorded.
func (l *Lead) HasSlot(slot string) bool {
	return l.FilledSlots.Contains(slot)
}

// FillSlot marks slot as filled if not already recorded (invariant 3:
// filled_slots only grows within a turn; callers may still overwrite the
// underlying field value in the same handler turn).
func (l *Lead) FillSlot(slot string) {
	l.FilledSlots = l.FilledSlots.Add(slot)
}

// HasQualifyingSlots reports whether goal/transaction_type/category/budget
// are all filled, the precondition for entering VALUE_PROPOSITION
// (invariant 4).
func (l *Lead) HasQualifyingSlots() bool {
	return l.HasSlot(SlotGoal) && l.HasSlot(SlotTransactionType) &&
		l.HasSlot(SlotPropertyCategory) && l.HasSlot(SlotBudget)
}

// HasValidatedPhone reports whether a normalised phone has been captured.
func (l *Lead) HasValidatedPhone() bool {
	return l.Phone != ""
}

// Reset returns the lead to START, as triggered by /start. Dialogue
// position, filled slots, scratch data, the ghost-reminder flag and every
// qualification slot value are wiped; identity, audit fields, engagement
// metrics, last_interaction and the fomo/urgency counters are preserved.
func (l *Lead) Reset() {
	l.State = StateStart
	l.PendingSlot = ""
	l.FilledSlots = nil
	l.ConversationData = nil
	l.Goal = ""
	l.TransactionType = ""
	l.PropertyCategory = ""
	l.PropertyType = ""
	l.BudgetMin = 0
	l.BudgetMax = 0
	l.BedroomsMin = 0
	l.BedroomsMax = 0
	l.PreferredLocations = nil
	l.PaymentMethod = ""
	l.Purpose = ""
	l.GhostReminderSent = false
}
