package domain

import "time"

// Vertical is a tenant-configured conversational profile, e.g. "realty",
// "expo", "support". Deep links encode a vertical: start_<vertical>[_<hint>].
type Vertical struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"` // bare substring keywords, e.g. "property"
}

// Tenant is the agency that owns leads, properties and knowledge.
type Tenant struct {
	ID                 string     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name               string     `json:"name" gorm:"type:varchar(255);not null"`
	DefaultLanguage    Language   `json:"default_language" gorm:"type:varchar(8);not null;default:'EN'"`
	BrandingColour     string     `json:"branding_colour" gorm:"type:varchar(16)"`
	AdminChannel       string     `json:"admin_channel" gorm:"type:varchar(255)"` // channel identity for hot-lead alerts
	AdminChannelType   string     `json:"admin_channel_type" gorm:"type:varchar(32)"` // "telegram" | "sms"
	SubscriptionStatus string     `json:"subscription_status" gorm:"type:varchar(32);not null;default:'active'"`
	Verticals          JSONB      `json:"verticals" gorm:"type:jsonb"` // map[string]Vertical serialised
	CreatedAt          time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for Tenant.
func (Tenant) TableName() string { return "tenants" }

// ResolveVerticals decodes the JSONB verticals map into typed Vertical
// values, tolerating a nil or malformed map by returning an empty set.
func (t Tenant) ResolveVerticals() map[string]Vertical {
	out := map[string]Vertical{}
	for name, raw := range t.Verticals {
		v := Vertical{Name: name}
		if m, ok := raw.(map[string]interface{}); ok {
			if kws, ok := m["keywords"].([]interface{}); ok {
				for _, kw := range kws {
					if s, ok := kw.(string); ok {
						v.Keywords = append(v.Keywords, s)
					}
				}
			}
		}
		out[name] = v
	}
	return out
}
