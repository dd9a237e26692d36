// Package domain holds the CQC's storage-shaped types: the entities the
// Entity Store persists and the value types the state machine mutates.
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONB represents a Postgres JSONB column backed by a Go map.
type JSONB map[string]interface{}

// Value implements driver.Valuer.
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner.
func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into JSONB", value)
	}
	return json.Unmarshal(bytes, j)
}

// StringSet represents a Postgres JSONB-backed set of strings (used for
// preferred_locations and filled_slots).
type StringSet []string

// Value implements driver.Valuer.
func (s StringSet) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(s))
}

// Scan implements sql.Scanner.
func (s *StringSet) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into StringSet", value)
	}
	return json.Unmarshal(bytes, s)
}

// Contains reports whether v is a member of the set.
func (s StringSet) Contains(v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}

// Add returns a copy of s with v appended if not already present.
func (s StringSet) Add(v string) StringSet {
	if s.Contains(v) {
		return s
	}
	return append(append(StringSet{}, s...), v)
}

// Language is one of the four channel languages the CQC understands.
type Language string

const (
	LanguageEN Language = "EN"
	LanguageFA Language = "FA"
	LanguageAR Language = "AR"
	LanguageRU Language = "RU"
)

// Goal is the visitor's stated motivation, captured by the
// LANGUAGE_SELECTED handler on the way into WARMUP.
type Goal string

const (
	GoalInvestment Goal = "investment"
	GoalLiving     Goal = "living"
	GoalResidency  Goal = "residency"
	GoalRent       Goal = "rent"
)

// TransactionType is derived from Goal (rent implies Rent, all others Buy
// unless the visitor explicitly picks rent during slot filling).
type TransactionType string

const (
	TransactionBuy  TransactionType = "buy"
	TransactionRent TransactionType = "rent"
)

// PropertyCategory distinguishes residential from commercial inventory.
type PropertyCategory string

const (
	CategoryResidential PropertyCategory = "residential"
	CategoryCommercial  PropertyCategory = "commercial"
)

// LeadStatus is the audit-facing lifecycle status of a Lead.
type LeadStatus string

const (
	StatusNew              LeadStatus = "new"
	StatusQualified        LeadStatus = "qualified"
	StatusHot              LeadStatus = "hot"
	StatusViewingScheduled LeadStatus = "viewing_scheduled"
	StatusClosedWon        LeadStatus = "closed_won"
	StatusClosedLost       LeadStatus = "closed_lost"
)

// Temperature is the 4-level bucket derived from lead_score (§4.5).
type Temperature string

const (
	TemperatureCold    Temperature = "cold"
	TemperatureWarm    Temperature = "warm"
	TemperatureHot     Temperature = "hot"
	TemperatureBurning Temperature = "burning"
)

// AppointmentStatus tracks an Appointment's lifecycle.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)
