// Package operators holds the static roster of trade businesses the relay answers for.
package operators

import (
	"time"
	_ "time/tzdata" // timezone names must resolve on minimal images
)

const defaultTimezone = "Australia/Melbourne"

// DefaultEmergencyKeywords applies when an operator configures none.
var DefaultEmergencyKeywords = []string{"emergency", "urgent", "flooding", "fire"}

// BusinessHours carries the operator's local timezone.
type BusinessHours struct {
	Timezone string `json:"timezone,omitempty" yaml:"timezone,omitempty" validate:"omitempty,timezone"`
}

// Operator is a single trade business. Loaded once at startup and never mutated.
type Operator struct {
	ID                string        `json:"id" yaml:"id" validate:"required"`
	Name              string        `json:"name" yaml:"name" validate:"required"`
	BusinessName      string        `json:"businessName" yaml:"businessName" validate:"required"`
	TradeType         string        `json:"tradeType" yaml:"tradeType" validate:"required"`
	ServiceArea       string        `json:"serviceArea,omitempty" yaml:"serviceArea,omitempty"`
	Services          []string      `json:"services,omitempty" yaml:"services,omitempty"`
	EmergencyKeywords []string      `json:"emergencyKeywords,omitempty" yaml:"emergencyKeywords,omitempty"`
	PersonalPhone     string        `json:"personalPhone" yaml:"personalPhone" validate:"required,phone"`
	VapiPhoneNumberID string        `json:"vapiPhoneNumberId" yaml:"vapiPhoneNumberId" validate:"required"`
	BusinessHours     BusinessHours `json:"businessHours,omitempty" yaml:"businessHours,omitempty"`
}

// Keywords returns the configured emergency keywords, or the defaults.
func (o Operator) Keywords() []string {
	if len(o.EmergencyKeywords) == 0 {
		return DefaultEmergencyKeywords
	}
	return o.EmergencyKeywords
}

// Area returns the service area, or a generic phrase when unset.
func (o Operator) Area() string {
	if o.ServiceArea == "" {
		return "the local area"
	}
	return o.ServiceArea
}

// Location resolves the operator's business-hours timezone, falling back to
// Australia/Melbourne when unset or unknown.
func (o Operator) Location() *time.Location {
	name := o.BusinessHours.Timezone
	if name == "" {
		name = defaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		loc, err = time.LoadLocation(defaultTimezone)
		if err != nil {
			return time.UTC
		}
	}
	return loc
}
