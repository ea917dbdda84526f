package schema

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultTemplateID is the id of the built-in template substituted when a
// definition references a template the catalog does not contain.
const DefaultTemplateID = "default"

// PropRule scatters props of the listed types into one zone of a room.
type PropRule struct {
	// PropTypes are the prop type ids the rule chooses between.
	PropTypes []string `yaml:"prop_types" json:"prop_types"`
	// Zone is the region of the room the props land in.
	Zone PropZone `yaml:"zone" json:"zone"`
	// Count bounds how many props the rule produces.
	Count IntRange `yaml:"count" json:"count"`
	// Facing selects how each prop's rotation is computed.
	Facing FacingMode `yaml:"facing" json:"facing"`
	// Required marks the rule's props as required set dressing rather
	// than optional clutter.
	Required bool `yaml:"required,omitempty" json:"required,omitempty"`
}

// RoomTemplate describes the dimension ranges and prop rules rooms of a kind
// are generated from.
type RoomTemplate struct {
	// ID uniquely identifies the template within the catalog.
	ID string `yaml:"id" json:"id"`
	// Width bounds the room's extent along X, in meters.
	Width FloatRange `yaml:"width" json:"width"`
	// Height bounds the room's extent along Z, in meters.
	Height FloatRange `yaml:"height" json:"height"`
	// Ceiling bounds the room's extent along Y, in meters.
	Ceiling FloatRange `yaml:"ceiling" json:"ceiling"`
	// PropRules scatter props into each generated room.
	PropRules []PropRule `yaml:"prop_rules" json:"prop_rules"`
}

// DefaultTemplate returns the built-in fallback template: a modest featureless
// room usable wherever a referenced template is missing.
func DefaultTemplate() *RoomTemplate {
	return &RoomTemplate{
		ID:      DefaultTemplateID,
		Width:   FloatRange{Min: 4, Max: 6},
		Height:  FloatRange{Min: 4, Max: 6},
		Ceiling: FloatRange{Min: 2.6, Max: 3},
	}
}

// Validate checks the template for internal consistency.
//
// Postcondition: Returns nil if the template is valid, or an error describing
// every violation found.
func (t *RoomTemplate) Validate() error {
	var errs []string
	if t.ID == "" {
		errs = append(errs, "room template has no id")
	}
	if !t.Width.Valid() || t.Width.Min <= 0 {
		errs = append(errs, fmt.Sprintf("room template %q: width range [%g, %g] is malformed", t.ID, t.Width.Min, t.Width.Max))
	}
	if !t.Height.Valid() || t.Height.Min <= 0 {
		errs = append(errs, fmt.Sprintf("room template %q: height range [%g, %g] is malformed", t.ID, t.Height.Min, t.Height.Max))
	}
	if !t.Ceiling.Valid() || t.Ceiling.Min <= 0 {
		errs = append(errs, fmt.Sprintf("room template %q: ceiling range [%g, %g] is malformed", t.ID, t.Ceiling.Min, t.Ceiling.Max))
	}
	for i, rule := range t.PropRules {
		if !rule.Zone.Valid() {
			errs = append(errs, fmt.Sprintf("room template %q: prop rule %d has unknown zone %q", t.ID, i, rule.Zone))
		}
		if !rule.Facing.Valid() {
			errs = append(errs, fmt.Sprintf("room template %q: prop rule %d has unknown facing %q", t.ID, i, rule.Facing))
		}
		if !rule.Count.Valid() || rule.Count.Min < 0 {
			errs = append(errs, fmt.Sprintf("room template %q: prop rule %d count range [%d, %d] is malformed",
				t.ID, i, rule.Count.Min, rule.Count.Max))
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
