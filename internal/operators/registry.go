package operators

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tradie_receptionist/platform/apperr"
	"tradie_receptionist/platform/phone"
	"tradie_receptionist/platform/validator"

	"gopkg.in/yaml.v3"
)

// roster is the on-disk shape of the operators file.
type roster struct {
	Tradies []Operator `json:"tradies" yaml:"tradies"`
}

// Registry answers lookups over the loaded operators. It is read-only after construction.
type Registry struct {
	all        []Operator
	byID       map[string]int
	byPhoneID  map[string]int
	byPersonal map[string]int
}

// NewRegistry validates ops and indexes them. Ids and platform phone-number ids must be unique.
func NewRegistry(ops []Operator, val *validator.Validator) (*Registry, error) {
	if val == nil {
		val = validator.New()
	}
	r := &Registry{
		all:        make([]Operator, 0, len(ops)),
		byID:       make(map[string]int, len(ops)),
		byPhoneID:  make(map[string]int, len(ops)),
		byPersonal: make(map[string]int, len(ops)),
	}
	for i, op := range ops {
		if err := val.Struct(op); err != nil {
			return nil, apperr.Wrap(apperr.KindValidation, fmt.Sprintf("operator %d (%q)", i, op.ID), err)
		}
		if _, dup := r.byID[op.ID]; dup {
			return nil, apperr.Validation(fmt.Sprintf("duplicate operator id %q", op.ID))
		}
		if _, dup := r.byPhoneID[op.VapiPhoneNumberID]; dup {
			return nil, apperr.Validation(fmt.Sprintf("duplicate vapiPhoneNumberId %q (operator %q)", op.VapiPhoneNumberID, op.ID))
		}
		idx := len(r.all)
		r.all = append(r.all, op)
		r.byID[op.ID] = idx
		r.byPhoneID[op.VapiPhoneNumberID] = idx
		// First operator wins on a shared personal phone.
		key := phone.Key(op.PersonalPhone)
		if _, taken := r.byPersonal[key]; !taken {
			r.byPersonal[key] = idx
		}
	}
	return r, nil
}

// LoadFile reads a JSON or YAML roster from path.
func LoadFile(path string, val *validator.Validator) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read operators file: %w", err)
	}

	var doc roster
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse operators file %s: %w", path, err)
	}

	return NewRegistry(doc.Tradies, val)
}

// All returns a copy of the loaded operators in file order.
func (r *Registry) All() []Operator {
	out := make([]Operator, len(r.all))
	copy(out, r.all)
	return out
}

// Count returns the number of loaded operators.
func (r *Registry) Count() int {
	return len(r.all)
}

// ByID returns the operator with the given id.
func (r *Registry) ByID(id string) (Operator, bool) {
	return r.lookup(r.byID, id)
}

// ByPhoneNumberID returns the operator owning the voice platform phone-number id.
func (r *Registry) ByPhoneNumberID(phoneNumberID string) (Operator, bool) {
	if phoneNumberID == "" {
		return Operator{}, false
	}
	return r.lookup(r.byPhoneID, phoneNumberID)
}

// ByPersonalPhone returns the operator whose personal phone matches number,
// ignoring spacing and national/international notation.
func (r *Registry) ByPersonalPhone(number string) (Operator, bool) {
	key := phone.Key(number)
	if key == "" {
		return Operator{}, false
	}
	return r.lookup(r.byPersonal, key)
}

func (r *Registry) lookup(index map[string]int, key string) (Operator, bool) {
	idx, ok := index[key]
	if !ok {
		return Operator{}, false
	}
	return r.all[idx], true
}
