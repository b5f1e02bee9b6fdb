package domain

import (
	"encoding/json"
	"time"
)

// Identity is the authenticated operator record returned by the backend.
//
// UserType is kept as the raw string the backend sent; use Role to get a
// typed value and IsAllowed to check it against the console roles.
type Identity struct {
	ID        string     `json:"id" yaml:"id"`
	Email     string     `json:"email" yaml:"email"`
	UserType  string     `json:"userType" yaml:"userType"`
	FirstName string     `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName  string     `json:"lastName,omitempty" yaml:"lastName,omitempty"`
	IsActive  bool       `json:"isActive,omitempty" yaml:"isActive,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// Role returns the identity's userType as a Role. A nil identity has no role.
func (i *Identity) Role() Role {
	if i == nil {
		return ""
	}
	return Role(i.UserType)
}

// IsAllowed reports whether the identity may hold a console session.
func (i *Identity) IsAllowed() bool {
	return i.Role().IsAllowed()
}

// DisplayName returns "First Last", falling back to the email.
func (i *Identity) DisplayName() string {
	if i == nil {
		return ""
	}
	name := i.FirstName
	if i.LastName != "" {
		if name != "" {
			name += " "
		}
		name += i.LastName
	}
	if name == "" {
		return i.Email
	}
	return name
}

// UnmarshalJSON accepts both "id" and the Mongo-style "_id" key.
func (i *Identity) UnmarshalJSON(data []byte) error {
	type plain Identity
	aux := struct {
		*plain
		MongoID string `json:"_id"`
	}{plain: (*plain)(i)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if i.ID == "" {
		i.ID = aux.MongoID
	}
	return nil
}
