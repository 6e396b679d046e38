package models

import (
	"encoding/json"
)

// Role distinguishes the two authentication flows offered by the backend.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Identity is the authenticated user or admin record returned by the auth
// endpoints. The client only relies on its presence; the decoded fields
// are kept for display and Raw preserves the full server document.
type Identity struct {
	ID    string          `json:"_id"`
	Name  string          `json:"name,omitempty"`
	Email string          `json:"email,omitempty"`
	Role  string          `json:"role,omitempty"`
	Raw   json.RawMessage `json:"-"`
}

func (i *Identity) UnmarshalJSON(b []byte) error {
	type plain Identity
	var v plain
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*i = Identity(v)
	i.Raw = append(json.RawMessage(nil), b...)
	return nil
}

// Clone returns a copy that does not share Raw with i.
func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	c := *i
	c.Raw = append(json.RawMessage(nil), i.Raw...)
	return &c
}

func (i *Identity) String() string {
	if i == nil {
		return ""
	}
	if i.Name != "" {
		return i.Name
	}
	if i.Email != "" {
		return i.Email
	}
	return i.ID
}
