package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is a resource identifier. The backend emits numeric ids for some
// resources and string ids for others; both decode into the string form
// used in request paths.
type ID string

// UnmarshalJSON accepts both JSON strings and numbers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits the string form.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

// String returns the path form of the id.
func (id ID) String() string { return string(id) }

// UserRecord is the opaque user mapping returned by the backend. No schema
// is enforced client-side; accessors degrade gracefully when fields are
// absent.
type UserRecord map[string]any

// ID returns the user identifier: the first of id, uid, or email present.
func (u UserRecord) ID() string {
	for _, key := range []string{"id", "uid", "email"} {
		if v := u.str(key); v != "" {
			return v
		}
	}
	return ""
}

// Email returns the email field, or empty.
func (u UserRecord) Email() string {
	return u.str("email")
}

// Name returns the display name, or empty.
func (u UserRecord) Name() string {
	for _, key := range []string{"name", "fullName", "username"} {
		if v := u.str(key); v != "" {
			return v
		}
	}
	return ""
}

// Role classifies the user; the backend uses occupation, userType, and role
// interchangeably for the doctor/patient split.
func (u UserRecord) Role() string {
	for _, key := range []string{"role", "occupation", "userType"} {
		if v := u.str(key); v != "" {
			return v
		}
	}
	return ""
}

// IsDoctor reports whether the record classifies as a doctor.
func (u UserRecord) IsDoctor() bool {
	return u.Role() == "doctor"
}

func (u UserRecord) str(key string) string {
	if v, ok := u[key]; ok {
		switch s := v.(type) {
		case string:
			return s
		case json.Number:
			return s.String()
		case float64:
			// json decodes numbers into float64 by default
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}
