package models

import (
	"bytes"
	"encoding/json"
)

// Owner is the task's "user" field. Depending on whether the server populated
// the reference it is either a full user object or a bare id/email string.
type Owner struct {
	User *User
	Raw  string
}

// Embedded reports whether the owner was sent as a full user object.
func (o Owner) Embedded() bool {
	return o.User != nil
}

// Display returns the text shown in the owner column: the embedded user's
// email, otherwise the raw reference, otherwise "You".
//
// The "You" fallback also applies to tasks whose owner is unknown, so it can
// mislabel tasks that belong to someone else.
func (o Owner) Display() string {
	if o.Embedded() {
		return o.User.Email
	}
	if o.Raw != "" {
		return o.Raw
	}
	return "You"
}

func (o *Owner) UnmarshalJSON(data []byte) error {
	*o = Owner{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '"' {
		return json.Unmarshal(trimmed, &o.Raw)
	}

	var u User
	if err := json.Unmarshal(trimmed, &u); err != nil {
		return err
	}
	o.User = &u
	return nil
}

func (o Owner) MarshalJSON() ([]byte, error) {
	if o.Embedded() {
		return json.Marshal(o.User)
	}
	if o.Raw != "" {
		return json.Marshal(o.Raw)
	}
	return []byte("null"), nil
}
