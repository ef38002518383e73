package rides

import (
	"encoding/json"
	"fmt"

	"github.com/oapi-codegen/nullable"
)

// ProfilePatch is the JSON body of a profile form. Omitted keys leave the
// field alone; an explicit null clears it where clearing is allowed.
type ProfilePatch struct {
	Name   nullable.Nullable[string] `json:"name,omitempty"`
	School nullable.Nullable[string] `json:"school,omitempty"`
	Phone  nullable.Nullable[string] `json:"phone,omitempty"`
}

// ParseProfilePatch decodes a profile form body into a ProfileInput.
func ParseProfilePatch(data []byte) (ProfileInput, error) {
	var p ProfilePatch
	if err := json.Unmarshal(data, &p); err != nil {
		return ProfileInput{}, fmt.Errorf("decode profile patch: %w", err)
	}
	return p.Input(), nil
}

func (p ProfilePatch) Input() ProfileInput {
	return ProfileInput{
		Name:   optionalStringFromNullable(p.Name),
		School: optionalStringFromNullable(p.School),
		Phone:  optionalStringFromNullable(p.Phone),
	}
}

func optionalStringFromNullable(n nullable.Nullable[string]) Optional[string] {
	if !n.IsSpecified() {
		return Unspecified[string]()
	}
	if n.IsNull() {
		return Null[string]()
	}
	v, err := n.Get()
	if err != nil {
		return Unspecified[string]()
	}
	return Some(v)
}
