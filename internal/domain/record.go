package domain

// RawRecord is the wire shape of one entry in the seed JSON array.
// It carries only the fields the loader receives from the outside.
type RawRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Record is one user entity held by the engine. Selected and Editing are
// transient console state, not part of the record's identity.
type Record struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Selected bool   `json:"is_selected"`
	Editing  bool   `json:"edit_enabled"`
}

// FromRaw decorates a raw seed entry with default console state.
func FromRaw(raw RawRecord) Record {
	return Record{
		ID:    raw.ID,
		Name:  raw.Name,
		Email: raw.Email,
		Role:  raw.Role,
	}
}
