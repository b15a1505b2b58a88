package types

// ApplicationRecord represents a launchable application known to the host
type ApplicationRecord struct {
	Name    string  `json:"name"`           // Host-localized label, not unique
	Package string  `json:"package"`        // Host-assigned unique identifier
	Icon    *string `json:"icon,omitempty"` // Base64 PNG, single line
}

// HasIcon reports whether an encoded icon is attached
func (r ApplicationRecord) HasIcon() bool {
	return r.Icon != nil && *r.Icon != ""
}
