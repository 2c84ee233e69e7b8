package domain

import "time"

type AdminUser struct {
	ID        string
	UserID    string
	Email     string
	Role      string
	CreatedAt time.Time
}

// Session is the identity resolved for a request. Metadata carries
// provider-specific fields, including the legacy is_admin flag some
// accounts still rely on.
type Session struct {
	UserID   string                 `json:"user_id"`
	Email    string                 `json:"email"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// IsAdminMetadata reports whether the session's own metadata marks the
// user as admin. Fallback path only; the admins table is authoritative.
func (s *Session) IsAdminMetadata() bool {
	if s == nil || s.Metadata == nil {
		return false
	}
	switch v := s.Metadata["is_admin"].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}
