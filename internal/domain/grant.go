package domain

import "time"

// ExhibitorAccessGrant is the per (event, user) permission record.
// Both flags default to false until an admin grants them; enabling one
// does not imply the other.
type ExhibitorAccessGrant struct {
	ID                   uint      `json:"id"`
	EventID              uint      `json:"event_id"`
	UserID               uint      `json:"user_id"`
	IsEnabled            bool      `json:"is_enabled"`
	IsStandConfigEnabled bool      `json:"is_stand_config_enabled"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// CanConfigure reports whether the grant authorizes opening the stand
// configuration wizard.
func (g ExhibitorAccessGrant) CanConfigure() bool {
	return g.IsEnabled && g.IsStandConfigEnabled
}
