package entity

import "time"

// DefaultPostDelay is applied to posts created without an explicit reply delay.
const DefaultPostDelay = time.Minute

// Moderation is embedded in every user-generated entity.
// BlockedAt is set iff Blocked is true.
type Moderation struct {
	Blocked   bool       `gorm:"not null;index" json:"-"`
	BlockedAt *time.Time `json:"-"`
}

// Block marks the entity hidden. Calling it on a blocked entity keeps the first timestamp.
func (m *Moderation) Block(at time.Time) {
	if m.Blocked {
		return
	}
	m.Blocked = true
	m.BlockedAt = &at
}

func (m Moderation) IsBlocked() bool {
	return m.Blocked
}
