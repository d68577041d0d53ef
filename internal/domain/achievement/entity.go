package achievement

import "time"

// Achievement is an unlocked achievement of one user. A user unlocks each
// type at most once.
type Achievement struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;uniqueIndex:idx_achievement_user_type" json:"user_id"`
	AchievementType Type      `gorm:"not null;size:50;uniqueIndex:idx_achievement_user_type" json:"achievement_type"`
	AchievementName string    `gorm:"not null;size:100" json:"achievement_name"`
	Description     string    `gorm:"size:255" json:"description"`
	Icon            string    `gorm:"size:16" json:"icon"`
	UnlockedAt      time.Time `gorm:"not null" json:"unlocked_at"`
}

// TableName overrides the table name
func (Achievement) TableName() string {
	return "achievements"
}
