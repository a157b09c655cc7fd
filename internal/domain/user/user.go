package user

import "time"

// User is the identity record. It is provisioned by the auth frontend; this
// service only reads it for display and deletes it with the account.
type User struct {
	ID           string    `gorm:"primaryKey;column:id;size:64" json:"$id"`
	Name         string    `gorm:"column:name" json:"name"`
	Email        string    `gorm:"column:email;index" json:"email"`
	AvatarFileID string    `gorm:"column:avatar_file_id" json:"avatar,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (User) TableName() string { return "user" }

// DisplayName prefers the name, then the email.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
