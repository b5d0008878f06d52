package models

// User owns QR codes. The password field holds a bcrypt hash and is
// cleared by handlers before it reaches an authenticated response.
type User struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"password,omitempty"`
	UpiID    string `json:"upiId,omitempty"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"fullName,omitempty"`
}

// UserUpdate carries a partial user update. Nil fields are left unchanged.
type UserUpdate struct {
	UpiID    *string `json:"upiId"`
	Email    *string `json:"email"`
	FullName *string `json:"fullName"`
}
