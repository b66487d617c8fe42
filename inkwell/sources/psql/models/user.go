package models

// User is an account holder. Records are only ever created by registration;
// nothing exposed mutates or deletes them. Email uniqueness is left to
// whatever constraints the operator puts on the table.
type User struct {
	ID           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string `json:"username" gorm:"type:varchar(255);not null"`
	Email        string `json:"email" gorm:"type:varchar(255);not null"`
	PasswordHash string `json:"-" gorm:"type:varchar(255);not null;column:password"`
}

func (User) TableName() string {
	return "users"
}
