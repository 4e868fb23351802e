package models

// Account is an admin signup record. Passwords are kept exactly as submitted.
type Account struct {
	ID              uint    `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name            string  `json:"name" gorm:"column:name;type:varchar(255)"`
	Email           string  `json:"email" gorm:"column:email;type:varchar(255);uniqueIndex"`
	Phone           *string `json:"phone" gorm:"column:phone;type:varchar(32);uniqueIndex"`
	Password        string  `json:"password" gorm:"column:password;type:varchar(255)"`
	ConfirmPassword string  `json:"Confirm_Password" gorm:"column:Confirm_Password;type:varchar(255)"`
}

// TableName returns the legacy signup table name.
func (Account) TableName() string {
	return "singup"
}
