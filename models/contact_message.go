package models

import "gorm.io/gorm"

type ContactMessage struct {
	gorm.Model
	Name    string `gorm:"size:100" json:"name"`
	Email   string `gorm:"size:191" json:"email"`
	Subject string `gorm:"size:200" json:"subject"`
	Body    string `gorm:"type:text" json:"body"`
}
