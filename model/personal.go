package model

import (
	"gorm.io/datatypes"
)

// SocialLink is a named external profile link owned by Personal
type SocialLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Icon string `json:"icon,omitempty"`
}

// PersonalID is the fixed primary key of the profile row. The primary key
// constraint keeps the table at a single row.
const PersonalID = "000000000000000000000001"

// Personal is the portfolio owner's profile. The table holds at most one row.
type Personal struct {
	Base
	Name         string                         `gorm:"not null;type:varchar(100)" json:"name"`
	Designation  string                         `gorm:"not null;type:varchar(100)" json:"designation"`
	Department   string                         `gorm:"not null;type:varchar(100)" json:"department"`
	Institution  string                         `gorm:"not null;type:varchar(100)" json:"institution"`
	City         string                         `gorm:"not null;type:varchar(50)" json:"city"`
	Country      string                         `gorm:"not null;type:varchar(50)" json:"country"`
	Email1       string                         `gorm:"column:email1;not null;type:varchar(254)" json:"email1"`
	Email2       string                         `gorm:"column:email2;type:varchar(254)" json:"email2"`
	Phone        string                         `gorm:"not null;type:varchar(20)" json:"phone"`
	Office       string                         `gorm:"not null;type:varchar(200)" json:"office"`
	Address      string                         `gorm:"not null;type:varchar(200)" json:"address"`
	CVLink       string                         `gorm:"column:cv_link;type:text" json:"cv_link"`
	LinkedIn     string                         `gorm:"column:linkedin;type:text" json:"linkedin"`
	GitHub       string                         `gorm:"column:github;type:text" json:"github"`
	Twitter      string                         `gorm:"type:text" json:"twitter"`
	ResearchGate string                         `gorm:"column:research_gate;type:text" json:"researchGate"`
	SocialLinks  datatypes.JSONSlice[SocialLink] `json:"socialLinks"`
}

func (Personal) TableName() string {
	return "personal"
}

// DefaultPersonal is the profile synthesized when none exists yet
func DefaultPersonal() Personal {
	return Personal{
		Base:        Base{ID: PersonalID},
		Name:        "Professor Name",
		Designation: "Professor",
		Department:  "Computer Science",
		Institution: "University Name",
		City:        "City",
		Country:     "Country",
		Email1:      "professor@university.edu",
		Phone:       "+1234567890",
		Office:      "Office Address",
		Address:     "Home Address",
		SocialLinks: datatypes.JSONSlice[SocialLink]{},
	}
}
