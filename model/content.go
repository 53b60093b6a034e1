package model

import (
	"time"

	"gorm.io/datatypes"
)

// Education is a degree entry
type Education struct {
	Base
	Degree      string `gorm:"not null;type:varchar(100)" json:"degree"`
	Institution string `gorm:"not null;type:varchar(100)" json:"institution"`
	Year        string `gorm:"not null;type:varchar(20)" json:"year"`
	Location    string `gorm:"type:varchar(100)" json:"location"`
	CGPA        string `gorm:"column:cgpa;type:varchar(10)" json:"cgpa"`
	Description string `gorm:"type:text" json:"description"`
}

func (Education) TableName() string {
	return "education"
}

// Experience is a position held at an organization
type Experience struct {
	Base
	Position         string                     `gorm:"not null;type:varchar(100)" json:"position"`
	Organization     string                     `gorm:"not null;type:varchar(100)" json:"organization"`
	StartDate        string                     `gorm:"not null;type:varchar(50)" json:"startDate"`
	EndDate          string                     `gorm:"type:varchar(50)" json:"endDate"`
	Current          bool                       `gorm:"not null" json:"current"`
	Location         string                     `gorm:"type:varchar(100)" json:"location"`
	Description      string                     `gorm:"type:text" json:"description"`
	Responsibilities datatypes.JSONSlice[string] `json:"responsibilities"`
}

func (Experience) TableName() string {
	return "experience"
}

// Publication types
const (
	PublicationJournal    = "journal"
	PublicationConference = "conference"
	PublicationBook       = "book"
	PublicationChapter    = "chapter"
	PublicationPreprint   = "preprint"
)

// Publication is a published paper, book or preprint
type Publication struct {
	Base
	Title    string                     `gorm:"not null;type:varchar(300)" json:"title"`
	Authors  datatypes.JSONSlice[string] `json:"authors"`
	Journal  string                     `gorm:"not null;type:varchar(200)" json:"journal"`
	Year     int                        `gorm:"not null;index" json:"year"`
	Volume   string                     `gorm:"type:varchar(20)" json:"volume"`
	Pages    string                     `gorm:"type:varchar(50)" json:"pages"`
	DOI      string                     `gorm:"column:doi;type:varchar(100)" json:"doi"`
	URL      string                     `gorm:"column:url;type:text" json:"url"`
	Type     string                     `gorm:"type:varchar(20);not null" json:"type"`
	Abstract string                     `gorm:"type:text" json:"abstract"`
}

func (Publication) TableName() string {
	return "publications"
}

// PublicationSummary is the expanded form of a publication reference
type PublicationSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Year    int    `json:"year"`
	Journal string `json:"journal"`
}

// Research project statuses
const (
	ResearchOngoing   = "ongoing"
	ResearchCompleted = "completed"
	ResearchPlanned   = "planned"
)

// Research is a research project. Publications holds publication ids; the
// association is not owned and is not cascaded on delete.
type Research struct {
	Base
	Title         string                     `gorm:"not null;type:varchar(200)" json:"title"`
	Description   string                     `gorm:"not null;type:text" json:"description"`
	Keywords      datatypes.JSONSlice[string] `json:"keywords"`
	StartDate     string                     `gorm:"type:varchar(50)" json:"startDate"`
	EndDate       string                     `gorm:"type:varchar(50)" json:"endDate"`
	Status        string                     `gorm:"type:varchar(20);not null" json:"status"`
	Collaborators datatypes.JSONSlice[string] `json:"collaborators"`
	Funding       string                     `gorm:"type:varchar(200)" json:"funding"`
	Publications  datatypes.JSONSlice[string] `json:"publications"`
}

func (Research) TableName() string {
	return "research"
}

// ResearchView is a Research whose publication ids were replaced by summaries
type ResearchView struct {
	Research
	Publications []PublicationSummary `json:"publications"`
}

// News categories
const (
	NewsAnnouncement = "announcement"
	NewsAchievement  = "achievement"
	NewsPublication  = "publication"
	NewsEvent        = "event"
	NewsGeneral      = "general"
)

// News is a dated announcement
type News struct {
	Base
	Title    string    `gorm:"not null;type:varchar(200)" json:"title"`
	Content  string    `gorm:"not null;type:text" json:"content"`
	Date     time.Time `gorm:"not null;index" json:"date"`
	Category string    `gorm:"type:varchar(20);not null" json:"category"`
	Featured bool      `gorm:"not null" json:"featured"`
	Image    string    `gorm:"type:text" json:"image"`
	Link     string    `gorm:"type:text" json:"link"`
}

func (News) TableName() string {
	return "news"
}

// ScholarshipAward types
const (
	AwardScholarship = "scholarship"
	AwardAward       = "award"
	AwardGrant       = "grant"
	AwardFellowship  = "fellowship"
)

// ScholarshipAward is a scholarship, award, grant or fellowship
type ScholarshipAward struct {
	Base
	Title        string `gorm:"not null;type:varchar(200)" json:"title"`
	Organization string `gorm:"not null;type:varchar(100)" json:"organization"`
	Year         int    `gorm:"not null" json:"year"`
	Amount       string `gorm:"type:varchar(50)" json:"amount"`
	Description  string `gorm:"type:text" json:"description"`
	Type         string `gorm:"type:varchar(20);not null" json:"type"`
}

func (ScholarshipAward) TableName() string {
	return "scholarships_awards"
}

// Teaching levels
const (
	LevelUndergraduate = "undergraduate"
	LevelGraduate      = "graduate"
	LevelPostgraduate  = "postgraduate"
)

// Teaching is a taught course
type Teaching struct {
	Base
	CourseCode  string   `gorm:"not null;type:varchar(20)" json:"courseCode"`
	CourseName  string   `gorm:"not null;type:varchar(100)" json:"courseName"`
	Semester    string   `gorm:"not null;type:varchar(20)" json:"semester"`
	Year        int      `gorm:"not null" json:"year"`
	Level       string   `gorm:"type:varchar(20);not null" json:"level"`
	Credits     *float64 `json:"credits,omitempty"`
	Students    *int     `json:"students,omitempty"`
	Description string   `gorm:"type:text" json:"description"`
	Syllabus    string   `gorm:"type:text" json:"syllabus"`
}

func (Teaching) TableName() string {
	return "teaching"
}
