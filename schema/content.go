// Package schema holds the request payloads accepted by the write endpoints.
// Each payload carries its validation rules as struct tags and knows how to
// copy itself onto the stored model.
package schema

import (
	"time"

	"github.com/sahilchouksey/academic-portfolio/model"
	"github.com/sahilchouksey/academic-portfolio/utils/validation"
	"gorm.io/datatypes"
)

// EducationRequest is the payload for creating or replacing an Education item
type EducationRequest struct {
	Degree      string `json:"degree" validate:"required,min=2,max=100"`
	Institution string `json:"institution" validate:"required,min=1,max=100"`
	Year        string `json:"year" validate:"required,min=4,max=20"`
	Location    string `json:"location" validate:"max=100"`
	CGPA        string `json:"cgpa" validate:"max=10"`
	Description string `json:"description" validate:"max=500"`
}

func (r *EducationRequest) Apply(m *model.Education) {
	m.Degree = r.Degree
	m.Institution = r.Institution
	m.Year = r.Year
	m.Location = r.Location
	m.CGPA = r.CGPA
	m.Description = r.Description
}

// ExperienceRequest is the payload for an Experience item
type ExperienceRequest struct {
	Position         string   `json:"position" validate:"required,min=2,max=100"`
	Organization     string   `json:"organization" validate:"required,min=2,max=100"`
	StartDate        string   `json:"startDate" validate:"required"`
	EndDate          string   `json:"endDate"`
	Current          bool     `json:"current"`
	Location         string   `json:"location" validate:"max=100"`
	Description      string   `json:"description" validate:"max=1000"`
	Responsibilities []string `json:"responsibilities" validate:"omitempty,dive,max=200"`
}

func (r *ExperienceRequest) Apply(m *model.Experience) {
	m.Position = r.Position
	m.Organization = r.Organization
	m.StartDate = r.StartDate
	m.EndDate = r.EndDate
	m.Current = r.Current
	m.Location = r.Location
	m.Description = r.Description
	m.Responsibilities = stringSlice(r.Responsibilities)
}

// PublicationRequest is the payload for a Publication item
type PublicationRequest struct {
	Title    string   `json:"title" validate:"required,min=5,max=300"`
	Authors  []string `json:"authors" validate:"required,min=1,dive,min=2,max=100"`
	Journal  string   `json:"journal" validate:"required,min=2,max=200"`
	Year     int      `json:"year" validate:"required,gte=1900,max_year_ahead=5"`
	Volume   string   `json:"volume" validate:"max=20"`
	Pages    string   `json:"pages" validate:"max=50"`
	DOI      string   `json:"doi" validate:"max=100"`
	URL      string   `json:"url" validate:"omitempty,url"`
	Type     string   `json:"type" validate:"oneof=journal conference book chapter preprint"`
	Abstract string   `json:"abstract" validate:"max=2000"`
}

func (r *PublicationRequest) SetDefaults() {
	if r.Type == "" {
		r.Type = model.PublicationJournal
	}
}

func (r *PublicationRequest) Apply(m *model.Publication) {
	m.Title = r.Title
	m.Authors = stringSlice(r.Authors)
	m.Journal = r.Journal
	m.Year = r.Year
	m.Volume = r.Volume
	m.Pages = r.Pages
	m.DOI = r.DOI
	m.URL = r.URL
	m.Type = r.Type
	m.Abstract = r.Abstract
}

// ResearchRequest is the payload for a Research item. Publications holds
// publication ids; they are not checked for existence.
type ResearchRequest struct {
	Title         string   `json:"title" validate:"required,min=5,max=200"`
	Description   string   `json:"description" validate:"required,min=10"`
	Keywords      []string `json:"keywords" validate:"omitempty,dive,max=50"`
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate"`
	Status        string   `json:"status" validate:"oneof=ongoing completed planned"`
	Collaborators []string `json:"collaborators" validate:"omitempty,dive,max=100"`
	Funding       string   `json:"funding" validate:"max=200"`
	Publications  []string `json:"publications" validate:"omitempty,dive,objectid"`
}

func (r *ResearchRequest) SetDefaults() {
	if r.Status == "" {
		r.Status = model.ResearchOngoing
	}
}

func (r *ResearchRequest) Apply(m *model.Research) {
	m.Title = r.Title
	m.Description = r.Description
	m.Keywords = stringSlice(r.Keywords)
	m.StartDate = r.StartDate
	m.EndDate = r.EndDate
	m.Status = r.Status
	m.Collaborators = stringSlice(r.Collaborators)
	m.Funding = r.Funding
	m.Publications = stringSlice(r.Publications)
}

// NewsRequest is the payload for a News item. Date accepts RFC 3339 or
// YYYY-MM-DD and defaults to the time of the request.
type NewsRequest struct {
	Title    string `json:"title" validate:"required,min=5,max=200"`
	Content  string `json:"content" validate:"required,min=10"`
	Date     string `json:"date" validate:"isodate"`
	Category string `json:"category" validate:"oneof=announcement achievement publication event general"`
	Featured bool   `json:"featured"`
	Image    string `json:"image" validate:"omitempty,url"`
	Link     string `json:"link" validate:"omitempty,url"`
}

func (r *NewsRequest) SetDefaults() {
	if r.Date == "" {
		r.Date = time.Now().UTC().Format(time.RFC3339Nano)
	}
	if r.Category == "" {
		r.Category = model.NewsGeneral
	}
}

func (r *NewsRequest) Apply(m *model.News) {
	m.Title = r.Title
	m.Content = r.Content
	if date, err := validation.ParseDate(r.Date); err == nil {
		m.Date = date
	}
	m.Category = r.Category
	m.Featured = r.Featured
	m.Image = r.Image
	m.Link = r.Link
}

// ScholarshipAwardRequest is the payload for a ScholarshipAward item
type ScholarshipAwardRequest struct {
	Title        string `json:"title" validate:"required,min=2,max=200"`
	Organization string `json:"organization" validate:"required,min=2,max=100"`
	Year         int    `json:"year" validate:"required,gte=1900,max_year_ahead=5"`
	Amount       string `json:"amount" validate:"max=50"`
	Description  string `json:"description" validate:"max=1000"`
	Type         string `json:"type" validate:"required,oneof=scholarship award grant fellowship"`
}

func (r *ScholarshipAwardRequest) Apply(m *model.ScholarshipAward) {
	m.Title = r.Title
	m.Organization = r.Organization
	m.Year = r.Year
	m.Amount = r.Amount
	m.Description = r.Description
	m.Type = r.Type
}

// TeachingRequest is the payload for a Teaching item
type TeachingRequest struct {
	CourseCode  string   `json:"courseCode" validate:"required,min=2,max=20"`
	CourseName  string   `json:"courseName" validate:"required,min=3,max=100"`
	Semester    string   `json:"semester" validate:"required,min=2,max=20"`
	Year        int      `json:"year" validate:"required,gte=2000,max_year_ahead=2"`
	Level       string   `json:"level" validate:"required,oneof=undergraduate graduate postgraduate"`
	Credits     *float64 `json:"credits" validate:"omitempty,gte=1,lte=10"`
	Students    *int     `json:"students" validate:"omitempty,gte=1,lte=1000"`
	Description string   `json:"description" validate:"max=1000"`
	Syllabus    string   `json:"syllabus" validate:"omitempty,url"`
}

func (r *TeachingRequest) Apply(m *model.Teaching) {
	m.CourseCode = r.CourseCode
	m.CourseName = r.CourseName
	m.Semester = r.Semester
	m.Year = r.Year
	m.Level = r.Level
	m.Credits = r.Credits
	m.Students = r.Students
	m.Description = r.Description
	m.Syllabus = r.Syllabus
}

// stringSlice stores missing arrays as [] rather than null
func stringSlice(values []string) datatypes.JSONSlice[string] {
	if values == nil {
		return datatypes.JSONSlice[string]{}
	}
	return datatypes.JSONSlice[string](values)
}
