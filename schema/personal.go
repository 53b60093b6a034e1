package schema

import (
	"github.com/sahilchouksey/academic-portfolio/model"
	"gorm.io/datatypes"
)

// SocialLinkRequest is one entry of PersonalRequest.SocialLinks
type SocialLinkRequest struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url" validate:"required,url"`
	Icon string `json:"icon"`
}

// PersonalRequest is the payload for the profile upsert. Optional fields are
// pointers so that an omitted field keeps its stored value.
type PersonalRequest struct {
	Name         string               `json:"name" validate:"required,min=2,max=100"`
	Designation  string               `json:"designation" validate:"required,min=2,max=100"`
	Department   string               `json:"department" validate:"required,min=2,max=100"`
	Institution  string               `json:"institution" validate:"required,min=2,max=100"`
	City         string               `json:"city" validate:"required,min=2,max=50"`
	Country      string               `json:"country" validate:"required,min=2,max=50"`
	Email1       string               `json:"email1" validate:"required,email"`
	Email2       *string              `json:"email2" validate:"omitempty,email_or_empty"`
	Phone        string               `json:"phone" validate:"required,min=10,max=20"`
	Office       string               `json:"office" validate:"required,min=5,max=200"`
	Address      string               `json:"address" validate:"required,min=5,max=200"`
	CVLink       *string              `json:"cv_link" validate:"omitempty,url_or_empty"`
	LinkedIn     *string              `json:"linkedin" validate:"omitempty,url_or_empty"`
	GitHub       *string              `json:"github" validate:"omitempty,url_or_empty"`
	Twitter      *string              `json:"twitter" validate:"omitempty,url_or_empty"`
	ResearchGate *string              `json:"researchGate" validate:"omitempty,url_or_empty"`
	SocialLinks  *[]SocialLinkRequest `json:"socialLinks" validate:"omitempty,dive"`
}

// Apply merges the payload onto m
func (r *PersonalRequest) Apply(m *model.Personal) {
	m.Name = r.Name
	m.Designation = r.Designation
	m.Department = r.Department
	m.Institution = r.Institution
	m.City = r.City
	m.Country = r.Country
	m.Email1 = r.Email1
	m.Phone = r.Phone
	m.Office = r.Office
	m.Address = r.Address

	mergeString(&m.Email2, r.Email2)
	mergeString(&m.CVLink, r.CVLink)
	mergeString(&m.LinkedIn, r.LinkedIn)
	mergeString(&m.GitHub, r.GitHub)
	mergeString(&m.Twitter, r.Twitter)
	mergeString(&m.ResearchGate, r.ResearchGate)

	if r.SocialLinks != nil {
		links := make(datatypes.JSONSlice[model.SocialLink], 0, len(*r.SocialLinks))
		for _, l := range *r.SocialLinks {
			links = append(links, model.SocialLink{Name: l.Name, URL: l.URL, Icon: l.Icon})
		}
		m.SocialLinks = links
	}
}

func mergeString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
