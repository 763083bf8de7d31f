package content

// About is the singleton document behind the about-us page.
type About struct {
	Title    string       `json:"title" validate:"max=200"`
	Subtitle string       `json:"subtitle" validate:"max=500"`
	Story    string       `json:"story" validate:"max=20000"`
	Mission  string       `json:"mission" validate:"max=2000"`
	Vision   string       `json:"vision" validate:"max=2000"`
	Image    Media        `json:"image"`
	Team     []TeamMember `json:"team" validate:"max=100,dive"`
}

// TeamMember is a person listed on the about page.
type TeamMember struct {
	Name  string `json:"name" validate:"required,max=120"`
	Role  string `json:"role" validate:"max=120"`
	Photo Media  `json:"photo"`
}

// Normalize replaces nil slices with empty ones.
func (a *About) Normalize() {
	if a.Team == nil {
		a.Team = []TeamMember{}
	}
}

// DefaultAbout returns the empty about document.
func DefaultAbout() About {
	doc := About{}
	doc.Normalize()
	return doc
}

// Others holds site-wide content that has no page of its own.
type Others struct {
	Announcement   string       `json:"announcement" validate:"max=500"`
	PrivacyPolicy  string       `json:"privacyPolicy" validate:"max=50000"`
	TermsOfService string       `json:"termsOfService" validate:"max=50000"`
	FAQs           []FAQ        `json:"faqs" validate:"max=100,dive"`
	SocialLinks    []SocialLink `json:"socialLinks" validate:"max=20,dive"`
}

// FAQ is a question and its answer.
type FAQ struct {
	Question string `json:"question" validate:"required,max=300"`
	Answer   string `json:"answer" validate:"max=5000"`
}

// SocialLink points at one of the business' social profiles.
type SocialLink struct {
	Platform string `json:"platform" validate:"required,max=40"`
	URL      string `json:"url" validate:"required,max=500"`
}

// Normalize replaces nil slices with empty ones.
func (o *Others) Normalize() {
	if o.FAQs == nil {
		o.FAQs = []FAQ{}
	}
	if o.SocialLinks == nil {
		o.SocialLinks = []SocialLink{}
	}
}

// DefaultOthers returns the empty others document.
func DefaultOthers() Others {
	doc := Others{}
	doc.Normalize()
	return doc
}
