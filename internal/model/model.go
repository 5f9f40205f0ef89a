// Package model holds the backend-owned records surfaced in lists and forms.
// Shapes mirror the REST API payloads; ids are server-assigned and stable
// across fetch/update cycles so list reconciliation by id works.
package model

import "time"

// Entity is implemented by every record that can be listed and edited.
type Entity interface {
	EntityID() int64
}

// ContentType classifies a record by which optional media field is populated.
type ContentType string

const (
	ContentVideo ContentType = "video"
	ContentImage ContentType = "image"
	ContentText  ContentType = "text"
)

// Blog is a published or draft article.
type Blog struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	ImageURL    string    `json:"imageUrl"`
	YoutubeURL  string    `json:"youtubeUrl"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	Tags        string    `json:"tags"`
	Published   bool      `json:"published"`
	Active      bool      `json:"active"`
	PublishedAt time.Time `json:"publishedAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (b Blog) EntityID() int64 { return b.ID }

// Type resolves the display type: video wins over image, image over text.
func (b Blog) Type() ContentType {
	switch {
	case b.YoutubeURL != "":
		return ContentVideo
	case b.ImageURL != "":
		return ContentImage
	default:
		return ContentText
	}
}

// BlogStats is the admin dashboard counter set.
type BlogStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// Formation levels.
const (
	LevelBeginner     = "BEGINNER"
	LevelIntermediate = "INTERMEDIATE"
	LevelExpert       = "EXPERT"
)

// Formation is a training offering, grouped under a Theme.
type Formation struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ThemeID     int64     `json:"themeId"`
	Price       float64   `json:"price"`
	Duration    string    `json:"duration"`
	ImageURL    string    `json:"imageUrl"`
	Level       string    `json:"level"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (f Formation) EntityID() int64 { return f.ID }

// Theme groups formations by subject area.
type Theme struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (t Theme) EntityID() int64 { return t.ID }

// Portfolio is a delivered client project shown on the public site.
type Portfolio struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FormationID int64     `json:"formationId"`
	ImageURL    string    `json:"imageUrl"`
	CompanyLogo string    `json:"companyLogo"`
	ClientName  string    `json:"clientName"`
	ProjectDate string    `json:"projectDate"`
	ProjectURL  string    `json:"projectUrl"`
	Category    string    `json:"category"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p Portfolio) EntityID() int64 { return p.ID }

// Calendar event statuses.
const (
	EventScheduled = "SCHEDULED"
	EventCancelled = "CANCELLED"
	EventCompleted = "COMPLETED"
)

// CalendarEvent is a scheduled training session with limited capacity.
type CalendarEvent struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	Location        string    `json:"location"`
	MaxCapacity     int       `json:"maxCapacity"`
	CurrentCapacity int       `json:"currentCapacity"`
	AvailableSpots  int       `json:"availableSpots"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (e CalendarEvent) EntityID() int64 { return e.ID }

// Reservation statuses, shared by event and calendar reservations.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
	StatusCompleted = "COMPLETED"
)

// Reservation is a visitor booking against a calendar event.
type Reservation struct {
	ID              int64     `json:"id"`
	CalendarID      int64     `json:"calendarId"`
	VisitorName     string    `json:"visitorName"`
	VisitorEmail    string    `json:"visitorEmail"`
	VisitorPhone    string    `json:"visitorPhone"`
	NumberOfPeople  int       `json:"numberOfPeople"`
	Notes           string    `json:"notes"`
	Status          string    `json:"status"`
	ReservationDate time.Time `json:"reservationDate"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (r Reservation) EntityID() int64 { return r.ID }

// CalendarReservation is a private-session request tied to a calendar slot.
type CalendarReservation struct {
	ID               int64     `json:"id"`
	CalendarID       int64     `json:"calendarId"`
	ClientName       string    `json:"clientName"`
	ClientEmail      string    `json:"clientEmail"`
	ClientPhone      string    `json:"clientPhone"`
	EventTitle       string    `json:"eventTitle"`
	EventDescription string    `json:"eventDescription"`
	EventDate        time.Time `json:"eventDate"`
	Duration         int       `json:"duration"` // minutes
	Location         string    `json:"location"`
	Status           string    `json:"status"`
	AdminNotes       string    `json:"adminNotes"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (r CalendarReservation) EntityID() int64 { return r.ID }

// Request statuses for custom and annex requests.
const (
	RequestPending    = "PENDING"
	RequestApproved   = "APPROVED"
	RequestRejected   = "REJECTED"
	RequestInProgress = "IN_PROGRESS"
	RequestCompleted  = "COMPLETED"
)

// Training modalities.
const (
	ModalityInPerson = "IN_PERSON"
	ModalityRemote   = "REMOTE"
	ModalityHybrid   = "HYBRID"
)

// CustomRequest is a company's tailored-training inquiry.
type CustomRequest struct {
	ID                 int64     `json:"id"`
	CompanyName        string    `json:"companyName"`
	ContactPerson      string    `json:"contactPerson"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Subject            string    `json:"subject"`
	Details            string    `json:"details"`
	Budget             float64   `json:"budget"`
	PreferredStartDate string    `json:"preferredStartDate"`
	Status             string    `json:"status"`
	AdminNotes         string    `json:"adminNotes"`
	ExistingProgram    bool      `json:"isExistingProgram"`
	FormationID        int64     `json:"formationId"`
	DateSubmitted      time.Time `json:"dateSubmitted"`
	DateUpdated        time.Time `json:"dateUpdated"`
}

func (r CustomRequest) EntityID() int64 { return r.ID }

// AnnexRequest is a booking request for an annex training program.
type AnnexRequest struct {
	ID                int64     `json:"id"`
	CompanyName       string    `json:"companyName"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	FormationID       int64     `json:"formationId"`
	Custom            bool      `json:"isCustom"`
	CustomDescription string    `json:"customDescription"`
	NumParticipants   int       `json:"numParticipants"`
	Modality          string    `json:"modality"`
	PreferredDate     string    `json:"preferredDate"`
	Notes             string    `json:"notes"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (r AnnexRequest) EntityID() int64 { return r.ID }

// Contact is a message sent through the public contact form.
type Contact struct {
	ID       int64     `json:"id"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	Subject  string    `json:"subject"`
	Message  string    `json:"message"`
	DateSent time.Time `json:"dateSent"`
}

func (c Contact) EntityID() int64 { return c.ID }

// Review is a 1-5 star rating left for a formation.
type Review struct {
	ID          int64     `json:"id"`
	AuthorName  string    `json:"authorName"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	FormationID int64     `json:"formationId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (r Review) EntityID() int64 { return r.ID }

// Newsletter is a subscription entry.
type Newsletter struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	DateSubscribed time.Time `json:"dateSubscribed"`
}

func (n Newsletter) EntityID() int64 { return n.ID }

// Highlight is a homepage hero banner entry.
type Highlight struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	CtaText  string `json:"ctaText"`
	CtaLink  string `json:"ctaLink"`
	ImageURL string `json:"imageUrl"`
	Visible  bool   `json:"visible"`
}

func (h Highlight) EntityID() int64 { return h.ID }

// User is the authenticated back-office account.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (u User) EntityID() int64 { return u.ID }
