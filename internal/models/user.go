// Package models defines the application-level user profile record and its
// mapping to and from backend documents.
package models

import "time"

// Role is the application role stored on a profile.
type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleVIP       Role = "vip"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleModerator, RoleVIP:
		return true
	}
	return false
}

// Interest is an enumerated category tag a user can follow.
type Interest string

const (
	InterestTechnology  Interest = "technology"
	InterestSports      Interest = "sports"
	InterestMusic       Interest = "music"
	InterestArt         Interest = "art"
	InterestTravel      Interest = "travel"
	InterestFood        Interest = "food"
	InterestFitness     Interest = "fitness"
	InterestGaming      Interest = "gaming"
	InterestReading     Interest = "reading"
	InterestPhotography Interest = "photography"
	InterestBusiness    Interest = "business"
	InterestEducation   Interest = "education"
)

// AllInterests lists every known interest tag, in display order.
var AllInterests = []Interest{
	InterestTechnology, InterestSports, InterestMusic, InterestArt,
	InterestTravel, InterestFood, InterestFitness, InterestGaming,
	InterestReading, InterestPhotography, InterestBusiness, InterestEducation,
}

// Location is an optional profile sub-record.
type Location struct {
	City        string
	Country     string
	CountryCode string
	Timezone    string
}

// SocialProfiles holds optional links to external accounts.
type SocialProfiles struct {
	Google   string
	Facebook string
	Twitter  string
	GitHub   string
	LinkedIn string
}

// Privacy is the privacy block of Preferences.
type Privacy struct {
	ProfileVisibility string
	ShowEmail         bool
	ShowLocation      bool
}

// Preferences holds optional notification and privacy settings.
type Preferences struct {
	EmailNotifications bool
	PushNotifications  bool
	Privacy            *Privacy
	Language           string
}

// Stats is the counters block of a profile. A fresh profile starts zeroed.
type Stats struct {
	Events      int
	SavedEvents int
	Followers   int
	Following   int
}

// Profile is the application-level user record. Exactly one profile document
// exists per backend account; it is created lazily the first time a session
// is established for an account that lacks one.
type Profile struct {
	ID            string
	Name          string
	Email         string
	Role          Role
	Interests     []Interest
	EmailVerified bool
	Active        bool
	LoginCount    int
	LastLoginAt   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Location       *Location
	PhoneNumber    string
	Bio            string
	DateOfBirth    string
	Gender         string
	SocialProfiles *SocialProfiles
	Preferences    *Preferences
	Stats          Stats
}

// SignupData is the payload collected by the sign-up screen.
type SignupData struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	AcceptTerms     bool

	Role        Role
	Interests   []Interest
	Location    *Location
	PhoneNumber string
	Bio         string
	DateOfBirth string
	Gender      string
}
