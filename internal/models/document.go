package models

import (
	"time"

	"github.com/msavelyeva/eventhub/internal/backend"
)

// Document attribute keys used in the users collection.
const (
	fieldID             = "id"
	fieldName           = "name"
	fieldEmail          = "email"
	fieldEmailVerified  = "emailVerification"
	fieldRole           = "role"
	fieldInterests      = "interests"
	fieldActive         = "isActive"
	fieldLoginCount     = "loginCount"
	fieldLastLoginAt    = "lastLoginAt"
	fieldCreatedAt      = "createdAt"
	fieldUpdatedAt      = "updatedAt"
	fieldLocation       = "location"
	fieldPhoneNumber    = "phoneNumber"
	fieldBio            = "bio"
	fieldDateOfBirth    = "dateOfBirth"
	fieldGender         = "gender"
	fieldSocialProfiles = "socialProfiles"
	fieldPreferences    = "preferences"
	fieldStats          = "stats"
)

// FromDocument maps a backend document into a Profile, defaulting every
// absent optional field: role falls back to user, interests to an empty set,
// the active flag to true, and timestamps to the document metadata.
func FromDocument(d backend.Document) *Profile {
	f := d.Fields

	p := &Profile{
		ID:            asString(f[fieldID]),
		Name:          asString(f[fieldName]),
		Email:         asString(f[fieldEmail]),
		Role:          Role(asString(f[fieldRole])),
		EmailVerified: asBool(f[fieldEmailVerified], false),
		Active:        asBool(f[fieldActive], true),
		LoginCount:    asInt(f[fieldLoginCount]),
		LastLoginAt:   asTime(f[fieldLastLoginAt]),
		CreatedAt:     asTime(f[fieldCreatedAt]),
		UpdatedAt:     asTime(f[fieldUpdatedAt]),
		PhoneNumber:   asString(f[fieldPhoneNumber]),
		Bio:           asString(f[fieldBio]),
		DateOfBirth:   asString(f[fieldDateOfBirth]),
		Gender:        asString(f[fieldGender]),
		Interests:     asInterests(f[fieldInterests]),
	}

	if p.ID == "" {
		p.ID = d.ID
	}
	if !p.Role.Valid() {
		p.Role = RoleUser
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = d.CreatedAt
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = d.UpdatedAt
	}

	if m, ok := f[fieldLocation].(map[string]any); ok {
		p.Location = &Location{
			City:        asString(m["city"]),
			Country:     asString(m["country"]),
			CountryCode: asString(m["countryCode"]),
			Timezone:    asString(m["timezone"]),
		}
	}
	if m, ok := f[fieldSocialProfiles].(map[string]any); ok {
		p.SocialProfiles = &SocialProfiles{
			Google:   asString(m["google"]),
			Facebook: asString(m["facebook"]),
			Twitter:  asString(m["twitter"]),
			GitHub:   asString(m["github"]),
			LinkedIn: asString(m["linkedin"]),
		}
	}
	if m, ok := f[fieldPreferences].(map[string]any); ok {
		prefs := &Preferences{
			EmailNotifications: asBool(m["emailNotifications"], false),
			PushNotifications:  asBool(m["pushNotifications"], false),
			Language:           asString(m["language"]),
		}
		if pm, ok := m["privacy"].(map[string]any); ok {
			prefs.Privacy = &Privacy{
				ProfileVisibility: asString(pm["profileVisibility"]),
				ShowEmail:         asBool(pm["showEmail"], false),
				ShowLocation:      asBool(pm["showLocation"], false),
			}
		}
		p.Preferences = prefs
	}
	if m, ok := f[fieldStats].(map[string]any); ok {
		p.Stats = Stats{
			Events:      asInt(m["eventsCount"]),
			SavedEvents: asInt(m["savedEventsCount"]),
			Followers:   asInt(m["followersCount"]),
			Following:   asInt(m["followingCount"]),
		}
	}

	return p
}

// ToFields flattens a Profile into the document attribute map used for
// create and full-update calls.
func ToFields(p *Profile) map[string]any {
	interests := make([]string, 0, len(p.Interests))
	for _, i := range p.Interests {
		interests = append(interests, string(i))
	}

	f := map[string]any{
		fieldID:            p.ID,
		fieldName:          p.Name,
		fieldEmail:         p.Email,
		fieldEmailVerified: p.EmailVerified,
		fieldRole:          string(p.Role),
		fieldInterests:     interests,
		fieldActive:        p.Active,
		fieldLoginCount:    p.LoginCount,
		fieldLastLoginAt:   FormatTime(p.LastLoginAt),
		fieldCreatedAt:     FormatTime(p.CreatedAt),
		fieldUpdatedAt:     FormatTime(p.UpdatedAt),
		fieldStats: map[string]any{
			"eventsCount":      p.Stats.Events,
			"savedEventsCount": p.Stats.SavedEvents,
			"followersCount":   p.Stats.Followers,
			"followingCount":   p.Stats.Following,
		},
	}

	if p.PhoneNumber != "" {
		f[fieldPhoneNumber] = p.PhoneNumber
	}
	if p.Bio != "" {
		f[fieldBio] = p.Bio
	}
	if p.DateOfBirth != "" {
		f[fieldDateOfBirth] = p.DateOfBirth
	}
	if p.Gender != "" {
		f[fieldGender] = p.Gender
	}
	if p.Location != nil {
		f[fieldLocation] = map[string]any{
			"city":        p.Location.City,
			"country":     p.Location.Country,
			"countryCode": p.Location.CountryCode,
			"timezone":    p.Location.Timezone,
		}
	}
	if p.SocialProfiles != nil {
		f[fieldSocialProfiles] = map[string]any{
			"google":   p.SocialProfiles.Google,
			"facebook": p.SocialProfiles.Facebook,
			"twitter":  p.SocialProfiles.Twitter,
			"github":   p.SocialProfiles.GitHub,
			"linkedin": p.SocialProfiles.LinkedIn,
		}
	}
	if p.Preferences != nil {
		prefs := map[string]any{
			"emailNotifications": p.Preferences.EmailNotifications,
			"pushNotifications":  p.Preferences.PushNotifications,
			"language":           p.Preferences.Language,
		}
		if p.Preferences.Privacy != nil {
			prefs["privacy"] = map[string]any{
				"profileVisibility": p.Preferences.Privacy.ProfileVisibility,
				"showEmail":         p.Preferences.Privacy.ShowEmail,
				"showLocation":      p.Preferences.Privacy.ShowLocation,
			}
		}
		f[fieldPreferences] = prefs
	}

	return f
}

// FormatTime renders a timestamp in the wire format the document store
// expects. The zero time renders as an empty string.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asInt accepts the numeric shapes a decoded JSON document may carry.
func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func asBool(v any, def bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}

func asTime(v any) time.Time {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func asInterests(v any) []Interest {
	raw, ok := v.([]any)
	if !ok {
		return []Interest{}
	}
	out := make([]Interest, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, Interest(s))
		}
	}
	return out
}
