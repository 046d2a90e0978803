package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msavelyeva/eventhub/internal/backend"
)

func TestFromDocument_Defaults(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	doc := backend.Document{
		ID:        "u1",
		CreatedAt: created,
		UpdatedAt: created,
		Fields: map[string]any{
			"name":  "Alice",
			"email": "alice@example.org",
		},
	}

	p := FromDocument(doc)

	assert.Equal(t, "u1", p.ID, "id falls back to the document id")
	assert.Equal(t, RoleUser, p.Role, "absent role defaults to user")
	assert.Empty(t, p.Interests)
	assert.NotNil(t, p.Interests, "absent interests default to an empty set")
	assert.True(t, p.Active, "absent active flag defaults to true")
	assert.False(t, p.EmailVerified)
	assert.Equal(t, 0, p.LoginCount)
	assert.Equal(t, created, p.CreatedAt, "created falls back to document metadata")
	assert.Nil(t, p.Location)
	assert.Nil(t, p.Preferences)
	assert.Zero(t, p.Stats)
}

func TestFromDocument_FullRecord(t *testing.T) {
	doc := backend.Document{
		ID: "doc-1",
		Fields: map[string]any{
			"id":                "u1",
			"name":              "Alice",
			"email":             "alice@example.org",
			"emailVerification": true,
			"role":              "moderator",
			"interests":         []any{"music", "travel"},
			"isActive":          false,
			"loginCount":        float64(7), // decoded JSON numbers arrive as float64
			"lastLoginAt":       "2026-02-01T10:00:00Z",
			"createdAt":         "2026-01-01T00:00:00Z",
			"updatedAt":         "2026-02-01T10:00:00Z",
			"bio":               "hi there",
			"location": map[string]any{
				"city": "Riga", "country": "Latvia", "countryCode": "LV",
			},
			"preferences": map[string]any{
				"emailNotifications": true,
				"language":           "en",
				"privacy":            map[string]any{"profileVisibility": "private", "showEmail": true},
			},
			"stats": map[string]any{
				"eventsCount": float64(3), "followersCount": float64(12),
			},
		},
	}

	p := FromDocument(doc)

	assert.Equal(t, "u1", p.ID)
	assert.Equal(t, RoleModerator, p.Role)
	assert.Equal(t, []Interest{InterestMusic, InterestTravel}, p.Interests)
	assert.False(t, p.Active)
	assert.Equal(t, 7, p.LoginCount)
	assert.Equal(t, 2026, p.LastLoginAt.Year())
	require.NotNil(t, p.Location)
	assert.Equal(t, "Riga", p.Location.City)
	require.NotNil(t, p.Preferences)
	assert.True(t, p.Preferences.EmailNotifications)
	require.NotNil(t, p.Preferences.Privacy)
	assert.Equal(t, "private", p.Preferences.Privacy.ProfileVisibility)
	assert.Equal(t, 3, p.Stats.Events)
	assert.Equal(t, 12, p.Stats.Followers)
}

func TestFromDocument_UnknownRoleDefaultsToUser(t *testing.T) {
	p := FromDocument(backend.Document{Fields: map[string]any{"role": "superuser"}})
	assert.Equal(t, RoleUser, p.Role)
}

func TestToFields_RoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := &Profile{
		ID:          "u1",
		Name:        "Alice",
		Email:       "alice@example.org",
		Role:        RoleVIP,
		Interests:   []Interest{InterestArt},
		Active:      true,
		LoginCount:  2,
		LastLoginAt: now,
		CreatedAt:   now.Add(-24 * time.Hour),
		UpdatedAt:   now,
		Bio:         "painter",
		Stats:       Stats{Events: 1},
	}

	f := ToFields(p)

	assert.Equal(t, "u1", f["id"])
	assert.Equal(t, "vip", f["role"])
	assert.Equal(t, []string{"art"}, f["interests"])
	assert.Equal(t, 2, f["loginCount"])
	assert.Equal(t, "2026-03-01T12:00:00Z", f["lastLoginAt"])
	assert.Equal(t, "painter", f["bio"])
	assert.NotContains(t, f, "phoneNumber", "empty optionals are omitted")
	assert.NotContains(t, f, "location")

	back := FromDocument(backend.Document{ID: "u1", Fields: jsonish(f)})
	assert.Equal(t, p.Name, back.Name)
	assert.Equal(t, p.Role, back.Role)
	assert.Equal(t, p.LoginCount, back.LoginCount)
	assert.Equal(t, p.LastLoginAt, back.LastLoginAt)
	assert.Equal(t, p.Stats, back.Stats)
}

// jsonish simulates a JSON decode round trip: ints become float64 and typed
// slices become []any, matching what the wire hands back.
func jsonish(f map[string]any) map[string]any {
	out := make(map[string]any, len(f))
	for k, v := range f {
		switch t := v.(type) {
		case int:
			out[k] = float64(t)
		case []string:
			items := make([]any, len(t))
			for i, s := range t {
				items[i] = s
			}
			out[k] = items
		case map[string]any:
			out[k] = jsonish(t)
		default:
			out[k] = v
		}
	}
	return out
}
