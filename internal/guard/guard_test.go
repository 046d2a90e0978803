package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/msavelyeva/eventhub/internal/models"
	"github.com/msavelyeva/eventhub/internal/state"
)

func TestGuestOnly(t *testing.T) {
	g := GuestOnly{Home: "home"}

	tests := []struct {
		name string
		snap state.Snapshot
		want Decision
	}{
		{"pending while check incomplete", state.Snapshot{}, Decision{Action: Pending}},
		{
			// A signed-in user must never see guest-only content, even
			// mid-operation.
			"pending check with user still pends",
			state.Snapshot{User: &models.Profile{ID: "u1"}},
			Decision{Action: Pending},
		},
		{"guest allowed", state.Snapshot{AuthChecked: true}, Decision{Action: Allow}},
		{
			"signed-in user redirected",
			state.Snapshot{AuthChecked: true, User: &models.Profile{ID: "u1"}},
			Decision{Action: Redirect, Route: "home"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Check(tt.snap))
		})
	}
}

func TestUserOnly(t *testing.T) {
	g := UserOnly{SignIn: "sign-in"}

	tests := []struct {
		name string
		snap state.Snapshot
		want Decision
	}{
		{"pending while check incomplete", state.Snapshot{}, Decision{Action: Pending}},
		{"guest redirected", state.Snapshot{AuthChecked: true}, Decision{Action: Redirect, Route: "sign-in"}},
		{
			"user allowed",
			state.Snapshot{AuthChecked: true, User: &models.Profile{ID: "u1"}},
			Decision{Action: Allow},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Check(tt.snap))
		})
	}
}
