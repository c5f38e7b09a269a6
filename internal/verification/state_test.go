package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"maaziride/internal/model"
)

func TestStateFor(t *testing.T) {
	tests := []struct {
		name     string
		user     *model.User
		vehicle  *model.Vehicle
		expected State
	}{
		{
			name:     "nil user is unauthenticated",
			user:     nil,
			expected: StateUnauthenticated,
		},
		{
			name:     "new principal without a role",
			user:     &model.User{Role: model.RoleUnset},
			expected: StateRoleUnset,
		},
		{
			name:     "driver without documents",
			user:     &model.User{Role: model.RoleDriver},
			expected: StateOnboardingIncomplete,
		},
		{
			name:     "driver with documents but no vehicle",
			user:     completeDocs(&model.User{Role: model.RoleDriver}),
			expected: StateOnboardingIncomplete,
		},
		{
			name:     "driver with complete onboarding",
			user:     completeDocs(&model.User{Role: model.RoleDriver}),
			vehicle:  completeVehicle(),
			expected: StatePendingAdminReview,
		},
		{
			name:     "verified driver",
			user:     completeDocs(&model.User{Role: model.RoleDriver, IsVerified: true}),
			vehicle:  completeVehicle(),
			expected: StateVerified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StateFor(tt.user, tt.vehicle))
		})
	}
}

func TestStateFor_NeverVerifiedWithoutAdminAction(t *testing.T) {
	// Resubmitting onboarding data any number of times never advances past
	// pending review; only the record's IsVerified flag does that.
	user := &model.User{Role: model.RoleDriver}
	for i := 0; i < 3; i++ {
		completeDocs(user)
		state := StateFor(user, completeVehicle())
		assert.Equal(t, StatePendingAdminReview, state)
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name             string
		state            State
		requiresVerified bool
		wantAllow        bool
		wantRedirect     string
	}{
		{
			name:         "unauthenticated goes to sign-in",
			state:        StateUnauthenticated,
			wantRedirect: RouteSignIn,
		},
		{
			name:         "role unset goes to role selection",
			state:        StateRoleUnset,
			wantRedirect: RouteRoleSelection,
		},
		{
			name:             "incomplete onboarding blocked from verified resources",
			state:            StateOnboardingIncomplete,
			requiresVerified: true,
			wantRedirect:     RouteOnboarding,
		},
		{
			name:      "incomplete onboarding may reach onboarding surfaces",
			state:     StateOnboardingIncomplete,
			wantAllow: true,
		},
		{
			name:             "pending review blocked from verified resources",
			state:            StatePendingAdminReview,
			requiresVerified: true,
			wantRedirect:     RoutePendingReview,
		},
		{
			name:             "verified driver passes",
			state:            StateVerified,
			requiresVerified: true,
			wantAllow:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Decide(tt.state, tt.requiresVerified)
			assert.Equal(t, tt.wantAllow, decision.Allow)
			assert.Equal(t, tt.wantRedirect, decision.RedirectTo)
			assert.Equal(t, tt.state, decision.State)
		})
	}
}
