package verification

import "maaziride/internal/model"

// State is the onboarding state of a principal. It is always computed from
// the identity record, never from the mirror alone.
type State string

const (
	StateUnauthenticated      State = "unauthenticated"
	StateRoleUnset            State = "role_unset"
	StateOnboardingIncomplete State = "onboarding_incomplete"
	StatePendingAdminReview   State = "pending_admin_review"
	StateVerified             State = "verified"
)

// Route targets the gatekeeper hands back to the client. The guard returns
// a decision value; performing the redirect is the caller's business.
const (
	RouteSignIn        = "/sign-in"
	RouteRoleSelection = "/onboarding/role"
	RouteOnboarding    = "/drivers/onboarding"
	RoutePendingReview = "/drivers/pending-review"
)

// StateFor computes the onboarding state from the identity record. A nil
// user means the request carried no resolvable principal, or the record
// read failed: both are treated as unauthenticated (fail closed).
func StateFor(user *model.User, vehicle *model.Vehicle) State {
	if user == nil {
		return StateUnauthenticated
	}
	if user.Role == model.RoleUnset || user.Role == "" {
		return StateRoleUnset
	}

	status := Evaluate(user, vehicle)
	switch {
	case status.IsVerified:
		return StateVerified
	case status.NeedsOnboarding:
		return StateOnboardingIncomplete
	default:
		return StatePendingAdminReview
	}
}

// Decision is the gatekeeper's verdict for a request.
type Decision struct {
	Allow      bool   `json:"allow"`
	State      State  `json:"state"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

// Decide maps a state onto an allow/redirect decision for a protected
// resource. requiresVerified guards resources only a verified driver may
// reach; when false, any authenticated principal with a role passes.
func Decide(state State, requiresVerified bool) Decision {
	switch state {
	case StateUnauthenticated:
		return Decision{State: state, RedirectTo: RouteSignIn}
	case StateRoleUnset:
		return Decision{State: state, RedirectTo: RouteRoleSelection}
	case StateOnboardingIncomplete:
		if requiresVerified {
			return Decision{State: state, RedirectTo: RouteOnboarding}
		}
		return Decision{Allow: true, State: state}
	case StatePendingAdminReview:
		if requiresVerified {
			return Decision{State: state, RedirectTo: RoutePendingReview}
		}
		return Decision{Allow: true, State: state}
	default:
		return Decision{Allow: true, State: state}
	}
}
