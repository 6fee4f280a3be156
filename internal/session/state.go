package session

import (
	"github.com/travelmate-app/travelmate-client/logger"
	"github.com/travelmate-app/travelmate-client/types"
)

// State is the process-wide holder of the authenticated user, the selected
// trip, and the pending navigation target. It is single-owner: only the UI
// goroutine mutates it. Background workers hand data to that goroutine
// through a scheduler instead of touching State directly.
type State struct {
	user        *types.User
	currentTrip *types.Trip
	navTarget   string
	active      bool
}

// NewState returns an empty, logged-out state.
func NewState() *State {
	return &State{}
}

// BeginSession marks the session as active for the given user.
// Called after a successful login or registration.
func (s *State) BeginSession(user *types.User) {
	s.user = user
	s.active = true
	logger.GetLogger().Infow("Session started",
		"email", logger.MaskEmail(user.Email))
}

// EndSession tears the session down. Called on logout.
func (s *State) EndSession() {
	if s.user != nil {
		logger.GetLogger().Infow("Session ended",
			"email", logger.MaskEmail(s.user.Email))
	}
	s.user = nil
	s.currentTrip = nil
	s.navTarget = ""
	s.active = false
}

// Active reports whether a user is logged in.
func (s *State) Active() bool {
	return s.active
}

// CurrentUser returns the authenticated user, or nil when logged out.
func (s *State) CurrentUser() *types.User {
	return s.user
}

// SetCurrentTrip records the trip the UI is focused on.
func (s *State) SetCurrentTrip(trip *types.Trip) {
	s.currentTrip = trip
}

// CurrentTrip returns the selected trip, or nil.
func (s *State) CurrentTrip() *types.Trip {
	return s.currentTrip
}

// SetNavigationTarget records where the UI should navigate next.
func (s *State) SetNavigationTarget(target string) {
	s.navTarget = target
}

// NavigationTarget returns and clears the pending navigation target.
func (s *State) NavigationTarget() string {
	target := s.navTarget
	s.navTarget = ""
	return target
}

// ApplyTripUpdate merges a trip received from the realtime channel or a
// replayed mutation into the selected trip, matching by id. Duplicate or
// out-of-order echoes of the same logical change are safe to apply.
func (s *State) ApplyTripUpdate(trip *types.Trip) {
	if s.currentTrip == nil || trip == nil {
		return
	}
	if s.currentTrip.ID == trip.ID {
		s.currentTrip = trip
	}
}
