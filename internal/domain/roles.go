package domain

import "strings"

// Role is the closed set of portal roles. Anything else is rejected at
// signup and at the authorization gate.
type Role string

const (
	RoleUser   Role = "user"
	RoleAdmin  Role = "admin"
	RoleDriver Role = "driver"
)

func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleDriver:
		return RoleDriver, true
	}
	return "", false
}

func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// Endpoint names for the authorization table. Handlers gate on these, never
// on ad hoc role comparisons.
const (
	EndpointFeedbackSubmit  = "feedback.submit"
	EndpointFeedbackList    = "feedback.list"
	EndpointBusUpdateSubmit = "bus_updates.submit"
	EndpointBusStatusSet    = "buses.set_status"
)

// policy is the single (endpoint, role) -> allow table. Endpoints absent
// from the table are open to every authenticated role; row scoping for
// history reads happens in the query layer.
var policy = map[string]map[Role]bool{
	EndpointFeedbackSubmit:  {RoleUser: true, RoleDriver: true},
	EndpointFeedbackList:    {RoleAdmin: true},
	EndpointBusUpdateSubmit: {RoleDriver: true},
	EndpointBusStatusSet:    {RoleAdmin: true},
}

// Authorize reports whether role may reach endpoint.
func Authorize(role Role, endpoint string) bool {
	if !role.Valid() {
		return false
	}
	allowed, known := policy[endpoint]
	if !known {
		return true
	}
	return allowed[role]
}
