package domain

import "errors"

// Shared error taxonomy. Each sentinel is declared exactly once here;
// the services re-export the ones they surface so handlers can match
// with errors.Is no matter which layer produced the error.

// Credential and token errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenInvalid       = errors.New("token is invalid")
)

// Account errors
var ErrAccountNotFound = errors.New("account not found")

// Grievance errors
var (
	ErrGrievanceNotFound  = errors.New("grievance not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrNotGrievanceOwner  = errors.New("grievance belongs to another citizen")
	ErrAssigneeNotOfficer = errors.New("assignee is not a field officer")
	ErrRoleNotAllowed     = errors.New("role not permitted for this action")
)
