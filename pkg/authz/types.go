package authz

import (
	"strings"
)

const (
	rolePrefix            = "role"
	objectSeparator       = "."
	subjectSeparator      = ":"
	defaultActionWildcard = "*"
	anonymousRole         = "anonymous"
)

// Objects and actions guarded in the panel.
var (
	OrdersObject      = ObjectName("restaurant", "orders")
	DepartmentsObject = ObjectName("restaurant", "departments")
)

const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionExport = "export"
)

// IsWrite reports whether action changes backend data.
func IsWrite(action string) bool {
	switch NormalizeAction(action) {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// Request encapsulates all parameters required to evaluate a Casbin rule.
type Request struct {
	Subject string
	Object  string
	Action  string
}

func NewRequest(subject, object, action string) Request {
	return Request{
		Subject: subject,
		Object:  object,
		Action:  NormalizeAction(action),
	}
}

// SubjectForUserType maps the logged-in user type to its role subject, e.g. "role:admin".
func SubjectForUserType(userType string) string {
	userType = strings.ToLower(strings.TrimSpace(userType))
	if userType == "" {
		userType = anonymousRole
	}
	if strings.HasPrefix(userType, rolePrefix+subjectSeparator) {
		return userType
	}
	return rolePrefix + subjectSeparator + userType
}

// ObjectName returns the canonical module.resource string, lowercased.
func ObjectName(module, resource string) string {
	module = strings.ToLower(strings.TrimSpace(module))
	resource = strings.ToLower(strings.TrimSpace(resource))
	if module == "" {
		module = "global"
	}
	if resource == "" {
		resource = "resource"
	}
	return module + objectSeparator + resource
}

// NormalizeAction returns a normalized action string.
func NormalizeAction(action string) string {
	action = strings.ToLower(strings.TrimSpace(action))
	if action == "" {
		return defaultActionWildcard
	}
	return action
}
