package authorization

import "github.com/iota-uz/restaurant-admin/pkg/authz"

type UnauthorizedProps struct {
	State     *authz.ViewState
	Object    string
	Action    string
	Subject   string
	RequestID string
	Title     string
	Message   string
}
