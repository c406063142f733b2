// Package views holds the screen controllers of the task client.
//
// A view keeps the state of one screen (form fields, loaded data, open
// dialogs), performs the API calls that screen triggers and reports where the
// user should go next as a Route. Views know nothing about how they are
// drawn; the CLI package renders them.
package views

// Route names a screen.
type Route int

const (
	RouteLogin Route = iota
	RouteSignup
	RouteTasks
)

func (r Route) String() string {
	switch r {
	case RouteLogin:
		return "login"
	case RouteSignup:
		return "signup"
	case RouteTasks:
		return "tasks"
	}
	return "unknown"
}
