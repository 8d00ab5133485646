package viewmodels

type Order struct {
	ID              string
	Number          string
	Customer        string
	Items           []string
	TotalPrice      string
	DeliveryAddress string
	Status          string
	StatusColor     string
	CreatedAt       string
	CanConfirm      bool
	CanCancel       bool
}

type OrdersPageProps struct {
	Orders []*Order
	Query  string
	// Error is shown above the grid when the backend could not be read.
	Error     string
	CanUpdate bool
	CanDelete bool
	CanExport bool
}

type Department struct {
	ID          string
	Name        string
	Description string
	CreatedAt   string
}

type DepartmentsPageProps struct {
	Departments []*Department
	Query       string
	Error       string
	CanCreate   bool
	CanUpdate   bool
	CanDelete   bool
	CanExport   bool
}

type DepartmentForm struct {
	Name        string
	Description string
}

type DepartmentFormProps struct {
	ID     string
	Form   DepartmentForm
	Errors map[string]string
	PostTo string
	// Error is a non-field failure such as a rejected backend call.
	Error string
}

type SessionPageProps struct {
	Token      string
	UserType   string
	Language   string
	UserTypes  []string
	Languages  []string
	Next       string
	Errors     map[string]string
	LoggedInAs string
}
