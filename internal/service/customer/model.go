package customer

import "time"

// Notification preferences.
const (
	NotifyEmail = "email"
	NotifyPhone = "phone"
)

// Address is one entry of the address list.
type Address struct {
	AddressType string `json:"addressType"`
	Street1     string `json:"street1"`
	Street2     string `json:"street2"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
}

// Customer is the snapshot produced by save.
type Customer struct {
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Notification string    `json:"notification"`
	Rating       any       `json:"rating"` // number, null, or the raw non-numeric input
	SendCatalog  bool      `json:"sendCatalog"`
	Addresses    []Address `json:"addresses"`
}

// FieldChange is a user edit of the control at Path.
type FieldChange struct {
	Path  string
	Value any
}

// NodeKind distinguishes controls from containers in a State.
type NodeKind string

const (
	KindControl NodeKind = "control"
	KindGroup   NodeKind = "group"
	KindArray   NodeKind = "array"
)

// FieldState is the presentation view of one node.
type FieldState struct {
	Path    string
	Kind    NodeKind
	Value   any // controls only
	Errors  []string
	Touched bool
	Dirty   bool
	Valid   bool
}

// State is everything the presentation layer needs to render the form.
type State struct {
	Fields        []FieldState
	Valid         bool
	EmailMessage  string
	PhoneRequired bool
	AddressCount  int
}

// Session is a form together with its ownership metadata.
type Session struct {
	ID        string
	Owner     string
	CreatedAt time.Time
	UpdatedAt time.Time
	State     State
}

// SaveResult is returned by Save.
type SaveResult struct {
	FormID   string
	Customer Customer
	Valid    bool
	SavedAt  time.Time
}
