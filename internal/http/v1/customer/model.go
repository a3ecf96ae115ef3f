package customer

import "github.com/janisto/customer-form/internal/platform/timeutil"

// FieldState is the rendered state of one form node.
type FieldState struct {
	Path    string   `json:"path"    doc:"Dotted field path"                example:"addresses.0.city"`
	Kind    string   `json:"kind"    doc:"Node kind"                        enum:"control,group,array"`
	Value   any      `json:"value"   doc:"Current value (controls only)"`
	Errors  []string `json:"errors"  doc:"Active validation error codes"`
	Touched bool     `json:"touched" doc:"Field has been blurred"`
	Dirty   bool     `json:"dirty"   doc:"Field has been edited by the user"`
	Valid   bool     `json:"valid"   doc:"Field and its descendants are valid"`
}

// Form is the presentation state of a customer form.
type Form struct {
	ID            string        `json:"id"            doc:"Form ID"                               example:"8f9a3c1e-2b7d-4e6f-9a0b-1c2d3e4f5a6b"`
	Valid         bool          `json:"valid"         doc:"Every field and group is valid"`
	EmailMessage  string        `json:"emailMessage"  doc:"Debounced feedback for the email field" example:"Please enter a valid email"`
	PhoneRequired bool          `json:"phoneRequired" doc:"Phone is required by the notification preference"`
	AddressCount  int           `json:"addressCount"  doc:"Number of address entries"             example:"1"`
	Fields        []FieldState  `json:"fields"        doc:"State of every field and group"`
	CreatedAt     timeutil.Time `json:"createdAt"     doc:"Creation timestamp"                    example:"2026-01-15T10:30:00.000Z"`
	UpdatedAt     timeutil.Time `json:"updatedAt"     doc:"Last change timestamp"                 example:"2026-01-15T10:31:00.000Z"`
}

// Address is one address entry.
type Address struct {
	AddressType string `json:"addressType" example:"home"`
	Street1     string `json:"street1"`
	Street2     string `json:"street2"`
	City        string `json:"city"        example:"Cardiff"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
}

// Customer is the saved snapshot.
type Customer struct {
	FirstName    string    `json:"firstName"    example:"Jack"`
	LastName     string    `json:"lastName"     example:"Harkness"`
	Email        string    `json:"email"        example:"jharkness@g.com"`
	Phone        string    `json:"phone"`
	Notification string    `json:"notification" example:"email"`
	Rating       any       `json:"rating"       doc:"Number, null, or the raw non-numeric input"`
	SendCatalog  bool      `json:"sendCatalog"`
	Addresses    []Address `json:"addresses"`
}

// SaveResult is the response to a save.
type SaveResult struct {
	FormID   string        `json:"formId"   doc:"Form ID"`
	Valid    bool          `json:"valid"    doc:"Form validity at save time; saving is not blocked by errors"`
	SavedAt  timeutil.Time `json:"savedAt"  doc:"Save timestamp"`
	Customer Customer      `json:"customer" doc:"Snapshot of the form values"`
}

// AddressList is a page of addresses.
type AddressList struct {
	Items []Address `json:"items" doc:"Addresses on this page"`
	Total int       `json:"total" doc:"Total number of addresses"`
}
