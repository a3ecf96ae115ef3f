package customer

import "github.com/janisto/customer-form/internal/platform/pagination"

// FormCreateInput has no parameters; the owner comes from the token.
type FormCreateInput struct{}

// FormIDInput addresses one form.
type FormIDInput struct {
	ID string `path:"id" doc:"Form ID" minLength:"1"`
}

// FieldChange is one user edit.
type FieldChange struct {
	Path  string `json:"path"  doc:"Dotted path of an input field" minLength:"1" example:"passwordGroup.password"`
	Value any    `json:"value" doc:"New value as typed by the user"`
}

// FieldsInput applies user edits in order.
type FieldsInput struct {
	ID   string `path:"id" doc:"Form ID" minLength:"1"`
	Body struct {
		Changes []FieldChange `json:"changes" minItems:"1" maxItems:"50" doc:"Edits to apply in order"`
	}
}

// TouchInput marks fields as blurred.
type TouchInput struct {
	ID   string `path:"id" doc:"Form ID" minLength:"1"`
	Body struct {
		Paths []string `json:"paths" minItems:"1" maxItems:"50" doc:"Field or group paths"`
	}
}

// ValuesInput replaces every value of the form.
type ValuesInput struct {
	ID   string         `path:"id" doc:"Form ID" minLength:"1"`
	Body map[string]any `doc:"Complete form record; every field must be present and array lengths must match"`
}

// AddressListInput lists addresses with cursor pagination.
type AddressListInput struct {
	ID string `path:"id" doc:"Form ID" minLength:"1"`
	pagination.Params
}
