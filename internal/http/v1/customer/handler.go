// Package customer exposes customer registration forms over HTTP.
package customer

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/customer-form/internal/form"
	"github.com/janisto/customer-form/internal/platform/auth"
	"github.com/janisto/customer-form/internal/platform/pagination"
	"github.com/janisto/customer-form/internal/platform/timeutil"
	customersvc "github.com/janisto/customer-form/internal/service/customer"
)

const addressCursorKind = "address"

var bearerAuth = []map[string][]string{{"bearerAuth": {}}}

// Register registers customer form endpoints. prefix is the API base path
// used in Location and Link headers.
func Register(api huma.API, svc customersvc.Service, prefix string) {
	tags := []string{"Customer forms"}

	huma.Register(api, huma.Operation{
		OperationID:   "create-customer-form",
		Method:        http.MethodPost,
		Path:          "/customer-forms",
		Summary:       "Create customer form",
		Description:   "Creates an empty registration form with one address, owned by the caller.",
		Tags:          tags,
		DefaultStatus: http.StatusCreated,
		Security:      bearerAuth,
	}, func(ctx context.Context, _ *FormCreateInput) (*FormCreatedOutput, error) {
		session, err := svc.Create(ctx, auth.UIDFromContext(ctx))
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &FormCreatedOutput{
			Location: formURL(prefix, session.ID),
			Body:     toHTTPForm(session),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-customer-form",
		Method:      http.MethodGet,
		Path:        "/customer-forms/{id}",
		Summary:     "Get customer form state",
		Description: "Returns values, flags and errors of every field plus the email message.",
		Tags:        tags,
		Security:    bearerAuth,
	}, func(ctx context.Context, input *FormIDInput) (*FormOutput, error) {
		session, err := svc.Get(ctx, auth.UIDFromContext(ctx), input.ID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &FormOutput{Body: toHTTPForm(session)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-customer-form",
		Method:        http.MethodDelete,
		Path:          "/customer-forms/{id}",
		Summary:       "Discard customer form",
		Description:   "Discards the form and cancels its pending email message update.",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
		Security:      bearerAuth,
	}, func(ctx context.Context, input *FormIDInput) (*struct{}, error) {
		if err := svc.Delete(ctx, auth.UIDFromContext(ctx), input.ID); err != nil {
			return nil, mapServiceError(err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "input-customer-form-fields",
		Method:      http.MethodPatch,
		Path:        "/customer-forms/{id}/fields",
		Summary:     "Enter field values",
		Description: "Applies user edits in order. Edited fields become dirty and are re-validated; " +
			"changing notification re-evaluates the phone requirement immediately. " +
			"Unknown paths reject the whole request.",
		Tags:     tags,
		Security: bearerAuth,
	}, func(ctx context.Context, input *FieldsInput) (*FormOutput, error) {
		changes := make([]customersvc.FieldChange, len(input.Body.Changes))
		for i, ch := range input.Body.Changes {
			changes[i] = customersvc.FieldChange{Path: ch.Path, Value: ch.Value}
		}
		session, err := svc.Input(ctx, auth.UIDFromContext(ctx), input.ID, changes)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &FormOutput{Body: toHTTPForm(session)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "touch-customer-form-fields",
		Method:      http.MethodPost,
		Path:        "/customer-forms/{id}/touch",
		Summary:     "Mark fields touched",
		Description: "Records a blur on each path. A group path marks every field inside it.",
		Tags:        tags,
		Security:    bearerAuth,
	}, func(ctx context.Context, input *TouchInput) (*FormOutput, error) {
		session, err := svc.Touch(ctx, auth.UIDFromContext(ctx), input.ID, input.Body.Paths)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &FormOutput{Body: toHTTPForm(session)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "add-customer-form-address",
		Method:        http.MethodPost,
		Path:          "/customer-forms/{id}/addresses",
		Summary:       "Add address",
		Description:   "Appends an empty home address to the end of the list.",
		Tags:          tags,
		DefaultStatus: http.StatusCreated,
		Security:      bearerAuth,
	}, func(ctx context.Context, input *FormIDInput) (*FormCreatedOutput, error) {
		session, err := svc.AddAddress(ctx, auth.UIDFromContext(ctx), input.ID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &FormCreatedOutput{
			Location: formURL(prefix, session.ID) + "/addresses",
			Body:     toHTTPForm(session),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-customer-form-addresses",
		Method:      http.MethodGet,
		Path:        "/customer-forms/{id}/addresses",
		Summary:     "List addresses",
		Description: "Returns addresses in list order. Use the cursor from the Link header to navigate.",
		Tags:        tags,
		Security:    bearerAuth,
	}, func(ctx context.Context, input *AddressListInput) (*AddressListOutput, error) {
		cursor, err := pagination.DecodeCursor(input.Cursor, addressCursorKind)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid cursor")
		}
		addresses, err := svc.Addresses(ctx, auth.UIDFromContext(ctx), input.ID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		page, err := pagination.Paginate(
			toHTTPAddresses(addresses),
			cursor,
			input.DefaultLimit(),
			formURL(prefix, input.ID)+"/addresses",
			nil,
		)
		if err != nil {
			return nil, huma.Error400BadRequest("cursor is past the end of the list")
		}
		return &AddressListOutput{
			Link: page.LinkHeader,
			Body: AddressList{Items: page.Items, Total: page.Total},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "set-customer-form-values",
		Method:      http.MethodPut,
		Path:        "/customer-forms/{id}/values",
		Summary:     "Replace all values",
		Description: "Assigns every value from a complete record without marking fields dirty. " +
			"A record whose shape differs from the form is rejected and the form is left unchanged.",
		Tags:     tags,
		Security: bearerAuth,
	}, func(ctx context.Context, input *ValuesInput) (*FormOutput, error) {
		session, err := svc.SetValues(ctx, auth.UIDFromContext(ctx), input.ID, input.Body)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &FormOutput{Body: toHTTPForm(session)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "populate-customer-form-test-data",
		Method:      http.MethodPost,
		Path:        "/customer-forms/{id}/test-data",
		Summary:     "Populate test data",
		Description: "Fills the form with a fixed record holding one address. " +
			"Fails with 422 once more addresses have been added.",
		Tags:     tags,
		Security: bearerAuth,
	}, func(ctx context.Context, input *FormIDInput) (*FormOutput, error) {
		session, err := svc.PopulateTestData(ctx, auth.UIDFromContext(ctx), input.ID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &FormOutput{Body: toHTTPForm(session)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "save-customer-form",
		Method:      http.MethodPost,
		Path:        "/customer-forms/{id}/save",
		Summary:     "Save customer form",
		Description: "Takes a snapshot of the current values. Saving is not blocked by validation errors; " +
			"the response reports validity at save time.",
		Tags:     tags,
		Security: bearerAuth,
	}, func(ctx context.Context, input *FormIDInput) (*SaveOutput, error) {
		result, err := svc.Save(ctx, auth.UIDFromContext(ctx), input.ID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &SaveOutput{Body: SaveResult{
			FormID:   result.FormID,
			Valid:    result.Valid,
			SavedAt:  timeutil.NewTime(result.SavedAt),
			Customer: toHTTPCustomer(result.Customer),
		}}, nil
	})
}

func formURL(prefix, id string) string {
	return prefix + "/customer-forms/" + id
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, customersvc.ErrNotFound):
		return huma.Error404NotFound("customer form not found")
	case errors.Is(err, form.ErrFieldNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, form.ErrShape):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, customersvc.ErrLimitReached):
		return huma.Error429TooManyRequests("too many open customer forms; delete one first")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPForm(s *customersvc.Session) Form {
	fields := make([]FieldState, len(s.State.Fields))
	for i, f := range s.State.Fields {
		fields[i] = FieldState{
			Path:    f.Path,
			Kind:    string(f.Kind),
			Value:   f.Value,
			Errors:  f.Errors,
			Touched: f.Touched,
			Dirty:   f.Dirty,
			Valid:   f.Valid,
		}
	}
	return Form{
		ID:            s.ID,
		Valid:         s.State.Valid,
		EmailMessage:  s.State.EmailMessage,
		PhoneRequired: s.State.PhoneRequired,
		AddressCount:  s.State.AddressCount,
		Fields:        fields,
		CreatedAt:     timeutil.NewTime(s.CreatedAt),
		UpdatedAt:     timeutil.NewTime(s.UpdatedAt),
	}
}

func toHTTPAddresses(in []customersvc.Address) []Address {
	out := make([]Address, len(in))
	for i, a := range in {
		out[i] = Address(a)
	}
	return out
}

func toHTTPCustomer(c customersvc.Customer) Customer {
	return Customer{
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		Phone:        c.Phone,
		Notification: c.Notification,
		Rating:       c.Rating,
		SendCatalog:  c.SendCatalog,
		Addresses:    toHTTPAddresses(c.Addresses),
	}
}
