package customer

import "github.com/janisto/customer-form/internal/form"

// Rating bounds.
const (
	RatingMin = 1
	RatingMax = 10
)

// PhoneMaxLength applies while phone is required.
const PhoneMaxLength = 30

var emailMessages = map[form.Code]string{
	form.CodeRequired: "Please enter your email address",
	form.CodeEmail:    "Please enter a valid email",
}

// PhoneValidators maps a notification preference to the validator set for
// phone. It is re-evaluated on every notification change.
func PhoneValidators(notification string) []form.Validator {
	if notification == NotifyPhone {
		return []form.Validator{form.Required(), form.MaxLength(PhoneMaxLength)}
	}
	return nil
}

// EmailMessage renders the feedback shown under the email field. It is empty
// until the user has interacted with the field.
func EmailMessage(touched, dirty bool, errs form.Errors) string {
	if !touched && !dirty {
		return ""
	}
	msg := ""
	for _, code := range errs {
		text, ok := emailMessages[code]
		if !ok {
			continue
		}
		if msg != "" {
			msg += " "
		}
		msg += text
	}
	return msg
}

func newAddressGroup() *form.Group {
	return form.NewGroup([]form.Entry{
		form.Field("addressType", textField("home")),
		form.Field("street1", textField("")),
		form.Field("street2", textField("")),
		form.Field("city", textField("")),
		form.Field("state", textField("")),
		form.Field("zip", textField("")),
	})
}

func newSchema() *form.Group {
	return form.NewGroup([]form.Entry{
		form.Field("firstName", textField("", form.Required(), form.MinLength(3))),
		form.Field("lastName", textField("", form.Required(), form.MaxLength(50))),
		form.Field("passwordGroup", form.NewGroup([]form.Entry{
			form.Field("password", textField("", form.Required())),
			form.Field("confirmPassword", textField("", form.Required())),
		}, form.FieldsMatch("password", "confirmPassword"))),
		form.Field("email", textField("", form.Required(), form.Email())),
		form.Field("phone", textField("")),
		form.Field("notification", textField(NotifyEmail)),
		form.Field("rating", form.NewControl(nil, form.Range(RatingMin, RatingMax))),
		form.Field("sendCatalog", form.NewControl(true).Guard(form.Bool)),
		form.Field("addresses", form.NewArray(newAddressGroup())),
	})
}

// textField is a control that only holds strings.
func textField(initial string, validators ...form.Validator) *form.Control {
	return form.NewControl(initial, validators...).Guard(form.String)
}

// testData is the fixed record used by PopulateTestData.
func testData() map[string]any {
	return map[string]any{
		"firstName": "Jack",
		"lastName":  "Harkness",
		"passwordGroup": map[string]any{
			"password":        "",
			"confirmPassword": "",
		},
		"email":        "jharkness@g.com",
		"phone":        "",
		"notification": NotifyEmail,
		"rating":       nil,
		"sendCatalog":  false,
		"addresses": []any{
			map[string]any{
				"addressType": "home",
				"street1":     "",
				"street2":     "",
				"city":        "",
				"state":       "",
				"zip":         "",
			},
		},
	}
}
