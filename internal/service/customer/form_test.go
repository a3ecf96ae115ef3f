package customer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janisto/customer-form/internal/form"
)

func newTestForm(t *testing.T) (*Form, *form.ManualScheduler, *[]string) {
	t.Helper()
	sched := form.NewManualScheduler()
	var messages []string
	f := NewForm(Options{
		Scheduler:      sched,
		OnEmailMessage: func(m string) { messages = append(messages, m) },
	})
	t.Cleanup(f.Close)
	return f, sched, &messages
}

func fieldState(t *testing.T, s State, path string) FieldState {
	t.Helper()
	for _, fs := range s.Fields {
		if fs.Path == path {
			return fs
		}
	}
	require.FailNow(t, "field not in state", path)
	return FieldState{}
}

func TestNewFormInitialState(t *testing.T) {
	f, _, _ := newTestForm(t)

	s := f.State()
	assert.False(t, s.Valid)
	assert.Equal(t, 1, s.AddressCount)
	assert.False(t, s.PhoneRequired)
	assert.Empty(t, s.EmailMessage)

	assert.Equal(t, []string{"required"}, fieldState(t, s, "firstName").Errors)
	assert.Equal(t, "email", fieldState(t, s, "notification").Value)
	assert.Equal(t, true, fieldState(t, s, "sendCatalog").Value)
	assert.Nil(t, fieldState(t, s, "rating").Value)
	assert.Equal(t, "home", fieldState(t, s, "addresses.0.addressType").Value)
	assert.Equal(t, KindArray, fieldState(t, s, "addresses").Kind)
	assert.Empty(t, fieldState(t, s, "phone").Errors)
}

func TestRatingValidation(t *testing.T) {
	tests := []struct {
		name   string
		rating any
		want   []string
	}{
		{name: "null", rating: nil, want: []string{}},
		{name: "in range", rating: 5, want: []string{}},
		{name: "lower bound", rating: 1, want: []string{}},
		{name: "upper bound", rating: 10.0, want: []string{}},
		{name: "below", rating: 0, want: []string{"range"}},
		{name: "above", rating: 11, want: []string{"range"}},
		{name: "not a number", rating: "abc", want: []string{"nan"}},
		{name: "numeric text", rating: "7", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _, _ := newTestForm(t)

			require.NoError(t, f.Input(FieldChange{Path: "rating", Value: tt.rating}))

			assert.Equal(t, tt.want, fieldState(t, f.State(), "rating").Errors)
		})
	}
}

func TestPasswordMismatch(t *testing.T) {
	f, _, _ := newTestForm(t)

	require.NoError(t, f.Input(FieldChange{Path: "passwordGroup.password", Value: "a"}))
	assert.Empty(t, fieldState(t, f.State(), "passwordGroup").Errors, "confirm not yet interacted with")

	require.NoError(t, f.Input(FieldChange{Path: "passwordGroup.confirmPassword", Value: "b"}))
	assert.Equal(t, []string{"match"}, fieldState(t, f.State(), "passwordGroup").Errors)

	require.NoError(t, f.Input(FieldChange{Path: "passwordGroup.confirmPassword", Value: "a"}))
	assert.Empty(t, fieldState(t, f.State(), "passwordGroup").Errors)
}

func TestPhoneRequiredOnlyForPhoneNotification(t *testing.T) {
	f, _, _ := newTestForm(t)

	require.NoError(t, f.Input(FieldChange{Path: "notification", Value: NotifyPhone}))
	s := f.State()
	assert.True(t, s.PhoneRequired)
	assert.Equal(t, []string{"required"}, fieldState(t, s, "phone").Errors)

	require.NoError(t, f.Input(FieldChange{Path: "notification", Value: NotifyEmail}))
	s = f.State()
	assert.False(t, s.PhoneRequired)
	assert.Empty(t, fieldState(t, s, "phone").Errors)
	assert.Equal(t, "", fieldState(t, s, "phone").Value)
}

func TestPhoneValueKeptWhenRuleRemoved(t *testing.T) {
	f, _, _ := newTestForm(t)

	require.NoError(t, f.Input(
		FieldChange{Path: "notification", Value: NotifyPhone},
		FieldChange{Path: "phone", Value: "0123456789012345678901234567890"},
	))
	assert.Equal(t, []string{"maxlength"}, fieldState(t, f.State(), "phone").Errors)

	require.NoError(t, f.Input(FieldChange{Path: "notification", Value: NotifyEmail}))
	phone := fieldState(t, f.State(), "phone")
	assert.Empty(t, phone.Errors)
	assert.Equal(t, "0123456789012345678901234567890", phone.Value)
}

func TestEmailMessageIsDebounced(t *testing.T) {
	f, sched, messages := newTestForm(t)

	for _, v := range []string{"j", "jh", "jharkness"} {
		require.NoError(t, f.Input(FieldChange{Path: "email", Value: v}))
		sched.Advance(300 * time.Millisecond)
	}
	assert.Empty(t, *messages)
	assert.Empty(t, f.EmailMessage())

	sched.Advance(700 * time.Millisecond)
	assert.Equal(t, []string{"Please enter a valid email"}, *messages)
	assert.Equal(t, "Please enter a valid email", f.EmailMessage())

	require.NoError(t, f.Input(FieldChange{Path: "email", Value: ""}))
	sched.Advance(DefaultEmailDebounce)
	assert.Equal(t, "Please enter your email address", f.EmailMessage())

	require.NoError(t, f.Input(FieldChange{Path: "email", Value: "jharkness@g.com"}))
	sched.Advance(DefaultEmailDebounce)
	assert.Equal(t, "", f.EmailMessage())
	assert.Len(t, *messages, 3)
}

func TestEmailMessageEmptyForProgrammaticChange(t *testing.T) {
	f, sched, messages := newTestForm(t)

	require.NoError(t, f.PopulateTestData())
	sched.Advance(DefaultEmailDebounce)

	assert.Equal(t, []string{""}, *messages, "pristine field shows no message")
}

func TestCloseCancelsPendingEmailMessage(t *testing.T) {
	f, sched, messages := newTestForm(t)

	require.NoError(t, f.Input(FieldChange{Path: "email", Value: "x"}))
	f.Close()
	sched.Advance(2 * DefaultEmailDebounce)

	assert.Empty(t, *messages)
}

func TestAddAddress(t *testing.T) {
	f, _, _ := newTestForm(t)
	require.NoError(t, f.Input(FieldChange{Path: "addresses.0.city", Value: "Cardiff"}))

	assert.Equal(t, 2, f.AddAddress())
	assert.Equal(t, 3, f.AddAddress())

	addresses := f.Addresses()
	require.Len(t, addresses, 3)
	assert.Equal(t, "Cardiff", addresses[0].City)
	assert.Equal(t, Address{AddressType: "home"}, addresses[2])

	require.NoError(t, f.Input(FieldChange{Path: "addresses.2.zip", Value: "CF10"}))
	assert.Equal(t, "CF10", f.Addresses()[2].Zip)
}

func TestInputRejectsUnknownPathsAtomically(t *testing.T) {
	f, _, _ := newTestForm(t)

	for _, path := range []string{"nope", "addresses.1.city", "passwordGroup"} {
		err := f.Input(
			FieldChange{Path: "firstName", Value: "Jack"},
			FieldChange{Path: path, Value: "x"},
		)
		require.Error(t, err)
		assert.True(t, errors.Is(err, form.ErrFieldNotFound), "path %q", path)
	}
	assert.Equal(t, "", f.Snapshot().FirstName)
}

func TestInputRejectsValuesOfTheWrongType(t *testing.T) {
	tests := []struct {
		name   string
		change FieldChange
	}{
		{name: "number into phone", change: FieldChange{Path: "phone", Value: float64(5551234567)}},
		{name: "string into sendCatalog", change: FieldChange{Path: "sendCatalog", Value: "yes"}},
		{name: "null into firstName", change: FieldChange{Path: "firstName", Value: nil}},
		{name: "bool into address", change: FieldChange{Path: "addresses.0.zip", Value: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _, _ := newTestForm(t)

			err := f.Input(FieldChange{Path: "lastName", Value: "Jones"}, tt.change)

			require.Error(t, err)
			assert.True(t, errors.Is(err, form.ErrShape))
			assert.False(t, fieldState(t, f.State(), "lastName").Dirty, "form left unchanged")
			assert.Equal(t, "", f.Snapshot().LastName)
		})
	}
}

func TestSubmissionMatchesState(t *testing.T) {
	f, _, _ := newTestForm(t)
	require.NoError(t, f.Input(
		FieldChange{Path: "phone", Value: "5551234567"},
		FieldChange{Path: "sendCatalog", Value: false},
		FieldChange{Path: "rating", Value: "7"},
	))

	s := f.State()
	c, _ := f.Submission()

	assert.Equal(t, fieldState(t, s, "phone").Value, c.Phone)
	assert.Equal(t, fieldState(t, s, "sendCatalog").Value, c.SendCatalog)
	assert.Equal(t, fieldState(t, s, "rating").Value, c.Rating)
}

func TestTouchMarksFieldsAndRefreshesEmailMessageOnlyOnChange(t *testing.T) {
	f, sched, messages := newTestForm(t)

	require.NoError(t, f.Touch("email", "addresses"))
	sched.Advance(DefaultEmailDebounce)

	s := f.State()
	assert.True(t, fieldState(t, s, "email").Touched)
	assert.True(t, fieldState(t, s, "addresses.0.zip").Touched)
	assert.False(t, fieldState(t, s, "firstName").Touched)
	assert.Empty(t, *messages, "blur alone does not change the value stream")

	assert.True(t, errors.Is(f.Touch("missing"), form.ErrFieldNotFound))
}

func TestPopulateTestData(t *testing.T) {
	f, _, _ := newTestForm(t)

	require.NoError(t, f.PopulateTestData())

	c := f.Snapshot()
	assert.Equal(t, "Jack", c.FirstName)
	assert.Equal(t, "Harkness", c.LastName)
	assert.Equal(t, "jharkness@g.com", c.Email)
	assert.Equal(t, NotifyEmail, c.Notification)
	assert.Nil(t, c.Rating)
	assert.False(t, c.SendCatalog)
	assert.Equal(t, []Address{{AddressType: "home"}}, c.Addresses)
	assert.False(t, f.Valid(), "passwords are still required")
}

func TestPopulateTestDataFailsAfterAddAddress(t *testing.T) {
	f, _, _ := newTestForm(t)
	require.NoError(t, f.Input(FieldChange{Path: "firstName", Value: "Ianto"}))
	f.AddAddress()

	err := f.PopulateTestData()

	require.Error(t, err)
	assert.True(t, errors.Is(err, form.ErrShape))
	c := f.Snapshot()
	assert.Equal(t, "Ianto", c.FirstName, "form left unchanged")
	assert.Len(t, c.Addresses, 2)
}

func TestSetValueSwitchesPhoneRule(t *testing.T) {
	f, _, _ := newTestForm(t)
	value := testData()
	value["notification"] = NotifyPhone

	require.NoError(t, f.SetValue(value))

	s := f.State()
	assert.True(t, s.PhoneRequired)
	assert.Equal(t, []string{"required"}, fieldState(t, s, "phone").Errors)
}

func TestSubmissionOfValidForm(t *testing.T) {
	f, _, _ := newTestForm(t)

	require.NoError(t, f.Input(
		FieldChange{Path: "firstName", Value: "Jack"},
		FieldChange{Path: "lastName", Value: "Harkness"},
		FieldChange{Path: "email", Value: "jack@torchwood.example"},
		FieldChange{Path: "passwordGroup.password", Value: "s3cret"},
		FieldChange{Path: "passwordGroup.confirmPassword", Value: "s3cret"},
		FieldChange{Path: "rating", Value: 8},
	))

	c, valid := f.Submission()
	assert.True(t, valid)
	assert.Equal(t, 8, c.Rating)
	assert.True(t, c.SendCatalog)
}

func TestUpdatedAtTracksMutations(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	f := NewForm(Options{Scheduler: form.NewManualScheduler(), Now: func() time.Time { return now }})
	defer f.Close()
	assert.Equal(t, now, f.UpdatedAt())

	now = now.Add(time.Minute)
	f.AddAddress()
	assert.Equal(t, now, f.UpdatedAt())
}
