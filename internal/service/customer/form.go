package customer

import (
	"fmt"
	"sync"
	"time"

	"github.com/janisto/customer-form/internal/form"
)

// DefaultEmailDebounce is the quiet period used when Options leaves it unset.
const DefaultEmailDebounce = time.Second

// Options configures a Form.
type Options struct {
	// EmailDebounce is the quiet period before the email message is recomputed.
	EmailDebounce time.Duration
	// Scheduler runs the debounce timer; nil uses the runtime timer.
	Scheduler form.Scheduler
	// OnEmailMessage observes every debounced recomputation. It runs with the
	// form locked and must not call back into the form.
	OnEmailMessage func(message string)
	// Now returns the current time; nil uses time.Now.
	Now func() time.Time
}

// Form is one customer registration form. All methods are safe for concurrent
// use; they are serialized by a single mutex that also guards the debounce
// callback, so the form sees one event at a time.
type Form struct {
	mu sync.Mutex

	root         *form.Group
	email        *form.Control
	phone        *form.Control
	notification *form.Control
	addresses    *form.Array

	debounce       *form.Debouncer
	emailMessage   string
	onEmailMessage func(string)
	now            func() time.Time
	updatedAt      time.Time
}

// NewForm builds the customer schema and wires its reactive rules.
func NewForm(opts Options) *Form {
	if opts.EmailDebounce <= 0 {
		opts.EmailDebounce = DefaultEmailDebounce
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	f := &Form{
		root:           newSchema(),
		onEmailMessage: opts.OnEmailMessage,
		now:            opts.Now,
	}
	f.email = f.root.Child("email").(*form.Control)
	f.phone = f.root.Child("phone").(*form.Control)
	f.notification = f.root.Child("notification").(*form.Control)
	f.addresses = f.root.Child("addresses").(*form.Array)
	f.debounce = form.NewDebouncer(opts.EmailDebounce, opts.Scheduler, &f.mu)
	f.updatedAt = f.now()

	f.notification.Subscribe(func(value any) {
		s, _ := value.(string)
		f.applyNotification(s)
	})
	f.email.Subscribe(func(any) {
		f.debounce.Trigger(f.refreshEmailMessage)
	})
	return f
}

func (f *Form) applyNotification(notifyVia string) {
	f.phone.SetValidators(PhoneValidators(notifyVia)...)
	f.phone.UpdateValueAndValidity()
}

func (f *Form) refreshEmailMessage() {
	f.emailMessage = EmailMessage(f.email.Touched(), f.email.Dirty(), f.email.Errors())
	if f.onEmailMessage != nil {
		f.onEmailMessage(f.emailMessage)
	}
}

// Input applies user edits in order. Every path and value is checked before
// anything changes: an unknown path or a path naming a group fails with
// form.ErrFieldNotFound, a value of the wrong type with form.ErrShape.
func (f *Form) Input(changes ...FieldChange) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	controls := make([]*form.Control, len(changes))
	for i, ch := range changes {
		node, err := form.Get(f.root, ch.Path)
		if err != nil {
			return err
		}
		c, ok := node.(*form.Control)
		if !ok {
			return fmt.Errorf("%w: %s is not an input field", form.ErrFieldNotFound, ch.Path)
		}
		if err := c.Accepts(ch.Value); err != nil {
			return err
		}
		controls[i] = c
	}
	for i, c := range controls {
		c.Input(changes[i].Value)
	}
	f.updatedAt = f.now()
	return nil
}

// Touch records a blur on each path. Paths are resolved before anything changes.
func (f *Form) Touch(paths ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	nodes := make([]form.Node, len(paths))
	for i, p := range paths {
		node, err := form.Get(f.root, p)
		if err != nil {
			return err
		}
		nodes[i] = node
	}
	for _, n := range nodes {
		n.MarkTouched()
	}
	f.updatedAt = f.now()
	return nil
}

// AddAddress appends a default address and returns the new list length.
func (f *Form) AddAddress() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.addresses.Push(newAddressGroup())
	f.updatedAt = f.now()
	return f.addresses.Len()
}

// SetValue overwrites every value with a complete form record (see
// form.Group.SetValue). On a shape mismatch the form is left unchanged.
func (f *Form) SetValue(value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.root.SetValue(value); err != nil {
		return err
	}
	f.updatedAt = f.now()
	return nil
}

// PopulateTestData overwrites the form with a fixed record. The record holds
// one address, so it fails once more addresses have been added.
func (f *Form) PopulateTestData() error {
	return f.SetValue(testData())
}

// Snapshot returns the current values as a Customer.
func (f *Form) Snapshot() Customer {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot()
}

// Submission returns the snapshot together with the validity it was taken at.
func (f *Form) Submission() (Customer, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot(), f.root.Valid()
}

// Addresses returns the current address entries in order.
func (f *Form) Addresses() []Address {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot().Addresses
}

// Valid reports whether every field and group is valid.
func (f *Form) Valid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.root.Valid()
}

// EmailMessage returns the last debounced email feedback.
func (f *Form) EmailMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.emailMessage
}

// UpdatedAt returns the time of the last mutation.
func (f *Form) UpdatedAt() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updatedAt
}

// State returns the presentation view of every node.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	var fields []FieldState
	form.Walk(f.root, func(n form.Node) {
		if n == form.Node(f.root) {
			return
		}
		fs := FieldState{
			Path:    n.Path(),
			Errors:  n.Errors().Strings(),
			Touched: n.Touched(),
			Dirty:   n.Dirty(),
			Valid:   n.Valid(),
		}
		switch n.(type) {
		case *form.Control:
			fs.Kind = KindControl
			fs.Value = n.Value()
		case *form.Group:
			fs.Kind = KindGroup
		case *form.Array:
			fs.Kind = KindArray
		}
		fields = append(fields, fs)
	})

	return State{
		Fields:        fields,
		Valid:         f.root.Valid(),
		EmailMessage:  f.emailMessage,
		PhoneRequired: f.phone.HasValidators(),
		AddressCount:  f.addresses.Len(),
	}
}

// Close cancels the pending email recomputation.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.debounce.Stop()
}

func (f *Form) snapshot() Customer {
	v, _ := f.root.Value().(map[string]any)
	sendCatalog, _ := v["sendCatalog"].(bool)
	c := Customer{
		FirstName:    text(v["firstName"]),
		LastName:     text(v["lastName"]),
		Email:        text(v["email"]),
		Phone:        text(v["phone"]),
		Notification: text(v["notification"]),
		Rating:       v["rating"],
		SendCatalog:  sendCatalog,
	}
	list, _ := v["addresses"].([]any)
	c.Addresses = make([]Address, 0, len(list))
	for _, item := range list {
		a, _ := item.(map[string]any)
		c.Addresses = append(c.Addresses, Address{
			AddressType: text(a["addressType"]),
			Street1:     text(a["street1"]),
			Street2:     text(a["street2"]),
			City:        text(a["city"]),
			State:       text(a["state"]),
			Zip:         text(a["zip"]),
		})
	}
	return c
}

// text reads a string control. The schema guards every text field, so the
// assertion only misses on a nil map entry.
func text(v any) string {
	s, _ := v.(string)
	return s
}
