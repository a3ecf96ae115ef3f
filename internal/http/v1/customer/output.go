package customer

// FormOutput returns form state.
type FormOutput struct {
	Body Form
}

// FormCreatedOutput returns a new resource with its location.
type FormCreatedOutput struct {
	Location string `header:"Location" doc:"URL of the created resource"`
	Body     Form
}

// AddressListOutput returns a page of addresses.
type AddressListOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body AddressList
}

// SaveOutput returns the saved snapshot.
type SaveOutput struct {
	Body SaveResult
}
