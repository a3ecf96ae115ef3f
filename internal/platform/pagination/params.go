package pagination

const defaultLimit = 20

// Params embeds into Huma input structs for paginated lists.
type Params struct {
	Cursor string `query:"cursor" doc:"Opaque pagination cursor from the Link header"`
	Limit  int    `query:"limit"  doc:"Maximum items per page"                        default:"20" minimum:"1" maximum:"100"`
}

// DefaultLimit returns Limit, or 20 when unset.
func (p Params) DefaultLimit() int {
	if p.Limit <= 0 {
		return defaultLimit
	}
	return p.Limit
}
