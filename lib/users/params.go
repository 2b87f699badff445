package users

import (
	"fmt"
	"net/url"
	"strconv"

	"usersvc/lib/validate"
)

const (
	// MaxPageSize caps every page, whatever the caller asks for
	MaxPageSize = 50
	// AllDivisions is the division value meaning "no filter"
	AllDivisions = "all"
)

// ListParams are the decoded query parameters of GET /api/users
type ListParams struct {
	Division string `query:"division" validate:"omitempty,max=255"`
	Limit    int    `query:"limit" validate:"gte=1,lte=50"`
	Offset   int    `query:"offset" validate:"gte=0"`
}

var paramValidator = validate.New("query")

// DecodeListParams turns the query string into ListParams. Unknown names,
// repeated names and non-integer pagination values are rejected.
func DecodeListParams(values url.Values) (ListParams, error) {
	p := ListParams{Limit: MaxPageSize}

	for name, vals := range values {
		if len(vals) != 1 {
			return ListParams{}, fmt.Errorf("parameter %q given %d times", name, len(vals))
		}
		v := vals[0]

		switch name {
		case "division":
			p.Division = v
		case "limit", "offset":
			n, err := strconv.Atoi(v)
			if err != nil {
				return ListParams{}, fmt.Errorf("parameter %q must be an integer", name)
			}
			if name == "limit" {
				p.Limit = n
			} else {
				p.Offset = n
			}
		default:
			return ListParams{}, fmt.Errorf("unknown parameter %q", name)
		}
	}

	if err := paramValidator.Struct(p); err != nil {
		return ListParams{}, err
	}
	return p, nil
}

// Filter returns the division to filter on, if any
func (p ListParams) Filter() (string, bool) {
	if p.Division == "" || p.Division == AllDivisions {
		return "", false
	}
	return p.Division, true
}

// FilteredBy is the value reported back to the client
func (p ListParams) FilteredBy() string {
	if d, ok := p.Filter(); ok {
		return d
	}
	return AllDivisions
}
