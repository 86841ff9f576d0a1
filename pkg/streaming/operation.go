package streaming

import (
	"encoding/json"

	"github.com/EmilyShepherd/companieshouse-go/types"
)

// Operation identifies a stream: the endpoint it is served from and, at
// the type level, the payload its items carry.
type Operation[T any] struct {
	Path string
}

func NewOperation[T any](path string) Operation[T] {
	return Operation[T]{Path: path}
}

var (
	Companies = NewOperation[types.CompanyProfile]("/companies")
	Filings   = NewOperation[types.FilingHistory]("/filings")
)

// The remaining streams are exposed with undecoded payloads. Use
// NewOperation with the same path to bind one to a concrete type.
var (
	Officers                      = NewOperation[json.RawMessage]("/officers")
	PersonsWithSignificantControl = NewOperation[json.RawMessage]("/persons-with-significant-control")
	PSCStatements                 = NewOperation[json.RawMessage]("/persons-with-significant-control-statements")
	Charges                       = NewOperation[json.RawMessage]("/charges")
	InsolvencyCases               = NewOperation[json.RawMessage]("/insolvency-cases")
	DisqualifiedOfficers          = NewOperation[json.RawMessage]("/disqualified-officers")
	CompanyExemptions             = NewOperation[json.RawMessage]("/company-exemptions")
)
