package types

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Date is an ISO 8601 date as sent by the API, e.g. "2006-01-02".
type Date = string

// FlexInt accepts a JSON number or a string containing one. Some numeric
// fields on the company profile are sent as strings.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}

type CompanyStatus string

const (
	CompanyStatusActive                CompanyStatus = "active"
	CompanyStatusDissolved             CompanyStatus = "dissolved"
	CompanyStatusLiquidation           CompanyStatus = "liquidation"
	CompanyStatusReceivership          CompanyStatus = "receivership"
	CompanyStatusAdministration        CompanyStatus = "administration"
	CompanyStatusVoluntaryArrangement  CompanyStatus = "voluntary-arrangement"
	CompanyStatusConvertedClosed       CompanyStatus = "converted-closed"
	CompanyStatusInsolvencyProceedings CompanyStatus = "insolvency-proceedings"
	CompanyStatusRegistered            CompanyStatus = "registered"
	CompanyStatusRemoved               CompanyStatus = "removed"
	CompanyStatusClosed                CompanyStatus = "closed"
	CompanyStatusOpen                  CompanyStatus = "open"
)

// CompanyProfile is the payload of the companies stream.
type CompanyProfile struct {
	Accounts                          *CompanyAccounts       `json:"accounts,omitempty"`
	AnnualReturn                      *CompanyAnnualReturn   `json:"annual_return,omitempty"`
	BranchCompanyDetails              *BranchCompanyDetails  `json:"branch_company_details,omitempty"`
	CanFile                           bool                   `json:"can_file"`
	CompanyName                       string                 `json:"company_name"`
	CompanyNumber                     string                 `json:"company_number"`
	CompanyStatus                     CompanyStatus          `json:"company_status,omitempty"`
	CompanyStatusDetail               string                 `json:"company_status_detail,omitempty"`
	ConfirmationStatement             *ConfirmationStatement `json:"confirmation_statement,omitempty"`
	DateOfCessation                   Date                   `json:"date_of_cessation,omitempty"`
	DateOfCreation                    Date                   `json:"date_of_creation,omitempty"`
	ExternalRegistrationNumber        string                 `json:"external_registration_number,omitempty"`
	HasBeenLiquidated                 *bool                  `json:"has_been_liquidated,omitempty"`
	HasCharges                        *bool                  `json:"has_charges,omitempty"`
	HasInsolvencyHistory              *bool                  `json:"has_insolvency_history,omitempty"`
	Jurisdiction                      string                 `json:"jurisdiction,omitempty"`
	LastFullMembersListDate           Date                   `json:"last_full_members_list_date,omitempty"`
	Links                             map[string]string      `json:"links,omitempty"`
	PartialDataAvailable              string                 `json:"partial_data_available,omitempty"`
	PreviousCompanyNames              []PreviousCompanyName  `json:"previous_company_names,omitempty"`
	RegisteredOfficeAddress           *Address               `json:"registered_office_address,omitempty"`
	RegisteredOfficeIsInDispute       *bool                  `json:"registered_office_is_in_dispute,omitempty"`
	ServiceAddress                    *Address               `json:"service_address,omitempty"`
	SICCodes                          []string               `json:"sic_codes,omitempty"`
	Subtype                           string                 `json:"subtype,omitempty"`
	SuperSecureManagingOfficerCount   *int                   `json:"super_secure_managing_officer_count,omitempty"`
	Type                              string                 `json:"type"`
	UndeliverableRegisteredOfficeAddr *bool                  `json:"undeliverable_registered_office_address,omitempty"`
	ForeignCompanyDetails             *json.RawMessage       `json:"foreign_company_details,omitempty"`
}

type CompanyAccounts struct {
	AccountingReferenceDate *AccountingReferenceDate `json:"accounting_reference_date,omitempty"`
	LastAccounts            *LastAccounts            `json:"last_accounts,omitempty"`
	NextAccounts            *NextAccounts            `json:"next_accounts,omitempty"`
	NextDue                 Date                     `json:"next_due,omitempty"`
	NextMadeUpTo            Date                     `json:"next_made_up_to,omitempty"`
	Overdue                 *bool                    `json:"overdue,omitempty"`
}

type AccountingReferenceDate struct {
	Day   FlexInt `json:"day"`
	Month FlexInt `json:"month"`
}

type LastAccounts struct {
	MadeUpTo      Date   `json:"made_up_to,omitempty"`
	PeriodEndOn   Date   `json:"period_end_on,omitempty"`
	PeriodStartOn Date   `json:"period_start_on,omitempty"`
	Type          string `json:"type,omitempty"`
}

type NextAccounts struct {
	DueOn         Date  `json:"due_on,omitempty"`
	Overdue       *bool `json:"overdue,omitempty"`
	PeriodEndOn   Date  `json:"period_end_on,omitempty"`
	PeriodStartOn Date  `json:"period_start_on,omitempty"`
}

type CompanyAnnualReturn struct {
	LastMadeUpTo Date  `json:"last_made_up_to,omitempty"`
	NextDue      Date  `json:"next_due,omitempty"`
	NextMadeUpTo Date  `json:"next_made_up_to,omitempty"`
	Overdue      *bool `json:"overdue,omitempty"`
}

type BranchCompanyDetails struct {
	BusinessActivity    string `json:"business_activity,omitempty"`
	ParentCompanyName   string `json:"parent_company_name,omitempty"`
	ParentCompanyNumber string `json:"parent_company_number,omitempty"`
}

type ConfirmationStatement struct {
	LastMadeUpTo Date  `json:"last_made_up_to,omitempty"`
	NextDue      Date  `json:"next_due"`
	NextMadeUpTo Date  `json:"next_made_up_to"`
	Overdue      *bool `json:"overdue,omitempty"`
}

type PreviousCompanyName struct {
	CeasedOn      Date   `json:"ceased_on"`
	EffectiveFrom Date   `json:"effective_from"`
	Name          string `json:"name"`
}

// Address is used for both the registered office and service address.
type Address struct {
	AddressLine1 string `json:"address_line_1,omitempty"`
	AddressLine2 string `json:"address_line_2,omitempty"`
	CareOf       string `json:"care_of,omitempty"`
	Country      string `json:"country,omitempty"`
	Locality     string `json:"locality,omitempty"`
	POBox        string `json:"po_box,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	Premises     string `json:"premises,omitempty"`
	Region       string `json:"region,omitempty"`
}
