package types

// FilingHistory is the payload of the filings stream.
type FilingHistory struct {
	Annotations       []FilingAnnotation     `json:"annotations,omitempty"`
	AssociatedFilings []AssociatedFiling     `json:"associated_filings,omitempty"`
	Barcode           string                 `json:"barcode,omitempty"`
	Category          string                 `json:"category"`
	Date              Date                   `json:"date"`
	Description       string                 `json:"description"`
	Links             *FilingLinks           `json:"links,omitempty"`
	Pages             *int                   `json:"pages,omitempty"`
	PaperFiled        *bool                  `json:"paper_filed,omitempty"`
	Resolutions       []FilingResolution     `json:"resolutions,omitempty"`
	Subcategory       string                 `json:"subcategory,omitempty"`
	TransactionID     string                 `json:"transaction_id"`
	Type              string                 `json:"type"`
	DescriptionValues map[string]interface{} `json:"description_values,omitempty"`
}

type FilingAnnotation struct {
	Annotation  string `json:"annotation,omitempty"`
	Date        Date   `json:"date"`
	Description string `json:"description"`
}

type AssociatedFiling struct {
	Date        Date   `json:"date"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

type FilingLinks struct {
	DocumentMetadata string `json:"document_metadata,omitempty"`
	Self             string `json:"self,omitempty"`
}

type FilingResolution struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	DocumentID  string `json:"document_id,omitempty"`
	ReceiveDate Date   `json:"receive_date"`
	Subcategory string `json:"subcategory"`
	Type        string `json:"type"`
}
