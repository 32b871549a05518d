package documents

import (
	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
)

const dateLayout = "02 Jan 2006"

// Snapshot is the flattened proposal view handed to a renderer. Every field
// is already formatted so renderers stay presentation-only.
type Snapshot struct {
	ProposalNo       string         `json:"proposal_no"`
	ProposalDate     string         `json:"proposal_date"`
	AMCStartDate     string         `json:"amc_start_date"`
	AMCEndDate       string         `json:"amc_end_date"`
	ContractNo       string         `json:"contract_no,omitempty"`
	CustomerName     string         `json:"customer_name"`
	BillingAddress   string         `json:"billing_address,omitempty"`
	TermsConditions  string         `json:"terms_conditions,omitempty"`
	Items            []SnapshotItem `json:"items"`
	Total            string         `json:"total"`
	AdditionalCharge string         `json:"additional_charge"`
	Discount         string         `json:"discount"`
	TaxRate          string         `json:"tax_rate"`
	TaxAmount        string         `json:"tax_amount"`
	GrandTotal       string         `json:"grand_total"`
}

// SnapshotItem is one covered unit as it appears on the document.
type SnapshotItem struct {
	ProductName string `json:"product_name"`
	Location    string `json:"location,omitempty"`
	SerialNo    string `json:"serial_no,omitempty"`
	SACCode     string `json:"sac_code,omitempty"`
	Quantity    int    `json:"quantity"`
	Rate        string `json:"rate"`
	Amount      string `json:"amount"`
}

func buildSnapshot(proposal *models.AmcProposal) Snapshot {
	snapshot := Snapshot{
		ProposalNo:       proposal.ProposalNo,
		ProposalDate:     proposal.ProposalDate.Format(dateLayout),
		AMCStartDate:     proposal.AMCStartDate.Format(dateLayout),
		AMCEndDate:       proposal.AMCEndDate.Format(dateLayout),
		ContractNo:       deref(proposal.ContractNo),
		BillingAddress:   deref(proposal.BillingAddress),
		TermsConditions:  deref(proposal.TermsConditions),
		Total:            proposal.Total.StringFixed(2),
		AdditionalCharge: proposal.AdditionalCharge.StringFixed(2),
		Discount:         proposal.Discount.StringFixed(2),
		TaxRate:          proposal.TaxRate.StringFixed(2),
		TaxAmount:        proposal.TaxAmount.StringFixed(2),
		GrandTotal:       proposal.GrandTotal.StringFixed(2),
	}
	if proposal.Customer != nil {
		snapshot.CustomerName = proposal.Customer.Name
	}
	for _, item := range proposal.Items {
		entry := SnapshotItem{
			SerialNo: deref(item.SerialNo),
			SACCode:  deref(item.SACCode),
			Quantity: item.Quantity,
			Rate:     item.Rate.StringFixed(2),
			Amount:   item.Amount.StringFixed(2),
		}
		if item.Product != nil {
			entry.ProductName = item.Product.Name
		}
		if item.Location != nil {
			entry.Location = item.Location.DisplayName
		}
		snapshot.Items = append(snapshot.Items, entry)
	}
	return snapshot
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
