package documents

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	pkgerrors "github.com/amcdesk/amcdesk-backend/pkg/errors"
)

type localRenderer struct {
	outputDir string
	now       func() time.Time
}

func (r *localRenderer) Render(ctx context.Context, snapshot Snapshot) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc, err := buildProposalPDF(snapshot)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDocumentGeneration, err, "render proposal pdf")
	}

	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDocumentGeneration, err, "create document output dir")
	}

	now := time.Now
	if r.now != nil {
		now = r.now
	}
	name := fmt.Sprintf("%s-%s.pdf", snapshot.ProposalNo, now().UTC().Format("20060102150405"))
	path := filepath.Join(r.outputDir, name)
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDocumentGeneration, err, "write proposal pdf")
	}
	return path, nil
}

func buildProposalPDF(snapshot Snapshot) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "AMC Proposal", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(24,
		col.New(6).Add(
			text.New("Proposal number: "+snapshot.ProposalNo, props.Text{Top: 0}),
			text.New("Proposal date: "+snapshot.ProposalDate, props.Text{Top: 4}),
			text.New("Coverage: "+snapshot.AMCStartDate+" to "+snapshot.AMCEndDate, props.Text{Top: 8}),
			text.New("Contract number: "+snapshot.ContractNo, props.Text{Top: 12}),
		),
		col.New(6).Add(
			text.New(snapshot.CustomerName, props.Text{Style: fontstyle.Bold}),
			text.New(snapshot.BillingAddress, props.Text{Top: 5}),
		),
	)

	m.AddRow(10,
		text.NewCol(4, "Product", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(3, "Location", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(1, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Rate", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range snapshot.Items {
		label := item.ProductName
		if item.SerialNo != "" {
			label += " (SN " + item.SerialNo + ")"
		}
		m.AddRow(12,
			text.NewCol(4, label, props.Text{Size: 9}),
			text.NewCol(3, item.Location, props.Text{Size: 9}),
			text.NewCol(1, fmt.Sprintf("%d", item.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.Rate, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.Amount, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Size: 9}),
		text.NewCol(2, snapshot.Total, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Additional charge", props.Text{Size: 9}),
		text.NewCol(2, snapshot.AdditionalCharge, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Tax ("+snapshot.TaxRate+"%)", props.Text{Size: 9}),
		text.NewCol(2, snapshot.TaxAmount, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Discount", props.Text{Size: 9}),
		text.NewCol(2, snapshot.Discount, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Grand total", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, snapshot.GrandTotal, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	if snapshot.TermsConditions != "" {
		m.AddRow(20,
			text.NewCol(12, "Terms: "+snapshot.TermsConditions, props.Text{Size: 8, Top: 4}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
