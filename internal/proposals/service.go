package proposals

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amcdesk/amcdesk-backend/internal/totals"
	"github.com/amcdesk/amcdesk-backend/pkg/db"
	"github.com/amcdesk/amcdesk-backend/pkg/db/models"
	"github.com/amcdesk/amcdesk-backend/pkg/enums"
	pkgerrors "github.com/amcdesk/amcdesk-backend/pkg/errors"
	"github.com/amcdesk/amcdesk-backend/pkg/pagination"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ListResult is a page of proposals.
type ListResult struct {
	Items []models.AmcProposal
	Meta  pagination.Meta
}

// Service exposes AMC proposal and proposal unit semantics. Every mutation
// that can change the derived money columns recomputes them in the same
// transaction.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.AmcProposal, error)
	Get(ctx context.Context, id int64) (*models.AmcProposal, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*models.AmcProposal, error)
	Delete(ctx context.Context, id int64) error

	AddItem(ctx context.Context, proposalID int64, input ItemInput) (*models.ProposalItem, error)
	GetItem(ctx context.Context, proposalID, itemID int64) (*models.ProposalItem, error)
	ListItems(ctx context.Context, params ItemListParams) (*ItemListResult, error)
	UpdateItem(ctx context.Context, proposalID, itemID int64, input ItemUpdateInput) (*models.ProposalItem, error)
	DeleteItem(ctx context.Context, proposalID, itemID int64) error
}

type service struct {
	repo   Repository
	tx     txRunner
	recalc *totals.Recalculator
}

// ServiceParams bundles the dependencies required to build a proposal service.
type ServiceParams struct {
	Repo         Repository
	TxRunner     txRunner
	Recalculator *totals.Recalculator
}

// NewService constructs a proposal service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("proposal repository required")
	}
	if params.TxRunner == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Recalculator == nil {
		return nil, fmt.Errorf("totals recalculator required")
	}
	return &service{
		repo:   params.Repo,
		tx:     params.TxRunner,
		recalc: params.Recalculator,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.AmcProposal, error) {
	proposalNo := strings.TrimSpace(input.ProposalNo)
	if proposalNo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "proposal_no is required")
	}
	status, err := resolveStatus(input.Status)
	if err != nil {
		return nil, err
	}
	if input.AMCEndDate.Before(input.AMCStartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amc_end_date must not precede amc_start_date")
	}

	var created *models.AmcProposal
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		exists, err := repo.CustomerExists(ctx, input.CustomerID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer")
		}
		if !exists {
			return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}

		if err := ensureProposalNoFree(ctx, repo, proposalNo, 0); err != nil {
			return err
		}

		proposal := &models.AmcProposal{
			CustomerID:       input.CustomerID,
			ProposalNo:       proposalNo,
			ProposalDate:     input.ProposalDate,
			AMCStartDate:     input.AMCStartDate,
			AMCEndDate:       input.AMCEndDate,
			ContractNo:       input.ContractNo,
			BillingAddress:   input.BillingAddress,
			TermsConditions:  input.TermsConditions,
			AdditionalCharge: input.AdditionalCharge,
			Discount:         input.Discount,
			TaxRate:          input.TaxRate,
			ProposalStatus:   status,
		}
		if _, err := repo.Create(ctx, proposal); err != nil {
			return mapWriteError(err, "create proposal")
		}

		for _, line := range input.Items {
			item := buildItem(proposal.ID, line)
			if _, err := repo.CreateItem(ctx, item); err != nil {
				return mapWriteError(err, "create proposal item")
			}
		}

		if _, err := s.recalc.WithTx(tx).RecalculateProposal(ctx, proposal.ID); err != nil {
			return err
		}

		created = proposal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, created.ID)
}

func (s *service) Get(ctx context.Context, id int64) (*models.AmcProposal, error) {
	proposal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "proposal not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup proposal")
	}
	return proposal, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	params.Pagination = pagination.Normalize(params.Pagination)
	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list proposals")
	}
	return &ListResult{
		Items: rows,
		Meta:  pagination.MetaFor(params.Pagination, total),
	}, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*models.AmcProposal, error) {
	proposalNo := strings.TrimSpace(input.ProposalNo)
	if proposalNo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "proposal_no is required")
	}
	if input.AMCEndDate.Before(input.AMCStartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amc_end_date must not precede amc_start_date")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		proposal, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "proposal not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup proposal")
		}

		if proposal.ProposalNo != proposalNo {
			if err := ensureProposalNoFree(ctx, repo, proposalNo, proposal.ID); err != nil {
				return err
			}
		}

		exists, err := repo.CustomerExists(ctx, input.CustomerID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer")
		}
		if !exists {
			return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}

		proposal.CustomerID = input.CustomerID
		proposal.ProposalNo = proposalNo
		proposal.ProposalDate = input.ProposalDate
		proposal.AMCStartDate = input.AMCStartDate
		proposal.AMCEndDate = input.AMCEndDate
		proposal.ContractNo = input.ContractNo
		proposal.BillingAddress = input.BillingAddress
		proposal.TermsConditions = input.TermsConditions

		pricingChanged := false
		if input.AdditionalCharge != nil {
			proposal.AdditionalCharge = *input.AdditionalCharge
			pricingChanged = true
		}
		if input.Discount != nil {
			proposal.Discount = *input.Discount
			pricingChanged = true
		}
		if input.TaxRate != nil {
			proposal.TaxRate = *input.TaxRate
			pricingChanged = true
		}
		if input.Status != nil {
			status, err := resolveStatus(input.Status)
			if err != nil {
				return err
			}
			proposal.ProposalStatus = status
		}

		proposal.Customer = nil
		proposal.Items = nil
		if err := repo.Update(ctx, proposal); err != nil {
			return mapWriteError(err, "update proposal")
		}

		if pricingChanged {
			if _, err := s.recalc.WithTx(tx).RecalculateProposal(ctx, proposal.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "proposal not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete proposal")
	}
	return nil
}

func (s *service) AddItem(ctx context.Context, proposalID int64, input ItemInput) (*models.ProposalItem, error) {
	if input.ProductID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}

	var created *models.ProposalItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item := buildItem(proposalID, input)
		if _, err := repo.CreateItem(ctx, item); err != nil {
			return mapWriteError(err, "create proposal item")
		}

		// Recalculate proves the parent exists; a missing proposal rolls the
		// insert back.
		if _, err := s.recalc.WithTx(tx).RecalculateProposal(ctx, proposalID); err != nil {
			return err
		}

		created = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) GetItem(ctx context.Context, proposalID, itemID int64) (*models.ProposalItem, error) {
	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "proposal item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup proposal item")
	}
	if item.ProposalID != proposalID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "proposal item not found")
	}
	return item, nil
}

func (s *service) ListItems(ctx context.Context, params ItemListParams) (*ItemListResult, error) {
	params.Pagination = pagination.Normalize(params.Pagination)
	rows, total, err := s.repo.ListItems(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list proposal items")
	}
	return &ItemListResult{
		Items: rows,
		Meta:  pagination.MetaFor(params.Pagination, total),
	}, nil
}

func (s *service) UpdateItem(ctx context.Context, proposalID, itemID int64, input ItemUpdateInput) (*models.ProposalItem, error) {
	if input.ProductID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}

	var updated *models.ProposalItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item, err := repo.FindItemByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "proposal item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup proposal item")
		}
		if item.ProposalID != proposalID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "proposal item not found")
		}

		originalProposalID := item.ProposalID
		targetProposalID := originalProposalID
		if input.ProposalID != nil && *input.ProposalID > 0 {
			targetProposalID = *input.ProposalID
		}

		item.ProposalID = targetProposalID
		item.ProductID = input.ProductID
		item.LocationID = input.LocationID
		item.InvoiceID = input.InvoiceID
		item.SerialNo = input.SerialNo
		item.SACCode = input.SACCode
		item.Quantity = normalizeQuantity(input.Quantity)
		item.Rate = input.Rate
		item.Amount = input.Amount
		item.Proposal = nil
		item.Location = nil
		item.Invoice = nil
		item.Product = nil
		if err := repo.UpdateItem(ctx, item); err != nil {
			return mapWriteError(err, "update proposal item")
		}

		engine := s.recalc.WithTx(tx)
		if _, err := engine.RecalculateProposal(ctx, originalProposalID); err != nil {
			return err
		}
		if targetProposalID != originalProposalID {
			if _, err := engine.RecalculateProposal(ctx, targetProposalID); err != nil {
				return err
			}
		}

		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) DeleteItem(ctx context.Context, proposalID, itemID int64) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item, err := repo.FindItemByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "proposal item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup proposal item")
		}
		if item.ProposalID != proposalID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "proposal item not found")
		}

		if err := repo.DeleteItem(ctx, itemID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete proposal item")
		}

		_, err = s.recalc.WithTx(tx).RecalculateProposal(ctx, proposalID)
		return err
	})
}

func ensureProposalNoFree(ctx context.Context, repo Repository, proposalNo string, selfID int64) error {
	existingID, err := repo.FindIDByProposalNo(ctx, proposalNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check proposal number")
	}
	if existingID == selfID {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeDuplicate, "proposal number already exists")
}

func buildItem(proposalID int64, input ItemInput) *models.ProposalItem {
	return &models.ProposalItem{
		ProposalID: proposalID,
		ProductID:  input.ProductID,
		LocationID: input.LocationID,
		InvoiceID:  input.InvoiceID,
		SerialNo:   input.SerialNo,
		SACCode:    input.SACCode,
		Quantity:   normalizeQuantity(input.Quantity),
		Rate:       input.Rate,
		Amount:     input.Amount,
	}
}

func normalizeQuantity(quantity int) int {
	if quantity <= 0 {
		return 1
	}
	return quantity
}

func resolveStatus(value *string) (enums.ProposalStatus, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return enums.ProposalStatusNew, nil
	}
	status, err := enums.ParseProposalStatus(*value)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid proposal_status")
	}
	return status, nil
}

func mapWriteError(err error, message string) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.New(pkgerrors.CodeDuplicate, "proposal number already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}
