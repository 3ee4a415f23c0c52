package workforce

import (
	"context"

	"github.com/google/uuid"

	"github.com/siteops/backend/internal/domain/masterdata"
	"github.com/siteops/backend/internal/domain/shared"
	"github.com/siteops/backend/internal/domain/workforce"
)

// TransferService moves workers between sites. The transfer record and the
// worker's new posting are written in one transaction.
type TransferService struct {
	transferRepo workforce.TransferRepository
	manpowerRepo workforce.ManpowerRepository
	siteRepo     masterdata.SiteRepository
	txScope      TransactionScope
}

// NewTransferService creates a new transfer service
func NewTransferService(
	transferRepo workforce.TransferRepository,
	manpowerRepo workforce.ManpowerRepository,
	siteRepo masterdata.SiteRepository,
	txScope TransactionScope,
) *TransferService {
	return &TransferService{
		transferRepo: transferRepo,
		manpowerRepo: manpowerRepo,
		siteRepo:     siteRepo,
		txScope:      txScope,
	}
}

// Transfer moves a worker to another site
func (s *TransferService) Transfer(ctx context.Context, manpowerID, transferredBy uuid.UUID, req TransferManpowerRequest) (*TransferResponse, error) {
	worker, err := s.manpowerRepo.FindByID(ctx, manpowerID)
	if err != nil {
		return nil, err
	}

	toSite, err := s.siteRepo.FindByID(ctx, req.ToSiteID)
	if err != nil {
		return nil, err
	}
	if !toSite.IsActive() {
		return nil, shared.NewDomainError("SITE_NOT_ACTIVE", "Workers can only be transferred to active sites")
	}

	transfer, err := workforce.NewTransfer(worker.ID, worker.SiteID, req.ToSiteID, transferredBy, req.TransferDate, req.Reason)
	if err != nil {
		return nil, err
	}
	if err := worker.MoveToSite(req.ToSiteID); err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.ManpowerRepo().Save(ctx, worker); err != nil {
			return err
		}
		return repos.TransferRepo().Save(ctx, transfer)
	})
	if err != nil {
		return nil, err
	}

	resp := ToTransferResponse(transfer)
	return &resp, nil
}

// History retrieves all transfers of a worker
func (s *TransferService) History(ctx context.Context, manpowerID uuid.UUID) ([]TransferResponse, error) {
	transfers, err := s.transferRepo.FindByManpower(ctx, manpowerID)
	if err != nil {
		return nil, err
	}
	responses := make([]TransferResponse, 0, len(transfers))
	for _, transfer := range transfers {
		responses = append(responses, ToTransferResponse(transfer))
	}
	return responses, nil
}
