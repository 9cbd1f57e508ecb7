// internal/service/customer/customer.go
package customer

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"tedtam-service/internal/domain/customer"
	xerrors "tedtam-service/internal/pkg/errors"
	"tedtam-service/internal/repository/postgres"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// ChangePublisher emits events on the customers change feed.
type ChangePublisher interface {
	Publish(ctx context.Context, ev customer.ChangeEvent)
}

type CustomerService struct {
	customerRepo *postgres.CustomerRepository
	publisher    ChangePublisher
	logger       *zap.Logger
	entropy      *ulid.MonotonicEntropy
}

func NewCustomerService(customerRepo *postgres.CustomerRepository, publisher ChangePublisher, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		publisher:    publisher,
		logger:       logger,
		entropy:      ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
}

// CreateCustomer inserts a new case, minting its UID, and notifies the feed.
func (s *CustomerService) CreateCustomer(ctx context.Context, agentID string, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	exists, err := s.customerRepo.ExistsByAccountNumber(ctx, req.AccountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check account number: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("contract %s already tracked: %w", req.AccountNumber, xerrors.ErrConflict)
	}

	c := s.fromCreateRequest(req)
	c.UID = ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
	c.CreatedBy = agentID

	if err := s.customerRepo.Create(ctx, c); err != nil {
		s.logger.Error("failed to create customer", zap.Error(err))
		return nil, err
	}

	s.logger.Info("customer created",
		zap.String("uid", c.UID),
		zap.String("account_number", c.AccountNumber),
		zap.String("agent_id", agentID),
	)
	s.publisher.Publish(ctx, customer.ChangeEvent{Kind: customer.ChangeInsert, UID: c.UID})

	return c, nil
}

// GetCustomer retrieves one case by UID.
func (s *CustomerService) GetCustomer(ctx context.Context, uid string) (*customer.Customer, error) {
	return s.customerRepo.FindByUID(ctx, uid)
}

// ListCustomers retrieves cases with filters and pagination.
func (s *CustomerService) ListCustomers(ctx context.Context, filters *customer.ListFilters) (*customer.ListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}
	if filters.PageSize > 200 {
		filters.PageSize = 200
	}

	customers, total, err := s.customerRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	totalPages := int(total) / filters.PageSize
	if int(total)%filters.PageSize > 0 {
		totalPages++
	}

	return &customer.ListResponse{
		Customers:  customers,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages,
	}, nil
}

// UpdateCustomer applies the provided fields to a case and notifies the feed.
func (s *CustomerService) UpdateCustomer(ctx context.Context, uid string, req *customer.UpdateCustomerRequest) (*customer.Customer, error) {
	c, err := s.customerRepo.FindByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	applyUpdate(c, req)

	if err := s.customerRepo.Update(ctx, c); err != nil {
		s.logger.Error("failed to update customer", zap.Error(err), zap.String("uid", uid))
		return nil, err
	}

	s.logger.Info("customer updated", zap.String("uid", uid))
	s.publisher.Publish(ctx, customer.ChangeEvent{Kind: customer.ChangeUpdate, UID: uid})

	return s.customerRepo.FindByUID(ctx, uid)
}

// DeleteCustomer removes a case and notifies the feed.
func (s *CustomerService) DeleteCustomer(ctx context.Context, uid string) error {
	if err := s.customerRepo.Delete(ctx, uid); err != nil {
		return err
	}

	s.logger.Info("customer deleted", zap.String("uid", uid))
	s.publisher.Publish(ctx, customer.ChangeEvent{Kind: customer.ChangeDelete, UID: uid})
	return nil
}

// BulkImportCustomers inserts many cases, typically from a spreadsheet. Each
// row succeeds or fails independently; one bad row never sinks the batch.
func (s *CustomerService) BulkImportCustomers(ctx context.Context, agentID string, reqs []customer.CreateCustomerRequest) (created int, errs []error) {
	errs = make([]error, 0, len(reqs))
	for i := range reqs {
		if _, err := s.CreateCustomer(ctx, agentID, &reqs[i]); err != nil {
			errs = append(errs, fmt.Errorf("row %d: %w", i+1, err))
			continue
		}
		created++
	}
	return created, errs
}

func (s *CustomerService) fromCreateRequest(req *customer.CreateCustomerRequest) *customer.Customer {
	return &customer.Customer{
		RegistrationID: req.RegistrationID,
		AccountNumber:  req.AccountNumber,
		Name:           req.Name,

		FieldTeam: req.FieldTeam,
		WorkGroup: customer.ParseWorkGroup(req.WorkGroup),
		GroupCode: req.GroupCode,
		Branch:    req.Branch,

		Principle:     req.Principle,
		Installment:   req.Installment,
		BlueBookPrice: req.BlueBookPrice,
		Commission:    req.Commission,

		CurrentBucket: req.CurrentBucket,
		CycleDay:      req.CycleDay,

		Brand:        req.Brand,
		Model:        req.Model,
		LicensePlate: req.LicensePlate,
		EngineNumber: req.EngineNumber,

		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,

		WorkStatus: customer.ParseWorkStatus(req.WorkStatus),
		Resus:      customer.ParseResus(req.Resus),

		LastVisitResult:   req.LastVisitResult,
		AuthorizationDate: req.AuthorizationDate,
		Notes:             req.Notes,

		PhoneNumbers: orEmpty(req.PhoneNumbers),
		Documents:    orEmpty(req.Documents),
		Photos:       orEmpty(req.Photos),
		VoiceNotes:   orEmpty(req.VoiceNotes),
	}
}

func applyUpdate(c *customer.Customer, req *customer.UpdateCustomerRequest) {
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.FieldTeam != nil {
		c.FieldTeam = *req.FieldTeam
	}
	if req.WorkGroup != nil {
		c.WorkGroup = customer.ParseWorkGroup(*req.WorkGroup)
	}
	if req.GroupCode != nil {
		c.GroupCode = *req.GroupCode
	}
	if req.Branch != nil {
		c.Branch = *req.Branch
	}
	if req.Principle != nil {
		c.Principle = *req.Principle
	}
	if req.Installment != nil {
		c.Installment = *req.Installment
	}
	if req.BlueBookPrice != nil {
		c.BlueBookPrice = *req.BlueBookPrice
	}
	if req.Commission != nil {
		c.Commission = *req.Commission
	}
	if req.CurrentBucket != nil {
		c.CurrentBucket = *req.CurrentBucket
	}
	if req.CycleDay != nil {
		c.CycleDay = *req.CycleDay
	}
	if req.Brand != nil {
		c.Brand = *req.Brand
	}
	if req.Model != nil {
		c.Model = *req.Model
	}
	if req.LicensePlate != nil {
		c.LicensePlate = *req.LicensePlate
	}
	if req.EngineNumber != nil {
		c.EngineNumber = *req.EngineNumber
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Latitude != nil {
		c.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		c.Longitude = *req.Longitude
	}
	if req.WorkStatus != nil {
		c.WorkStatus = customer.ParseWorkStatus(*req.WorkStatus)
	}
	if req.Resus != nil {
		c.Resus = customer.ParseResus(*req.Resus)
	}
	if req.LastVisitResult != nil {
		c.LastVisitResult = *req.LastVisitResult
	}
	if req.AuthorizationDate != nil {
		c.AuthorizationDate = *req.AuthorizationDate
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	if req.PhoneNumbers != nil {
		c.PhoneNumbers = req.PhoneNumbers
	}
	if req.Documents != nil {
		c.Documents = req.Documents
	}
	if req.Photos != nil {
		c.Photos = req.Photos
	}
	if req.VoiceNotes != nil {
		c.VoiceNotes = req.VoiceNotes
	}
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
