package advance

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/advance"
	"github.com/wagewise-hq/wagewise-backend-go/internal/domain/employee"
)

type advanceService struct {
	entryRepo    advance.EntryRepository
	employeeRepo employee.EmployeeRepository
}

func NewAdvanceService(entryRepo advance.EntryRepository, employeeRepo employee.EmployeeRepository) advance.AdvanceService {
	return &advanceService{
		entryRepo:    entryRepo,
		employeeRepo: employeeRepo,
	}
}

// Record implements advance.AdvanceService.
func (s *advanceService) Record(ctx context.Context, companyID string, req advance.CreateAdvanceRequest) (advance.Entry, error) {
	if err := req.Validate(); err != nil {
		return advance.Entry{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return advance.Entry{}, fmt.Errorf("failed to parse advance date: %w", err)
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return advance.Entry{}, err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return advance.Entry{}, fmt.Errorf("failed to parse advance amount: %w", err)
	}

	entry, err := s.entryRepo.Create(ctx, advance.Entry{
		EmployeeID: req.EmployeeID,
		CompanyID:  companyID,
		Date:       date,
		Amount:     amount,
		Note:       req.Note,
	})
	if err != nil {
		return advance.Entry{}, fmt.Errorf("failed to record advance: %w", err)
	}

	return entry, nil
}

var _ advance.AdvanceService = (*advanceService)(nil)
