package service

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"droppoint-partner-api/internal/dal"
	"droppoint-partner-api/internal/dao"
	"droppoint-partner-api/internal/dto"
	"droppoint-partner-api/internal/idgen"
	mainmodel "droppoint-partner-api/internal/model/main"
	"droppoint-partner-api/internal/revenue"
)

var ticketTypes = map[string]bool{
	mainmodel.TicketTypeDeployment:  true,
	mainmodel.TicketTypeCreation:    true,
	mainmodel.TicketTypeMaintenance: true,
	mainmodel.TicketTypeRepair:      true,
	mainmodel.TicketTypeUpgrade:     true,
}

var ticketPriorities = map[string]bool{"low": true, "medium": true, "high": true}

// PortalService covers the non-revenue partner surface: support tickets and
// hosting applications.
type PortalService struct {
	db *gorm.DB
}

func NewPortalService() *PortalService {
	return NewPortalServiceWithDB(dal.MainDB)
}

func NewPortalServiceWithDB(db *gorm.DB) *PortalService {
	return &PortalService{db: db}
}

func (s *PortalService) CreateTicket(partnerID uint64, req dto.TicketReq) (*mainmodel.PartnerTicket, error) {
	if !ticketTypes[req.Type] {
		return nil, fmt.Errorf("%w: unknown ticket type %q", revenue.ErrValidation, req.Type)
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: ticket title and description are required", revenue.ErrValidation)
	}
	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}
	if !ticketPriorities[priority] {
		return nil, fmt.Errorf("%w: unknown priority %q", revenue.ErrValidation, req.Priority)
	}
	if req.LockerID != nil {
		owned, err := s.ownsLocker(partnerID, *req.LockerID)
		if err != nil {
			return nil, err
		}
		if !owned {
			return nil, fmt.Errorf("%w: locker %d does not belong to partner %d",
				revenue.ErrValidation, *req.LockerID, partnerID)
		}
	}

	t := &mainmodel.PartnerTicket{
		TicketID:    idgen.New(),
		PartnerID:   partnerID,
		Type:        req.Type,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Priority:    priority,
		Status:      "open",
		LockerID:    req.LockerID,
	}
	if err := dao.NewPortalDaoWithDB(s.db).CreateTicket(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *PortalService) ListTickets(partnerID uint64) ([]mainmodel.PartnerTicket, error) {
	return dao.NewPortalDaoWithDB(s.db).ListTickets(partnerID)
}

// SubmitHostingRequest files an onboarding application. One pending
// application per email at a time; resubmitting while one is under review
// is rejected rather than queued.
func (s *PortalService) SubmitHostingRequest(req dto.HostingRequestReq) (*mainmodel.HostingRequest, error) {
	if strings.TrimSpace(req.CompanyName) == "" ||
		strings.TrimSpace(req.ContactName) == "" ||
		strings.TrimSpace(req.Phone) == "" ||
		strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("%w: company, contact, phone and message are required", revenue.ErrValidation)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email %q", revenue.ErrValidation, req.Email)
	}

	d := dao.NewPortalDaoWithDB(s.db)
	pending, err := d.CountPendingHostingRequests(email)
	if err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, fmt.Errorf("%w: application for %s already under review", revenue.ErrDuplicateEntry, email)
	}

	h := &mainmodel.HostingRequest{
		RequestID:    idgen.New(),
		CompanyName:  strings.TrimSpace(req.CompanyName),
		PropertyType: req.PropertyType,
		ContactName:  strings.TrimSpace(req.ContactName),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		Message:      strings.TrimSpace(req.Message),
		Status:       mainmodel.HostingStatusSubmitted,
	}
	if err := d.CreateHostingRequest(h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *PortalService) ownsLocker(partnerID, lockerID uint64) (bool, error) {
	lockers, err := dao.NewPartnerDaoWithDB(s.db).ListLockers(partnerID)
	if err != nil {
		return false, err
	}
	for _, l := range lockers {
		if l.LockerID == lockerID {
			return true, nil
		}
	}
	return false, nil
}
