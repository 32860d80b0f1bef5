package dao

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"droppoint-partner-api/internal/dal"
	mainmodel "droppoint-partner-api/internal/model/main"
)

type PortalDao struct {
	DB *gorm.DB
}

func NewPortalDao() *PortalDao {
	if dal.MainDB == nil {
		log.Panic("[FATAL] dal.MainDB is nil - database not initialized")
	}
	return &PortalDao{DB: dal.MainDB}
}

func NewPortalDaoWithDB(db *gorm.DB) *PortalDao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &PortalDao{DB: db}
}

func (r *PortalDao) CreateTicket(t *mainmodel.PartnerTicket) error {
	return r.DB.Create(t).Error
}

func (r *PortalDao) ListTickets(partnerID uint64) ([]mainmodel.PartnerTicket, error) {
	var out []mainmodel.PartnerTicket
	if err := r.DB.Where("partner_id = ?", partnerID).Order("created_at desc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list tickets failed: %w", err)
	}
	return out, nil
}

func (r *PortalDao) CreateHostingRequest(h *mainmodel.HostingRequest) error {
	return r.DB.Create(h).Error
}

// CountPendingHostingRequests counts submitted/reviewing requests for an
// email, backing the duplicate-application check.
func (r *PortalDao) CountPendingHostingRequests(email string) (int64, error) {
	var n int64
	err := r.DB.Model(&mainmodel.HostingRequest{}).
		Where("email = ? AND status IN ?", email, []string{
			mainmodel.HostingStatusSubmitted, mainmodel.HostingStatusReviewing,
		}).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count hosting requests failed: %w", err)
	}
	return n, nil
}
