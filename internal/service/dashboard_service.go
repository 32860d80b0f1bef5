package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"droppoint-partner-api/internal/dal"
	"droppoint-partner-api/internal/dao"
	"droppoint-partner-api/internal/dto"
)

var (
	monthsPerYear = decimal.NewFromInt(12)
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService() *DashboardService {
	return NewDashboardServiceWithDB(dal.MainDB)
}

func NewDashboardServiceWithDB(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// GetDashboard assembles the partner landing view: profile, lockers, the
// rolling revenue aggregate, this month's parcel volume, and the derived
// per-locker and annualized figures.
func (s *DashboardService) GetDashboard(partnerID uint64, asOf time.Time) (*dto.DashboardVO, error) {
	pd := dao.NewPartnerDaoWithDB(s.db)
	partner, err := pd.GetByID(partnerID)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, fmt.Errorf("partner %d not found", partnerID)
	}

	lockers, err := pd.ListLockers(partnerID)
	if err != nil {
		return nil, err
	}
	lockerVOs := make([]dto.LockerVO, 0, len(lockers))
	lockerIDs := make([]uint64, 0, len(lockers))
	for _, l := range lockers {
		lockerVOs = append(lockerVOs, dto.LockerVO{
			LockerID: l.LockerID,
			Code:     l.Code,
			Address:  l.Address,
			Doors:    l.Doors,
			Status:   l.Status,
		})
		lockerIDs = append(lockerIDs, l.LockerID)
	}

	statsVO, err := s.GetStats(partnerID)
	if err != nil {
		return nil, err
	}

	parcelCount, err := dao.NewEventDaoWithDB(s.db).CountForLockers(lockerIDs, asOf)
	if err != nil {
		return nil, err
	}

	// both derived figures read off the lifetime aggregate: per-locker is
	// total earned over locker count, the projection is that total taken
	// as a monthly run rate
	avgPerLocker := decimal.Zero
	if len(lockers) > 0 {
		avgPerLocker = statsVO.TotalPartnerEarned.
			Div(decimal.NewFromInt(int64(len(lockers)))).Round(2)
	}

	return &dto.DashboardVO{
		PartnerName:      partner.Name,
		PropertyType:     partner.PropertyType,
		Verification:     partner.Verification,
		Lockers:          lockerVOs,
		Stats:            *statsVO,
		ParcelCount:      parcelCount,
		AvgPerLocker:     avgPerLocker,
		AnnualProjection: statsVO.TotalPartnerEarned.Mul(monthsPerYear).Round(2),
	}, nil
}

// GetStats returns the rolling aggregate; a partner with no ledger activity
// gets an all-zero view rather than a miss.
func (s *DashboardService) GetStats(partnerID uint64) (*dto.StatsVO, error) {
	stats, err := dao.NewStatsDaoWithDB(s.db).Get(partnerID)
	if err != nil {
		return nil, err
	}
	vo := &dto.StatsVO{PartnerID: partnerID}
	if stats != nil {
		vo.TotalGross = stats.TotalGross
		vo.TotalPartnerEarned = stats.TotalPartnerEarned
		vo.TotalPlatformEarned = stats.TotalPlatformEarned
		vo.PendingPayout = stats.PendingPayout
		vo.PaidOut = stats.PaidOut
		vo.LastPayoutDate = stats.LastPayoutDate
		vo.LastCalculatedAt = stats.LastCalculatedAt
	}
	return vo, nil
}
