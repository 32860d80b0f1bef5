package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"droppoint-partner-api/internal/constant"
	"droppoint-partner-api/internal/dto"
	"droppoint-partner-api/internal/service"
	"droppoint-partner-api/internal/utils"
)

// InternalHandler is the HMAC-guarded admin surface: ledgering parcel
// events, changing rule sets, running payouts and stats maintenance.
type InternalHandler struct {
	ledger     *service.LedgerService
	rules      *service.RuleService
	settlement *service.SettlementService
	rent       *service.RentService
	stats      *service.StatsService
}

func NewInternalHandler() *InternalHandler {
	return &InternalHandler{
		ledger:     service.NewLedgerService(),
		rules:      service.NewRuleService(),
		settlement: service.NewSettlementService(),
		rent:       service.NewRentService(),
		stats:      service.NewStatsService(),
	}
}

func (h *InternalHandler) AppendEntry(c *gin.Context) {
	var req dto.AppendEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeBadRequest))
		return
	}
	entry, err := h.ledger.AppendEntry(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(errCode(err)))
		return
	}
	c.JSON(http.StatusOK, utils.Success(dto.LedgerEntryVO{
		EntryID:       entry.EntryID,
		PartnerID:     entry.PartnerID,
		ParcelID:      entry.ParcelID,
		EntryType:     entry.EntryType,
		GrossAmount:   entry.GrossAmount,
		PartnerShare:  entry.PartnerShare,
		PlatformShare: entry.PlatformShare,
		ModelTypeUsed: entry.ModelTypeUsed,
		Currency:      entry.Currency,
		CalculatedAt:  entry.CalculatedAt,
		Settled:       entry.Settled,
		PayoutBatchID: entry.PayoutBatchID,
	}))
}

func (h *InternalHandler) UpdateRules(c *gin.Context) {
	partnerID, ok := pathPartnerID(c)
	if !ok {
		return
	}
	var req dto.UpdateRulesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeBadRequest))
		return
	}
	if err := h.rules.UpdateRules(partnerID, req.Rules, req.ChangedBy, req.Note); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(errCode(err)))
		return
	}
	c.JSON(http.StatusOK, utils.Success(nil))
}

func (h *InternalHandler) RunPayout(c *gin.Context) {
	partnerID, ok := pathPartnerID(c)
	if !ok {
		return
	}
	// as_of is optional; an empty body means settle up to now
	var req dto.RunPayoutReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeBadRequest))
		return
	}
	asOf := time.Now()
	if req.AsOf != nil {
		asOf = *req.AsOf
	}
	batch, err := h.settlement.RunPayout(partnerID, asOf)
	if err != nil {
		c.JSON(http.StatusConflict, utils.Error(errCode(err)))
		return
	}
	c.JSON(http.StatusOK, utils.Success(dto.PayoutBatchVO{
		BatchID:    batch.BatchID,
		PartnerID:  batch.PartnerID,
		EntryCount: batch.EntryCount,
		Total:      batch.Total,
		Currency:   batch.Currency,
		CreatedAt:  batch.CreatedAt,
	}))
}

func (h *InternalHandler) AccrueRent(c *gin.Context) {
	partnerID, ok := pathPartnerID(c)
	if !ok {
		return
	}
	created, err := h.rent.AccrueMonth(partnerID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.Error(errCode(err)))
		return
	}
	c.JSON(http.StatusOK, utils.Success(gin.H{"entries_created": len(created)}))
}

func (h *InternalHandler) RecomputeStats(c *gin.Context) {
	partnerID, ok := pathPartnerID(c)
	if !ok {
		return
	}
	stats, err := h.stats.RecomputeFromLedger(partnerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.Error(errCode(err)))
		return
	}
	c.JSON(http.StatusOK, utils.Success(stats))
}

func (h *InternalHandler) VerifyStats(c *gin.Context) {
	partnerID, ok := pathPartnerID(c)
	if !ok {
		return
	}
	if err := h.stats.VerifyStats(partnerID); err != nil {
		c.JSON(http.StatusConflict, utils.Error(errCode(err)))
		return
	}
	c.JSON(http.StatusOK, utils.Success(gin.H{"drift": false}))
}

func pathPartnerID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeBadRequest))
		return 0, false
	}
	return id, true
}
