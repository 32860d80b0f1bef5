package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"droppoint-partner-api/internal/constant"
	"droppoint-partner-api/internal/dao"
	"droppoint-partner-api/internal/dto"
	"droppoint-partner-api/internal/middleware"
	"droppoint-partner-api/internal/service"
	"droppoint-partner-api/internal/utils"
)

type DashboardHandler struct {
	svc   *service.DashboardService
	rules *service.RuleService
}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{
		svc:   service.NewDashboardService(),
		rules: service.NewRuleService(),
	}
}

func (h *DashboardHandler) Dashboard(c *gin.Context) {
	vo, err := h.svc.GetDashboard(middleware.PartnerID(c), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.Error(errCode(err)))
		return
	}
	c.JSON(http.StatusOK, utils.Success(vo))
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	vo, err := h.svc.GetStats(middleware.PartnerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.Error(errCode(err)))
		return
	}
	c.JSON(http.StatusOK, utils.Success(vo))
}

func (h *DashboardHandler) LedgerEntries(c *gin.Context) {
	entries, err := dao.NewLedgerDao().ListByPartner(middleware.PartnerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.Error(constant.CodeInternalError))
		return
	}
	out := make([]dto.LedgerEntryVO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.LedgerEntryVO{
			EntryID:       e.EntryID,
			PartnerID:     e.PartnerID,
			ParcelID:      e.ParcelID,
			EntryType:     e.EntryType,
			GrossAmount:   e.GrossAmount,
			PartnerShare:  e.PartnerShare,
			PlatformShare: e.PlatformShare,
			ModelTypeUsed: e.ModelTypeUsed,
			Currency:      e.Currency,
			CalculatedAt:  e.CalculatedAt,
			Settled:       e.Settled,
			PayoutBatchID: e.PayoutBatchID,
		})
	}
	c.JSON(http.StatusOK, utils.Success(out))
}

func (h *DashboardHandler) Payouts(c *gin.Context) {
	batches, err := dao.NewPayoutDao().ListByPartner(middleware.PartnerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.Error(constant.CodeInternalError))
		return
	}
	out := make([]dto.PayoutBatchVO, 0, len(batches))
	for _, b := range batches {
		out = append(out, dto.PayoutBatchVO{
			BatchID:    b.BatchID,
			PartnerID:  b.PartnerID,
			EntryCount: b.EntryCount,
			Total:      b.Total,
			Currency:   b.Currency,
			CreatedAt:  b.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, utils.Success(out))
}

func (h *DashboardHandler) ActiveRules(c *gin.Context) {
	rules, err := h.rules.GetActiveRules(middleware.PartnerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.Error(errCode(err)))
		return
	}
	c.JSON(http.StatusOK, utils.Success(rules))
}

func (h *DashboardHandler) RuleHistory(c *gin.Context) {
	hist, err := h.rules.History(middleware.PartnerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.Error(errCode(err)))
		return
	}
	out := make([]dto.RuleHistoryVO, 0, len(hist))
	for _, rec := range hist {
		out = append(out, dto.RuleHistoryVO{
			ModelType: rec.ModelType,
			Rules:     rec.Rules,
			ChangedAt: rec.ChangedAt,
			ChangedBy: rec.ChangedBy,
			Note:      rec.Note,
		})
	}
	c.JSON(http.StatusOK, utils.Success(out))
}
