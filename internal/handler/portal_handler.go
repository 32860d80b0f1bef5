package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"droppoint-partner-api/internal/constant"
	"droppoint-partner-api/internal/dto"
	"droppoint-partner-api/internal/middleware"
	"droppoint-partner-api/internal/revenue"
	"droppoint-partner-api/internal/service"
	"droppoint-partner-api/internal/utils"
)

type PortalHandler struct{ svc *service.PortalService }

func NewPortalHandler() *PortalHandler { return &PortalHandler{svc: service.NewPortalService()} }

func (h *PortalHandler) CreateTicket(c *gin.Context) {
	var req dto.TicketReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeBadRequest))
		return
	}
	t, err := h.svc.CreateTicket(middleware.PartnerID(c), req)
	if err != nil {
		if errors.Is(err, revenue.ErrValidation) {
			c.JSON(http.StatusBadRequest, utils.Error(constant.CodeTicketInvalid))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.Error(constant.CodeInternalError))
		return
	}
	c.JSON(http.StatusOK, utils.Success(gin.H{"ticket_id": t.TicketID, "status": t.Status}))
}

func (h *PortalHandler) ListTickets(c *gin.Context) {
	tickets, err := h.svc.ListTickets(middleware.PartnerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.Error(constant.CodeInternalError))
		return
	}
	c.JSON(http.StatusOK, utils.Success(tickets))
}

// CreateHostingRequest is the one unauthenticated write: prospective
// partners apply before they have an account.
func (h *PortalHandler) CreateHostingRequest(c *gin.Context) {
	var req dto.HostingRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeBadRequest))
		return
	}
	r, err := h.svc.SubmitHostingRequest(req)
	if err != nil {
		switch {
		case errors.Is(err, revenue.ErrDuplicateEntry):
			c.JSON(http.StatusConflict, utils.Error(constant.CodeHostingDuplicate))
		case errors.Is(err, revenue.ErrValidation):
			c.JSON(http.StatusBadRequest, utils.Error(constant.CodeHostingInvalid))
		default:
			c.JSON(http.StatusInternalServerError, utils.Error(constant.CodeInternalError))
		}
		return
	}
	c.JSON(http.StatusOK, utils.Success(gin.H{"request_id": r.RequestID, "status": r.Status}))
}
