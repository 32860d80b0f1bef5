package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"droppoint-partner-api/internal/constant"
	mainmodel "droppoint-partner-api/internal/model/main"
	"droppoint-partner-api/internal/revenue"
	"droppoint-partner-api/internal/service"
	"droppoint-partner-api/internal/utils"
)

func payoutTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&mainmodel.Partner{},
		&mainmodel.PartnerRevenueConfig{},
		&mainmodel.RevenueLedgerEntry{},
		&mainmodel.RevenueStats{},
		&mainmodel.PayoutBatch{},
	))

	require.NoError(t, db.Create(&mainmodel.Partner{
		PartnerID: 42, Name: "Skyline Apartments", Phone: "9000000042",
		IsApproved: true, IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&mainmodel.PartnerRevenueConfig{
		PartnerID: 42,
		ModelType: string(revenue.ModelRevenueShare),
		Rules: revenue.RuleSet{
			ModelType:            revenue.ModelRevenueShare,
			PartnerSharePercent:  decimal.NewFromInt(30),
			PlatformSharePercent: decimal.NewFromInt(70),
		},
		PayoutCycle:     "monthly",
		PayoutDelayDays: 7,
		ChangedAt:       time.Now(),
	}).Error)

	h := &InternalHandler{settlement: service.NewSettlementServiceWithDB(db)}
	r := gin.New()
	r.POST("/internal/v1/partners/:id/payouts/run", h.RunPayout)
	return r
}

func TestRunPayoutAcceptsEmptyBody(t *testing.T) {
	r := payoutTestRouter(t)

	// as_of is optional, so no body at all must reach the settlement
	// engine instead of bouncing off request binding
	req := httptest.NewRequest(http.MethodPost, "/internal/v1/partners/42/payouts/run", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEqual(t, constant.CodeBadRequest, resp.Code)
	require.Equal(t, constant.CodeNothingDue, resp.Code)
}

func TestRunPayoutRejectsMalformedBody(t *testing.T) {
	r := payoutTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/internal/v1/partners/42/payouts/run",
		strings.NewReader(`{"as_of":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, constant.CodeBadRequest, resp.Code)
}
