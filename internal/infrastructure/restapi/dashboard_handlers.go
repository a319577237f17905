package restapi

import (
	"errors"
	"net/http"

	"synth_dashboard/internal/app/port"
	"synth_dashboard/internal/app/service"
	"synth_dashboard/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// APIDashboardResponse определяет структуру ответа для эндпоинта дашборда.
type APIDashboardResponse struct {
	Data          *entity.DashboardView `json:"data,omitempty"`
	StatusMessage string                `json:"status_message"`
}

// APIFailedWalletsResponse определяет структуру ответа со списком кошельков с ошибками.
type APIFailedWalletsResponse struct {
	Wallets []string `json:"wallets"`
}

// DashboardHandler обрабатывает HTTP запросы, связанные с дашбордом кошелька.
type DashboardHandler struct {
	dashboardService port.DashboardService
	logger           port.Logger
}

// NewDashboardHandler создает новый экземпляр DashboardHandler.
func NewDashboardHandler(ds port.DashboardService, l port.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: ds,
		logger:           l,
	}
}

// GetDashboardHandler обрабатывает запрос на получение дашборда по адресу кошелька.
func (h *DashboardHandler) GetDashboardHandler(c *gin.Context) {
	walletAddress := c.Param("walletAddress")

	view, err := h.dashboardService.FetchData(c.Request.Context(), walletAddress)
	if err != nil {
		if errors.Is(err, service.ErrInvalidWalletAddress) {
			c.JSON(http.StatusBadRequest, APIDashboardResponse{StatusMessage: err.Error()})
			return
		}
		h.logger.Error("Unexpected dashboard error", "wallet_address", walletAddress, "error", err)
		c.JSON(http.StatusInternalServerError, APIDashboardResponse{StatusMessage: "Failed to build dashboard."})
		return
	}

	response := APIDashboardResponse{Data: view}
	switch {
	case view.Complete():
		response.StatusMessage = "Dashboard retrieved successfully."
	case len(view.Errors) == 1 && view.Errors[0].Section == entity.SectionDashboard:
		response.StatusMessage = "Dashboard is unavailable. See errors for details."
	default:
		// Частичный результат: отсутствующие секции перечислены в errors.
		response.StatusMessage = "Dashboard retrieved. Some sections are unavailable."
	}

	c.JSON(http.StatusOK, response)
}

// GetFailedWalletsHandler возвращает кошельки, у которых при последнем запросе были недоступные секции.
func (h *DashboardHandler) GetFailedWalletsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, APIFailedWalletsResponse{Wallets: h.dashboardService.GetFailedWallets()})
}
