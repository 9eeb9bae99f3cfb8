package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BobadilloLeftLane/medweg-api/internal/service"
	"github.com/BobadilloLeftLane/medweg-api/internal/utils"
)

// CalculatorHandler serves the admin profit calculator.
type CalculatorHandler struct {
	calculatorService *service.CalculatorService
}

func NewCalculatorHandler(calculatorService *service.CalculatorService) *CalculatorHandler {
	return &CalculatorHandler{calculatorService: calculatorService}
}

// Calculate handles GET /v1/admin/calculator?year=&month=
// Without year/month the current month is calculated.
func (h *CalculatorHandler) Calculate(c *gin.Context) {
	year, ok := queryInt(c, "year")
	if !ok {
		return
	}
	month, ok := queryInt(c, "month")
	if !ok {
		return
	}
	if _, given := c.GetQuery("month"); given && (month < 1 || month > 12) {
		utils.Error(c, 400, "INVALID_REQUEST", "Month must be between 1 and 12")
		return
	}

	result, err := h.calculatorService.Calculate(c.GetInt("user_id"), year, month)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Calculation failed")
		return
	}
	utils.Success(c, 200, "Calculation complete", result)
}

// queryInt parses an optional integer query parameter, writing a 400 and
// returning ok=false on garbage input. A missing parameter yields zero.
func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid "+name)
		return 0, false
	}
	return value, true
}
