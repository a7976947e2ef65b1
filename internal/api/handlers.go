package api

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"immoinvest/server/config"
	"immoinvest/server/internal/calculator"
	"immoinvest/server/internal/export"
	"immoinvest/server/internal/models"
	"immoinvest/server/internal/portfolio"
	"immoinvest/server/internal/queue"
)

type Handler struct {
	calc          portfolio.Calculator
	portfolios    *portfolio.Service
	referenceYear int
	logger        *logrus.Logger
}

type AmortizationRequest struct {
	LoanAmount    float64 `json:"loanAmount" binding:"gte=0"`
	InterestRate  float64 `json:"interestRate" binding:"gte=0"`
	RepaymentRate float64 `json:"repaymentRate" binding:"gte=0"`
	Years         int     `json:"years" binding:"gte=0,lte=100"`
}

type SideCostsRequest struct {
	PurchasePrice    float64 `json:"purchasePrice" binding:"gte=0"`
	FederalState     string  `json:"federalState" binding:"required"`
	WithBroker       bool    `json:"withBroker"`
	BrokerFeePercent float64 `json:"brokerFeePercent" binding:"gte=0"`
	NotaryFeePercent float64 `json:"notaryFeePercent" binding:"gte=0"`
}

type ScenariosRequest struct {
	Scenarios []models.PropertyInput `json:"scenarios" binding:"dive"`
}

// NewHandler builds the HTTP handlers. referenceYear 0 selects the current year on
// every rent-index request.
func NewHandler(calc portfolio.Calculator, portfolios *portfolio.Service, referenceYear int, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		calc:          calc,
		portfolios:    portfolios,
		referenceYear: referenceYear,
		logger:        logger,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Calculate(c *gin.Context) {
	var input models.PropertyInput
	if !h.bind(c, &input) {
		return
	}

	output, hit := h.calc.Calculate(c.Request.Context(), input)
	if hit {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	c.JSON(http.StatusOK, export.RoundOutput(output))
}

func (h *Handler) Amortization(c *gin.Context) {
	var req AmortizationRequest
	if !h.bind(c, &req) {
		return
	}

	schedule := calculator.GenerateAmortizationSchedule(req.LoanAmount, req.InterestRate, req.RepaymentRate, req.Years)
	c.JSON(http.StatusOK, export.RoundOutput(models.PropertyOutput{AmortizationSchedule: schedule}).AmortizationSchedule)
}

func (h *Handler) SideCosts(c *gin.Context) {
	var req SideCostsRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := calculator.SideCostsForState(req.PurchasePrice, req.FederalState, req.WithBroker, req.BrokerFeePercent, req.NotaryFeePercent)
	if err != nil {
		h.respondError(c, err, "Failed to calculate side costs")
		return
	}
	result.SideCosts = export.RoundOutput(models.PropertyOutput{SideCosts: result.SideCosts}).SideCosts
	c.JSON(http.StatusOK, result)
}

func (h *Handler) Scenarios(c *gin.Context) {
	var req ScenariosRequest
	if !h.bind(c, &req) {
		return
	}

	comparison := calculator.CompareScenarios(req.Scenarios)
	for i, output := range comparison.Outputs {
		comparison.Outputs[i] = export.RoundOutput(output)
	}
	c.JSON(http.StatusOK, comparison)
}

func (h *Handler) RentIndex(c *gin.Context) {
	var input models.RentIndexInput
	if !h.bind(c, &input) {
		return
	}

	year := h.referenceYear
	if year == 0 {
		year = time.Now().Year()
	}
	c.JSON(http.StatusOK, calculator.CompareRentIndex(input, year))
}

func (h *Handler) BreakEven(c *gin.Context) {
	var input models.BreakEvenInput
	if !h.bind(c, &input) {
		return
	}
	c.JSON(http.StatusOK, calculator.AnalyzeBreakEven(input))
}

func (h *Handler) Renovation(c *gin.Context) {
	var input models.RenovationInput
	if !h.bind(c, &input) {
		return
	}
	c.JSON(http.StatusOK, calculator.CalculateRenovationROI(input))
}

func (h *Handler) ExitStrategy(c *gin.Context) {
	var input models.ExitStrategyInput
	if !h.bind(c, &input) {
		return
	}
	c.JSON(http.StatusOK, calculator.EvaluateExitStrategy(input))
}

func (h *Handler) Location(c *gin.Context) {
	var input models.LocationAnalysisInput
	if !h.bind(c, &input) {
		return
	}
	c.JSON(http.StatusOK, calculator.ScoreLocation(input))
}

func (h *Handler) GetAfATypes(c *gin.Context) {
	c.JSON(http.StatusOK, config.GetAfATypes())
}

func (h *Handler) GetFederalStates(c *gin.Context) {
	c.JSON(http.StatusOK, config.FederalStates)
}

func (h *Handler) GetCities(c *gin.Context) {
	c.JSON(http.StatusOK, config.GetCityRents())
}

// bind decodes the JSON body into obj and answers 400 when it does not validate.
func (h *Handler) bind(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.logger.WithError(err).WithField("path", c.FullPath()).Warn("Failed to parse request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// respondError maps domain errors to status codes. Unexpected errors are logged and
// answered with a generic message.
func (h *Handler) respondError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, portfolio.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio not found"})
	case errors.Is(err, portfolio.ErrInvalidUser),
		errors.Is(err, config.ErrUnknownFederalState),
		errors.Is(err, export.ErrUnknownFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, queue.ErrQueueFull), errors.Is(err, queue.ErrQueueClosed):
		h.logger.WithError(err).Warn(message)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Recalculation queue is busy, try again later"})
	default:
		h.logger.WithError(err).Error(message)
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}
