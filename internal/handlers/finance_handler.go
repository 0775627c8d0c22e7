package handlers

import (

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-queue/internal/domain/finance"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/httpresp"
	ucFinance "github.com/BruksfildServices01/barber-queue/internal/usecase/finance"
)

type FinanceHandler struct {
	expenses *ucFinance.Expenses
	goals    *ucFinance.Goals
}

func NewFinanceHandler(expenses *ucFinance.Expenses, goals *ucFinance.Goals) *FinanceHandler {
	return &FinanceHandler{expenses: expenses, goals: goals}
}

type ExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
}

type GoalsRequest struct {
	DailyGoal   decimal.Decimal `json:"daily_goal"`
	MonthlyGoal decimal.Decimal `json:"monthly_goal"`
	FixedCosts  decimal.Decimal `json:"fixed_costs"`
}

// ---------------- Expenses ----------------

func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	list, err := h.expenses.ListMonth(c.Request.Context(), barberID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *FinanceHandler) CreateExpense(c *gin.Context) {
	var req ExpenseRequest
	if !bindJSON(c, &req) {
		return
	}

	e, err := h.expenses.Create(c.Request.Context(), barberID(c), ucFinance.ExpenseInput{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, e)
}

func (h *FinanceHandler) DeleteExpense(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.expenses.Delete(c.Request.Context(), barberID(c), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}

// ---------------- Goals ----------------

func (h *FinanceHandler) GetGoals(c *gin.Context) {
	g, err := h.goals.Get(c.Request.Context(), barberID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, g)
}

func (h *FinanceHandler) SaveGoals(c *gin.Context) {
	var req GoalsRequest
	if !bindJSON(c, &req) {
		return
	}

	g, err := h.goals.Save(c.Request.Context(), barberID(c), finance.Goals{
		DailyGoal:   req.DailyGoal,
		MonthlyGoal: req.MonthlyGoal,
		FixedCosts:  req.FixedCosts,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, g)
}
