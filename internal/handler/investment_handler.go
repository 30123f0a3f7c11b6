package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/ims/internal/logic"
	"github.com/blues/ims/internal/model"
	"github.com/gin-gonic/gin"
)

// InvestmentHandler 投资处理器
type InvestmentHandler struct {
	investmentLogic *logic.InvestmentLogic
}

// NewInvestmentHandler 创建投资处理器
func NewInvestmentHandler(investmentLogic *logic.InvestmentLogic) *InvestmentHandler {
	return &InvestmentHandler{
		investmentLogic: investmentLogic,
	}
}

// CreateInvestment 创建投资并发起支付
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	var input logic.CreateInvestmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.investmentLogic.CreateInvestment(UserId(c), &input)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "投资发起成功", result)
}

// UpdateInvestmentStatus 更新投资状态（支付完成/失败/退款）
func (h *InvestmentHandler) UpdateInvestmentStatus(c *gin.Context) {
	investmentId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的投资ID")
		return
	}

	var input struct {
		Status        model.InvestmentStatus `json:"status" binding:"required"`
		TransactionId string                 `json:"transaction_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	investment, err := h.investmentLogic.UpdateInvestmentStatus(investmentId, input.Status, input.TransactionId)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "投资状态更新成功", gin.H{"investment": investment})
}

// GetInvestorDashboard 获取投资者仪表盘
func (h *InvestmentHandler) GetInvestorDashboard(c *gin.Context) {
	entries, stats, err := h.investmentLogic.GetInvestorDashboard(UserId(c))
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"investments": entries,
		"stats":       stats,
	})
}

// GetInvestment 获取单笔投资详情
func (h *InvestmentHandler) GetInvestment(c *gin.Context) {
	investmentId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的投资ID")
		return
	}

	detail, err := h.investmentLogic.GetInvestment(investmentId, UserId(c))
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"investment": detail})
}
