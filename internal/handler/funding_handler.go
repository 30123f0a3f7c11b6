package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/ims/internal/logic"
	"github.com/blues/ims/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FundingHandler 融资配置处理器
type FundingHandler struct {
	fundingLogic *logic.FundingLogic
}

// NewFundingHandler 创建融资配置处理器
func NewFundingHandler(db *gorm.DB) *FundingHandler {
	return &FundingHandler{
		fundingLogic: logic.NewFundingLogic(db),
	}
}

// SetFunding 创建或更新项目融资配置
func (h *FundingHandler) SetFunding(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	var input logic.FundingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	funding, err := h.fundingLogic.UpsertFunding(UserId(c), projectId, &input)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "融资配置保存成功", gin.H{"funding": funding})
}

// GetFunding 获取项目融资配置
func (h *FundingHandler) GetFunding(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	funding, err := h.fundingLogic.GetFunding(UserId(c), projectId)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	// 未配置时返回 null
	SuccessResponse(c, http.StatusOK, "", gin.H{"funding": funding})
}

// SetLinks 创建或更新项目外部链接
func (h *FundingHandler) SetLinks(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	var input model.ProjectLinksModel
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	links, err := h.fundingLogic.SetLinks(UserId(c), projectId, &input)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "项目链接保存成功", gin.H{"links": links})
}

// GetLinks 获取项目外部链接
func (h *FundingHandler) GetLinks(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	links, err := h.fundingLogic.GetLinks(UserId(c), projectId)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"links": links})
}
