package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/ims/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MarketplaceHandler 投资市场处理器
type MarketplaceHandler struct {
	marketplaceLogic *logic.MarketplaceLogic
}

// NewMarketplaceHandler 创建投资市场处理器
func NewMarketplaceHandler(db *gorm.DB) *MarketplaceHandler {
	return &MarketplaceHandler{
		marketplaceLogic: logic.NewMarketplaceLogic(db),
	}
}

// GetMarketplaceProjects 获取正在寻求投资的项目列表
func (h *MarketplaceHandler) GetMarketplaceProjects(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "12"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 12
	}

	filter := &logic.MarketplaceFilter{
		Type:      c.Query("type"),
		Page:      page,
		PageSize:  pageSize,
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}

	projects, total, err := h.marketplaceLogic.GetMarketplaceProjects(filter)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"projects":   projects,
		"pagination": NewPagination(page, pageSize, total),
	})
}

// GetMarketplaceProject 获取市场中单个项目的公开详情
func (h *MarketplaceHandler) GetMarketplaceProject(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	project, err := h.marketplaceLogic.GetMarketplaceProject(projectId)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"project": project})
}
