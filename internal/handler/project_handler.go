package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/ims/internal/logic"
	"github.com/blues/ims/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProjectHandler 项目处理器
type ProjectHandler struct {
	projectLogic *logic.ProjectLogic
}

// NewProjectHandler 创建项目处理器
func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectLogic: logic.NewProjectLogic(db),
	}
}

// CreateProject 创建项目
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var project model.ProjectModel
	if err := c.ShouldBindJSON(&project); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	// 调用logic层创建项目
	if err := h.projectLogic.CreateProject(UserId(c), &project); err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "项目创建成功", gin.H{"project": project})
}

// GetProjects 获取自己的项目列表
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects, err := h.projectLogic.GetOwnProjects(UserId(c))
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"projects": projects})
}

// GetProject 获取自己的项目详情
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	project, err := h.projectLogic.GetOwnProject(UserId(c), projectId)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"project": project})
}

// PublishProject 发布项目
func (h *ProjectHandler) PublishProject(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	project, err := h.projectLogic.PublishProject(UserId(c), projectId)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "项目发布成功", gin.H{"project": project})
}

// UserId 取出认证中间件写入的用户标识
func UserId(c *gin.Context) string {
	return c.GetString("userId")
}
