package handler

import (
	"net/http"
	"sync"

	"github.com/blues/ims/internal/builder"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BuilderHandler 页面构建器处理器。
// 页面组件树保存在内存中，每个页面同一时刻只由一个会话编辑。
type BuilderHandler struct {
	mu      sync.RWMutex
	editors map[string]*builder.Editor
}

// NewBuilderHandler 创建页面构建器处理器
func NewBuilderHandler() *BuilderHandler {
	return &BuilderHandler{
		editors: make(map[string]*builder.Editor),
	}
}

// CreatePage 创建页面
func (h *BuilderHandler) CreatePage(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	page := &builder.Page{
		Id:   uuid.NewString(),
		Name: input.Name,
	}

	h.mu.Lock()
	h.editors[page.Id] = builder.NewEditor(page)
	h.mu.Unlock()

	SuccessResponse(c, http.StatusCreated, "页面创建成功", gin.H{"page": page})
}

// GetPage 获取页面组件树
func (h *BuilderHandler) GetPage(c *gin.Context) {
	editor, ok := h.editor(c.Param("id"))
	if !ok {
		ErrorResponse(c, http.StatusNotFound, "页面不存在")
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"page":     editor.Page(),
		"selected": editor.Selected(),
	})
}

// AddComponent 添加组件
func (h *BuilderHandler) AddComponent(c *gin.Context) {
	editor, ok := h.editor(c.Param("id"))
	if !ok {
		ErrorResponse(c, http.StatusNotFound, "页面不存在")
		return
	}

	var input struct {
		Component *builder.Component `json:"component" binding:"required"`
		ParentId  string             `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if input.Component.Id == "" {
		input.Component.Id = uuid.NewString()
	}

	if err := editor.AddComponent(input.Component, input.ParentId); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "组件添加成功", gin.H{"page": editor.Page()})
}

// UpdateComponent 更新组件
func (h *BuilderHandler) UpdateComponent(c *gin.Context) {
	editor, ok := h.editor(c.Param("id"))
	if !ok {
		ErrorResponse(c, http.StatusNotFound, "页面不存在")
		return
	}

	var update builder.ComponentUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := editor.UpdateComponent(c.Param("componentId"), &update); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "组件更新成功", gin.H{"page": editor.Page()})
}

// DeleteComponent 删除组件及其子树
func (h *BuilderHandler) DeleteComponent(c *gin.Context) {
	editor, ok := h.editor(c.Param("id"))
	if !ok {
		ErrorResponse(c, http.StatusNotFound, "页面不存在")
		return
	}

	editor.DeleteComponent(c.Param("componentId"))

	SuccessResponse(c, http.StatusOK, "组件删除成功", gin.H{"page": editor.Page()})
}

// ExportPage 导出页面代码
func (h *BuilderHandler) ExportPage(c *gin.Context) {
	editor, ok := h.editor(c.Param("id"))
	if !ok {
		ErrorResponse(c, http.StatusNotFound, "页面不存在")
		return
	}

	var input struct {
		Format builder.ExportFormat `json:"format" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	code, err := builder.Export(editor.Page(), input.Format)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"code": code})
}

// editor 按页面ID查找编辑器
func (h *BuilderHandler) editor(pageId string) (*builder.Editor, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	editor, ok := h.editors[pageId]
	return editor, ok
}
