package logic

import (
	"errors"

	"github.com/blues/ims/internal/model"
	"gorm.io/gorm"
)

// ProjectLogic 项目业务逻辑
type ProjectLogic struct {
	db *gorm.DB
}

// NewProjectLogic 创建项目业务逻辑
func NewProjectLogic(db *gorm.DB) *ProjectLogic {
	return &ProjectLogic{db: db}
}

// CreateProject 创建项目，初始状态为草稿
func (p *ProjectLogic) CreateProject(ownerId string, project *model.ProjectModel) error {
	if project.Name == "" {
		return NewValidationError("项目名称不能为空")
	}
	if ownerId == "" {
		return NewValidationError("项目所有者不能为空")
	}

	project.OwnerId = ownerId
	project.Status = model.ProjectStatusDraft
	project.SeekingInvestment = false

	if err := p.db.Create(project).Error; err != nil {
		return NewStoreError("创建项目失败", err)
	}

	return nil
}

// PublishProject 发布项目
func (p *ProjectLogic) PublishProject(ownerId string, projectId int64) (*model.ProjectModel, error) {
	project, err := p.findOwnedProject(ownerId, projectId)
	if err != nil {
		return nil, err
	}

	if project.Status == model.ProjectStatusArchived {
		return nil, NewConflictError("已归档的项目不能发布")
	}

	if err := p.db.Model(project).Update("status", model.ProjectStatusPublished).Error; err != nil {
		return nil, NewStoreError("发布项目失败", err)
	}
	project.Status = model.ProjectStatusPublished

	return project, nil
}

// GetOwnProject 获取自己的项目详情
func (p *ProjectLogic) GetOwnProject(ownerId string, projectId int64) (*model.ProjectModel, error) {
	return p.findOwnedProject(ownerId, projectId)
}

// GetOwnProjects 获取自己的项目列表
func (p *ProjectLogic) GetOwnProjects(ownerId string) ([]model.ProjectModel, error) {
	var projects []model.ProjectModel
	if err := p.db.Where("owner_id = ?", ownerId).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, NewStoreError("获取项目列表失败", err)
	}
	return projects, nil
}

// findOwnedProject 按所有者查找项目，无权访问与不存在统一返回 NotFound
func (p *ProjectLogic) findOwnedProject(ownerId string, projectId int64) (*model.ProjectModel, error) {
	var project model.ProjectModel
	err := p.db.Where("id = ? AND owner_id = ?", projectId, ownerId).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("项目不存在")
		}
		return nil, NewStoreError("获取项目失败", err)
	}
	return &project, nil
}
