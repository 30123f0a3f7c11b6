package logic

import (
	"errors"
	"strings"
	"time"

	"github.com/blues/ims/internal/model"
	"gorm.io/gorm"
)

// FundingInput 融资配置输入
type FundingInput struct {
	FundingGoal        int64             `json:"funding_goal" binding:"required"`
	Currency           string            `json:"currency"`
	FundingType        model.FundingType `json:"funding_type"`
	TermsAndConditions string            `json:"terms_and_conditions"`
	MinInvestment      *int64            `json:"min_investment"`
	MaxInvestment      *int64            `json:"max_investment"`
	DeadlineDate       *time.Time        `json:"deadline_date"`
	Milestones         []MilestoneInput  `json:"milestones"`
}

// MilestoneInput 里程碑输入
type MilestoneInput struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	TargetAmount int64  `json:"target_amount"`
}

// FundingLogic 融资配置业务逻辑
type FundingLogic struct {
	db *gorm.DB
}

// NewFundingLogic 创建融资配置业务逻辑
func NewFundingLogic(db *gorm.DB) *FundingLogic {
	return &FundingLogic{db: db}
}

// UpsertFunding 创建或更新项目融资配置，并把项目标记为正在寻求投资
func (f *FundingLogic) UpsertFunding(ownerId string, projectId int64, input *FundingInput) (*model.ProjectFundingModel, error) {
	// 检查项目归属
	var project model.ProjectModel
	if err := f.db.Where("id = ? AND owner_id = ?", projectId, ownerId).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("项目不存在")
		}
		return nil, NewStoreError("获取项目失败", err)
	}

	if err := f.validateFundingInput(input); err != nil {
		return nil, err
	}

	var funding model.ProjectFundingModel
	err := f.db.Where("project_id = ?", projectId).First(&funding).Error
	exists := true
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewStoreError("获取融资配置失败", err)
		}
		exists = false
	}

	tx := f.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if exists {
		// 合并字段
		f.applyFundingInput(&funding, input)
		if err := tx.Save(&funding).Error; err != nil {
			tx.Rollback()
			return nil, NewStoreError("更新融资配置失败", err)
		}
		// 里程碑整体替换
		if input.Milestones != nil {
			if err := tx.Where("funding_id = ?", funding.Id).
				Delete(&model.FundingMilestoneModel{}).Error; err != nil {
				tx.Rollback()
				return nil, NewStoreError("更新里程碑失败", err)
			}
		}
	} else {
		funding = model.ProjectFundingModel{
			ProjectId:     projectId,
			Currency:      "USD",
			FundingType:   model.FundingTypeEquity,
			MinInvestment: 100,
		}
		f.applyFundingInput(&funding, input)
		if err := tx.Create(&funding).Error; err != nil {
			tx.Rollback()
			return nil, NewStoreError("创建融资配置失败", err)
		}
	}

	if input.Milestones != nil {
		for i, m := range input.Milestones {
			milestone := model.FundingMilestoneModel{
				FundingId:    funding.Id,
				Title:        m.Title,
				Description:  m.Description,
				TargetAmount: m.TargetAmount,
				SortOrder:    i,
			}
			if err := tx.Create(&milestone).Error; err != nil {
				tx.Rollback()
				return nil, NewStoreError("创建里程碑失败", err)
			}
		}
	}

	// 标记项目为正在寻求投资
	if err := tx.Model(&project).Update("seeking_investment", true).Error; err != nil {
		tx.Rollback()
		return nil, NewStoreError("更新项目状态失败", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, NewStoreError("提交融资配置失败", err)
	}

	return f.loadFunding(projectId)
}

// GetFunding 获取项目融资配置，无配置时返回 nil
func (f *FundingLogic) GetFunding(ownerId string, projectId int64) (*model.ProjectFundingModel, error) {
	// 归属检查针对项目而非融资配置
	var project model.ProjectModel
	if err := f.db.Where("id = ? AND owner_id = ?", projectId, ownerId).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("项目不存在")
		}
		return nil, NewStoreError("获取项目失败", err)
	}

	funding, err := f.loadFunding(projectId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return funding, nil
}

// SetLinks 创建或更新项目外部链接
func (f *FundingLogic) SetLinks(ownerId string, projectId int64, input *model.ProjectLinksModel) (*model.ProjectLinksModel, error) {
	var project model.ProjectModel
	if err := f.db.Where("id = ? AND owner_id = ?", projectId, ownerId).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("项目不存在")
		}
		return nil, NewStoreError("获取项目失败", err)
	}

	var links model.ProjectLinksModel
	err := f.db.Where("project_id = ?", projectId).First(&links).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewStoreError("获取项目链接失败", err)
		}
		links = model.ProjectLinksModel{ProjectId: projectId}
	}

	id, createdAt := links.Id, links.CreatedAt
	links = *input
	links.Id = id
	links.CreatedAt = createdAt
	links.ProjectId = projectId

	if err := f.db.Save(&links).Error; err != nil {
		return nil, NewStoreError("保存项目链接失败", err)
	}

	return &links, nil
}

// GetLinks 获取项目外部链接，未设置时返回 nil
func (f *FundingLogic) GetLinks(ownerId string, projectId int64) (*model.ProjectLinksModel, error) {
	var project model.ProjectModel
	if err := f.db.Where("id = ? AND owner_id = ?", projectId, ownerId).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("项目不存在")
		}
		return nil, NewStoreError("获取项目失败", err)
	}

	var links model.ProjectLinksModel
	if err := f.db.Where("project_id = ?", projectId).First(&links).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, NewStoreError("获取项目链接失败", err)
	}
	return &links, nil
}

// loadFunding 加载融资配置及其里程碑
func (f *FundingLogic) loadFunding(projectId int64) (*model.ProjectFundingModel, error) {
	var funding model.ProjectFundingModel
	err := f.db.Preload("Milestones", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Where("project_id = ?", projectId).First(&funding).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, NewStoreError("获取融资配置失败", err)
	}
	return &funding, nil
}

// applyFundingInput 把输入合并到融资配置
func (f *FundingLogic) applyFundingInput(funding *model.ProjectFundingModel, input *FundingInput) {
	funding.FundingGoal = input.FundingGoal
	if input.Currency != "" {
		funding.Currency = strings.ToUpper(input.Currency)
	}
	if input.FundingType != "" {
		funding.FundingType = input.FundingType
	}
	if input.TermsAndConditions != "" {
		funding.TermsAndConditions = input.TermsAndConditions
	}
	if input.MinInvestment != nil {
		funding.MinInvestment = *input.MinInvestment
	}
	if input.MaxInvestment != nil {
		funding.MaxInvestment = *input.MaxInvestment
	}
	if input.DeadlineDate != nil {
		funding.DeadlineDate = input.DeadlineDate
	}
}

// validateFundingInput 验证融资配置输入
func (f *FundingLogic) validateFundingInput(input *FundingInput) error {
	if input.FundingGoal < 0 {
		return NewValidationError("融资目标不能为负数")
	}
	if input.FundingType != "" && !model.ValidFundingType(input.FundingType) {
		return NewValidationError("无效的融资类型: %s", input.FundingType)
	}
	if input.MinInvestment != nil && *input.MinInvestment < 0 {
		return NewValidationError("最小投资金额不能为负数")
	}
	if input.MaxInvestment != nil && *input.MaxInvestment < 0 {
		return NewValidationError("最大投资金额不能为负数")
	}
	if input.MinInvestment != nil && input.MaxInvestment != nil &&
		*input.MaxInvestment > 0 && *input.MaxInvestment < *input.MinInvestment {
		return NewValidationError("最大投资金额不能小于最小投资金额")
	}
	for _, m := range input.Milestones {
		if m.Title == "" {
			return NewValidationError("里程碑标题不能为空")
		}
		if m.TargetAmount < 0 {
			return NewValidationError("里程碑目标金额不能为负数")
		}
	}
	return nil
}
