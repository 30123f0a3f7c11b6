package logic

import (
	"errors"

	"github.com/blues/ims/internal/model"
	"gorm.io/gorm"
)

// MarketplaceFilter 市场列表筛选条件
type MarketplaceFilter struct {
	Type      string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// MarketplaceProject 市场中的项目，附融资配置与链接（可能为 nil）
type MarketplaceProject struct {
	Project model.ProjectModel         `json:"project"`
	Funding *model.ProjectFundingModel `json:"funding"`
	Links   *model.ProjectLinksModel   `json:"links"`
}

// sortColumns 允许排序的列，防止任意字段进入 SQL
var sortColumns = map[string]string{
	"created_at": "created_at",
	"name":       "name",
}

// MarketplaceLogic 投资市场只读查询
type MarketplaceLogic struct {
	db *gorm.DB
}

// NewMarketplaceLogic 创建市场查询逻辑
func NewMarketplaceLogic(db *gorm.DB) *MarketplaceLogic {
	return &MarketplaceLogic{db: db}
}

// GetMarketplaceProjects 获取正在寻求投资的已发布项目列表
func (m *MarketplaceLogic) GetMarketplaceProjects(filter *MarketplaceFilter) ([]MarketplaceProject, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 12
	}

	query := m.db.Model(&model.ProjectModel{}).
		Where("status = ? AND seeking_investment = ?", model.ProjectStatusPublished, true)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, NewStoreError("获取项目总数失败", err)
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}

	var projects []model.ProjectModel
	offset := (page - 1) * pageSize
	if err := query.Order(column + " " + direction).
		Offset(offset).
		Limit(pageSize).
		Find(&projects).Error; err != nil {
		return nil, 0, NewStoreError("获取项目列表失败", err)
	}

	enriched, err := m.enrich(projects)
	if err != nil {
		return nil, 0, err
	}

	return enriched, total, nil
}

// GetMarketplaceProject 获取市场中单个项目的公开详情
func (m *MarketplaceLogic) GetMarketplaceProject(projectId int64) (*MarketplaceProject, error) {
	var project model.ProjectModel
	err := m.db.Where("id = ? AND status = ? AND seeking_investment = ?",
		projectId, model.ProjectStatusPublished, true).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("项目不存在或未开放投资")
		}
		return nil, NewStoreError("获取项目失败", err)
	}

	enriched, err := m.enrich([]model.ProjectModel{project})
	if err != nil {
		return nil, err
	}
	return &enriched[0], nil
}

// enrich 批量补充项目的融资配置与链接，缺失的保持为 nil
func (m *MarketplaceLogic) enrich(projects []model.ProjectModel) ([]MarketplaceProject, error) {
	projectIds := make([]int64, 0, len(projects))
	for _, p := range projects {
		projectIds = append(projectIds, p.Id)
	}

	fundingMap := make(map[int64]*model.ProjectFundingModel)
	linksMap := make(map[int64]*model.ProjectLinksModel)

	if len(projectIds) > 0 {
		var fundings []model.ProjectFundingModel
		err := m.db.Preload("Milestones", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).Where("project_id IN ?", projectIds).Find(&fundings).Error
		if err != nil {
			return nil, NewStoreError("获取融资配置失败", err)
		}
		for idx := range fundings {
			fundingMap[fundings[idx].ProjectId] = &fundings[idx]
		}

		var links []model.ProjectLinksModel
		if err := m.db.Where("project_id IN ?", projectIds).Find(&links).Error; err != nil {
			return nil, NewStoreError("获取项目链接失败", err)
		}
		for idx := range links {
			linksMap[links[idx].ProjectId] = &links[idx]
		}
	}

	enriched := make([]MarketplaceProject, 0, len(projects))
	for _, p := range projects {
		enriched = append(enriched, MarketplaceProject{
			Project: p,
			Funding: fundingMap[p.Id],
			Links:   linksMap[p.Id],
		})
	}
	return enriched, nil
}
