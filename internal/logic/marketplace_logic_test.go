package logic

import (
	"fmt"
	"testing"
	"time"

	"github.com/blues/ims/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedMarketplace 创建 n 个寻求投资的已发布项目
func seedMarketplace(t *testing.T, db *gorm.DB, n int) []model.ProjectModel {
	t.Helper()

	projects := make([]model.ProjectModel, 0, n)
	base := time.Now().Add(-time.Hour)
	for i := 0; i < n; i++ {
		project := model.ProjectModel{
			Name:              fmt.Sprintf("项目-%02d", i),
			Type:              "saas",
			OwnerId:           "owner-1",
			Status:            model.ProjectStatusPublished,
			SeekingInvestment: true,
			CreatedAt:         base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&project).Error)
		projects = append(projects, project)
	}
	return projects
}

func TestMarketplacePagination(t *testing.T) {
	db := newTestDB(t)
	seedMarketplace(t, db, 15)
	ml := NewMarketplaceLogic(db)

	// 第二页只剩 5 个
	projects, total, err := ml.GetMarketplaceProjects(&MarketplaceFilter{
		Page:     2,
		PageSize: 10,
	})
	require.NoError(t, err)
	assert.Len(t, projects, 5)
	assert.Equal(t, int64(15), total)
}

func TestMarketplaceFilterAndSort(t *testing.T) {
	db := newTestDB(t)
	seedMarketplace(t, db, 3)

	// 不同类型的项目
	other := model.ProjectModel{
		Name:              "硬件项目",
		Type:              "hardware",
		OwnerId:           "owner-1",
		Status:            model.ProjectStatusPublished,
		SeekingInvestment: true,
	}
	require.NoError(t, db.Create(&other).Error)

	// 草稿与未寻求投资的项目不出现在市场中
	require.NoError(t, db.Create(&model.ProjectModel{
		Name: "草稿", Type: "saas", OwnerId: "owner-1",
		Status: model.ProjectStatusDraft, SeekingInvestment: true,
	}).Error)
	require.NoError(t, db.Create(&model.ProjectModel{
		Name: "未开放", Type: "saas", OwnerId: "owner-1",
		Status: model.ProjectStatusPublished, SeekingInvestment: false,
	}).Error)

	ml := NewMarketplaceLogic(db)

	projects, total, err := ml.GetMarketplaceProjects(&MarketplaceFilter{
		Type: "hardware", Page: 1, PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, projects, 1)
	assert.Equal(t, "硬件项目", projects[0].Project.Name)

	// 按名称升序
	projects, total, err = ml.GetMarketplaceProjects(&MarketplaceFilter{
		Type: "saas", Page: 1, PageSize: 10, SortBy: "name", SortOrder: "asc",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, projects, 3)
	assert.Equal(t, "项目-00", projects[0].Project.Name)

	// 未知排序字段回落到 created_at
	_, _, err = ml.GetMarketplaceProjects(&MarketplaceFilter{
		Page: 1, PageSize: 10, SortBy: "amount_raised; DROP TABLE project",
	})
	require.NoError(t, err)
}

func TestMarketplaceEnrichment(t *testing.T) {
	db := newTestDB(t)
	projects := seedMarketplace(t, db, 2)

	funding := seedFunding(t, db, projects[0].Id, 100, 0)
	require.NoError(t, db.Create(&model.FundingMilestoneModel{
		FundingId:    funding.Id,
		Title:        "首轮目标",
		TargetAmount: 1000,
	}).Error)
	require.NoError(t, db.Create(&model.ProjectLinksModel{
		ProjectId: projects[0].Id,
		Website:   "https://example.com",
	}).Error)

	ml := NewMarketplaceLogic(db)

	enriched, _, err := ml.GetMarketplaceProjects(&MarketplaceFilter{
		Page: 1, PageSize: 10, SortBy: "name", SortOrder: "asc",
	})
	require.NoError(t, err)
	require.Len(t, enriched, 2)

	// 第一个项目有融资配置与链接
	require.NotNil(t, enriched[0].Funding)
	require.Len(t, enriched[0].Funding.Milestones, 1)
	require.NotNil(t, enriched[0].Links)

	// 第二个项目缺失的部分保持为 nil 而非错误
	assert.Nil(t, enriched[1].Funding)
	assert.Nil(t, enriched[1].Links)
}

func TestGetMarketplaceProject(t *testing.T) {
	db := newTestDB(t)
	projects := seedMarketplace(t, db, 1)
	seedFunding(t, db, projects[0].Id, 100, 0)
	ml := NewMarketplaceLogic(db)

	detail, err := ml.GetMarketplaceProject(projects[0].Id)
	require.NoError(t, err)
	assert.Equal(t, projects[0].Id, detail.Project.Id)
	require.NotNil(t, detail.Funding)
	assert.Nil(t, detail.Links)

	// 未发布或未寻求投资的项目不可见
	draft := model.ProjectModel{
		Name: "草稿", OwnerId: "owner-1",
		Status: model.ProjectStatusDraft, SeekingInvestment: true,
	}
	require.NoError(t, db.Create(&draft).Error)

	var notFoundErr *NotFoundError
	_, err = ml.GetMarketplaceProject(draft.Id)
	require.ErrorAs(t, err, &notFoundErr)
	_, err = ml.GetMarketplaceProject(999)
	require.ErrorAs(t, err, &notFoundErr)
}
