package logic

import (
	"testing"

	"github.com/blues/ims/internal/model"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 创建内存数据库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.ProjectModel{},
		&model.ProjectFundingModel{},
		&model.FundingMilestoneModel{},
		&model.InvestmentModel{},
		&model.ProjectLinksModel{},
	))

	return db
}

// seedProject 创建一个已发布且寻求投资的项目
func seedProject(t *testing.T, db *gorm.DB, ownerId string) *model.ProjectModel {
	t.Helper()

	project := &model.ProjectModel{
		Name:              "测试项目",
		Description:       "desc",
		Type:              "saas",
		OwnerId:           ownerId,
		Status:            model.ProjectStatusPublished,
		SeekingInvestment: true,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

// seedFunding 为项目创建融资配置
func seedFunding(t *testing.T, db *gorm.DB, projectId int64, min, max int64) *model.ProjectFundingModel {
	t.Helper()

	funding := &model.ProjectFundingModel{
		ProjectId:     projectId,
		FundingGoal:   100000,
		Currency:      "USD",
		FundingType:   model.FundingTypeEquity,
		MinInvestment: min,
		MaxInvestment: max,
	}
	require.NoError(t, db.Create(funding).Error)
	return funding
}
