package task

import (
	"testing"

	"github.com/blues/ims/internal/config"
	"github.com/blues/ims/internal/model"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.ProjectModel{},
		&model.ProjectFundingModel{},
		&model.FundingMilestoneModel{},
		&model.InvestmentModel{},
	)
	require.NoError(t, err)

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Task: config.TaskConfig{Interval: 60, ReconcileInterval: 300},
	}
}

func TestMilestoneJobMarksReached(t *testing.T) {
	db := newTestDB(t)

	funding := &model.ProjectFundingModel{
		ProjectId:    1,
		FundingGoal:  100000,
		AmountRaised: 50000,
		Milestones: []model.FundingMilestoneModel{
			{Title: "启动", TargetAmount: 10000, SortOrder: 0},
			{Title: "过半", TargetAmount: 50000, SortOrder: 1},
			{Title: "完成", TargetAmount: 100000, SortOrder: 2},
		},
	}
	require.NoError(t, db.Create(funding).Error)

	NewMilestoneJob(db, testConfig()).Execute()

	var milestones []model.FundingMilestoneModel
	require.NoError(t, db.Where("funding_id = ?", funding.Id).Order("sort_order").Find(&milestones).Error)
	require.Len(t, milestones, 3)

	assert.True(t, milestones[0].Reached)
	assert.NotNil(t, milestones[0].ReachedAt)
	assert.True(t, milestones[1].Reached)
	assert.False(t, milestones[2].Reached)
	assert.Nil(t, milestones[2].ReachedAt)
}

func TestMilestoneJobAlreadyReachedUntouched(t *testing.T) {
	db := newTestDB(t)

	funding := &model.ProjectFundingModel{
		ProjectId:    1,
		FundingGoal:  100000,
		AmountRaised: 20000,
		Milestones: []model.FundingMilestoneModel{
			{Title: "启动", TargetAmount: 10000, Reached: true},
		},
	}
	require.NoError(t, db.Create(funding).Error)

	// 所有里程碑均已达成时不产生任何更新
	NewMilestoneJob(db, testConfig()).Execute()

	var milestone model.FundingMilestoneModel
	require.NoError(t, db.Where("funding_id = ?", funding.Id).First(&milestone).Error)
	assert.True(t, milestone.Reached)
}

func TestReconcileJobRepairsDrift(t *testing.T) {
	db := newTestDB(t)

	// 账本值与实际已完成投资不符
	funding := &model.ProjectFundingModel{
		ProjectId:     1,
		FundingGoal:   100000,
		AmountRaised:  99999,
		InvestorCount: 7,
	}
	require.NoError(t, db.Create(funding).Error)

	investments := []*model.InvestmentModel{
		{InvestorId: "u1", ProjectId: 1, Amount: 200, PaymentMethod: model.PaymentMethodStripe, Status: model.InvestmentStatusCompleted},
		{InvestorId: "u2", ProjectId: 1, Amount: 500, PaymentMethod: model.PaymentMethodStripe, Status: model.InvestmentStatusCompleted},
		{InvestorId: "u3", ProjectId: 1, Amount: 300, PaymentMethod: model.PaymentMethodPaypal, Status: model.InvestmentStatusPending},
		{InvestorId: "u4", ProjectId: 1, Amount: 400, PaymentMethod: model.PaymentMethodPaypal, Status: model.InvestmentStatusRefunded},
	}
	for _, inv := range investments {
		require.NoError(t, db.Create(inv).Error)
	}

	NewReconcileJob(db, testConfig()).Execute()

	var repaired model.ProjectFundingModel
	require.NoError(t, db.First(&repaired, funding.Id).Error)
	assert.Equal(t, int64(700), repaired.AmountRaised)
	assert.Equal(t, int64(2), repaired.InvestorCount)
}

func TestReconcileJobConsistentUntouched(t *testing.T) {
	db := newTestDB(t)

	funding := &model.ProjectFundingModel{
		ProjectId:     1,
		FundingGoal:   100000,
		AmountRaised:  500,
		InvestorCount: 1,
	}
	require.NoError(t, db.Create(funding).Error)
	require.NoError(t, db.Create(&model.InvestmentModel{
		InvestorId: "u1", ProjectId: 1, Amount: 500,
		PaymentMethod: model.PaymentMethodStripe,
		Status:        model.InvestmentStatusCompleted,
	}).Error)

	before := funding.UpdatedAt

	NewReconcileJob(db, testConfig()).Execute()

	var after model.ProjectFundingModel
	require.NoError(t, db.First(&after, funding.Id).Error)
	assert.Equal(t, int64(500), after.AmountRaised)
	assert.Equal(t, int64(1), after.InvestorCount)
	assert.Equal(t, before.Unix(), after.UpdatedAt.Unix())
}

func TestReconcileJobNoInvestments(t *testing.T) {
	db := newTestDB(t)

	// 没有任何已完成投资时账本应归零
	funding := &model.ProjectFundingModel{
		ProjectId:     1,
		FundingGoal:   100000,
		AmountRaised:  300,
		InvestorCount: 2,
	}
	require.NoError(t, db.Create(funding).Error)

	NewReconcileJob(db, testConfig()).Execute()

	var repaired model.ProjectFundingModel
	require.NoError(t, db.First(&repaired, funding.Id).Error)
	assert.Equal(t, int64(0), repaired.AmountRaised)
	assert.Equal(t, int64(0), repaired.InvestorCount)
}
