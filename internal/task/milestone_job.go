package task

import (
	"time"

	"github.com/blues/ims/internal/config"
	"github.com/blues/ims/internal/logger"
	"github.com/blues/ims/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// MilestoneJob 里程碑达成任务：把融资进度已覆盖目标金额的
// 未达成里程碑标记为已达成
type MilestoneJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewMilestoneJob 创建里程碑达成任务
func NewMilestoneJob(db *gorm.DB, cfg *config.Config) *MilestoneJob {
	return &MilestoneJob{db: db, config: cfg}
}

// GetName 获取任务名称
func (j *MilestoneJob) GetName() string {
	return "milestone_updater"
}

// GetSchedule 获取调度配置
func (j *MilestoneJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *MilestoneJob) Execute() {
	logger.Info("Starting milestone task")

	// 查找存在未达成里程碑的融资配置
	var fundings []model.ProjectFundingModel
	err := j.db.Joins("JOIN funding_milestone ON funding_milestone.funding_id = project_funding.id").
		Where("funding_milestone.reached = ?", false).
		Distinct("project_funding.*").
		Find(&fundings).Error
	if err != nil {
		logger.Error("Failed to fetch fundings for milestone check: %v", err)
		return
	}

	now := time.Now()
	reachedCount := 0

	for _, funding := range fundings {
		result := j.db.Model(&model.FundingMilestoneModel{}).
			Where("funding_id = ? AND reached = ? AND target_amount <= ?",
				funding.Id, false, funding.AmountRaised).
			Updates(map[string]interface{}{
				"reached":    true,
				"reached_at": &now,
			})
		if result.Error != nil {
			logger.Error("Failed to update milestones for funding %d: %v", funding.Id, result.Error)
			continue
		}
		if result.RowsAffected > 0 {
			logger.Info("Funding %d reached %d milestone(s) at amount %d",
				funding.Id, result.RowsAffected, funding.AmountRaised)
			reachedCount += int(result.RowsAffected)
		}
	}

	logger.Info("Milestone task completed. Marked %d milestone(s) reached", reachedCount)
}
