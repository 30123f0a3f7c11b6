package task

import (
	"time"

	"github.com/blues/ims/internal/config"
	"github.com/blues/ims/internal/logger"
	"github.com/blues/ims/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// ReconcileJob 账本对账任务：把每个融资配置的 amount_raised 和
// investor_count 与已完成投资的实际总和比对，发现漂移时修复。
// 状态写入与账本增减虽在同一事务内，进程崩溃或外部改动仍可能
// 造成不一致，由本任务周期性收敛。
type ReconcileJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewReconcileJob 创建账本对账任务
func NewReconcileJob(db *gorm.DB, cfg *config.Config) *ReconcileJob {
	return &ReconcileJob{db: db, config: cfg}
}

// GetName 获取任务名称
func (j *ReconcileJob) GetName() string {
	return "ledger_reconciler"
}

// GetSchedule 获取调度配置
func (j *ReconcileJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.ReconcileInterval) * time.Second)
}

// Execute 执行任务
func (j *ReconcileJob) Execute() {
	logger.Info("Starting ledger reconcile task")

	// 每个融资配置对应的已完成投资总额与笔数
	var rows []struct {
		FundingId     int64 `json:"funding_id"`
		ProjectId     int64 `json:"project_id"`
		AmountRaised  int64 `json:"amount_raised"`
		InvestorCount int64 `json:"investor_count"`
		ActualAmount  int64 `json:"actual_amount"`
		ActualCount   int64 `json:"actual_count"`
	}

	err := j.db.Raw(`
		SELECT
			f.id as funding_id,
			f.project_id,
			f.amount_raised,
			f.investor_count,
			COALESCE(inv.actual_amount, 0) as actual_amount,
			COALESCE(inv.actual_count, 0) as actual_count
		FROM project_funding f
		LEFT JOIN (
			SELECT
				project_id,
				SUM(amount) as actual_amount,
				COUNT(*) as actual_count
			FROM investment
			WHERE status = ?
			GROUP BY project_id
		) inv ON inv.project_id = f.project_id
	`, model.InvestmentStatusCompleted).Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to fetch reconcile rows: %v", err)
		return
	}

	repaired := 0
	for _, row := range rows {
		if row.AmountRaised == row.ActualAmount && row.InvestorCount == row.ActualCount {
			continue
		}

		logger.Warn("Ledger drift on funding %d (project %d): amount %d != %d, count %d != %d",
			row.FundingId, row.ProjectId,
			row.AmountRaised, row.ActualAmount,
			row.InvestorCount, row.ActualCount)

		err := j.db.Model(&model.ProjectFundingModel{}).
			Where("id = ?", row.FundingId).
			Updates(map[string]interface{}{
				"amount_raised":  row.ActualAmount,
				"investor_count": row.ActualCount,
			}).Error
		if err != nil {
			logger.Error("Failed to repair funding %d: %v", row.FundingId, err)
			continue
		}
		repaired++
	}

	logger.Info("Ledger reconcile task completed. Repaired %d funding(s)", repaired)
}
