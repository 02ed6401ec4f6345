package scheduler

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
	"github.com/sasamaylina/responsi-paw/internal/config"
	"github.com/sasamaylina/responsi-paw/internal/logger"
	"github.com/sasamaylina/responsi-paw/internal/logic"
	"github.com/sasamaylina/responsi-paw/internal/model"
	"gorm.io/gorm"
)

// 核对任务协程池上限
const auditPoolSize = 8

// LedgerAuditJob 账本核对任务。
// 定期把每个活动的已筹金额与捐款记录之和核对一遍，
// 发现偏差时修复并记录日志。增量更新路径一旦被绕过，
// 偏差不会一直留在账本里。
type LedgerAuditJob struct {
	db            *gorm.DB
	config        *config.Config
	donationLogic *logic.DonationLogic
}

// NewLedgerAuditJob 创建账本核对任务
func NewLedgerAuditJob(db *gorm.DB, cfg *config.Config) *LedgerAuditJob {
	return &LedgerAuditJob{
		db:            db,
		config:        cfg,
		donationLogic: logic.NewDonationLogic(db, cfg.Donation.MinAmount),
	}
}

// GetName 获取任务名称
func (j *LedgerAuditJob) GetName() string {
	return "ledger_audit"
}

// GetSchedule 获取调度配置
func (j *LedgerAuditJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.Interval) * time.Second)
}

// Execute 执行任务
func (j *LedgerAuditJob) Execute() {
	logger.Info("Starting ledger audit task")

	var campaignIds []int64
	if err := j.db.Model(&model.CampaignModel{}).Pluck("id", &campaignIds).Error; err != nil {
		logger.Error("Failed to fetch campaign ids: %v", err)
		return
	}
	if len(campaignIds) == 0 {
		logger.Debug("No campaigns to audit")
		return
	}

	poolSize := len(campaignIds)
	if poolSize > auditPoolSize {
		poolSize = auditPoolSize
	}

	// 临时协程池并发核对各活动
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		logger.Error("Failed to create audit pool: %v", err)
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	var repaired atomic.Int64

	for _, id := range campaignIds {
		campaignId := id
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()

			drift, err := j.donationLogic.ReconcileCampaign(campaignId)
			if err != nil {
				// 核对期间活动可能已被删除
				if errors.Is(err, logic.ErrCampaignNotFound) {
					logger.Debug("Campaign %d removed during audit", campaignId)
					return
				}
				logger.Error("Failed to reconcile campaign %d: %v", campaignId, err)
				return
			}
			if drift != 0 {
				logger.Warn("Repaired campaign %d aggregate, drift was %d", campaignId, drift)
				repaired.Add(1)
			}
		})
		if err != nil {
			wg.Done()
			logger.Error("Failed to submit audit task for campaign %d: %v", campaignId, err)
		}
	}

	wg.Wait()
	logger.Info("Ledger audit completed. Checked %d campaigns, repaired %d", len(campaignIds), repaired.Load())
}
