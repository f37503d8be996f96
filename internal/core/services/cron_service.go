package services

import (
	"context"
	"log"
	"time"

	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled maintenance jobs:
//   - hourly: flag grievances past their due date as overdue
//   - nightly (02:30): purge expired rows from the token denylist
type CronService struct {
	grievanceService *GrievanceService
	revokedRepo      repositories.RevokedTokenRepository
	cron             *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(grievanceService *GrievanceService, revokedRepo repositories.RevokedTokenRepository) *CronService {
	return &CronService{
		grievanceService: grievanceService,
		revokedRepo:      revokedRepo,
		cron:             cron.New(),
	}
}

// Start registers the jobs and launches the scheduler
func (s *CronService) Start() {
	s.cron.AddFunc("@hourly", s.markOverdueGrievances)
	s.cron.AddFunc("30 2 * * *", s.purgeExpiredTokens)
	s.cron.Start()
	log.Println("🚀 CronService started")
}

// Stop stops the scheduler, waiting for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) markOverdueGrievances() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	flagged, err := s.grievanceService.MarkOverdue(ctx)
	if err != nil {
		log.Printf("❌ Overdue check failed: %v", err)
		return
	}
	if flagged > 0 {
		log.Printf("⚠️ %d grievances flagged overdue", flagged)
	}
}

func (s *CronService) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.revokedRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Token denylist purge failed: %v", err)
		return
	}
	log.Println("✅ Expired denylist rows purged")
}
