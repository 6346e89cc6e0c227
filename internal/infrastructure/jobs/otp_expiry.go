package jobs

import (
	"context"
	"log"
	"time"
)

// challengeSweeper is the slice of the OTP challenge repository the job needs
type challengeSweeper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// OTPExpiryJob sweeps expired verification challenges. Expired codes
// are already rejected on read; this keeps the table from growing.
type OTPExpiryJob struct {
	repo     challengeSweeper
	interval time.Duration
	stop     chan struct{}
}

func NewOTPExpiryJob(repo challengeSweeper, interval time.Duration) *OTPExpiryJob {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &OTPExpiryJob{
		repo:     repo,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *OTPExpiryJob) Start(ctx context.Context) {
	log.Println("🕐 Starting OTP expiry job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ OTP expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ OTP expiry job stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *OTPExpiryJob) Stop() {
	close(j.stop)
}

func (j *OTPExpiryJob) sweep(ctx context.Context) {
	removed, err := j.repo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("❌ Error sweeping expired OTP challenges: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("✅ Removed %d expired OTP challenges", removed)
	}
}
