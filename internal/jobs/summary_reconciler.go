package jobs

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/frameyourvoice/api/internal/model"
)

// SummaryLister provides the summaries to reconcile and applies repairs
type SummaryLister interface {
	ListAll(ctx context.Context) ([]*model.ReportSummary, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
}

// ReportCounter recounts open reports per target
type ReportCounter interface {
	CountOpenByTarget(ctx context.Context, target model.ReportTarget) (int, error)
}

// TargetReader reads the current state of reported targets for snapshot
// refresh
type TargetReader interface {
	GetCampaign(ctx context.Context, id string) (*model.Campaign, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
}

// SummaryReconciler periodically recomputes each summary's pending
// report count from the report table and refreshes stale display
// snapshots. The summary is a derived view; the reconciler repairs
// drift, it is not the source of truth.
type SummaryReconciler struct {
	summaries SummaryLister
	reports   ReportCounter
	targets   TargetReader
	interval  time.Duration
	stopCh    chan struct{}
	wg        sync.WaitGroup
	running   bool
	mu        sync.Mutex
}

// NewSummaryReconciler creates a new summary reconciler job
func NewSummaryReconciler(summaries SummaryLister, reports ReportCounter, targets TargetReader, interval time.Duration) *SummaryReconciler {
	if interval == 0 {
		interval = 15 * time.Minute
	}
	return &SummaryReconciler{
		summaries: summaries,
		reports:   reports,
		targets:   targets,
		interval:  interval,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the reconciler job
func (p *SummaryReconciler) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run()
	log.Printf("Summary reconciler started (interval: %v)", p.interval)
}

// Stop gracefully stops the reconciler job
func (p *SummaryReconciler) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	close(p.stopCh)
	p.wg.Wait()
	log.Println("Summary reconciler stopped")
}

// IsRunning returns whether the reconciler is running
func (p *SummaryReconciler) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *SummaryReconciler) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.reconcileAll()
		case <-p.stopCh:
			return
		}
	}
}

func (p *SummaryReconciler) reconcileAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := p.RunOnce(ctx); err != nil {
		log.Printf("Error reconciling summaries: %v", err)
	}
}

// RunOnce performs one reconciliation pass (for testing or manual
// trigger)
func (p *SummaryReconciler) RunOnce(ctx context.Context) error {
	summaries, err := p.summaries.ListAll(ctx)
	if err != nil {
		return err
	}

	for _, summary := range summaries {
		if err := p.reconcile(ctx, summary); err != nil {
			// One bad row must not starve the rest of the pass
			log.Printf("Error reconciling summary %s: %v", summary.ID, err)
		}
	}
	return nil
}

func (p *SummaryReconciler) reconcile(ctx context.Context, summary *model.ReportSummary) error {
	count, err := p.reports.CountOpenByTarget(ctx, summary.Target)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if count != summary.PendingReportCount {
		updates["pending_report_count"] = count
	}

	if err := p.refreshSnapshot(ctx, summary, updates); err != nil {
		return err
	}

	if len(updates) == 0 {
		return nil
	}
	return p.summaries.Update(ctx, summary.ID, updates)
}

// refreshSnapshot adds snapshot repairs to updates when the target's
// display fields have moved since the last report
func (p *SummaryReconciler) refreshSnapshot(ctx context.Context, summary *model.ReportSummary, updates map[string]interface{}) error {
	switch summary.Target.Kind {
	case model.TargetKindCampaign:
		campaign, err := p.targets.GetCampaign(ctx, summary.Target.ID)
		if err != nil || campaign == nil {
			return err
		}
		if summary.CampaignTitle == nil || *summary.CampaignTitle != campaign.Title {
			updates["campaign_title"] = campaign.Title
		}
		if !ptrEqual(summary.CampaignImage, campaign.ImageURL) {
			updates["campaign_image"] = ptrValue(campaign.ImageURL)
		}
	case model.TargetKindProfile:
		user, err := p.targets.GetUser(ctx, summary.Target.ID)
		if err != nil || user == nil {
			return err
		}
		if !ptrEqual(summary.DisplayName, user.DisplayName) {
			updates["display_name"] = ptrValue(user.DisplayName)
		}
		if !ptrEqual(summary.Username, user.Username) {
			updates["username"] = ptrValue(user.Username)
		}
		if !ptrEqual(summary.ProfileImage, user.ProfileImage) {
			updates["profile_image"] = ptrValue(user.ProfileImage)
		}
	}
	return nil
}

func ptrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// ptrValue unwraps an optional field; nil deletes the stored field
func ptrValue(p *string) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
