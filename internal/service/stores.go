package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/frameyourvoice/api/internal/database"
	"github.com/frameyourvoice/api/internal/model"
)

// Store interfaces consumed by the services. The repository package
// provides the SurrealDB implementations; tests substitute function
// mocks.

// ReportStore defines report data access
type ReportStore interface {
	GetByID(ctx context.Context, id string) (*model.Report, error)
	ListPending(ctx context.Context, limit int) ([]*model.Report, error)
	ListOpenByTarget(ctx context.Context, target model.ReportTarget) ([]*model.Report, error)
	CountOpenByTarget(ctx context.Context, target model.ReportTarget) (int, error)
	AddCreate(batch *database.AtomicBatch, report *model.Report)
	AddUpdate(batch *database.AtomicBatch, id string, updates map[string]interface{})
	AddCloseOpenByTarget(batch *database.AtomicBatch, target model.ReportTarget, status model.ReportStatus, action model.ReportAction, adminID string)
}

// SummaryStore defines report summary data access
type SummaryStore interface {
	GetByID(ctx context.Context, id string) (*model.ReportSummary, error)
	GetByTarget(ctx context.Context, target model.ReportTarget) (*model.ReportSummary, error)
	ListPending(ctx context.Context, limit int) ([]*model.ReportSummary, error)
	ListAll(ctx context.Context) ([]*model.ReportSummary, error)
	AddCreate(batch *database.AtomicBatch, summary *model.ReportSummary)
	AddIncrement(batch *database.AtomicBatch, summary *model.ReportSummary)
	AddClose(batch *database.AtomicBatch, id string, status model.SummaryStatus)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
}

// UserStore defines user data access
type UserStore interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	AddUpdate(batch *database.AtomicBatch, id string, updates map[string]interface{})
	AddIncrementReports(batch *database.AtomicBatch, id string)
	IncrementSupporters(ctx context.Context, id string) error
}

// CampaignStore defines campaign data access
type CampaignStore interface {
	Create(ctx context.Context, campaign *model.Campaign) error
	GetByID(ctx context.Context, id string) (*model.Campaign, error)
	GetBySlug(ctx context.Context, slug string) (*model.Campaign, error)
	AddUpdate(batch *database.AtomicBatch, id string, updates map[string]interface{})
	AddIncrementReports(batch *database.AtomicBatch, id string)
	IncrementDownloads(ctx context.Context, id string) error
}

// WarningStore defines warning data access
type WarningStore interface {
	AddCreate(batch *database.AtomicBatch, warning *model.Warning)
	ListByUser(ctx context.Context, userID string) ([]*model.Warning, error)
}

// AppealStore defines appeal data access
type AppealStore interface {
	Create(ctx context.Context, appeal *model.Appeal) error
	GetByID(ctx context.Context, id string) (*model.Appeal, error)
	ListPending(ctx context.Context, limit int) ([]*model.Appeal, error)
	HasPendingForTarget(ctx context.Context, target model.ReportTarget, userID string) (bool, error)
	AddResolve(batch *database.AtomicBatch, id string, status model.AppealStatus, adminID string)
}

// NotificationStore defines notification data access
type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

// newRecordID generates a record ID for batch inserts, where the
// created ID cannot be read back from the statement
func newRecordID(table string) string {
	return table + ":" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
