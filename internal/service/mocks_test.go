package service

import (
	"context"

	"github.com/frameyourvoice/api/internal/database"
	"github.com/frameyourvoice/api/internal/model"
)

// Shared test doubles. Read methods delegate to function fields;
// batch-contributing methods record their calls and push a marker
// statement so batch.Execute reaches the mock database.

type mockDB struct {
	database.Database
	queryFn func(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)
	queries []string
}

func (m *mockDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	m.queries = append(m.queries, query)
	if m.queryFn != nil {
		return m.queryFn(ctx, query, vars)
	}
	return nil, nil
}

type closeCall struct {
	target  model.ReportTarget
	status  model.ReportStatus
	action  model.ReportAction
	adminID string
}

type updateCall struct {
	id      string
	updates map[string]interface{}
}

type mockReportStore struct {
	getByID          func(ctx context.Context, id string) (*model.Report, error)
	listPending      func(ctx context.Context, limit int) ([]*model.Report, error)
	listOpenByTarget func(ctx context.Context, target model.ReportTarget) ([]*model.Report, error)

	created []*model.Report
	updated []updateCall
	closed  []closeCall
}

func (m *mockReportStore) GetByID(ctx context.Context, id string) (*model.Report, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return nil, nil
}

func (m *mockReportStore) ListPending(ctx context.Context, limit int) ([]*model.Report, error) {
	if m.listPending != nil {
		return m.listPending(ctx, limit)
	}
	return nil, nil
}

func (m *mockReportStore) ListOpenByTarget(ctx context.Context, target model.ReportTarget) ([]*model.Report, error) {
	if m.listOpenByTarget != nil {
		return m.listOpenByTarget(ctx, target)
	}
	return nil, nil
}

func (m *mockReportStore) CountOpenByTarget(ctx context.Context, target model.ReportTarget) (int, error) {
	reports, err := m.ListOpenByTarget(ctx, target)
	return len(reports), err
}

func (m *mockReportStore) AddCreate(batch *database.AtomicBatch, report *model.Report) {
	m.created = append(m.created, report)
	batch.Add("-- create report", nil)
}

func (m *mockReportStore) AddUpdate(batch *database.AtomicBatch, id string, updates map[string]interface{}) {
	m.updated = append(m.updated, updateCall{id: id, updates: updates})
	batch.Add("-- update report", nil)
}

func (m *mockReportStore) AddCloseOpenByTarget(batch *database.AtomicBatch, target model.ReportTarget, status model.ReportStatus, action model.ReportAction, adminID string) {
	m.closed = append(m.closed, closeCall{target: target, status: status, action: action, adminID: adminID})
	batch.Add("-- close reports", nil)
}

type summaryCloseCall struct {
	id     string
	status model.SummaryStatus
}

type mockSummaryStore struct {
	getByID     func(ctx context.Context, id string) (*model.ReportSummary, error)
	getByTarget func(ctx context.Context, target model.ReportTarget) (*model.ReportSummary, error)
	listPending func(ctx context.Context, limit int) ([]*model.ReportSummary, error)
	listAll     func(ctx context.Context) ([]*model.ReportSummary, error)
	update      func(ctx context.Context, id string, updates map[string]interface{}) error

	created     []*model.ReportSummary
	incremented []*model.ReportSummary
	closed      []summaryCloseCall
}

func (m *mockSummaryStore) GetByID(ctx context.Context, id string) (*model.ReportSummary, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return nil, nil
}

func (m *mockSummaryStore) GetByTarget(ctx context.Context, target model.ReportTarget) (*model.ReportSummary, error) {
	if m.getByTarget != nil {
		return m.getByTarget(ctx, target)
	}
	return nil, nil
}

func (m *mockSummaryStore) ListPending(ctx context.Context, limit int) ([]*model.ReportSummary, error) {
	if m.listPending != nil {
		return m.listPending(ctx, limit)
	}
	return nil, nil
}

func (m *mockSummaryStore) ListAll(ctx context.Context) ([]*model.ReportSummary, error) {
	if m.listAll != nil {
		return m.listAll(ctx)
	}
	return nil, nil
}

func (m *mockSummaryStore) AddCreate(batch *database.AtomicBatch, summary *model.ReportSummary) {
	m.created = append(m.created, summary)
	batch.Add("-- create summary", nil)
}

func (m *mockSummaryStore) AddIncrement(batch *database.AtomicBatch, summary *model.ReportSummary) {
	m.incremented = append(m.incremented, summary)
	batch.Add("-- increment summary", nil)
}

func (m *mockSummaryStore) AddClose(batch *database.AtomicBatch, id string, status model.SummaryStatus) {
	m.closed = append(m.closed, summaryCloseCall{id: id, status: status})
	batch.Add("-- close summary", nil)
}

func (m *mockSummaryStore) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	if m.update != nil {
		return m.update(ctx, id, updates)
	}
	return nil
}

type mockUserStore struct {
	getByID func(ctx context.Context, id string) (*model.User, error)

	updated          []updateCall
	reportsBumped    []string
	supportersBumped []string
}

func (m *mockUserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return nil, nil
}

func (m *mockUserStore) AddUpdate(batch *database.AtomicBatch, id string, updates map[string]interface{}) {
	m.updated = append(m.updated, updateCall{id: id, updates: updates})
	batch.Add("-- update user", nil)
}

func (m *mockUserStore) AddIncrementReports(batch *database.AtomicBatch, id string) {
	m.reportsBumped = append(m.reportsBumped, id)
	batch.Add("-- bump user reports", nil)
}

func (m *mockUserStore) IncrementSupporters(ctx context.Context, id string) error {
	m.supportersBumped = append(m.supportersBumped, id)
	return nil
}

type mockCampaignStore struct {
	create    func(ctx context.Context, campaign *model.Campaign) error
	getByID   func(ctx context.Context, id string) (*model.Campaign, error)
	getBySlug func(ctx context.Context, slug string) (*model.Campaign, error)

	updated        []updateCall
	reportsBumped  []string
	downloadBumped []string
}

func (m *mockCampaignStore) Create(ctx context.Context, campaign *model.Campaign) error {
	if m.create != nil {
		return m.create(ctx, campaign)
	}
	campaign.ID = "campaign:new"
	campaign.Status = model.CampaignStatusActive
	return nil
}

func (m *mockCampaignStore) GetByID(ctx context.Context, id string) (*model.Campaign, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return nil, nil
}

func (m *mockCampaignStore) GetBySlug(ctx context.Context, slug string) (*model.Campaign, error) {
	if m.getBySlug != nil {
		return m.getBySlug(ctx, slug)
	}
	return nil, nil
}

func (m *mockCampaignStore) AddUpdate(batch *database.AtomicBatch, id string, updates map[string]interface{}) {
	m.updated = append(m.updated, updateCall{id: id, updates: updates})
	batch.Add("-- update campaign", nil)
}

func (m *mockCampaignStore) AddIncrementReports(batch *database.AtomicBatch, id string) {
	m.reportsBumped = append(m.reportsBumped, id)
	batch.Add("-- bump campaign reports", nil)
}

func (m *mockCampaignStore) IncrementDownloads(ctx context.Context, id string) error {
	m.downloadBumped = append(m.downloadBumped, id)
	return nil
}

type mockWarningStore struct {
	listByUser func(ctx context.Context, userID string) ([]*model.Warning, error)

	created []*model.Warning
}

func (m *mockWarningStore) AddCreate(batch *database.AtomicBatch, warning *model.Warning) {
	m.created = append(m.created, warning)
	batch.Add("-- create warning", nil)
}

func (m *mockWarningStore) ListByUser(ctx context.Context, userID string) ([]*model.Warning, error) {
	if m.listByUser != nil {
		return m.listByUser(ctx, userID)
	}
	return nil, nil
}

type appealResolveCall struct {
	id      string
	status  model.AppealStatus
	adminID string
}

type mockAppealStore struct {
	create              func(ctx context.Context, appeal *model.Appeal) error
	getByID             func(ctx context.Context, id string) (*model.Appeal, error)
	listPending         func(ctx context.Context, limit int) ([]*model.Appeal, error)
	hasPendingForTarget func(ctx context.Context, target model.ReportTarget, userID string) (bool, error)

	resolved []appealResolveCall
}

func (m *mockAppealStore) Create(ctx context.Context, appeal *model.Appeal) error {
	if m.create != nil {
		return m.create(ctx, appeal)
	}
	appeal.ID = "appeal:new"
	return nil
}

func (m *mockAppealStore) GetByID(ctx context.Context, id string) (*model.Appeal, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return nil, nil
}

func (m *mockAppealStore) ListPending(ctx context.Context, limit int) ([]*model.Appeal, error) {
	if m.listPending != nil {
		return m.listPending(ctx, limit)
	}
	return nil, nil
}

func (m *mockAppealStore) HasPendingForTarget(ctx context.Context, target model.ReportTarget, userID string) (bool, error) {
	if m.hasPendingForTarget != nil {
		return m.hasPendingForTarget(ctx, target, userID)
	}
	return false, nil
}

func (m *mockAppealStore) AddResolve(batch *database.AtomicBatch, id string, status model.AppealStatus, adminID string) {
	m.resolved = append(m.resolved, appealResolveCall{id: id, status: status, adminID: adminID})
	batch.Add("-- resolve appeal", nil)
}

type mockNotificationStore struct {
	create     func(ctx context.Context, n *model.Notification) error
	listByUser func(ctx context.Context, userID string, limit int) ([]*model.Notification, error)

	read []string
}

func (m *mockNotificationStore) Create(ctx context.Context, n *model.Notification) error {
	if m.create != nil {
		return m.create(ctx, n)
	}
	return nil
}

func (m *mockNotificationStore) ListByUser(ctx context.Context, userID string, limit int) ([]*model.Notification, error) {
	if m.listByUser != nil {
		return m.listByUser(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockNotificationStore) MarkRead(ctx context.Context, id string) error {
	m.read = append(m.read, id)
	return nil
}

// quietNotifier builds a notifier that swallows everything, for tests
// asserting only on database effects
func quietNotifier() *Notifier {
	return NewNotifier(NotifierConfig{Store: &mockNotificationStore{}, Enabled: false})
}
