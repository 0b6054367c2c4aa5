package tests

import (
	"testing"

	"github.com/frameyourvoice/api/internal/repository"
	"github.com/frameyourvoice/api/internal/service"
	"github.com/frameyourvoice/api/internal/testing/fixtures"
	"github.com/frameyourvoice/api/internal/testing/testdb"
)

// env wires the full service stack against an isolated test database.
// Notifications are disabled so verdict tests assert only committed
// state, not async side effects.
type env struct {
	tdb *testdb.TestDB
	f   *fixtures.Factory

	reports    *service.ReportService
	moderation *service.ModerationService
	users      *service.UserService
	appeals    *service.AppealService
	campaigns  *service.CampaignService

	userRepo     *repository.UserRepository
	campaignRepo *repository.CampaignRepository
	reportRepo   *repository.ReportRepository
	summaryRepo  *repository.SummaryRepository
	warningRepo  *repository.WarningRepository
	appealRepo   *repository.AppealRepository
}

func newEnv(t *testing.T) *env {
	t.Helper()

	tdb := testdb.New(t)
	t.Cleanup(tdb.Close)

	userRepo := repository.NewUserRepository(tdb.DB)
	campaignRepo := repository.NewCampaignRepository(tdb.DB)
	reportRepo := repository.NewReportRepository(tdb.DB)
	summaryRepo := repository.NewSummaryRepository(tdb.DB)
	warningRepo := repository.NewWarningRepository(tdb.DB)
	appealRepo := repository.NewAppealRepository(tdb.DB)
	notificationRepo := repository.NewNotificationRepository(tdb.DB)

	notifier := service.NewNotifier(service.NotifierConfig{
		Store:   notificationRepo,
		Enabled: false,
	})

	return &env{
		tdb:          tdb,
		f:            fixtures.New(tdb.DB),
		reports:      service.NewReportService(tdb.DB, reportRepo, summaryRepo, userRepo, campaignRepo),
		moderation:   service.NewModerationService(tdb.DB, reportRepo, summaryRepo, userRepo, campaignRepo, warningRepo, notifier),
		users:        service.NewUserService(tdb.DB, userRepo, warningRepo, notifier),
		appeals:      service.NewAppealService(tdb.DB, appealRepo, userRepo, campaignRepo, notifier),
		campaigns:    service.NewCampaignService(userRepo, campaignRepo),
		userRepo:     userRepo,
		campaignRepo: campaignRepo,
		reportRepo:   reportRepo,
		summaryRepo:  summaryRepo,
		warningRepo:  warningRepo,
		appealRepo:   appealRepo,
	}
}
