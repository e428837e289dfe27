package repository

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/migrate"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type IdempotenceIntegrationTestSuite struct {
	suite.Suite
	ctx       context.Context
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	breaches  *DefaultBreachRepo
	drafts    *DefaultReplenishmentRepo
}

func TestIdempotenceIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	suite.Run(t, new(IdempotenceIntegrationTestSuite))
}

func (s *IdempotenceIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := tcpostgres.Run(s.ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("buffer_test"),
		tcpostgres.WithUsername("buffer"),
		tcpostgres.WithPassword("buffer"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	s.Require().NoError(err)
	s.db = db

	// схема из SQL-миграций вместе с частичными индексами
	path, err := filepath.Abs(filepath.Join("..", "..", "..", "..", "migrations"))
	s.Require().NoError(err)
	s.Require().NoError(migrate.RunMigrations(db, path, slog.New(slog.NewTextHandler(io.Discard, nil))))

	s.breaches = NewDefaultBreachRepo(db)
	s.drafts = NewDefaultReplenishmentRepo(db)
}

func (s *IdempotenceIntegrationTestSuite) TearDownSuite() {
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
	if s.container != nil {
		s.NoError(s.container.Terminate(s.ctx))
	}
}

func (s *IdempotenceIntegrationTestSuite) SetupTest() {
	s.Require().NoError(s.db.Exec("TRUNCATE breach_events, replenishment_orders").Error)
}

func newBreach(breachType domain.BreachType) *domain.BreachEvent {
	return &domain.BreachEvent{
		ID:         uuid.NewString(),
		ProductID:  "SKU-1",
		LocationID: "DC-1",
		BreachType: breachType,
		CurrentOH:  decimal.NewFromInt(10),
		NetFlow:    decimal.NewFromInt(10),
		Threshold:  24,
		Severity:   breachType.Severity(),
		DetectedAt: time.Now().UTC(),
	}
}

func newDraft() *domain.ReplenishmentOrder {
	return &domain.ReplenishmentOrder{
		ID:            uuid.NewString(),
		Reference:     "RO-" + uuid.NewString()[:12],
		ProductID:     "SKU-1",
		LocationID:    "DC-1",
		QtyRecommend:  250,
		NetFlow:       decimal.NewFromInt(150),
		TopOfGreen:    364,
		TargetDueDate: time.Now().UTC().AddDate(0, 0, 10),
		Status:        domain.ReplenishmentDraft,
		ProposalTS:    time.Now().UTC(),
	}
}

func (s *IdempotenceIntegrationTestSuite) TestCreateBreachIfAbsent_SuppressesOpenDuplicate() {
	created, err := s.breaches.CreateBreachIfAbsent(s.ctx, newBreach(domain.BreachBelowTOR))
	s.Require().NoError(err)
	s.True(created)

	created, err = s.breaches.CreateBreachIfAbsent(s.ctx, newBreach(domain.BreachBelowTOR))
	s.Require().NoError(err)
	s.False(created)

	// другой тип той же пары - отдельное событие
	created, err = s.breaches.CreateBreachIfAbsent(s.ctx, newBreach(domain.BreachBelowTOY))
	s.Require().NoError(err)
	s.True(created)

	open, err := s.breaches.ListOpenBreaches(s.ctx, domain.Scope{})
	s.Require().NoError(err)
	s.Len(open, 2)
}

func (s *IdempotenceIntegrationTestSuite) TestCreateBreachIfAbsent_ConcurrentInsertsCreateOne() {
	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		errs    []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.breaches.CreateBreachIfAbsent(s.ctx, newBreach(domain.BreachBelowTOR))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
			}
			if ok {
				created++
			}
		}()
	}
	wg.Wait()

	s.Empty(errs)
	s.Equal(1, created)
}

func (s *IdempotenceIntegrationTestSuite) TestAcknowledgeBreach_ReopensSlot() {
	first := newBreach(domain.BreachBelowTOR)
	_, err := s.breaches.CreateBreachIfAbsent(s.ctx, first)
	s.Require().NoError(err)

	ackAt := time.Now().UTC().Truncate(time.Second)
	s.Require().NoError(s.breaches.AcknowledgeBreach(s.ctx, first.ID, ackAt))
	s.Require().NoError(s.breaches.AcknowledgeBreach(s.ctx, first.ID, ackAt.Add(time.Hour)))

	var stored time.Time
	s.Require().NoError(s.db.Raw("SELECT acknowledged_at FROM breach_events WHERE id = ?", first.ID).Scan(&stored).Error)
	s.True(stored.Equal(ackAt))

	created, err := s.breaches.CreateBreachIfAbsent(s.ctx, newBreach(domain.BreachBelowTOR))
	s.Require().NoError(err)
	s.True(created)

	s.ErrorIs(s.breaches.AcknowledgeBreach(s.ctx, uuid.NewString(), ackAt), domain.ErrBreachNotFound)
}

func (s *IdempotenceIntegrationTestSuite) TestCreateDraftIfAbsent_OneDraftPerItem() {
	created, err := s.drafts.CreateDraftIfAbsent(s.ctx, newDraft())
	s.Require().NoError(err)
	s.True(created)

	created, err = s.drafts.CreateDraftIfAbsent(s.ctx, newDraft())
	s.Require().NoError(err)
	s.False(created)

	has, err := s.drafts.HasDraft(s.ctx, "SKU-1", "DC-1")
	s.Require().NoError(err)
	s.True(has)

	// утвержденный заказ больше не занимает слот черновика
	s.Require().NoError(s.db.Exec("UPDATE replenishment_orders SET status = 'APPROVED'").Error)
	created, err = s.drafts.CreateDraftIfAbsent(s.ctx, newDraft())
	s.Require().NoError(err)
	s.True(created)

	drafts, err := s.drafts.ListDrafts(s.ctx, domain.Scope{LocationID: "DC-1"})
	s.Require().NoError(err)
	s.Len(drafts, 1)
}

func (s *IdempotenceIntegrationTestSuite) TestCreateDraftIfAbsent_ConcurrentInsertsCreateOne() {
	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.drafts.CreateDraftIfAbsent(s.ctx, newDraft())
			mu.Lock()
			defer mu.Unlock()
			s.NoError(err)
			if ok {
				created++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, created)
}
