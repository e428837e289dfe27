package setup

import (
	"fmt"

	"github.com/LavaJover/shvark-buffer-service/internal/config"
	"github.com/LavaJover/shvark-buffer-service/internal/usecase"
	"github.com/LavaJover/shvark-buffer-service/internal/usecase/breach"
	"github.com/LavaJover/shvark-buffer-service/internal/usecase/buffer"
	"github.com/LavaJover/shvark-buffer-service/internal/usecase/decoupling"
	"github.com/LavaJover/shvark-buffer-service/internal/usecase/netflow"
	"github.com/LavaJover/shvark-buffer-service/internal/usecase/qualifier"
	"github.com/LavaJover/shvark-buffer-service/internal/usecase/recalculation"
	"github.com/LavaJover/shvark-buffer-service/internal/usecase/replenishment"
	"github.com/shopspring/decimal"
)

type UseCases struct {
	Engine    usecase.EngineUsecase
	Qualifier *qualifier.Service
}

func InitializeUseCases(deps *Dependencies) (*UseCases, error) {
	repos := deps.Repositories
	engineCfg := deps.Config.Engine
	logger := deps.Logger

	reader := netflow.NewReader(repos.Inventory, repos.Orders)

	detector := breach.NewDetector(
		repos.Buffers,
		reader,
		repos.Breaches,
		deps.Events,
		deps.Metrics,
		logger.With("component", "breach_detector"),
	)

	generator, err := replenishment.NewGenerator(
		repos.Buffers,
		reader,
		repos.Breaches,
		repos.Replenishment,
		deps.Events,
		deps.Metrics,
		logger.With("component", "replenishment_generator"),
	)
	if err != nil {
		return nil, fmt.Errorf("replenishment generator: %w", err)
	}

	recalc := recalculation.NewEngine(
		repos.Buffers,
		repos.Inventory,
		repos.MasterData,
		PolicyFromConfig(engineCfg),
		engineCfg.ADUWindowDays,
		deps.Events,
		deps.Metrics,
		logger.With("component", "recalculation_engine"),
	)

	scorer := decoupling.NewScorer(
		repos.MasterData,
		repos.Decoupling,
		decimal.NewFromFloat(engineCfg.DecouplingMaxWeight),
		deps.Metrics,
		logger.With("component", "decoupling_scorer"),
	)

	qualifierService := qualifier.NewService(
		repos.Orders,
		repos.Buffers,
		repos.MasterData,
		qualifier.Defaults{
			SpikeHorizonFactor:   decimal.NewFromFloat(engineCfg.DefaultSpikeHorizonFactor),
			SpikeThresholdFactor: decimal.NewFromFloat(engineCfg.DefaultSpikeThresholdFactor),
		},
		deps.Metrics,
		logger.With("component", "order_qualifier"),
	)

	engine := usecase.NewDefaultEngineUsecase(usecase.EngineDeps{
		Buffers:       repos.Buffers,
		Breaches:      repos.Breaches,
		Drafts:        repos.Replenishment,
		Reader:        reader,
		Detector:      detector,
		Generator:     generator,
		Recalculation: recalc,
		Scorer:        scorer,
		Qualifier:     qualifierService,
		Logger:        logger,
	})

	return &UseCases{
		Engine:    engine,
		Qualifier: qualifierService,
	}, nil
}

// PolicyFromConfig переводит float-параметры конфига в decimal.
func PolicyFromConfig(cfg config.Engine) buffer.Policy {
	return buffer.Policy{
		ShortLeadTimeDays:    cfg.ShortLeadTimeDays,
		MediumLeadTimeDays:   cfg.MediumLeadTimeDays,
		ShortLeadTimeFactor:  decimal.NewFromFloat(cfg.ShortLeadTimeFactor),
		MediumLeadTimeFactor: decimal.NewFromFloat(cfg.MediumLeadTimeFactor),
		LongLeadTimeFactor:   decimal.NewFromFloat(cfg.LongLeadTimeFactor),
		TopOfGreenFactor:     decimal.NewFromFloat(cfg.TopOfGreenFactor),
		MinGreenZoneDays:     decimal.NewFromFloat(cfg.MinGreenZoneDays),
		MaxGreenZoneDays:     decimal.NewFromFloat(cfg.MaxGreenZoneDays),
	}
}
