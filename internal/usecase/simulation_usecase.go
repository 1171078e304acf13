package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/DRSN-tech/credit-simulator/internal/amortization"
	"github.com/DRSN-tech/credit-simulator/internal/domain"
	"github.com/DRSN-tech/credit-simulator/pkg/e"
	"github.com/DRSN-tech/credit-simulator/pkg/logger"
	"github.com/shopspring/decimal"
)

const cacheFillTimeout = 500 * time.Millisecond

// SimulationUseCase реализует конвейер симуляции:
// границы каталога -> проверка минимума -> выбор продукта -> проверка срока -> графики -> публикация.
type SimulationUseCase struct {
	productRepo    ProductRepository
	cacheRepo      CacheRepository
	generator      amortization.Generator
	publisher      ResultPublisher
	logger         logger.Logger
	publishTimeout time.Duration
	wg             sync.WaitGroup
}

func NewSimulationUC(
	productRepo ProductRepository,
	cacheRepo CacheRepository,
	generator amortization.Generator,
	publisher ResultPublisher,
	logger logger.Logger,
	publishTimeout time.Duration,
) *SimulationUseCase {
	return &SimulationUseCase{
		productRepo:    productRepo,
		cacheRepo:      cacheRepo,
		generator:      generator,
		publisher:      publisher,
		logger:         logger,
		publishTimeout: publishTimeout,
	}
}

// Simulate выполняет симуляцию. Любая ошибка валидации или поиска прерывает конвейер,
// частичные результаты не возвращаются. Публикация не влияет на ответ.
func (s *SimulationUseCase) Simulate(ctx context.Context, req *domain.SimulationRequest) (*domain.Simulation, error) {
	const op = "SimulationUseCase.Simulate"

	bounds, err := s.catalogBounds(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := validateMinimum(req.Principal, bounds.MinPrincipal); err != nil {
		s.logger.Infof("valor mínimo inválido: %s", req.Principal)
		return nil, e.Wrap(op, err)
	}

	product, err := s.selectProduct(ctx, req.Principal, bounds.MaxPrincipal)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := validateTerm(product, req.Term); err != nil {
		return nil, e.Wrap(op, err)
	}

	simulation := assemble(
		product,
		s.generator.SAC(req.Principal, req.Term, product.Rate),
		s.generator.PRICE(req.Principal, req.Term, product.Rate),
	)

	s.publishAsync(simulation)

	return simulation, nil
}

// ListProducts возвращает каталог продуктов, сначала пытаясь прочитать его из кэша.
func (s *SimulationUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "SimulationUseCase.ListProducts"

	products, err := s.cacheRepo.GetProducts(ctx)
	if err == nil {
		return products, nil
	}
	if !errors.Is(err, e.ErrCacheMiss) {
		s.logger.Warnf("Failed to read products from cache: %v", e.Wrap(op, err))
	}

	products, err = s.productRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Фоновое добавление каталога в кэш
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), cacheFillTimeout)
		defer cancel()

		if err := s.cacheRepo.SetProducts(bgCtx, products); err != nil {
			s.logger.Warnf("Failed to cache products in background: %v", e.Wrap(op, err))
		}
	}()

	return products, nil
}

// WaitForPublishes ожидает завершения фоновых публикаций с учётом таймаута завершения приложения.
func (s *SimulationUseCase) WaitForPublishes(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("publish wait timeout during shutdown: %w", ctx.Err())
	}
}

// catalogBounds читает границы каталога из кэша, при промахе идёт в БД.
func (s *SimulationUseCase) catalogBounds(ctx context.Context) (*domain.CatalogBounds, error) {
	const op = "SimulationUseCase.catalogBounds"

	bounds, err := s.cacheRepo.GetBounds(ctx)
	if err == nil {
		return bounds, nil
	}
	if !errors.Is(err, e.ErrCacheMiss) {
		s.logger.Warnf("Failed to read catalog bounds from cache: %v", e.Wrap(op, err))
	}

	bounds, err = s.productRepo.Bounds(ctx)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), cacheFillTimeout)
		defer cancel()

		if err := s.cacheRepo.SetBounds(bgCtx, bounds); err != nil {
			s.logger.Warnf("Failed to cache catalog bounds in background: %v", e.Wrap(op, err))
		}
	}()

	return bounds, nil
}

// selectProduct выбирает продукт по диапазону, если сумма строго меньше максимума каталога,
// иначе берёт продукт без верхней границы суммы.
func (s *SimulationUseCase) selectProduct(ctx context.Context, principal, catalogMaximum decimal.Decimal) (*domain.Product, error) {
	if principal.LessThan(catalogMaximum) {
		return s.productRepo.FindByPrincipal(ctx, principal)
	}

	return s.productRepo.FindUnbounded(ctx)
}

// publishAsync отправляет результат в фоне. Вызывающий не ждёт завершения.
func (s *SimulationUseCase) publishAsync(simulation *domain.Simulation) {
	const op = "SimulationUseCase.publishAsync"

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.publishTimeout)
		defer cancel()

		if err := s.publisher.Publish(ctx, simulation); err != nil {
			s.logger.Warnf("Failed to publish simulation for product %d: %v", simulation.ProductID, e.Wrap(op, err))
		}
	}()
}
