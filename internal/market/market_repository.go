package market

import (
	"context"
	"sync"
)

type MarketRepository interface {
	Create(ctx context.Context, market *Market) error
	FindByID(ctx context.Context, id string) (*Market, error)
	Update(ctx context.Context, market *Market) error
	List(ctx context.Context) ([]*Market, error)
}

type PredictionRepository interface {
	Create(ctx context.Context, prediction *Prediction) error
	ListByMarket(ctx context.Context, marketID string) ([]*Prediction, error)
	ListByUser(ctx context.Context, userID string) ([]*Prediction, error)
}

type marketRepository struct {
	mu      sync.RWMutex
	markets map[string]*Market
	order   []string
}

func NewMarketRepository() MarketRepository {
	return &marketRepository{
		markets: make(map[string]*Market),
	}
}

func (r *marketRepository) Create(_ context.Context, market *Market) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := *market
	r.markets[market.ID] = &m
	r.order = append(r.order, market.ID)
	return nil
}

func (r *marketRepository) FindByID(_ context.Context, id string) (*Market, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.markets[id]
	if !ok {
		return nil, ErrMarketNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *marketRepository) Update(_ context.Context, market *Market) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.markets[market.ID]; !ok {
		return ErrMarketNotFound
	}
	m := *market
	r.markets[market.ID] = &m
	return nil
}

func (r *marketRepository) List(_ context.Context) ([]*Market, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	markets := make([]*Market, 0, len(r.order))
	for _, id := range r.order {
		cp := *r.markets[id]
		markets = append(markets, &cp)
	}
	return markets, nil
}

type predictionRepository struct {
	mu          sync.RWMutex
	predictions map[string]*Prediction
	order       []string
}

func NewPredictionRepository() PredictionRepository {
	return &predictionRepository{
		predictions: make(map[string]*Prediction),
	}
}

func (r *predictionRepository) Create(_ context.Context, prediction *Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := *prediction
	r.predictions[prediction.ID] = &p
	r.order = append(r.order, prediction.ID)
	return nil
}

func (r *predictionRepository) ListByMarket(_ context.Context, marketID string) ([]*Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var predictions []*Prediction
	for _, id := range r.order {
		if r.predictions[id].MarketID == marketID {
			cp := *r.predictions[id]
			predictions = append(predictions, &cp)
		}
	}
	return predictions, nil
}

func (r *predictionRepository) ListByUser(_ context.Context, userID string) ([]*Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var predictions []*Prediction
	for _, id := range r.order {
		if r.predictions[id].UserID == userID {
			cp := *r.predictions[id]
			predictions = append(predictions, &cp)
		}
	}
	return predictions, nil
}
