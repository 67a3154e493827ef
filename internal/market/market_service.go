package market

import (
	"context"
	"errors"
	"time"

	"dashboard-service/internal/events"
	"dashboard-service/internal/realtime"
	"dashboard-service/internal/user"

	"github.com/google/uuid"
)

// Custom errors
var (
	ErrMarketNotFound = errors.New("market not found")
	ErrMarketClosed   = errors.New("market is closed")
	ErrInvalidAmount  = errors.New("invalid prediction amount")
)

type MarketService interface {
	CreateMarket(ctx context.Context, creatorID string, req *CreateMarketRequest) (*Market, error)
	GetMarket(ctx context.Context, id string) (*Market, error)
	ListMarkets(ctx context.Context) ([]*Market, error)
	PlacePrediction(ctx context.Context, userID string, req *PlacePredictionRequest) (*Prediction, error)
	ListUserPredictions(ctx context.Context, userID string) ([]*Prediction, error)
	Snapshot(ctx context.Context) (*realtime.Message, error)
}

type marketService struct {
	markets     MarketRepository
	predictions PredictionRepository
	users       user.UserRepository
	emitter     *events.Emitter
}

func NewMarketService(markets MarketRepository, predictions PredictionRepository, users user.UserRepository, emitter *events.Emitter) MarketService {
	return &marketService{
		markets:     markets,
		predictions: predictions,
		users:       users,
		emitter:     emitter,
	}
}

func (s *marketService) CreateMarket(ctx context.Context, creatorID string, req *CreateMarketRequest) (*Market, error) {
	market := &Market{
		ID:            uuid.New().String(),
		Question:      req.Question,
		Category:      req.Category,
		Status:        StatusOpen,
		EndDate:       req.EndDate,
		TotalPool:     "0",
		YesPercentage: "50.00",
		NoPercentage:  "50.00",
		CreatedBy:     creatorID,
		Created:       time.Now(),
	}

	if err := s.markets.Create(ctx, market); err != nil {
		return nil, err
	}

	s.emitter.ToRoom(ctx, realtime.RoomMarkets, realtime.MessageTypeMarketUpdate, market)
	return market, nil
}

func (s *marketService) GetMarket(ctx context.Context, id string) (*Market, error) {
	return s.markets.FindByID(ctx, id)
}

func (s *marketService) ListMarkets(ctx context.Context) ([]*Market, error) {
	return s.markets.List(ctx)
}

// PlacePrediction debits the stake, records the prediction and recomputes the
// market odds. The balance write lands before the later steps; there is no
// rollback if one of them fails.
func (s *marketService) PlacePrediction(ctx context.Context, userID string, req *PlacePredictionRequest) (*Prediction, error) {
	amount, err := user.ParseAmount(req.Amount)
	if err != nil || amount <= 0 {
		return nil, ErrInvalidAmount
	}

	market, err := s.markets.FindByID(ctx, req.MarketID)
	if err != nil {
		return nil, ErrMarketNotFound
	}
	if market.Status != StatusOpen || time.Now().After(market.EndDate) {
		return nil, ErrMarketClosed
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	balance, err := user.SubBalance(u.BdagBalance, req.Amount)
	if err != nil {
		return nil, err
	}
	u.BdagBalance = balance
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	prediction := &Prediction{
		ID:         uuid.New().String(),
		MarketID:   market.ID,
		UserID:     userID,
		Prediction: *req.Prediction,
		Amount:     user.FormatAmount(amount),
		Created:    time.Now(),
	}
	if err := s.predictions.Create(ctx, prediction); err != nil {
		return nil, err
	}

	all, err := s.predictions.ListByMarket(ctx, market.ID)
	if err != nil {
		return nil, err
	}
	odds := ComputeOdds(all)
	market.TotalPool = odds.TotalPool
	market.YesPercentage = odds.YesPercentage
	market.NoPercentage = odds.NoPercentage
	if err := s.markets.Update(ctx, market); err != nil {
		return nil, err
	}

	s.emitter.ToRoom(ctx, realtime.RoomMarkets, realtime.MessageTypeMarketUpdate, market)
	s.emitter.ToRoom(ctx, realtime.RoomMarkets, realtime.MessageTypePriceUpdate, OddsPayload{
		MarketID:      market.ID,
		TotalPool:     odds.TotalPool,
		YesPercentage: odds.YesPercentage,
		NoPercentage:  odds.NoPercentage,
	})
	s.emitter.ToUser(ctx, u.ID, realtime.MessageTypeUserStatsUpdate, user.NewStatsPayload(u))

	return prediction, nil
}

func (s *marketService) ListUserPredictions(ctx context.Context, userID string) ([]*Prediction, error) {
	return s.predictions.ListByUser(ctx, userID)
}

// Snapshot builds the market_update frame sent when a client joins the
// markets room.
func (s *marketService) Snapshot(ctx context.Context) (*realtime.Message, error) {
	markets, err := s.markets.List(ctx)
	if err != nil {
		return nil, err
	}
	return realtime.NewMessage(realtime.MessageTypeMarketUpdate, markets), nil
}
