package market

import (
	"context"
	"sync"
	"testing"
	"time"

	"dashboard-service/internal/events"
	"dashboard-service/internal/realtime"
	"dashboard-service/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func newTestEmitter() *events.Emitter {
	return events.NewEmitter(realtime.NewHub(time.Hour, nil), nil, nil)
}

func newTestMarketService(t *testing.T) (MarketService, user.UserRepository) {
	t.Helper()
	users := user.NewUserRepository()
	svc := NewMarketService(NewMarketRepository(), NewPredictionRepository(), users, newTestEmitter())
	return svc, users
}

func seedUser(t *testing.T, users user.UserRepository, id, balance string) {
	t.Helper()
	require.NoError(t, users.Create(context.Background(), &user.User{
		ID:          id,
		Username:    "trader-" + id,
		Email:       id + "@example.com",
		BdagBalance: balance,
		Level:       1,
	}))
}

func openMarket(t *testing.T, svc MarketService) *Market {
	t.Helper()
	market, err := svc.CreateMarket(context.Background(), "creator-1", &CreateMarketRequest{
		Question: "Will BDAG close above $1?",
		Category: "crypto",
		EndDate:  time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	return market
}

func TestCreateMarketDefaults(t *testing.T) {
	svc, _ := newTestMarketService(t)

	market := openMarket(t, svc)

	assert.Equal(t, StatusOpen, market.Status)
	assert.Equal(t, "0", market.TotalPool)
	assert.Equal(t, "50.00", market.YesPercentage)
	assert.Equal(t, "50.00", market.NoPercentage)
	assert.Equal(t, "creator-1", market.CreatedBy)
}

func TestPlacePredictionDebitsAndRecomputesOdds(t *testing.T) {
	svc, users := newTestMarketService(t)
	seedUser(t, users, "user-1", "100")
	market := openMarket(t, svc)

	prediction, err := svc.PlacePrediction(context.Background(), "user-1", &PlacePredictionRequest{
		MarketID:   market.ID,
		Prediction: boolPtr(true),
		Amount:     "40",
	})
	require.NoError(t, err)
	assert.Equal(t, "40", prediction.Amount)
	assert.True(t, prediction.Prediction)

	u, err := users.FindByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "60", u.BdagBalance)

	updated, err := svc.GetMarket(context.Background(), market.ID)
	require.NoError(t, err)
	assert.Equal(t, "40", updated.TotalPool)
	assert.Equal(t, "100.00", updated.YesPercentage)
	assert.Equal(t, "0.00", updated.NoPercentage)
}

func TestPlacePredictionInsufficientBalance(t *testing.T) {
	svc, users := newTestMarketService(t)
	seedUser(t, users, "user-1", "10")
	market := openMarket(t, svc)

	_, err := svc.PlacePrediction(context.Background(), "user-1", &PlacePredictionRequest{
		MarketID:   market.ID,
		Prediction: boolPtr(false),
		Amount:     "40",
	})
	assert.ErrorIs(t, err, user.ErrInsufficientBalance)

	// Nothing was debited and the pool is untouched.
	u, err := users.FindByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "10", u.BdagBalance)

	m, err := svc.GetMarket(context.Background(), market.ID)
	require.NoError(t, err)
	assert.Equal(t, "0", m.TotalPool)
}

func TestPlacePredictionRejectsBadAmounts(t *testing.T) {
	svc, users := newTestMarketService(t)
	seedUser(t, users, "user-1", "100")
	market := openMarket(t, svc)

	for _, amount := range []string{"0", "-5", "abc", ""} {
		_, err := svc.PlacePrediction(context.Background(), "user-1", &PlacePredictionRequest{
			MarketID:   market.ID,
			Prediction: boolPtr(true),
			Amount:     amount,
		})
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %q", amount)
	}
}

func TestPlacePredictionUnknownMarket(t *testing.T) {
	svc, users := newTestMarketService(t)
	seedUser(t, users, "user-1", "100")

	_, err := svc.PlacePrediction(context.Background(), "user-1", &PlacePredictionRequest{
		MarketID:   "missing",
		Prediction: boolPtr(true),
		Amount:     "10",
	})
	assert.ErrorIs(t, err, ErrMarketNotFound)
}

func TestPlacePredictionOnExpiredMarket(t *testing.T) {
	users := user.NewUserRepository()
	markets := NewMarketRepository()
	svc := NewMarketService(markets, NewPredictionRepository(), users, newTestEmitter())
	seedUser(t, users, "user-1", "100")

	expired := &Market{
		ID:            "m-expired",
		Question:      "Already over?",
		Status:        StatusOpen,
		EndDate:       time.Now().Add(-time.Hour),
		TotalPool:     "0",
		YesPercentage: "50.00",
		NoPercentage:  "50.00",
	}
	require.NoError(t, markets.Create(context.Background(), expired))

	_, err := svc.PlacePrediction(context.Background(), "user-1", &PlacePredictionRequest{
		MarketID:   "m-expired",
		Prediction: boolPtr(true),
		Amount:     "10",
	})
	assert.ErrorIs(t, err, ErrMarketClosed)
}

func TestPlacePredictionOnResolvedMarket(t *testing.T) {
	users := user.NewUserRepository()
	markets := NewMarketRepository()
	svc := NewMarketService(markets, NewPredictionRepository(), users, newTestEmitter())
	seedUser(t, users, "user-1", "100")

	resolved := &Market{
		ID:      "m-resolved",
		Status:  StatusResolved,
		EndDate: time.Now().Add(time.Hour),
	}
	require.NoError(t, markets.Create(context.Background(), resolved))

	_, err := svc.PlacePrediction(context.Background(), "user-1", &PlacePredictionRequest{
		MarketID:   "m-resolved",
		Prediction: boolPtr(true),
		Amount:     "10",
	})
	assert.ErrorIs(t, err, ErrMarketClosed)
}

// staleUserRepo always serves reads from the same initial snapshot while
// recording the last write, the way two racing requests would each see the
// balance before either debit landed.
type staleUserRepo struct {
	mu       sync.Mutex
	snapshot user.User
	last     *user.User
}

func (r *staleUserRepo) Create(ctx context.Context, u *user.User) error { return nil }

func (r *staleUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := r.snapshot
	return &cp, nil
}

func (r *staleUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.FindByID(ctx, "")
}

func (r *staleUserRepo) Update(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.last = &cp
	return nil
}

func (r *staleUserRepo) List(ctx context.Context) ([]*user.User, error) {
	return nil, nil
}

// Both requests read the balance before either debit is written, so the
// second write clobbers the first: two 40 BDAG stakes from a 100 BDAG
// balance leave 60, not 20. Read-then-write on the store is not atomic.
func TestPlacePredictionStaleReadLosesDebit(t *testing.T) {
	users := &staleUserRepo{snapshot: user.User{ID: "user-1", BdagBalance: "100", Level: 1}}
	svc := NewMarketService(NewMarketRepository(), NewPredictionRepository(), users, newTestEmitter())
	market := openMarket(t, svc)

	for i := 0; i < 2; i++ {
		_, err := svc.PlacePrediction(context.Background(), "user-1", &PlacePredictionRequest{
			MarketID:   market.ID,
			Prediction: boolPtr(true),
			Amount:     "40",
		})
		require.NoError(t, err)
	}

	require.NotNil(t, users.last)
	assert.Equal(t, "60", users.last.BdagBalance)
}
