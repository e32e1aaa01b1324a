package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/mazisel/umzug/internal/config"
	"github.com/mazisel/umzug/internal/sequence/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fakeRepo backs the counter with a mutex-guarded map so the service's
// retry loop can be exercised without a database.
type fakeRepo struct {
	mu          sync.Mutex
	counters    map[string]int64
	maxAssigned map[string]string
	failCAS     bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		counters:    make(map[string]int64),
		maxAssigned: make(map[string]string),
	}
}

func (r *fakeRepo) FindCounter(ctx context.Context, db *gorm.DB, name string) (*domain.Counter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.counters[name]
	if !ok {
		return nil, nil
	}
	return &domain.Counter{Name: name, LastValue: v}, nil
}

func (r *fakeRepo) InsertCounter(ctx context.Context, db *gorm.DB, c *domain.Counter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.counters[c.Name]; ok {
		return errors.New("duplicate key")
	}
	r.counters[c.Name] = c.LastValue
	return nil
}

func (r *fakeRepo) CompareAndSwap(ctx context.Context, db *gorm.DB, name string, oldValue, newValue int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCAS {
		return false, nil
	}
	if r.counters[name] != oldValue {
		return false, nil
	}
	r.counters[name] = newValue
	return true, nil
}

func (r *fakeRepo) MaxAssigned(ctx context.Context, db *gorm.DB, d domain.Domain) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.maxAssigned[d.Name], nil
}

func newTestService(repo domain.Repository, attempts int) domain.Service {
	return New(Params{
		Log:  zap.NewNop(),
		Repo: repo,
		Config: config.Config{
			Sequence: config.SequenceConfig{
				MaxAttempts:  attempts,
				RetryBackoff: time.Millisecond,
			},
		},
	})
}

func TestNextNumberStartsAtDomainStart(t *testing.T) {
	svc := newTestService(newFakeRepo(), 5)

	n, err := svc.NextNumber(context.Background(), domain.Customer)
	require.NoError(t, err)
	assert.Equal(t, "10001", n)

	n, err = svc.NextNumber(context.Background(), domain.Invoice)
	require.NoError(t, err)
	assert.Equal(t, "100001", n)
}

func TestNextNumberIncrements(t *testing.T) {
	svc := newTestService(newFakeRepo(), 5)
	ctx := context.Background()

	first, err := svc.NextNumber(ctx, domain.Offer)
	require.NoError(t, err)
	second, err := svc.NextNumber(ctx, domain.Offer)
	require.NoError(t, err)

	assert.Equal(t, "10001", first)
	assert.Equal(t, "10002", second)
}

func TestNextNumberSeedsFromAssignedNumbers(t *testing.T) {
	repo := newFakeRepo()
	repo.maxAssigned["offer"] = "10044"
	svc := newTestService(repo, 5)

	n, err := svc.NextNumber(context.Background(), domain.Offer)
	require.NoError(t, err)
	assert.Equal(t, "10045", n)
}

func TestNextNumberFallsBackOnMalformedNumber(t *testing.T) {
	repo := newFakeRepo()
	repo.maxAssigned["customer"] = "UMZ-77"
	svc := newTestService(repo, 5)

	n, err := svc.NextNumber(context.Background(), domain.Customer)
	require.NoError(t, err)
	assert.Equal(t, "10001", n)
}

func TestNextNumberIgnoresAssignedBelowStart(t *testing.T) {
	repo := newFakeRepo()
	repo.maxAssigned["invoice"] = "777"
	svc := newTestService(repo, 5)

	n, err := svc.NextNumber(context.Background(), domain.Invoice)
	require.NoError(t, err)
	assert.Equal(t, "100001", n)
}

func TestNextNumberFixedWidth(t *testing.T) {
	svc := newTestService(newFakeRepo(), 5)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		n, err := svc.NextNumber(ctx, domain.Customer)
		require.NoError(t, err)
		assert.Len(t, n, domain.Customer.Width)
	}
}

func TestNextNumberExhaustedRetries(t *testing.T) {
	repo := newFakeRepo()
	repo.counters["offer"] = 10005
	repo.failCAS = true
	svc := newTestService(repo, 3)

	_, err := svc.NextNumber(context.Background(), domain.Offer)
	assert.ErrorIs(t, err, domain.ErrAllocationConflict)
}

func TestNextNumberConcurrentAllocationsAreUnique(t *testing.T) {
	svc := newTestService(newFakeRepo(), 200)

	const workers = 16
	const perWorker = 25

	var wg sync.WaitGroup
	results := make(chan string, workers*perWorker)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				n, err := svc.NextNumber(context.Background(), domain.Offer)
				if err != nil {
					t.Error(err)
					return
				}
				results <- n
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	var all []string
	for n := range results {
		require.False(t, seen[n], "duplicate number %s", n)
		seen[n] = true
		all = append(all, n)
	}
	require.Len(t, all, workers*perWorker)

	sort.Strings(all)
	assert.Equal(t, "10001", all[0])
	assert.Equal(t, domain.Offer.Format(10000+int64(workers*perWorker)), all[len(all)-1])
}
