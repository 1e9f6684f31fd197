package application_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/brintopos/brintopos/internal/application"
	"github.com/brintopos/brintopos/internal/domain"
)

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (s *seqIDs) NextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("inv-%d", s.n)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type memArchive struct {
	entries map[string][]domain.SummaryEntry
}

func (a *memArchive) Save(path string, e domain.SummaryEntry) error {
	if a.entries == nil {
		a.entries = map[string][]domain.SummaryEntry{}
	}
	a.entries[path] = append(a.entries[path], e)
	return nil
}

func (a *memArchive) Load(path string) ([]domain.SummaryEntry, error) {
	return a.entries[path], nil
}

var serviceTime = time.Date(2026, 5, 1, 19, 30, 0, 0, time.UTC)

type fixture struct {
	rt      *application.Runtime
	till    *application.TillService
	dash    *application.DashboardService
	archive *memArchive
	logs    *logtest.Hook
}

func newFixture(t *testing.T, mutate ...func(*domain.POSConfig)) *fixture {
	t.Helper()
	cfg := domain.DefaultConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	rt, err := application.NewRuntime(cfg, &seqIDs{},
		application.WithClock(fixedClock{serviceTime}),
		application.WithLogger(logger),
		application.WithGateCost(bcrypt.MinCost),
	)
	require.NoError(t, err)

	archive := &memArchive{}
	return &fixture{
		rt:      rt,
		till:    application.NewTillService(rt),
		dash:    application.NewDashboardService(rt, archive),
		archive: archive,
		logs:    hook,
	}
}

// bdtMenu is a small menu priced in whole taka.
func bdtMenu(c *domain.POSConfig) {
	c.Menu = []domain.MenuItemConfig{
		{ID: "kacchi", Name: "Kacchi Biryani", Price: "350", Category: "Main Courses"},
		{ID: "borhani", Name: "Borhani", Price: "100", Category: "Beverages"},
		{ID: "firni", Name: "Firni", Price: "300", Category: "Desserts"},
	}
}
