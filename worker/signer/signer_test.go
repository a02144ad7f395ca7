package signer

import (
	"testing"
	"time"

	"github.com/MAGNETO903/oracle-platform-hackathon/core"

	"github.com/bmizerany/assert"
)

func TestFresh(t *testing.T) {
	w := &Worker{system: &core.System{MaxPriceAge: 10 * time.Minute}}

	base := time.Date(2022, 6, 1, 12, 0, 0, 0, time.UTC).Unix()

	assert.T(t, w.fresh(base, base))
	assert.T(t, w.fresh(base, base+599))
	assert.T(t, w.fresh(base, base+600))
	assert.T(t, !w.fresh(base, base+601))

	// the bound is symmetric, an observation may trail the request too
	assert.T(t, w.fresh(base, base-600))
	assert.T(t, !w.fresh(base, base-601))
}

func TestFreshUnbounded(t *testing.T) {
	w := &Worker{system: &core.System{}}

	base := time.Now().Unix()
	assert.T(t, w.fresh(base, base+86400*365))
}

func TestNewDefaults(t *testing.T) {
	w := New(&core.System{}, nil, nil, "", Config{})
	assert.Equal(t, 100, w.cfg.Batch)
	assert.Equal(t, int64(8), w.cfg.Capacity)

	w = New(&core.System{}, nil, nil, "", Config{Batch: 5, Capacity: 2})
	assert.Equal(t, 5, w.cfg.Batch)
	assert.Equal(t, int64(2), w.cfg.Capacity)
}
