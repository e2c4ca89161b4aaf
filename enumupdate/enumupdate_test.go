package enumupdate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type counter struct {
	total int
}

func (c *counter) Apply(update int) {
	c.total += update
}

func TestApplyAll(t *testing.T) {
	var c counter

	ApplyAll[int](&c, 1, 2, 3)
	assert.Equal(t, 6, c.total)

	ApplyAll[int](&c)
	assert.Equal(t, 6, c.total)
}

func TestFollow_UntilClosed(t *testing.T) {
	var c counter

	updates := make(chan int)

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		return Follow[int](ctx, &c, updates)
	})
	g.Go(func() error {
		defer close(updates)

		for i := 1; i <= 4; i++ {
			updates <- i
		}

		return nil
	})

	require.NoError(t, g.Wait())
	assert.Equal(t, 10, c.total)
}

func TestFollow_Canceled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	var c counter

	err := Follow[int](ctx, &c, make(chan int))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, c.total)
}

func TestLogReplay(t *testing.T) {
	var log Log[int]

	ApplyAll[int](&log, 5, 7)
	assert.Equal(t, []int{5, 7}, log.Updates)

	var seen []int
	log.Replay(Func[int](func(u int) { seen = append(seen, u) }))
	assert.Equal(t, []int{5, 7}, seen)
}
