package auth

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinator_FirstCallerRefreshes(t *testing.T) {
	c := NewCoordinator()

	refresher, wait := c.Acquire()
	assert.True(t, refresher)
	assert.Nil(t, wait)
}

func TestCoordinator_SecondCallerWaits(t *testing.T) {
	c := NewCoordinator()

	refresher, _ := c.Acquire()
	require.True(t, refresher)

	refresher2, wait := c.Acquire()
	assert.False(t, refresher2)
	require.NotNil(t, wait)

	c.ResolveAll("new-access")

	res := <-wait
	assert.Equal(t, "new-access", res.Access)
	assert.NoError(t, res.Err)
}

func TestCoordinator_ResolveAllWakesEveryWaiterInOrder(t *testing.T) {
	c := NewCoordinator()
	require.True(t, c.Begin())

	var waits []<-chan Result
	for i := 0; i < 5; i++ {
		waits = append(waits, c.Enqueue())
	}

	c.ResolveAll("tok")

	for _, w := range waits {
		res := <-w
		assert.Equal(t, "tok", res.Access)
	}
}

func TestCoordinator_FailAllDeliversError(t *testing.T) {
	c := NewCoordinator()
	require.True(t, c.Begin())

	wait := c.Enqueue()
	sentinel := errors.New("refresh rejected")
	c.FailAll(sentinel)

	res := <-wait
	assert.ErrorIs(t, res.Err, sentinel)
	assert.Empty(t, res.Access)
}

func TestCoordinator_IdleAfterSettle(t *testing.T) {
	c := NewCoordinator()

	refresher, _ := c.Acquire()
	require.True(t, refresher)
	c.ResolveAll("tok")

	// The next caller after settlement takes the refresher role again.
	refresher, wait := c.Acquire()
	assert.True(t, refresher)
	assert.Nil(t, wait)
	c.Reset()
}

func TestCoordinator_ConcurrentAcquireElectsOneRefresher(t *testing.T) {
	c := NewCoordinator()

	refresher, _ := c.Acquire()
	require.True(t, refresher)

	// While the refresh is in flight, every concurrent caller must end up
	// a waiter, never a second refresher.
	const n = 20
	var (
		registered sync.WaitGroup
		done       sync.WaitGroup
		results    = make(chan Result, n)
	)
	for i := 0; i < n; i++ {
		registered.Add(1)
		done.Add(1)
		go func() {
			defer done.Done()
			got, wait := c.Acquire()
			if got {
				registered.Done()
				t.Error("second refresher elected during in-flight refresh")
				return
			}
			registered.Done()
			results <- <-wait
		}()
	}

	registered.Wait()
	c.ResolveAll("shared")
	done.Wait()
	close(results)

	count := 0
	for res := range results {
		require.NoError(t, res.Err)
		assert.Equal(t, "shared", res.Access)
		count++
	}
	assert.Equal(t, n, count)
}
