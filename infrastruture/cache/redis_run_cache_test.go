package cache

import (
	"context"
	"os"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/vinom-floodfill/domain"
	"github.com/beka-birhanu/vinom-floodfill/navigation/maze"
	"github.com/beka-birhanu/vinom-floodfill/service/i"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun() *dmn.Run {
	return &dmn.Run{
		ID:         uuid.New(),
		OperatorID: uuid.New(),
		Source:     dmn.SourceClassic,
		MazeDigest: maze.Classic().Digest(),
		Size:       8,
		Start:      maze.ClassicStart(),
		Goals:      maze.ClassicGoals(),
		Outcome:    dmn.OutcomeUnsolvable,
		Reason:     "navigation is unsolvable: move or replan ceiling exceeded: 3 moves",
		Path:       []maze.Position{{Row: 7, Col: 0}, {Row: 6, Col: 0}, {Row: 5, Col: 0}, {Row: 5, Col: 1}},
		Commands:   []string{"F", "F", "R"},
		Moves:      3,
		Distances:  [][]int{{6, 5}, {-1, 4}},
		CreatedAt:  time.Now().UTC().Truncate(time.Millisecond),
	}
}

func TestRunPayload(t *testing.T) {
	run := sampleRun()

	raw, err := encodeRun(run)
	require.NoError(t, err)

	decoded, err := decodeRun(raw)
	require.NoError(t, err)
	assert.Equal(t, run, decoded)

	_, err = decodeRun([]byte("not bson"))
	assert.Error(t, err)

	_, err = encodeRun(nil)
	assert.Error(t, err)
}

func TestNewRedisRunCache(t *testing.T) {
	_, err := NewRedisRunCache(nil, 60)
	assert.Error(t, err)

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()
	_, err = NewRedisRunCache(client, 0)
	assert.Error(t, err)
}

// TestRedisRunCache runs against a live server when REDIS_ADDR is set.
func TestRedisRunCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	ctx := context.Background()

	c, err := NewRedisRunCache(client, 5)
	require.NoError(t, err)
	key := "floodfill:test:" + uuid.NewString()
	defer client.Del(ctx, key)

	_, err = c.Get(ctx, key)
	assert.ErrorIs(t, err, i.ErrCacheMiss)

	run := sampleRun()
	require.NoError(t, c.Set(ctx, key, run))
	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, run, got)

	unlock, err := c.Lock(ctx, key)
	require.NoError(t, err)
	unlock()
}
