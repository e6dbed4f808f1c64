package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "shop-backend/internal/shared"
)

type fakeWarmer struct {
	warmed []int64
	all    int
	err    error
}

func (f *fakeWarmer) WarmTree(_ context.Context, countryID int64) error {
	f.warmed = append(f.warmed, countryID)
	return f.err
}

func (f *fakeWarmer) WarmAllTrees(_ context.Context) (int, error) {
	f.all++
	return 3, f.err
}

func TestWarmTreeHandler(t *testing.T) {
	w := &fakeWarmer{}
	h := NewWarmTreeHandler(w)

	payload, err := json.Marshal(types.WarmProvinceTreePayload{CountryID: 7})
	require.NoError(t, err)
	require.NoError(t, h.ProcessTask(context.Background(), asynq.NewTask(types.TypeWarmProvinceTree, payload)))
	assert.Equal(t, []int64{7}, w.warmed)

	err = h.ProcessTask(context.Background(), asynq.NewTask(types.TypeWarmProvinceTree, []byte("{bad")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = h.ProcessTask(context.Background(), asynq.NewTask(types.TypeWarmProvinceTree, []byte(`{"country_id":0}`)))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	// lỗi store thì cho asynq retry
	w.err = errors.New("db down")
	err = h.ProcessTask(context.Background(), asynq.NewTask(types.TypeWarmProvinceTree, payload))
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestWarmAllTreesHandler(t *testing.T) {
	w := &fakeWarmer{}
	h := NewWarmAllTreesHandler(w)

	require.NoError(t, h.ProcessTask(context.Background(), asynq.NewTask(types.TypeWarmAllProvinceTrees, nil)))
	assert.Equal(t, 1, w.all)

	w.err = errors.New("boom")
	assert.Error(t, h.ProcessTask(context.Background(), asynq.NewTask(types.TypeWarmAllProvinceTrees, nil)))
}
