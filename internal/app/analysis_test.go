package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/cenik/internal/model"
)

func products(names ...string) []model.AnalysisResult {
	out := make([]model.AnalysisResult, 0, len(names))
	for i, n := range names {
		out = append(out, model.AnalysisResult{Name: n, Price: price(int64(1000 * (i + 1))), Unit: "1ea"})
	}
	return out
}

func TestRequestImageAnalysis(t *testing.T) {
	var gotCredential, gotMIME string
	a, _ := newTestApp(t, func(_ context.Context, image []byte, mime, credential string) ([]model.AnalysisResult, error) {
		gotCredential, gotMIME = credential, mime
		return products("Milk", "Egg"), nil
	})

	results, err := a.RequestImageAnalysis(context.Background(), []byte("jpeg"), "image/jpeg", "key")
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, "key", gotCredential)
	assert.Equal(t, "image/jpeg", gotMIME)
}

func TestRequestImageAnalysisFailuresCollapse(t *testing.T) {
	a, _ := newTestApp(t, func(context.Context, []byte, string, string) ([]model.AnalysisResult, error) {
		return nil, errors.New("403 PERMISSION_DENIED: API key not valid")
	})

	_, err := a.RequestImageAnalysis(context.Background(), []byte("jpeg"), "image/jpeg", "bad")
	assert.Equal(t, ErrAnalysisFailed, err)
}

func TestRequestImageAnalysisWithoutCredential(t *testing.T) {
	called := false
	a, _ := newTestApp(t, func(context.Context, []byte, string, string) ([]model.AnalysisResult, error) {
		called = true
		return nil, nil
	})

	_, err := a.RequestImageAnalysis(context.Background(), []byte("jpeg"), "image/jpeg", "")
	assert.ErrorIs(t, err, ErrNoCredential)
	assert.ErrorIs(t, err, ErrAnalysisFailed)
	assert.False(t, called)
}

func TestRequestImageAnalysisTimeout(t *testing.T) {
	a, _ := newTestApp(t, func(ctx context.Context, _ []byte, _, _ string) ([]model.AnalysisResult, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}, func(o *Options) { o.AnalysisTimeout = 20 * time.Millisecond })

	start := time.Now()
	_, err := a.RequestImageAnalysis(context.Background(), []byte("jpeg"), "image/jpeg", "key")
	assert.Equal(t, ErrAnalysisFailed, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestSessionAcceptAndDiscard(t *testing.T) {
	a, _ := newTestApp(t, func(context.Context, []byte, string, string) ([]model.AnalysisResult, error) {
		return products("Milk", "Egg", "Tofu"), nil
	})
	ctx := context.Background()
	require.NoError(t, a.SaveCredential(ctx, "key"))
	b, _ := a.AddMart(ctx, "B")

	id := a.OpenSession()
	results, err := a.AnalyzeInSession(ctx, id, []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)
	require.Len(t, results, 3)

	item, err := a.AcceptResult(ctx, id, 1, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Egg", item.Name)
	assert.Equal(t, b.ID, item.MartID)
	assert.False(t, item.IsPinned)

	item, err = a.AcceptResult(ctx, id, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "Milk", item.Name)
	assert.Equal(t, model.DefaultMartID, item.MartID)

	pending, err := a.SessionResults(id)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Tofu", pending[0].Name)

	_, err = a.AcceptResult(ctx, id, 5, 0)
	assert.ErrorIs(t, err, ErrResultNotFound)

	require.NoError(t, a.DiscardResult(id, 0))
	pending, _ = a.SessionResults(id)
	assert.Empty(t, pending)
	assert.ErrorIs(t, a.DiscardResult(id, 0), ErrResultNotFound)

	assert.Len(t, a.Inventory(), 2)

	a.DismissSession(id)
	_, err = a.SessionResults(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionAcceptIntoUnknownMartKeepsResult(t *testing.T) {
	a, _ := newTestApp(t, func(context.Context, []byte, string, string) ([]model.AnalysisResult, error) {
		return products("Milk"), nil
	}, func(o *Options) { o.EnvCredential = "env-key" })
	ctx := context.Background()

	id := a.OpenSession()
	_, err := a.AnalyzeInSession(ctx, id, []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)

	_, err = a.AcceptResult(ctx, id, 0, 999)
	assert.ErrorIs(t, err, ErrMartNotFound)

	pending, _ := a.SessionResults(id)
	assert.Len(t, pending, 1)
}

func TestSessionUsesEnvironmentCredential(t *testing.T) {
	var got string
	a, _ := newTestApp(t, func(_ context.Context, _ []byte, _, credential string) ([]model.AnalysisResult, error) {
		got = credential
		return nil, nil
	}, func(o *Options) { o.EnvCredential = "env-key" })
	ctx := context.Background()

	id := a.OpenSession()
	results, err := a.AnalyzeInSession(ctx, id, []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Equal(t, "env-key", got)

	// A saved key takes precedence.
	require.NoError(t, a.SaveCredential(ctx, "saved-key"))
	_, err = a.AnalyzeInSession(ctx, id, []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "saved-key", got)
}

func TestSessionWithoutCredential(t *testing.T) {
	a, _ := newTestApp(t, nil)

	id := a.OpenSession()
	_, err := a.AnalyzeInSession(context.Background(), id, []byte("jpeg"), "image/jpeg")
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestSessionUnknown(t *testing.T) {
	a, _ := newTestApp(t, nil)
	ctx := context.Background()

	_, err := a.AnalyzeInSession(ctx, uuid.New(), nil, "image/jpeg")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = a.AcceptResult(ctx, uuid.New(), 0, 0)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, a.DiscardResult(uuid.New(), 0), ErrSessionNotFound)
	a.DismissSession(uuid.New())
}

func TestResultAfterDismissIsDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	a, _ := newTestApp(t, func(context.Context, []byte, string, string) ([]model.AnalysisResult, error) {
		close(started)
		<-release
		return products("Milk"), nil
	}, func(o *Options) { o.EnvCredential = "key" })
	ctx := context.Background()

	id := a.OpenSession()
	done := make(chan error, 1)
	go func() {
		_, err := a.AnalyzeInSession(ctx, id, []byte("jpeg"), "image/jpeg")
		done <- err
	}()

	<-started
	_, err := a.AnalyzeInSession(ctx, id, []byte("jpeg"), "image/jpeg")
	assert.ErrorIs(t, err, ErrAnalysisBusy)

	a.DismissSession(id)
	close(release)

	assert.ErrorIs(t, <-done, ErrSessionNotFound)
	_, err = a.SessionResults(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Empty(t, a.Inventory())
}
