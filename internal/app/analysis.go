package app

import (
	"context"
	"errors"
	"slices"

	"github.com/google/uuid"

	"github.com/erazemk/cenik/internal/model"
)

// session holds the results of one analysis flow until the user accepts,
// discards or dismisses them.
type session struct {
	results   []model.AnalysisResult
	analyzing bool
}

// RequestImageAnalysis sends one image to the analyzer. It does not retry.
// Every failure is reported as ErrAnalysisFailed (or ErrNoCredential); the
// cause is logged.
func (a *App) RequestImageAnalysis(ctx context.Context, image []byte, mime, credential string) ([]model.AnalysisResult, error) {
	if credential == "" {
		a.log.Warn("image analysis requested without API key")
		return nil, ErrNoCredential
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	results, err := a.analyzer.Analyze(ctx, image, mime, credential)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			a.log.Error("image analysis timed out", "timeout", a.timeout, "error", err)
		} else {
			a.log.Error("image analysis failed", "error", err)
		}
		return nil, ErrAnalysisFailed
	}
	if results == nil {
		results = []model.AnalysisResult{}
	}

	a.log.Info("image analysed", "products", len(results), "bytes", len(image))
	return results, nil
}

// OpenSession starts an analysis session.
func (a *App) OpenSession() uuid.UUID {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := uuid.New()
	a.sessions[id] = &session{results: []model.AnalysisResult{}}
	return id
}

// SessionResults returns the pending results of a session.
func (a *App) SessionResults(id uuid.UUID) ([]model.AnalysisResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return slices.Clone(s.results), nil
}

// AnalyzeInSession analyses an image with the active API key and replaces
// the session's pending results. If the session is dismissed while the
// analysis runs, the results are dropped and ErrSessionNotFound is returned.
func (a *App) AnalyzeInSession(ctx context.Context, id uuid.UUID, image []byte, mime string) ([]model.AnalysisResult, error) {
	a.mu.Lock()
	s, ok := a.sessions[id]
	if !ok {
		a.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if s.analyzing {
		a.mu.Unlock()
		return nil, ErrAnalysisBusy
	}
	s.analyzing = true
	credential := a.activeCredential()
	a.mu.Unlock()

	results, err := a.RequestImageAnalysis(ctx, image, mime, credential)

	a.mu.Lock()
	defer a.mu.Unlock()

	s.analyzing = false
	if a.sessions[id] != s {
		a.log.Info("analysis result discarded, session dismissed", "session", id)
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	s.results = results
	return slices.Clone(results), nil
}

// AcceptResult records the pending result at index as an inventory item at
// martID (0 for the first mart) and removes it from the session.
func (a *App) AcceptResult(ctx context.Context, id uuid.UUID, index int, martID int64) (*model.InventoryItem, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if index < 0 || index >= len(s.results) {
		return nil, ErrResultNotFound
	}

	r := s.results[index]
	item, err := a.addItemLocked(ctx, martID, r.Name, r.Price, r.Unit)
	if err != nil {
		return nil, err
	}
	s.results = slices.Delete(s.results, index, index+1)
	return item, nil
}

// DiscardResult drops the pending result at index without recording it.
func (a *App) DiscardResult(id uuid.UUID, index int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if index < 0 || index >= len(s.results) {
		return ErrResultNotFound
	}
	s.results = slices.Delete(s.results, index, index+1)
	return nil
}

// DismissSession closes a session and drops its pending results. An
// analysis still in flight for it will be discarded when it completes.
func (a *App) DismissSession(id uuid.UUID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.sessions, id)
}
