package query

import (
	"context"
	"errors"
	"strings"

	"github.com/doeshing/askcmd/internal/application/prompt"
	"github.com/doeshing/askcmd/internal/domain"
	"github.com/doeshing/askcmd/internal/ports"
)

// Service orchestrates the query lifecycle end-to-end.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Client         ports.CompletionClient
	History        ports.HistoryRepository
	Presenter      ports.ResponsePresenter
	Logger         ports.Logger
}

// WithPresenter returns a copy of s that delivers answers through p.
func (s *Service) WithPresenter(p ports.ResponsePresenter) *Service {
	clone := *s
	clone.Presenter = p
	return &clone
}

// Run processes a single natural-language query. Errors from the config
// provider and the completion client are returned classified and nothing is
// recorded; a history failure after the answer was presented is reported on
// the response instead.
func (s *Service) Run(ctx context.Context, req domain.QueryRequest) (domain.QueryResponse, error) {
	if s.ConfigProvider == nil || s.Client == nil || s.Logger == nil {
		return domain.QueryResponse{}, errors.New("query.Service dependencies not satisfied")
	}
	if strings.TrimSpace(req.Query) == "" {
		return domain.QueryResponse{}, domain.ErrEmptyQuery
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.QueryResponse{}, err
	}

	s.Logger.Info("calling completion endpoint", map[string]interface{}{
		"model": cfg.Model,
	})

	raw, err := s.Client.Complete(ctx, prompt.Build(req.Query), cfg.APIKey, cfg.Model)
	if err != nil {
		return domain.QueryResponse{}, err
	}

	resp := domain.QueryResponse{
		Query:   req.Query,
		Model:   cfg.Model,
		Raw:     raw,
		Command: Normalize(raw),
	}

	if s.Presenter != nil {
		if err := s.Presenter.Present(resp); err != nil {
			return resp, err
		}
	}

	if s.History == nil {
		return resp, nil
	}
	if err := s.History.Append(req.Query, resp.Command); err != nil {
		s.Logger.Warn("history append failed", map[string]interface{}{"error": err.Error()})
		resp.HistoryErr = err
		return resp, nil
	}
	if path, err := s.History.Path(); err == nil {
		s.Logger.Debug("history saved", map[string]interface{}{"path": path})
	}
	return resp, nil
}
