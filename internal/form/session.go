package form

import (
	"fmt"
	"net/http"

	"github.com/arellano-digital/alternativas-backend/internal/cart"
	"github.com/arellano-digital/alternativas-backend/internal/search"
	"github.com/arellano-digital/alternativas-backend/internal/submit"
	"github.com/arellano-digital/alternativas-backend/pkg/config"
	"github.com/arellano-digital/alternativas-backend/pkg/localstore"
)

// Session bundles everything one form run needs: the orchestrator, the
// typeahead client, and the stores rehydrated from the previous run.
type Session struct {
	Orchestrator *Orchestrator
	Search       *search.Client
}

// NewSession wires stores, submission pipeline and typeahead from
// configuration. Close the session when the form run ends.
func NewSession(formCfg config.FormConfig, searchCfg config.SearchConfig, httpc *http.Client) (*Session, error) {
	storage, err := localstore.New(formCfg.StateDir)
	if err != nil {
		return nil, fmt.Errorf("form: open state dir: %w", err)
	}
	general, err := cart.NewGeneralStore(storage)
	if err != nil {
		return nil, err
	}
	items, err := cart.NewStore(storage)
	if err != nil {
		return nil, err
	}
	pipeline, err := submit.NewPipeline(formCfg.APIBaseURL, httpc)
	if err != nil {
		return nil, err
	}
	orch, err := New(general, items, pipeline, formCfg.EmailDomain)
	if err != nil {
		return nil, err
	}
	typeahead, err := search.NewClient(search.Options{
		BaseURL:    formCfg.APIBaseURL,
		Debounce:   searchCfg.Debounce,
		Limit:      searchCfg.DefaultLimit,
		HTTPClient: httpc,
	})
	if err != nil {
		return nil, err
	}
	return &Session{Orchestrator: orch, Search: typeahead}, nil
}

// Close releases the typeahead client.
func (s *Session) Close() {
	s.Search.Close()
}
