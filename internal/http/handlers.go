package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/futi-app/phase-explorer/internal/explorer"
	"github.com/futi-app/phase-explorer/internal/export"
	"github.com/futi-app/phase-explorer/internal/phases"
	"github.com/vmihailenco/msgpack/v5"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ListTeamsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := s.Store.GetAllTeams()
		if err != nil {
			log.Error("Failed to get teams", "error", err)
			http.Error(w, "Failed to get teams", http.StatusInternalServerError)
			return
		}
		writeJSON(w, teams)
	}
}

// phaseInfo is the wire shape of one catalogue entry.
type phaseInfo struct {
	Name     string          `json:"name"`
	Label    string          `json:"label"`
	Category phases.Category `json:"category"`
}

func (s *Server) ListPhasesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := struct {
			Phases     []phaseInfo       `json:"phases"`
			Categories []phases.Category `json:"categories"`
			Metrics    []phases.Metric   `json:"metrics"`
		}{
			Categories: phases.Categories,
			Metrics:    phases.Metrics,
		}
		for _, p := range phases.Catalogue {
			out.Phases = append(out.Phases, phaseInfo{
				Name:     p.Name,
				Label:    phases.DisplayName(p.Name),
				Category: p.Category,
			})
		}
		writeJSON(w, out)
	}
}

func (s *Server) ViewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vm, ok := s.buildView(w, r)
		if !ok {
			return
		}
		writeJSON(w, vm)
	}
}

func (s *Server) ExportViewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vm, ok := s.buildView(w, r)
		if !ok {
			return
		}

		data, err := export.Marshal(vm)
		if err != nil {
			log.Error("Failed to render export", "error", err)
			http.Error(w, "Failed to render export", http.StatusInternalServerError)
			return
		}

		s.Metrics.IncExportsGenerated()
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

// SnapshotHandler serves the view model msgpack-encoded, for the CLI and
// other non-browser consumers.
func (s *Server) SnapshotHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vm, ok := s.buildView(w, r)
		if !ok {
			return
		}

		data, err := msgpack.Marshal(vm)
		if err != nil {
			log.Error("Failed to encode snapshot", "error", err)
			http.Error(w, "Failed to encode snapshot", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/x-msgpack")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

func (s *Server) ReloadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := isDryRunFromContext(r)
		log.Info("Starting data reload", "dryRun", isDryRun)

		summary, err := s.Loader.LoadDir(s.Cfg.DataDir, isDryRun)
		if err != nil {
			log.Error("Failed to reload data", "error", err)
			http.Error(w, "Failed to reload data", http.StatusInternalServerError)
			return
		}

		if err := s.Notifier.SendLoadSummary(summary, isDryRun); err != nil {
			// The reload itself succeeded; a failed announcement is not worth a 500.
			log.Error("Failed to send load summary notification", "error", err)
		}

		writeJSON(w, summary)
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear store")
		s.Store.Clear()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
	}
}

// buildView parses the view request from query parameters and runs the
// explorer. On failure it writes the error response and returns ok=false.
func (s *Server) buildView(w http.ResponseWriter, r *http.Request) (*explorer.ViewModel, bool) {
	req := parseViewRequest(r)

	vm, err := s.Explorer.View(req)
	if err != nil {
		if errors.Is(err, explorer.ErrInvalidSelection) {
			log.Warn("Rejected view request", "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil, false
		}
		log.Error("Failed to build view", "error", err)
		http.Error(w, "Failed to build view", http.StatusInternalServerError)
		return nil, false
	}
	return vm, true
}

// parseViewRequest maps the team, category and mode query parameters onto a
// view request; absent parameters keep the defaults.
func parseViewRequest(r *http.Request) explorer.ViewRequest {
	req := explorer.DefaultRequest()
	q := r.URL.Query()

	if team := q.Get("team"); team != "" {
		req = req.WithTeam(team)
	}
	if category := q.Get("category"); category != "" {
		req = req.WithCategory(category)
	}
	if mode := q.Get("mode"); mode != "" {
		req = req.WithMode(explorer.DisplayMode(mode))
	}
	return req
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}
