package server

import (
	"net/http"

	"github.com/udisondev/zzzcalc/internal/calc"
	"github.com/udisondev/zzzcalc/internal/data"
	"github.com/udisondev/zzzcalc/internal/db"
	"github.com/udisondev/zzzcalc/internal/marginal"
	"github.com/udisondev/zzzcalc/internal/model"
)

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	b, ok := decodeBuild(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, calc.ComputePreview(b))
}

func (s *Server) handleMarginals(w http.ResponseWriter, r *http.Request) {
	b, ok := decodeBuild(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analyze(b))
}

// analyze runs the sensitivity analysis with the overrides the document
// carries. Each request gets its own store; nothing is shared.
func analyze(b *model.Build) marginal.Result {
	store := marginal.NewStore()
	store.Load(b.Marginal.CustomApplied)
	return marginal.New(store).Analyze(b)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, data.StatRegistry())
}

func (s *Server) handleListBuilds(w http.ResponseWriter, r *http.Request) {
	infos, err := s.builds.ListBuilds(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if infos == nil {
		infos = []db.BuildInfo{}
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleGetBuild(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	b, err := s.builds.GetBuild(r.Context(), name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if b == nil {
		writeError(w, http.StatusNotFound, "no such build")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleSaveBuild(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	b, ok := decodeBuild(w, r)
	if !ok {
		return
	}
	if err := s.builds.SaveBuild(r.Context(), name, b); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": name})
}

func (s *Server) handleDeleteBuild(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	deleted, err := s.builds.DeleteBuild(r.Context(), name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "no such build")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
