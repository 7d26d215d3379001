package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cardwall/backend/internal/problem"
	"github.com/cardwall/backend/internal/service"
)

func (s *Server) createItemHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := s.itemService.CreateItem(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, item)
}

func (s *Server) getItemByIDHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		problem.Write(w, http.StatusBadRequest, "Invalid item ID provided.")
		return
	}

	item, err := s.itemService.GetItemByID(r.Context(), uint(id))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, item)
}
