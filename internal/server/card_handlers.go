package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cardwall/backend/internal/problem"
	"github.com/cardwall/backend/internal/service"
)

func (s *Server) createCardHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID, _ := UserIDFromContext(r.Context())
	card, err := s.cardService.CreateCard(r.Context(), userID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, card)
}

func (s *Server) getAllCardsHandler(w http.ResponseWriter, r *http.Request) {
	cards, err := s.cardService.GetAllCards(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, cards)
}

func (s *Server) getCardByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := cardID(w, r)
	if !ok {
		return
	}
	card, err := s.cardService.GetCardByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, card)
}

func (s *Server) moveCardHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := cardID(w, r)
	if !ok {
		return
	}

	var req service.MoveCardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	card, err := s.cardService.MoveCard(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, card)
}

func (s *Server) deleteCardHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := cardID(w, r)
	if !ok {
		return
	}
	if err := s.cardService.DeleteCard(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func cardID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		problem.Write(w, http.StatusBadRequest, "Invalid card ID provided.")
		return 0, false
	}
	return uint(id), true
}
