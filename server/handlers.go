package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gyscos/coinched/bid"
	"github.com/gyscos/coinched/cards"
)

// playerID parses the {pid} path segment.
func playerID(r *http.Request) (uint32, error) {
	id, err := strconv.ParseUint(r.PathValue("pid"), 10, 32)
	return uint32(id), err
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	info, err := s.manager.Join()
	if err != nil {
		writeError(w, err)
		return
	}
	log.Debugf("player %d joined as %s", info.PlayerID, info.PlayerPos)
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
	pid, err := playerID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid player id"})
		return
	}
	if err := s.manager.Leave(pid); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handlePass(w http.ResponseWriter, r *http.Request) {
	pid, err := playerID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid player id"})
		return
	}
	ev, err := s.manager.Pass(pid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) handleCoinche(w http.ResponseWriter, r *http.Request) {
	pid, err := playerID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid player id"})
		return
	}
	ev, err := s.manager.Coinche(pid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

type bidRequest struct {
	Target bid.Target `json:"target"`
	Suit   cards.Suit `json:"suit"`
}

func (s *Server) handleBid(w http.ResponseWriter, r *http.Request) {
	pid, err := playerID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid player id"})
		return
	}
	var req bidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid bid body: " + err.Error()})
		return
	}
	ev, err := s.manager.Bid(pid, req.Suit, req.Target)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

type playRequest struct {
	Card cards.Card `json:"card"`
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	pid, err := playerID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid player id"})
		return
	}
	var req playRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid play body: " + err.Error()})
		return
	}
	ev, err := s.manager.PlayCard(pid, req.Card)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) handleWait(w http.ResponseWriter, r *http.Request) {
	pid, err := playerID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid player id"})
		return
	}
	eid, err := strconv.Atoi(r.PathValue("eid"))
	if err != nil || eid < 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid event id"})
		return
	}
	ev, err := s.manager.Wait(pid, eid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) handleHand(w http.ResponseWriter, r *http.Request) {
	pid, err := playerID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid player id"})
		return
	}
	hand, err := s.manager.SeeHand(pid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hand)
}

func (s *Server) handleTrick(w http.ResponseWriter, r *http.Request) {
	pid, err := playerID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid player id"})
		return
	}
	trick, err := s.manager.SeeTrick(pid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trick)
}

func (s *Server) handleLastTrick(w http.ResponseWriter, r *http.Request) {
	pid, err := playerID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid player id"})
		return
	}
	trick, err := s.manager.SeeLastTrick(pid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trick)
}

type scoresResponse struct {
	Scores [2]int `json:"scores"`
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	pid, err := playerID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid player id"})
		return
	}
	scores, err := s.manager.SeeScores(pid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scoresResponse{Scores: scores})
}

type posResponse struct {
	Pos int `json:"pos"`
}

func (s *Server) handlePos(w http.ResponseWriter, r *http.Request) {
	pid, err := playerID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid player id"})
		return
	}
	seat, err := s.manager.SeePos(pid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posResponse{Pos: int(seat)})
}
