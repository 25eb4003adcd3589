package api

import (
	"net/http"

	"github.com/phrazzld/kanban-api/internal/api/shared"
	"github.com/phrazzld/kanban-api/internal/service"
)

// BoardHandler serves /boards for the authenticated caller.
type BoardHandler struct {
	boards service.BoardService
}

// NewBoardHandler creates a BoardHandler.
func NewBoardHandler(boards service.BoardService) *BoardHandler {
	return &BoardHandler{boards: boards}
}

// List handles GET /boards. The username comes from the token.
func (h *BoardHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	boards, err := h.boards.ListBoards(r.Context(), identity.UserID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ListBoardsResponse{
		Boards:   boards,
		Username: identity.Username,
	})
}

// Create handles POST /boards.
func (h *BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	var req CreateBoardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	board, err := h.boards.CreateBoard(r.Context(), identity.UserID, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, BoardResponse{Board: *board})
}

// Rename handles PUT /boards.
func (h *BoardHandler) Rename(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	var req RenameBoardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	board, err := h.boards.RenameBoard(r.Context(), identity.UserID, req.ID, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, BoardResponse{Board: *board})
}

// Delete handles DELETE /boards. The board's tasks go with it.
func (h *BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	var req BoardIDRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.boards.DeleteBoard(r.Context(), identity.UserID, req.ID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SuccessResponse{Success: true})
}
