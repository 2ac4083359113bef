package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kudosboards/kudos/shared/api"
	"github.com/kudosboards/kudos/shared/domain"
	mw "github.com/kudosboards/kudos/shared/middleware"
	"github.com/kudosboards/kudos/shared/utils"
	"github.com/samber/lo"
)

func (h *Handler) GetBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.board.List(r.Context(), mw.CallerFromContext(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.BoardListResponse{Boards: lo.Map(boards, boardMetadata)})
}

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var body api.CreateBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	board, err := h.board.Create(r.Context(), body.Name, domain.AccessLevel(body.AccessLevel), mw.CallerFromContext(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.Header().Set("Location", "/v1/boards/"+board.Id)
	utils.WriteJSON(w, http.StatusCreated, api.IdResponse{Id: board.Id})
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	boardId := chi.URLParam(r, "boardId")

	board, err := h.board.Get(r.Context(), boardId, mw.CallerFromContext(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	messages, err := h.board.Messages(r.Context(), board)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, h.boardResponse(board, messages))
}

func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	boardId := chi.URLParam(r, "boardId")
	userId := chi.URLParam(r, "userId")

	if err := h.board.AddUser(r.Context(), userId, boardId, mw.CallerFromContext(r)); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
