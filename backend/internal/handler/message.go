package handler

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kudosboards/kudos/shared/api"
	"github.com/kudosboards/kudos/shared/errors"
	"github.com/kudosboards/kudos/shared/logger"
	mw "github.com/kudosboards/kudos/shared/middleware"
	"github.com/kudosboards/kudos/shared/utils"
	"github.com/samber/lo"
)

func messageLocation(boardId, messageId string) string {
	return fmt.Sprintf("/v1/boards/%s/messages/%s", boardId, messageId)
}

// GetMessage returns a message linked to a board the caller can read.
func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	boardId := chi.URLParam(r, "boardId")
	messageId := chi.URLParam(r, "messageId")

	board, err := h.board.Get(r.Context(), boardId, mw.CallerFromContext(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if !lo.Contains(board.Messages, messageId) {
		utils.WriteErrorAndStatusCode(w, errors.NotFound("Message", messageId))
		return
	}
	message, err := h.message.Get(r.Context(), messageId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, h.messageResponse(*message))
}

func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	boardId := chi.URLParam(r, "boardId")

	var body api.MessageRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	message, err := h.posting.Post(r.Context(), boardId, body.Text, body.Image, mw.CallerFromContext(r))
	if err != nil {
		var stepErr *errors.StepError
		if stderrors.As(err, &stepErr) {
			// the message exists but is not on the board; the client can retry the link
			w.Header().Set("Location", messageLocation(boardId, stepErr.MessageId))
		}
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.Header().Set("Location", messageLocation(boardId, message.Id))
	utils.WriteJSON(w, http.StatusCreated, api.IdResponse{Id: message.Id})
}

// LinkMessage re-runs the link step for a message whose posting was interrupted.
func (h *Handler) LinkMessage(w http.ResponseWriter, r *http.Request) {
	boardId := chi.URLParam(r, "boardId")
	messageId := chi.URLParam(r, "messageId")

	if err := h.posting.Relink(r.Context(), boardId, messageId, mw.CallerFromContext(r)); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) UpdateMessage(w http.ResponseWriter, r *http.Request) {
	messageId := chi.URLParam(r, "messageId")

	var body api.MessageRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if _, err := h.message.Update(r.Context(), messageId, body.Text, body.Image, mw.CallerFromContext(r)); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	boardId := chi.URLParam(r, "boardId")
	messageId := chi.URLParam(r, "messageId")

	if err := h.posting.Remove(r.Context(), boardId, messageId, mw.CallerFromContext(r)); err != nil {
		var stepErr *errors.StepError
		if stderrors.As(err, &stepErr) {
			logger.Log.Error("message unlinked but not deleted", "board", boardId, "message", messageId, "error", err)
		}
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
