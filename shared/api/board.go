package api

import (
	"github.com/kudosboards/kudos/shared/domain"
)

// Request DTOs

type CreateBoardRequest struct {
	Name        string `json:"name" validate:"required"`
	AccessLevel string `json:"access_level" validate:"required"`
}

// Response DTOs

type IdResponse struct {
	Id string `json:"id"`
}

// BoardResponse is a board with its messages resolved. Members are not exposed.
type BoardResponse struct {
	Id          domain.BoardId     `json:"id"`
	Name        domain.BoardName   `json:"name"`
	AccessLevel domain.AccessLevel `json:"access_level"`
	Messages    []MessageResponse  `json:"messages"`
}

type BoardMetadataResponse struct {
	Id          domain.BoardId     `json:"id"`
	Name        domain.BoardName   `json:"name"`
	AccessLevel domain.AccessLevel `json:"access_level"`
	NumMessages int                `json:"num_messages"`
}

type BoardListResponse struct {
	Boards []BoardMetadataResponse `json:"boards"`
}
