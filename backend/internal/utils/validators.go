package utils

import (
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/kudosboards/kudos/shared/domain"
	"github.com/kudosboards/kudos/shared/errors"
)

type BoardValidator struct {
	maxNameLen int
}

func NewBoardValidator(maxNameLen int) *BoardValidator {
	return &BoardValidator{maxNameLen: maxNameLen}
}

func (v *BoardValidator) Name(name domain.BoardName) error {
	if strings.TrimSpace(name) == "" {
		return &errors.ErrorWithStatusCode{Message: "Name is blank", StatusCode: http.StatusBadRequest}
	}
	if utf8.RuneCountInString(name) > v.maxNameLen {
		return &errors.ErrorWithStatusCode{Message: "Name is too long", StatusCode: http.StatusBadRequest}
	}
	return nil
}

func (v *BoardValidator) AccessLevel(level domain.AccessLevel) error {
	if _, err := domain.ParseAccessLevel(string(level)); err != nil {
		return &errors.ErrorWithStatusCode{Message: "Access level must be one of PUBLIC, LINK, PRIVATE", StatusCode: http.StatusBadRequest}
	}
	return nil
}

type MessageValidator struct {
	maxTextLen int
}

func NewMessageValidator(maxTextLen int) *MessageValidator {
	return &MessageValidator{maxTextLen: maxTextLen}
}

func (v *MessageValidator) Text(text domain.MsgText) error {
	if strings.TrimSpace(text) == "" {
		return &errors.ErrorWithStatusCode{Message: "Text is too short", StatusCode: http.StatusBadRequest}
	}
	if utf8.RuneCountInString(text) > v.maxTextLen {
		return &errors.ErrorWithStatusCode{Message: "Text is too long", StatusCode: http.StatusBadRequest}
	}
	return nil
}

// Image accepts an empty reference or an absolute http(s) URL.
func (v *MessageValidator) Image(image domain.ImageRef) error {
	if image == "" {
		return nil
	}
	u, err := url.Parse(image)
	if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return &errors.ErrorWithStatusCode{Message: "Image must be an absolute http(s) URL", StatusCode: http.StatusBadRequest}
	}
	return nil
}
