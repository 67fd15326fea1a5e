package tui

import (
	"errors"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formspec/pkg/normalize"
)

var errMustAnswer = errors.New("must be answered")

// checkText validates a typed text answer against the field's requirements.
// An empty optional answer yields nil so it is recorded as unanswered.
func checkText(req normalize.Requirements, raw string) (any, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		if req.MustAnswer {
			return nil, errMustAnswer
		}
		return nil, nil
	}

	switch req.Format {
	case normalize.FormatEmail:
		if _, err := mail.ParseAddress(value); err != nil {
			return nil, errors.New("enter a valid email address")
		}
	case normalize.FormatNumber:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, errors.New("enter a number")
		}
		return n, nil
	case normalize.FormatURL:
		u, err := url.ParseRequestURI(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, errors.New("enter a valid URL")
		}
	case normalize.FormatDate:
		if _, err := time.Parse(time.DateOnly, value); err != nil {
			return nil, errors.New("enter a date as YYYY-MM-DD")
		}
	case normalize.FormatTime:
		if _, err := time.Parse("15:04", value); err != nil {
			return nil, errors.New("enter a time as HH:MM")
		}
	case normalize.FormatTel:
		if !validPhone(value) {
			return nil, errors.New("enter a valid phone number")
		}
	}
	return value, nil
}

func validPhone(value string) bool {
	digits := 0
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case strings.ContainsRune("+-() .", r):
		default:
			return false
		}
	}
	return digits >= 3
}
