package apiclient

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/janhq/jan-translator/internal/domain/apperr"
)

// decodeError converts an error response into an *apperr.Error. The backend
// reports failures as {"detail": "..."} or, for request validation, as
// {"detail": [{"msg": "..."}, ...]}. Without a detail the Message stays empty
// so callers show their own fallback text; the status is kept in the cause.
func decodeError(resp *resty.Response) *apperr.Error {
	kind := apperr.KindDomain
	if resp.StatusCode() == http.StatusUnauthorized {
		kind = apperr.KindAuth
	}
	return &apperr.Error{
		Kind:       kind,
		Message:    detailMessage(resp.Body()),
		StatusCode: resp.StatusCode(),
		Cause:      fmt.Errorf("request failed with status %d", resp.StatusCode()),
	}
}

func detailMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}

	detail := gjson.GetBytes(body, "detail")
	switch {
	case detail.Type == gjson.String && strings.TrimSpace(detail.String()) != "":
		return detail.String()
	case detail.IsArray():
		var parts []string
		for _, item := range detail.Array() {
			if msg := item.Get("msg"); msg.Exists() && msg.String() != "" {
				parts = append(parts, msg.String())
			} else if item.Type == gjson.String {
				parts = append(parts, item.String())
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
	}

	if msg := gjson.GetBytes(body, "error"); msg.Type == gjson.String && msg.String() != "" {
		return msg.String()
	}
	return ""
}
