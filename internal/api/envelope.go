package api

import (
	"encoding/json"

	hcerrors "github.com/hostops/hostctl/internal/errors"
)

// The provider wraps every response in two nested status envelopes:
// the outer one reports whether the platform accepted the call at all
// (authentication, routing, quota), the inner one whether the addressed
// method succeeded. A successful HTTP transaction therefore proves
// nothing by itself; both levels must report "success".

const statusSuccess = "success"

// authErrorCode is the provider code distinguishing rejected
// credentials from every other outer-level failure.
const authErrorCode = "AUTH_ERROR"

type outerEnvelope struct {
	Status    string         `json:"status"`
	ErrorCode string         `json:"error_code"`
	ErrorText string         `json:"error_text"`
	Answer    *innerEnvelope `json:"answer"`
}

type innerEnvelope struct {
	Status string          `json:"status"`
	Result json.RawMessage `json:"result"`
	Errors []innerError    `json:"errors"`
}

type innerError struct {
	ErrorText string `json:"error_text"`
	ErrorCode string `json:"error_code"`
}

// interpret decodes a transport-successful body into the method result
// or a classified error.
func interpret(body []byte) (json.RawMessage, error) {
	var outer outerEnvelope
	if err := json.Unmarshal(body, &outer); err != nil {
		return nil, &hcerrors.Error{
			Kind:    hcerrors.KindAPIProtocol,
			Message: "non-JSON response",
			Details: err.Error(),
			Err:     err,
		}
	}

	if outer.Status != statusSuccess {
		kind := hcerrors.KindAPIMethod
		if outer.ErrorCode == authErrorCode {
			kind = hcerrors.KindAuth
		}
		msg := outer.ErrorText
		if msg == "" {
			msg = "request rejected by provider"
		}
		return nil, &hcerrors.Error{Kind: kind, Message: msg, Code: outer.ErrorCode}
	}

	if outer.Answer == nil {
		return nil, hcerrors.New(hcerrors.KindAPIProtocol, "response missing answer envelope")
	}

	if outer.Answer.Status != statusSuccess {
		if len(outer.Answer.Errors) > 0 {
			first := outer.Answer.Errors[0]
			msg := first.ErrorText
			if msg == "" {
				msg = "operation failed"
			}
			return nil, &hcerrors.Error{Kind: hcerrors.KindAPIMethod, Message: msg, Code: first.ErrorCode}
		}
		return nil, hcerrors.New(hcerrors.KindAPIMethod, "operation failed")
	}

	return outer.Answer.Result, nil
}
