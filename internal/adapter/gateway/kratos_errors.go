package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/goddivor/Orinu-hub/internal/domain"

	kratos "github.com/ory/kratos-client-go"
)

// Kratos UI message IDs, see https://www.ory.sh/docs/kratos/concepts/ui-messages.
const (
	msgIDInvalidCredentials   int64 = 4000006
	msgIDEmailFormat          int64 = 4000004
	msgIDPasswordPolicy       int64 = 4000005
	msgIDDuplicateIdentifier  int64 = 4000007
	msgIDAddressNotVerified   int64 = 4000010
	msgIDDuplicateCredentials int64 = 4000027
	msgIDPasswordTooSimilar   int64 = 4000031
	msgIDPasswordTooShort     int64 = 4000032
	msgIDPasswordTooLong      int64 = 4000033
	msgIDPasswordBreached     int64 = 4000034
	msgIDAccountNotFound      int64 = 4000035
)

type kratosUIText struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
	Type string `json:"type"`
}

type kratosErrorBody struct {
	UI *struct {
		Messages []kratosUIText `json:"messages"`
		Nodes    []struct {
			Messages []kratosUIText `json:"messages"`
		} `json:"nodes"`
	} `json:"ui"`
	Error *struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Reason  string `json:"reason"`
		Message string `json:"message"`
	} `json:"error"`
}

// messages returns flow-level messages first, then field-level ones.
func (b kratosErrorBody) messages() []kratosUIText {
	if b.UI == nil {
		return nil
	}
	out := append([]kratosUIText(nil), b.UI.Messages...)
	for _, node := range b.UI.Nodes {
		out = append(out, node.Messages...)
	}
	return out
}

// classifyKratosError turns a Kratos client failure into a domain.ProviderError.
func classifyKratosError(err error, resp *http.Response) *domain.ProviderError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.NewProviderError(domain.CodeProviderUnavailable, "", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return domain.NewProviderError(domain.CodeProviderUnavailable, "", err)
	}

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}

	switch {
	case status == http.StatusTooManyRequests:
		return domain.NewProviderError(domain.CodeTooManyRequests, "", err)
	case status >= http.StatusInternalServerError:
		return domain.NewProviderError(domain.CodeProviderUnavailable, "", err)
	case status == 0:
		return domain.NewProviderError(domain.CodeProviderUnavailable, "", err)
	}

	var apiErr *kratos.GenericOpenAPIError
	if !errors.As(err, &apiErr) {
		return domain.NewProviderError(domain.CodeUnknown, "", err)
	}

	var body kratosErrorBody
	if jsonErr := json.Unmarshal(apiErr.Body(), &body); jsonErr != nil {
		return domain.NewProviderError(domain.CodeUnknown, "", err)
	}

	text := ""
	for _, msg := range body.messages() {
		if msg.Type != "" && msg.Type != "error" {
			continue
		}
		if code, ok := codeForMessageID(msg.ID); ok {
			return domain.NewProviderError(code, msg.Text, err)
		}
		if text == "" {
			text = msg.Text
		}
	}

	if text == "" && body.Error != nil {
		text = body.Error.Reason
		if text == "" {
			text = body.Error.Message
		}
	}

	return domain.NewProviderError(domain.CodeUnknown, text, err)
}

func codeForMessageID(id int64) (domain.ProviderCode, bool) {
	switch id {
	case msgIDDuplicateIdentifier, msgIDDuplicateCredentials:
		return domain.CodeEmailInUse, true
	case msgIDPasswordPolicy, msgIDPasswordTooSimilar, msgIDPasswordTooShort,
		msgIDPasswordTooLong, msgIDPasswordBreached:
		return domain.CodeWeakPassword, true
	case msgIDEmailFormat:
		return domain.CodeInvalidEmail, true
	case msgIDAccountNotFound:
		return domain.CodeUserNotFound, true
	case msgIDInvalidCredentials:
		return domain.CodeInvalidCredential, true
	case msgIDAddressNotVerified:
		return domain.CodeEmailNotVerified, true
	default:
		return domain.CodeUnknown, false
	}
}
