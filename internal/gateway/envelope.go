package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"recall/internal/services"
)

// envelope is the uniform response wrapper the backend puts around every
// payload. A non-zero code is a request failure regardless of transport
// status; 401 is handled before envelope inspection so renewal can run.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(resp *http.Response, method, path string, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		drainBody(resp.Body)
		return services.Wrap(services.ErrTransient, "gateway", "call",
			fmt.Sprintf("%s %s returned %d", method, path, resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return services.Wrap(services.ErrTransient, "gateway", "read response", method+" "+path, err)
	}

	var wrapped envelope
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return services.Wrap(services.ErrTransient, "gateway", "decode envelope", method+" "+path, err)
	}
	if wrapped.Code != 0 {
		return services.Wrap(services.ErrTransient, "gateway", "call",
			fmt.Sprintf("%s %s: %s (code %d)", method, path, wrapped.Message, wrapped.Code), nil)
	}

	if out == nil || len(wrapped.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(wrapped.Data, out); err != nil {
		return services.Wrap(services.ErrTransient, "gateway", "decode payload", method+" "+path, err)
	}
	return nil
}

func drainBody(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
}
