// Package remotesvc implements the participant.Directory and course.Registry
// collaborators over HTTP, against the directory and registry APIs.
package remotesvc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

type client struct {
	baseURL string
	http    *http.Client
}

func newClient(baseURL string) client {
	return client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: core.Conf.Remote.Timeout},
	}
}

type apiError struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// do performs the request and decodes a 2xx JSON body into out (if non-nil).
// Network failures and 5xx responses surface as *core.TransportError; 4xx
// responses are returned as statusError for the callers to map onto domain
// sentinels.
func (c client) do(ctx context.Context, op, method, path string, query url.Values, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return errors.Wrapf(err, "%s: encoding request", op)
		}
		body = bytes.NewReader(buf)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return errors.Wrapf(err, "%s: building request", op)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return core.NewTransportError(op, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusInternalServerError {
		return core.NewTransportError(op, errors.Errorf("server returned %s", res.Status))
	}
	if res.StatusCode >= http.StatusBadRequest {
		apiErr := apiError{Error: res.Status}
		_ = json.NewDecoder(res.Body).Decode(&apiErr)
		return statusError{code: res.StatusCode, apiErr: apiErr}
	}

	if out != nil {
		if err = json.NewDecoder(res.Body).Decode(out); err != nil {
			return core.NewTransportError(op, errors.Wrap(err, "decoding response"))
		}
	} else {
		_, _ = io.Copy(ioutil.Discard, res.Body)
	}
	return nil
}

type statusError struct {
	code   int
	apiErr apiError
}

func (e statusError) Error() string { return e.apiErr.Error }

// status returns the HTTP status carried by err, or 0.
func status(err error) int {
	if sErr, ok := errors.Cause(err).(statusError); ok {
		return sErr.code
	}
	return 0
}
