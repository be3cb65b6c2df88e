package mock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
)

type cannedResponse struct {
	status int
	body   map[string]any
}

type recordedRequest struct {
	body    map[string]any
	headers http.Header
}

// ApiMock is an in-process stand-in for external HTTP services, such as the
// extraction endpoint. Tests program canned responses per method and path and
// inspect what the backend actually sent.
type ApiMock struct {
	mu        sync.Mutex
	url       string
	responses map[string]map[int]cannedResponse
	defaults  map[string]cannedResponse
	requests  map[string][]recordedRequest
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		responses: map[string]map[int]cannedResponse{},
		defaults:  map[string]cannedResponse{},
		requests:  map[string][]recordedRequest{},
	}
}

// Start boots the underlying httptest server. Unknown routes answer 200 with
// an empty JSON object so best-effort callers degrade instead of erroring.
func (a *ApiMock) Start() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		defer a.mu.Unlock()

		key := r.Method + r.URL.Path
		index := len(a.requests[key])

		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body == nil {
			body = map[string]any{}
		}
		a.requests[key] = append(a.requests[key], recordedRequest{
			body:    body,
			headers: r.Header.Clone(),
		})

		resp := cannedResponse{status: http.StatusOK, body: map[string]any{}}
		if canned, ok := a.responses[key][index]; ok {
			resp = canned
		} else if canned, ok := a.defaults[key]; ok {
			resp = canned
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.status)
		_ = json.NewEncoder(w).Encode(resp.body)
	}))

	a.url = server.URL
}

func (a *ApiMock) GetUrl() string {
	return a.url
}

// SetResponse programs the answer for the index-th call to method+path.
// Index -1 sets the fallback used by any call without a programmed answer.
func (a *ApiMock) SetResponse(index int, method, path string, status int, response map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := method + path
	if index == -1 {
		a.defaults[key] = cannedResponse{status: status, body: response}
		return
	}
	if a.responses[key] == nil {
		a.responses[key] = map[int]cannedResponse{}
	}
	a.responses[key][index] = cannedResponse{status: status, body: response}
}

// ClearResponses drops programmed answers and recorded traffic for a route.
func (a *ApiMock) ClearResponses(method, path string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := method + path
	delete(a.responses, key)
	delete(a.defaults, key)
	delete(a.requests, key)
}

// GetRequestBody returns the JSON body of the index-th request to a route,
// or nil when that request never happened.
func (a *ApiMock) GetRequestBody(method, path string, index int) map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()

	recorded := a.requests[method+path]
	if index < 0 || index >= len(recorded) {
		return nil
	}
	return recorded[index].body
}

// GetRequestCount returns how many requests a route has received.
func (a *ApiMock) GetRequestCount(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.requests[method+path])
}
