package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"guardian-vault-api/internal/model"
	"guardian-vault-api/internal/stores"
	"guardian-vault-api/pkg/apierror"
	"guardian-vault-api/pkg/response"
)

// StoreStream is the slice of the store stream the HTTP layer consumes.
type StoreStream interface {
	SetAccount(account model.Account)
	CurrentAccount() (model.Account, bool)
	Latest() (stores.Result, bool)
	ForceReload(ctx context.Context) (stores.Result, error)
	State() stores.State
	HardError() error
	Cycles() uint64
}

// AccountSource lists the accounts reachable with the configured credentials.
type AccountSource interface {
	GetAvailableAccounts(ctx context.Context) ([]model.Account, error)
}

// AccountLinker resolves app user keys to linked game accounts. Optional.
type AccountLinker interface {
	GetLinkedAccount(ctx context.Context, userKey string) (*model.Account, error)
}

// StoresHandler handles store-set HTTP requests.
type StoresHandler struct {
	stream   StoreStream
	accounts AccountSource
	links    AccountLinker
}

// NewStoresHandler creates a new stores handler. links may be nil.
func NewStoresHandler(stream StoreStream, accounts AccountSource, links AccountLinker) *StoresHandler {
	return &StoresHandler{stream: stream, accounts: accounts, links: links}
}

// GetStores handles GET /api/v1/stores
func (h *StoresHandler) GetStores(w http.ResponseWriter, r *http.Request) {
	res, ok := h.stream.Latest()
	if !ok {
		if err := h.stream.HardError(); err != nil {
			response.Error(w, apierror.ServiceUnavailable("inventory failed to load: "+err.Error()))
			return
		}
		response.Error(w, apierror.NotFound("no store set loaded yet"))
		return
	}
	response.OK(w, res.Stores)
}

// Reload handles POST /api/v1/stores/reload. It blocks until the next
// completed cycle and returns its result, which may be the empty marker.
func (h *StoresHandler) Reload(w http.ResponseWriter, r *http.Request) {
	res, err := h.stream.ForceReload(r.Context())
	if err != nil {
		response.Error(w, apierror.ServiceUnavailable("reload interrupted: "+err.Error()))
		return
	}
	if res.Empty() {
		if hardErr := h.stream.HardError(); hardErr != nil {
			response.Error(w, apierror.ServiceUnavailable("inventory failed to load: "+hardErr.Error()))
			return
		}
		response.Error(w, apierror.NotFound("reload produced no store set"))
		return
	}
	response.OK(w, res.Stores)
}

// StreamStateResponse describes the stream diagnostics payload.
type StreamStateResponse struct {
	State     string         `json:"state"`
	Cycles    uint64         `json:"cycles"`
	HardError string         `json:"hard_error,omitempty"`
	Account   *model.Account `json:"account,omitempty"`
}

// StreamState handles GET /api/v1/stores/stream-state
func (h *StoresHandler) StreamState(w http.ResponseWriter, r *http.Request) {
	resp := StreamStateResponse{
		State:  h.stream.State().String(),
		Cycles: h.stream.Cycles(),
	}
	if err := h.stream.HardError(); err != nil {
		resp.HardError = err.Error()
	}
	if acct, ok := h.stream.CurrentAccount(); ok {
		resp.Account = &acct
	}
	response.OK(w, resp)
}

// selectAccountRequest is the body of POST /api/v1/accounts/select.
type selectAccountRequest struct {
	MembershipID   string `json:"membership_id"`
	MembershipType int    `json:"membership_type"`
	DisplayName    string `json:"display_name"`
}

// SelectAccount handles POST /api/v1/accounts/select: records the account and
// runs one load cycle against it.
func (h *StoresHandler) SelectAccount(w http.ResponseWriter, r *http.Request) {
	var req selectAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	if req.MembershipID == "" {
		response.Error(w, apierror.BadRequest("membership_id is required"))
		return
	}

	h.stream.SetAccount(model.Account{
		MembershipID:   req.MembershipID,
		MembershipType: req.MembershipType,
		DisplayName:    req.DisplayName,
	})

	res, err := h.stream.ForceReload(r.Context())
	if err != nil {
		response.Error(w, apierror.ServiceUnavailable("load interrupted: "+err.Error()))
		return
	}
	if res.Empty() {
		response.Error(w, apierror.ServiceUnavailable("account selected but inventory failed to load"))
		return
	}
	response.OK(w, res.Stores)
}

// ListAccounts handles GET /api/v1/accounts
func (h *StoresHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.GetAvailableAccounts(r.Context())
	if err != nil {
		response.Error(w, apierror.ServiceUnavailable("failed to list accounts: "+err.Error()))
		return
	}
	response.OK(w, accounts)
}

// LinkedAccount handles GET /api/v1/accounts/link/{user_key}. It resolves a
// previously linked game account for an app user key.
func (h *StoresHandler) LinkedAccount(w http.ResponseWriter, r *http.Request) {
	if h.links == nil {
		response.Error(w, apierror.NotFound("account linking is not configured"))
		return
	}
	userKey := chi.URLParam(r, "user_key")
	if userKey == "" {
		response.Error(w, apierror.BadRequest("user_key is required"))
		return
	}
	acct, err := h.links.GetLinkedAccount(r.Context(), userKey)
	if err != nil {
		response.Error(w, apierror.ServiceUnavailable("failed to resolve linked account: "+err.Error()))
		return
	}
	if acct == nil {
		response.Error(w, apierror.NotFound("no linked account for user key"))
		return
	}
	response.OK(w, acct)
}
