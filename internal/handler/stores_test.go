package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guardian-vault-api/internal/model"
	"guardian-vault-api/internal/stores"
)

type fakeStream struct {
	account     *model.Account
	latest      *model.StoreSet
	reloaded    *model.StoreSet
	reloadErr   error
	hardErr     error
	state       stores.State
	cycles      uint64
	setAccounts []model.Account
}

func (f *fakeStream) SetAccount(account model.Account) {
	f.setAccounts = append(f.setAccounts, account)
	f.account = &account
}

func (f *fakeStream) CurrentAccount() (model.Account, bool) {
	if f.account == nil {
		return model.Account{}, false
	}
	return *f.account, true
}

func (f *fakeStream) Latest() (stores.Result, bool) {
	if f.latest == nil {
		return stores.Result{}, false
	}
	return stores.Result{Stores: f.latest}, true
}

func (f *fakeStream) ForceReload(ctx context.Context) (stores.Result, error) {
	if f.reloadErr != nil {
		return stores.Result{}, f.reloadErr
	}
	return stores.Result{Stores: f.reloaded}, nil
}

func (f *fakeStream) State() stores.State { return f.state }
func (f *fakeStream) HardError() error    { return f.hardErr }
func (f *fakeStream) Cycles() uint64      { return f.cycles }

type fakeAccountSource struct {
	accounts []model.Account
	err      error
}

func (f *fakeAccountSource) GetAvailableAccounts(ctx context.Context) ([]model.Account, error) {
	return f.accounts, f.err
}

type fakeAccountLinker struct {
	account *model.Account
	err     error
}

func (f *fakeAccountLinker) GetLinkedAccount(ctx context.Context, userKey string) (*model.Account, error) {
	return f.account, f.err
}

func testStoreSet() *model.StoreSet {
	return &model.StoreSet{
		Account:  model.Account{MembershipID: "member-1", MembershipType: model.MembershipTypeSteam},
		Stores:   []*model.ProcessedStore{{ID: "vault", Name: "Vault", IsVault: true}},
		LoadedAt: time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC),
	}
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGetStores(t *testing.T) {
	t.Parallel()

	t.Run("returns the latest set", func(t *testing.T) {
		h := NewStoresHandler(&fakeStream{latest: testStoreSet()}, &fakeAccountSource{}, nil)

		rec := httptest.NewRecorder()
		h.GetStores(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeEnvelope(t, rec)
		assert.Equal(t, true, body["success"])
	})

	t.Run("404 before the first load", func(t *testing.T) {
		h := NewStoresHandler(&fakeStream{}, &fakeAccountSource{}, nil)

		rec := httptest.NewRecorder()
		h.GetStores(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("503 in the hard error state", func(t *testing.T) {
		h := NewStoresHandler(&fakeStream{hardErr: errors.New("manifest unavailable")}, &fakeAccountSource{}, nil)

		rec := httptest.NewRecorder()
		h.GetStores(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "manifest unavailable")
	})
}

func TestReload(t *testing.T) {
	t.Parallel()

	t.Run("returns the fresh set", func(t *testing.T) {
		h := NewStoresHandler(&fakeStream{reloaded: testStoreSet()}, &fakeAccountSource{}, nil)

		rec := httptest.NewRecorder()
		h.Reload(rec, httptest.NewRequest(http.MethodPost, "/api/v1/stores/reload", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("empty result without hard error is 404", func(t *testing.T) {
		h := NewStoresHandler(&fakeStream{}, &fakeAccountSource{}, nil)

		rec := httptest.NewRecorder()
		h.Reload(rec, httptest.NewRequest(http.MethodPost, "/api/v1/stores/reload", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("interrupted reload is 503", func(t *testing.T) {
		h := NewStoresHandler(&fakeStream{reloadErr: context.Canceled}, &fakeAccountSource{}, nil)

		rec := httptest.NewRecorder()
		h.Reload(rec, httptest.NewRequest(http.MethodPost, "/api/v1/stores/reload", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestStreamState(t *testing.T) {
	t.Parallel()

	acct := model.Account{MembershipID: "member-1"}
	stream := &fakeStream{state: stores.StateActive, cycles: 3, account: &acct, hardErr: errors.New("boom")}
	h := NewStoresHandler(stream, &fakeAccountSource{}, nil)

	rec := httptest.NewRecorder()
	h.StreamState(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stores/stream-state", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "active", data["state"])
	assert.Equal(t, float64(3), data["cycles"])
	assert.Equal(t, "boom", data["hard_error"])
}

func TestSelectAccount(t *testing.T) {
	t.Parallel()

	t.Run("records the account and loads", func(t *testing.T) {
		stream := &fakeStream{reloaded: testStoreSet()}
		h := NewStoresHandler(stream, &fakeAccountSource{}, nil)

		payload := bytes.NewBufferString(`{"membership_id":"member-1","membership_type":3,"display_name":"TestGuardian"}`)
		rec := httptest.NewRecorder()
		h.SelectAccount(rec, httptest.NewRequest(http.MethodPost, "/api/v1/accounts/select", payload))

		assert.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, stream.setAccounts, 1)
		assert.Equal(t, "member-1", stream.setAccounts[0].MembershipID)
		assert.Equal(t, model.MembershipTypeSteam, stream.setAccounts[0].MembershipType)
	})

	t.Run("rejects a missing membership id", func(t *testing.T) {
		h := NewStoresHandler(&fakeStream{}, &fakeAccountSource{}, nil)

		rec := httptest.NewRecorder()
		h.SelectAccount(rec, httptest.NewRequest(http.MethodPost, "/api/v1/accounts/select", bytes.NewBufferString(`{}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		h := NewStoresHandler(&fakeStream{}, &fakeAccountSource{}, nil)

		rec := httptest.NewRecorder()
		h.SelectAccount(rec, httptest.NewRequest(http.MethodPost, "/api/v1/accounts/select", bytes.NewBufferString(`{`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListAccounts(t *testing.T) {
	t.Parallel()

	t.Run("lists available accounts", func(t *testing.T) {
		src := &fakeAccountSource{accounts: []model.Account{{MembershipID: "member-1"}}}
		h := NewStoresHandler(&fakeStream{}, src, nil)

		rec := httptest.NewRecorder()
		h.ListAccounts(rec, httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "member-1")
	})

	t.Run("vendor failure is 503", func(t *testing.T) {
		src := &fakeAccountSource{err: errors.New("vendor down")}
		h := NewStoresHandler(&fakeStream{}, src, nil)

		rec := httptest.NewRecorder()
		h.ListAccounts(rec, httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func linkRequest(userKey string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/link/"+userKey, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("user_key", userKey)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestLinkedAccount(t *testing.T) {
	t.Parallel()

	t.Run("resolves a linked account", func(t *testing.T) {
		linker := &fakeAccountLinker{account: &model.Account{MembershipID: "member-1"}}
		h := NewStoresHandler(&fakeStream{}, &fakeAccountSource{}, linker)

		rec := httptest.NewRecorder()
		h.LinkedAccount(rec, linkRequest("user-9"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "member-1")
	})

	t.Run("404 when no link exists", func(t *testing.T) {
		h := NewStoresHandler(&fakeStream{}, &fakeAccountSource{}, &fakeAccountLinker{})

		rec := httptest.NewRecorder()
		h.LinkedAccount(rec, linkRequest("user-9"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("404 when linking is not configured", func(t *testing.T) {
		h := NewStoresHandler(&fakeStream{}, &fakeAccountSource{}, nil)

		rec := httptest.NewRecorder()
		h.LinkedAccount(rec, linkRequest("user-9"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
