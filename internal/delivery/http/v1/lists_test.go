package v1

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateListThenGet(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, http.MethodPost, "/lists", `{"title":"Work","description":"office"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[listResponse](t, w)

	w = do(router, http.MethodGet, fmt.Sprintf("/lists/%d", created.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	fetched := decode[listResponse](t, w)

	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Work", fetched.Title)
	require.NotNil(t, fetched.Description)
	assert.Equal(t, "office", *fetched.Description)
	assert.False(t, fetched.UpdatedAt.Before(fetched.CreatedAt))
}

func TestCreateListValidation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
		rule  string
	}{
		{name: "missing title", body: `{}`, field: "title", rule: "required"},
		{name: "empty title", body: `{"title":""}`, field: "title", rule: "required"},
		{name: "long title", body: fmt.Sprintf(`{"title":%q}`, strings.Repeat("a", 101)), field: "title", rule: "max"},
		{name: "empty description", body: `{"title":"a","description":""}`, field: "description", rule: "min"},
		{name: "long description", body: fmt.Sprintf(`{"title":"a","description":%q}`, strings.Repeat("d", 201)), field: "description", rule: "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, store := newTestRouter(t)

			w := do(router, http.MethodPost, "/lists", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			errBody := decode[apiError](t, w)
			assert.Equal(t, kindMalformedInput, errBody.Kind)
			require.Len(t, errBody.Fields, 1)
			assert.Equal(t, tt.field, errBody.Fields[0].Field)
			assert.Equal(t, tt.rule, errBody.Fields[0].Rule)
			assert.Zero(t, store.calls)
		})
	}
}

func TestCreateListLengthBoundsCountCharacters(t *testing.T) {
	router, _ := newTestRouter(t)

	body := fmt.Sprintf(`{"title":%q,"description":%q}`, strings.Repeat("я", 100), strings.Repeat("ü", 200))
	w := do(router, http.MethodPost, "/lists", body)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateListMalformedBody(t *testing.T) {
	router, store := newTestRouter(t)

	for _, body := range []string{`{"title":`, `{"title":5}`, `[]`} {
		w := do(router, http.MethodPost, "/lists", body)
		require.Equal(t, http.StatusBadRequest, w.Code, body)
		errBody := decode[apiError](t, w)
		assert.Equal(t, kindMalformedInput, errBody.Kind, body)
	}

	w := do(router, http.MethodPost, "/lists", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, store.calls)
}

func TestGetListNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, http.MethodGet, "/lists/99", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	errBody := decode[apiError](t, w)
	assert.Equal(t, msgListNotFound, errBody.Message)
}

func TestListIDMustBeInteger(t *testing.T) {
	router, store := newTestRouter(t)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		w := do(router, method, "/lists/abc", `{"title":"x"}`)
		require.Equal(t, http.StatusBadRequest, w.Code, method)
		errBody := decode[apiError](t, w)
		require.Len(t, errBody.Fields, 1)
		assert.Equal(t, listIDParam, errBody.Fields[0].Field)
	}
	assert.Zero(t, store.calls)
}

func TestUpdateListIsPartial(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, http.MethodPost, "/lists", `{"title":"Groceries","description":"weekly"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[listResponse](t, w)

	w = do(router, http.MethodPut, "/lists/1", `{"description":"monthly"}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[listResponse](t, w)
	assert.Equal(t, "Groceries", updated.Title)
	assert.Equal(t, "monthly", *updated.Description)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	w = do(router, http.MethodPut, "/lists/1", `{"title":"Food"}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated = decode[listResponse](t, w)
	assert.Equal(t, "Food", updated.Title)
	assert.Equal(t, "monthly", *updated.Description)

	w = do(router, http.MethodPut, "/lists/1", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated = decode[listResponse](t, w)
	assert.Equal(t, "Food", updated.Title)
}

func TestUpdateListValidationAndNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, http.MethodPut, "/lists/1", `{"title":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodPut, "/lists/1", `{"title":"x"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, msgListNotFound, decode[apiError](t, w).Message)
}

func TestDeleteList(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, http.MethodDelete, "/lists/1", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	do(router, http.MethodPost, "/lists", `{"title":"a"}`)
	w = do(router, http.MethodDelete, "/lists/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodGet, "/lists/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetListsPagination(t *testing.T) {
	router, _ := newTestRouter(t)

	for i := 1; i <= 12; i++ {
		w := do(router, http.MethodPost, "/lists", fmt.Sprintf(`{"title":"list %d"}`, i))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := do(router, http.MethodGet, "/lists", "")
	require.Equal(t, http.StatusOK, w.Code)
	lists := decode[[]listResponse](t, w)
	require.Len(t, lists, defaultPerPage)
	assert.Equal(t, int64(1), lists[0].ID)

	w = do(router, http.MethodGet, "/lists?page=1&per_page=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	lists = decode[[]listResponse](t, w)
	require.Len(t, lists, 5)
	assert.Equal(t, int64(6), lists[0].ID)
	assert.Equal(t, int64(10), lists[4].ID)

	w = do(router, http.MethodGet, "/lists?page=2&per_page=5", "")
	lists = decode[[]listResponse](t, w)
	require.Len(t, lists, 2)

	w = do(router, http.MethodGet, "/lists?page=4611686018427387904&per_page=4", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotContains(t, w.Body.String(), "list 1")

	w = do(router, http.MethodGet, "/lists?page=100", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetListsEmptyIsArray(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, http.MethodGet, "/lists", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListResponseTimestampsAreRFC3339(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, http.MethodPost, "/lists", `{"title":"a"}`)
	body := decode[map[string]any](t, w)

	createdAt, ok := body["created_at"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339, createdAt)
	assert.NoError(t, err)
}
