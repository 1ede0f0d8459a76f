package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkazakov/accounts-service/internal/testutil"
)

func TestCurrentUser(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, password := testutil.NewUserBuilder().
		WithName("Maria", "Kuznetsova").
		WithEmail("maria@example.com").
		WithPhone("+14155552671").
		Build(t, ts.DB)
	cookies := testutil.Login(t, ts, "maria@example.com", password)

	t.Run("returns own projection", func(t *testing.T) {
		resp := testutil.Request(t, ts, http.MethodGet, "/users/current", cookies, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var result struct {
			FirstName string  `json:"first_name"`
			LastName  string  `json:"last_name"`
			Email     string  `json:"email"`
			Phone     *string `json:"phone"`
			IsAdmin   bool    `json:"is_admin"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, "Maria", result.FirstName)
		assert.Equal(t, "maria@example.com", result.Email)
		require.NotNil(t, result.Phone)
		assert.Equal(t, "+14155552671", *result.Phone)
		assert.False(t, result.IsAdmin)
	})

	t.Run("no cookie", func(t *testing.T) {
		resp := testutil.Request(t, ts, http.MethodGet, "/users/current", nil, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})
}

func TestUpdateCurrentUser(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, password := testutil.NewUserBuilder().
		WithName("Petr", "Volkov").
		WithEmail("petr@example.com").
		WithPhone("+14155552671").
		Build(t, ts.DB)
	cookies := testutil.Login(t, ts, "petr@example.com", password)

	t.Run("sparse patch leaves other fields intact", func(t *testing.T) {
		resp := testutil.Request(t, ts, http.MethodPatch, "/users/current", cookies,
			map[string]string{"first_name": "Pyotr"})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var result struct {
			ID        uint    `json:"id"`
			FirstName string  `json:"first_name"`
			LastName  string  `json:"last_name"`
			Phone     *string `json:"phone"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, "Pyotr", result.FirstName)
		assert.Equal(t, "Volkov", result.LastName)
		require.NotNil(t, result.Phone)
		assert.Equal(t, "+14155552671", *result.Phone)
	})

	t.Run("invalid phone is a 400 with code", func(t *testing.T) {
		resp := testutil.Request(t, ts, http.MethodPatch, "/users/current", cookies,
			map[string]string{"phone": "12345"})
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "phone")
	})

	t.Run("future birthday is rejected", func(t *testing.T) {
		resp := testutil.Request(t, ts, http.MethodPatch, "/users/current", cookies,
			map[string]string{"birthday": "2999-01-01"})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("email collision is a conflict", func(t *testing.T) {
		testutil.NewUserBuilder().WithEmail("occupied@example.com").Build(t, ts.DB)

		resp := testutil.Request(t, ts, http.MethodPatch, "/users/current", cookies,
			map[string]string{"email": "occupied@example.com"})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusConflict)
	})
}

func TestListUsers(t *testing.T) {
	ts := testutil.NewTestServer(t)

	for i := 0; i < 12; i++ {
		testutil.NewUserBuilder().
			WithEmail(fmt.Sprintf("member%02d@example.com", i)).
			WithPassword("memberpass").
			Build(t, ts.DB)
	}
	cookies := testutil.Login(t, ts, "member00@example.com", "memberpass")

	type listResponse struct {
		Data []struct {
			ID        uint   `json:"id"`
			FirstName string `json:"first_name"`
			Email     string `json:"email"`
		} `json:"data"`
		Meta struct {
			Pagination struct {
				Total int64 `json:"total"`
				Page  int   `json:"page"`
				Size  int   `json:"size"`
			} `json:"pagination"`
		} `json:"meta"`
	}

	t.Run("pages are sized and total is unfiltered", func(t *testing.T) {
		resp := testutil.Request(t, ts, http.MethodGet, "/users?page=2&size=5", cookies, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var result listResponse
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Len(t, result.Data, 5)
		assert.Equal(t, int64(12), result.Meta.Pagination.Total)
		assert.Equal(t, 2, result.Meta.Pagination.Page)
		assert.Equal(t, "member05@example.com", result.Data[0].Email)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		resp := testutil.Request(t, ts, http.MethodGet, "/users?page=4&size=5", cookies, nil)
		defer resp.Body.Close()

		var result listResponse
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Empty(t, result.Data)
		assert.Equal(t, int64(12), result.Meta.Pagination.Total)
	})

	t.Run("missing pagination params", func(t *testing.T) {
		resp := testutil.Request(t, ts, http.MethodGet, "/users", cookies, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})
}
