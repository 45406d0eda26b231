package server_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/appleboy/gofight"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fastjson"
)

func createList(t *testing.T, engine *echo.Echo, r *gofight.RequestConfig, id, typ string) {
	r.POST("/api/lists").SetJSON(gofight.D{"id": id, "name": id, "type": typ}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
	})
}

func TestRequestListItem(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	createList(t, engine, r, "abc", "ip")

	var id string
	r.POST("/api/lists/items").SetJSON(gofight.D{"list_id": "abc", "value": " 127.0.0.1 "}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)

		id = string(v.GetStringBytes("id"))
		assert.NotEmpty(t, id)
		assert.Equal(t, "abc", string(v.GetStringBytes("list_id")))
		assert.Equal(t, "ip", string(v.GetStringBytes("type")))
		assert.Equal(t, "127.0.0.1", string(v.GetStringBytes("value")))
		assert.Equal(t, "elastic", string(v.GetStringBytes("created_by")))
		assert.Equal(t, string(v.GetStringBytes("created_at")), string(v.GetStringBytes("updated_at")))
	})

	r.POST("/api/lists/items").SetJSON(gofight.D{"id": id, "list_id": "abc", "value": "127.0.0.2"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusConflict, r.Code)
	})

	r.POST("/api/lists/items").SetJSON(gofight.D{"list_id": "abc", "value": "127.0.0.256"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-value","message":"invalid ip address for type ip: \"127.0.0.256\""}}`, r.Body.String())
	})

	r.POST("/api/lists/items").SetJSON(gofight.D{"list_id": "unknown", "value": "127.0.0.1"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"not-found","message":"list id: \"unknown\" not found"}}`, r.Body.String())
	})

	r.GET("/api/lists/items?id=" + id).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.Equal(t, id, string(v.GetStringBytes("id")))
		assert.Equal(t, "127.0.0.1", string(v.GetStringBytes("value")))
	})

	r.GET("/api/lists/items?list_id=abc&value=127.0.0.1").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)

		items := v.GetArray()
		if assert.Len(t, items, 1) {
			assert.Equal(t, id, string(items[0].GetStringBytes("id")))
		}
	})

	r.GET("/api/lists/items?list_id=abc&value=127.0.0.9").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"not-found","message":"list id: \"abc\" item of value \"127.0.0.9\" not found"}}`, r.Body.String())
	})

	r.GET("/api/lists/items?list_id=abc").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-parameters","message":"value is required along with list_id"}}`, r.Body.String())
	})

	r.GET("/api/lists/items").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-parameters","message":"id is required when list_id is missing, list_id is required when id is missing"}}`, r.Body.String())
	})

	r.GET("/api/lists/items?id=" + id + "&list_id=abc&value=127.0.0.1").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-parameters","message":"id can't be used along with list_id"}}`, r.Body.String())
	})

	r.DELETE("/api/lists/items?id=" + id).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.Equal(t, id, string(v.GetStringBytes("id")))
	})

	r.DELETE("/api/lists/items?id=" + id).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"not-found","message":"list item id: \"`+id+`\" not found"}}`, r.Body.String())
	})
}

func TestRequestListItem_DeleteByValue(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	createList(t, engine, r, "abc", "keyword")
	for _, v := range []string{"george", "elsa", "george"} {
		r.POST("/api/lists/items").SetJSON(gofight.D{"list_id": "abc", "value": v}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusOK, r.Code)
		})
	}

	r.DELETE("/api/lists/items?list_id=abc&value=george").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.Len(t, v.GetArray(), 2)
	})

	r.DELETE("/api/lists/items?list_id=abc&value=george").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
	})

	r.GET("/api/lists/items?list_id=abc&value=elsa").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
	})
}

func TestRequestImportExport(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	body, header := upload(t, "blocked.txt", "127.0.0.1\n127.0.0.2\n\n::1\n")

	r.POST("/api/lists/items/_import?type=ip").SetBody(body).SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.Equal(t, 3, v.GetInt("imported"))
		assert.Equal(t, "blocked.txt", string(v.GetStringBytes("list", "id")))
		assert.Equal(t, "blocked.txt", string(v.GetStringBytes("list", "name")))
		assert.Equal(t, "File uploaded from file system of blocked.txt", string(v.GetStringBytes("list", "description")))
		assert.Equal(t, "ip", string(v.GetStringBytes("list", "type")))
	})

	// Existing list
	body, header = upload(t, "more.txt", "10.0.0.1\n")
	r.POST("/api/lists/items/_import?list_id=blocked.txt").SetBody(body).SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.Equal(t, 1, v.GetInt("imported"))
	})

	r.POST("/api/lists/items/_export?list_id=blocked.txt").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.Equal(t, echo.MIMETextPlainCharsetUTF8, (*httptest.ResponseRecorder)(r).Header().Get(echo.HeaderContentType))
		assert.Equal(t, `attachment; filename="blocked.txt"`, (*httptest.ResponseRecorder)(r).Header().Get(echo.HeaderContentDisposition))

		lines := strings.Split(strings.TrimSuffix(r.Body.String(), "\n"), "\n")
		assert.ElementsMatch(t, []string{"127.0.0.1", "127.0.0.2", "::1", "10.0.0.1"}, lines)
	})

	r.POST("/api/lists/items/_export?list_id=unknown").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
	})
}

func TestRequestImport_Invalid(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	createList(t, engine, r, "abc", "ip")

	body, header := upload(t, "values.txt", "10.0.0.1\nnope\n10.0.0.2\n")
	r.POST("/api/lists/items/_import?list_id=abc").SetBody(body).SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-value","message":"line 2: invalid ip address for type ip: \"nope\" (0 values imported)"}}`, r.Body.String())
	})

	r.POST("/api/lists/items/_import").SetBody(body).SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-parameters","message":"list_id is required when type is missing"}}`, r.Body.String())
	})

	r.POST("/api/lists/items/_import?list_id=abc&type=ip").SetBody(body).SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-parameters","message":"list_id can't be used along with type"}}`, r.Body.String())
	})

	r.POST("/api/lists/items/_import?list_id=unknown").SetBody(body).SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
	})

	body, header = upload(t, "abc", "george\n")
	r.POST("/api/lists/items/_import?type=keyword").SetBody(body).SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusConflict, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"conflict","message":"list id: \"abc\" already exists with type ip"}}`, r.Body.String())
	})
}
