package beneficiario

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tiss/tiss/internal/apperr"
)

func newHandler() (*Handler, *mockRepo) {
	repo := newMockRepo()
	return NewHandler(NewService(repo)), repo
}

func request(method, target, body string) (*http.Request, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return req, httptest.NewRecorder()
}

func TestHandler_Create(t *testing.T) {
	h, _ := newHandler()
	e := echo.New()
	req, rec := request(http.MethodPost, "/api/v1/beneficiarios", `{"identificador":"12345678901","sexo":"f"}`)
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var got Beneficiario
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if got.ID == 0 {
		t.Error("expected assigned id in response")
	}
	if got.Sexo == nil || *got.Sexo != "F" {
		t.Error("expected normalized sexo in response")
	}
}

func TestHandler_Create_UnknownField(t *testing.T) {
	h, _ := newHandler()
	e := echo.New()
	req, rec := request(http.MethodPost, "/api/v1/beneficiarios", `{"identificador":"12345678901","nome":"x"}`)
	c := e.NewContext(req, rec)

	err := h.Create(c)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "campo desconhecido: nome" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestHandler_Get(t *testing.T) {
	h, repo := newHandler()
	b := &Beneficiario{Identificador: "12345678901"}
	if err := repo.Create(context.Background(), b); err != nil {
		t.Fatal(err)
	}

	e := echo.New()
	req, rec := request(http.MethodGet, "/api/v1/beneficiarios/1", "")
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_Get_NotFound(t *testing.T) {
	h, _ := newHandler()
	e := echo.New()
	req, rec := request(http.MethodGet, "/api/v1/beneficiarios/42", "")
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	err := h.Get(c)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestHandler_Get_BadID(t *testing.T) {
	h, _ := newHandler()
	e := echo.New()
	req, rec := request(http.MethodGet, "/api/v1/beneficiarios/abc", "")
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.Get(c)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "id inválido" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestHandler_List_Paginated(t *testing.T) {
	h, repo := newHandler()
	for _, ident := range []string{"CART-00001", "CART-00002", "CART-00003"} {
		if err := repo.Create(context.Background(), &Beneficiario{Identificador: ident}); err != nil {
			t.Fatal(err)
		}
	}

	e := echo.New()
	req, rec := request(http.MethodGet, "/api/v1/beneficiarios?page=1&per_page=2", "")
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("X-Total-Count"); got != "3" {
		t.Errorf("expected X-Total-Count 3, got %q", got)
	}

	var resp struct {
		Items      []Beneficiario `json:"items"`
		Pagination struct {
			Page       int `json:"page"`
			PerPage    int `json:"per_page"`
			Total      int `json:"total"`
			TotalPages int `json:"total_pages"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Pagination.Total != 3 || resp.Pagination.TotalPages != 2 {
		t.Errorf("unexpected pagination meta: %+v", resp.Pagination)
	}
}

func TestHandler_Delete(t *testing.T) {
	h, repo := newHandler()
	if err := repo.Create(context.Background(), &Beneficiario{Identificador: "12345678901"}); err != nil {
		t.Fatal(err)
	}

	e := echo.New()
	req, rec := request(http.MethodDelete, "/api/v1/beneficiarios/1", "")
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}

func TestHandler_Delete_NotFound(t *testing.T) {
	h, _ := newHandler()
	e := echo.New()
	req, rec := request(http.MethodDelete, "/api/v1/beneficiarios/7", "")
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	err := h.Delete(c)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
