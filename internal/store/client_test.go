package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestListHolidays_BareArray(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/master-calendar/holiday/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "name": "New Year", "date": "2025-01-01", "holiday_type": "regular"},
			{"id": "abc", "name": "Broken", "date": "not-a-date", "holiday_type": "special"}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0, logger)
	holidays, err := client.ListHolidays(context.Background(), "tok123")
	if err != nil {
		t.Fatalf("ListHolidays returned error: %v", err)
	}

	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "Bearer tok123")
	}
	if len(holidays) != 2 {
		t.Fatalf("got %d holidays, want 2", len(holidays))
	}
	if holidays[0].ID != "1" || holidays[0].Name != "New Year" {
		t.Errorf("unexpected first holiday: %+v", holidays[0])
	}
	if !holidays[0].Date.Valid() {
		t.Errorf("first holiday date should be valid")
	}
	if holidays[1].Date.Valid() {
		t.Errorf("unparseable date should decode to the zero value, got %v", holidays[1].Date)
	}
}

func TestListHolidays_PageEnvelope(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count": 1, "next": null, "previous": null, "results": [
			{"id": 7, "name": "Labor Day", "date": "2025-05-01", "holiday_type": "regular"}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0, logger)
	holidays, err := client.ListHolidays(context.Background(), "")
	if err != nil {
		t.Fatalf("ListHolidays returned error: %v", err)
	}
	if len(holidays) != 1 || holidays[0].ID != "7" {
		t.Fatalf("unexpected holidays: %+v", holidays)
	}
}

func TestDoRequest_Unauthorized(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client := NewClient(srv.URL, 0, logger)
		_, err := client.CreateHoliday(context.Background(), "expired", Holiday{Name: "X"})
		if !errors.Is(err, ErrUnauthorized) {
			t.Errorf("status %d: error = %v, want ErrUnauthorized", status, err)
		}
		srv.Close()
	}
}

func TestDoRequest_StatusError(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0, logger)
	err := client.DeleteHoliday(context.Background(), "t", "12")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want StatusError", err)
	}
	if statusErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", statusErr.StatusCode)
	}
}

func TestCreateHoliday_SendsWireFormat(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 42, "name": "New Year", "date": "2025-01-01", "holiday_type": "regular"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0, logger)
	h := Holiday{
		Name:        "New Year",
		Date:        NewCalDate(time.Date(2025, time.January, 1, 15, 4, 5, 0, time.UTC)),
		HolidayType: HolidayTypeRegular,
	}
	created, err := client.CreateHoliday(context.Background(), "tok", h)
	if err != nil {
		t.Fatalf("CreateHoliday returned error: %v", err)
	}

	if got["date"] != "2025-01-01" {
		t.Errorf("wire date = %v, want 2025-01-01", got["date"])
	}
	if _, present := got["id"]; present {
		t.Errorf("unsaved holiday must not send an id, body: %v", got)
	}
	if created.ID != "42" {
		t.Errorf("created.ID = %q, want 42", created.ID)
	}
}

func TestUpdatePayrollPeriod_Path(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 3, "payroll_period_start": "2025-01-16", "payroll_period_end": "2025-01-31"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 0, logger)
	p := PayrollPeriod{
		Start: NewCalDate(time.Date(2025, time.January, 16, 0, 0, 0, 0, time.UTC)),
		End:   NewCalDate(time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)),
	}
	if _, err := client.UpdatePayrollPeriod(context.Background(), "tok", "3", p); err != nil {
		t.Fatalf("UpdatePayrollPeriod returned error: %v", err)
	}

	if gotMethod != http.MethodPut {
		t.Errorf("method = %s, want PUT", gotMethod)
	}
	if gotPath != "/master-calendar/payrollperiod/3/" {
		t.Errorf("path = %s, want /master-calendar/payrollperiod/3/", gotPath)
	}
}
