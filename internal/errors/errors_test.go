package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestFetchError_StatusCode(t *testing.T) {
	err := NewFetchError("mealServiceDietInfo", 500, stderrors.New("boom"))

	msg := err.Error()
	if !strings.Contains(msg, "mealServiceDietInfo") {
		t.Errorf("error message missing endpoint: %s", msg)
	}
	if !strings.Contains(msg, "status=500") {
		t.Errorf("error message missing status: %s", msg)
	}
}

func TestFetchError_ResultCode(t *testing.T) {
	err := NewResultCodeError("SchoolSchedule", "ERROR-300", "필수 값이 누락되어 있습니다.")

	if !stderrors.Is(err, ErrBadResultCode) {
		t.Error("result code error should match ErrBadResultCode")
	}
	if !strings.Contains(err.Error(), "ERROR-300") {
		t.Errorf("error message missing result code: %s", err.Error())
	}
}

func TestFetchError_Unwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewFetchError("hisTimetable", 0, cause)

	if !stderrors.Is(err, cause) {
		t.Error("FetchError should unwrap to its cause")
	}

	var fetchErr *FetchError
	if !stderrors.As(err, &fetchErr) {
		t.Fatal("errors.As failed for FetchError")
	}
	if fetchErr.Endpoint != "hisTimetable" {
		t.Errorf("Endpoint = %q, want %q", fetchErr.Endpoint, "hisTimetable")
	}
}
