package validator

import (
	"io"
	"strings"
	"testing"

	"medibook/pkg/logger"
	"medibook/pkg/model"
)

func newTestValidator(t *testing.T) *DoctorValidator {
	t.Helper()
	return NewDoctorValidator(logger.New(logger.Config{Output: io.Discard}))
}

func validBooking() *model.BookingRequest {
	return &model.BookingRequest{
		DoctorID:  "64a1f0c2e4b0a1b2c3d4e5f6",
		Date:      "2026-09-14",
		Time:      "10:30",
		PatientID: "64a1f0c2e4b0a1b2c3d4e5f7",
	}
}

func TestValidateBookingAccepts(t *testing.T) {
	if err := newTestValidator(t).ValidateBooking(validBooking()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateBookingRejectsBadTime(t *testing.T) {
	v := newTestValidator(t)

	for _, bad := range []string{"25:00", "10:65", "1030", "ten", ""} {
		req := validBooking()
		req.Time = bad
		if err := v.ValidateBooking(req); err == nil {
			t.Errorf("time %q accepted", bad)
		}
	}
}

func TestValidateBookingRejectsBadDate(t *testing.T) {
	v := newTestValidator(t)

	for _, bad := range []string{"14-09-2026", "2026/09/14", "tomorrow", ""} {
		req := validBooking()
		req.Date = bad
		if err := v.ValidateBooking(req); err == nil {
			t.Errorf("date %q accepted", bad)
		}
	}
}

func TestValidateBookingRejectsBadDoctorID(t *testing.T) {
	req := validBooking()
	req.DoctorID = "not-an-object-id"

	err := newTestValidator(t).ValidateBooking(req)
	if err == nil {
		t.Fatal("malformed doctor ID accepted")
	}
	if !strings.Contains(err.Error(), "DoctorID") {
		t.Errorf("error does not name the field: %v", err)
	}
}

func TestValidateCheckIn(t *testing.T) {
	v := newTestValidator(t)

	if err := v.ValidateCheckIn(&model.CheckInRequest{
		DoctorID: "64a1f0c2e4b0a1b2c3d4e5f6",
		Date:     "2026-09-14",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := v.ValidateCheckIn(&model.CheckInRequest{Date: "2026-09-14"}); err == nil {
		t.Fatal("missing doctor ID accepted")
	}
}

func TestValidateDoctor(t *testing.T) {
	v := newTestValidator(t)

	if err := v.ValidateDoctor(&model.Doctor{
		Name:           "Dr Shah",
		Specialization: "Cardiology",
		DepartmentName: "Cardiology",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := v.ValidateDoctor(&model.Doctor{Name: "X"}); err == nil {
		t.Fatal("single-letter name with missing fields accepted")
	}
}
