package models

import (
	"testing"
	"time"
)

func TestScheduleLetterRequestValidate(t *testing.T) {
	valid := ScheduleLetterRequest{
		Body:           "body",
		Recipient:      "Future Me",
		Email:          "me@example.com",
		DeliveryOffset: Offset1Year,
	}

	tests := []struct {
		name    string
		mutate  func(r *ScheduleLetterRequest)
		wantErr bool
	}{
		{"valid", func(r *ScheduleLetterRequest) {}, false},
		{"empty body", func(r *ScheduleLetterRequest) { r.Body = "" }, true},
		{"empty recipient", func(r *ScheduleLetterRequest) { r.Recipient = "  " }, true},
		{"not an email", func(r *ScheduleLetterRequest) { r.Email = "not-an-email" }, true},
		{"email with spaces", func(r *ScheduleLetterRequest) { r.Email = "a b@example.com" }, true},
		{"email without tld", func(r *ScheduleLetterRequest) { r.Email = "me@localhost" }, true},
		{"empty offset", func(r *ScheduleLetterRequest) { r.DeliveryOffset = "" }, true},
		{"unknown offset", func(r *ScheduleLetterRequest) { r.DeliveryOffset = "4m" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDeliveryOffsetDeliveryDate(t *testing.T) {
	from := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		offset DeliveryOffset
		want   time.Time
	}{
		{Offset3Months, time.Date(2026, time.April, 15, 12, 0, 0, 0, time.UTC)},
		{Offset6Months, time.Date(2026, time.July, 15, 12, 0, 0, 0, time.UTC)},
		{Offset1Year, time.Date(2027, time.January, 15, 12, 0, 0, 0, time.UTC)},
		{Offset2Years, time.Date(2028, time.January, 15, 12, 0, 0, 0, time.UTC)},
		{Offset5Years, time.Date(2031, time.January, 15, 12, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got := tt.offset.DeliveryDate(from)
		if !got.Equal(tt.want) {
			t.Errorf("DeliveryDate(%s) = %v, want %v", tt.offset, got, tt.want)
		}
	}

	// Her offset gelecekte olmalı.
	for _, o := range []DeliveryOffset{Offset3Months, Offset6Months, Offset1Year, Offset2Years, Offset5Years} {
		if !o.DeliveryDate(from).After(from) {
			t.Errorf("DeliveryDate(%s) should be after the origin time", o)
		}
	}
}
