package handlers

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/buckets/internal/forms"
	"github.com/MrSnakeDoc/buckets/internal/store"
)

func TestPathID(t *testing.T) {
	tests := []struct {
		raw     string
		want    uint
		wantErr bool
	}{
		{raw: "1", want: 1},
		{raw: "42", want: 42},
		{raw: "0", want: 0},
		{raw: "abc", wantErr: true},
		{raw: "-1", wantErr: true},
		{raw: "1.5", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add(ParamBucketID, tt.raw)
			r := httptest.NewRequest("GET", "/", nil)
			r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

			got, err := pathID(r, ParamBucketID)
			if (err != nil) != tt.wantErr {
				t.Fatalf("pathID(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, store.ErrNotFound) {
					t.Errorf("pathID(%q) error should match store.ErrNotFound", tt.raw)
				}
				return
			}
			if got != tt.want {
				t.Errorf("pathID(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFormHelpers(t *testing.T) {
	if got := bucketURL(7); got != "/bucket/7/" {
		t.Errorf("bucketURL(7) = %q", got)
	}
	if got := itemFormAction(forms.Create, 3, 0); got != "/bucket/3/item/create/" {
		t.Errorf("create action = %q", got)
	}
	if got := bucketFormAction(forms.Create, 0); got != "/bucket/create/" {
		t.Errorf("create bucket action = %q", got)
	}
	if got := itemFormAction(forms.Update, 3, 9); got != "/bucket/3/item/9/update/" {
		t.Errorf("update action = %q", got)
	}
}
