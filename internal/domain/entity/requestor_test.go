package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestor_CanManageCredential(t *testing.T) {
	tests := []struct {
		name      string
		requestor Requestor
		target    string
		want      bool
	}{
		{name: "admin on other credential", requestor: Requestor{Email: "admin@x.com", IsAdmin: true}, target: "a@x.com", want: true},
		{name: "self", requestor: Requestor{Email: "a@x.com"}, target: "a@x.com", want: true},
		{name: "other non admin", requestor: Requestor{Email: "b@x.com"}, target: "a@x.com", want: false},
		{name: "anonymous", requestor: Requestor{}, target: "a@x.com", want: false},
		{name: "anonymous on empty target", requestor: Requestor{}, target: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.requestor.CanManageCredential(tt.target))
		})
	}
}
