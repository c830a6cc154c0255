package handler

import (
	"net/url"
	"strings"
	"testing"

	"github.com/wahyusaputra/motorshop-backend/internal/model"
)

func TestGoogleCallbackURLCarriesTokenAndRole(t *testing.T) {
	token := "eyJhbGciOiJIUzI1NiJ9.payload.sig+extra"
	redirect := googleCallbackURL("http://localhost:5173", token, model.RoleCustomer)

	if !strings.HasPrefix(redirect, "http://localhost:5173/auth/callback?") {
		t.Fatalf("redirect = %q, want frontend callback path", redirect)
	}
	u, err := url.Parse(redirect)
	if err != nil {
		t.Fatal(err)
	}
	q := u.Query()
	if got := q.Get("token"); got != token {
		t.Errorf("token param = %q, want %q", got, token)
	}
	if got := q.Get("role"); got != string(model.RoleCustomer) {
		t.Errorf("role param = %q, want %q", got, model.RoleCustomer)
	}
}
