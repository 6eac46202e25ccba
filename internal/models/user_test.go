package models

import "testing"

func TestHasAddress(t *testing.T) {
	cases := []struct {
		name string
		user *User
		want bool
	}{
		{"nil user", nil, false},
		{"empty address", &User{}, false},
		{"whitespace only", &User{Address: "   \t"}, false},
		{"real address", &User{Address: "12 MG Road"}, true},
		{"padded address", &User{Address: "  12 MG Road  "}, true},
	}
	for _, tc := range cases {
		if got := tc.user.HasAddress(); got != tc.want {
			t.Errorf("%s: HasAddress() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsAdmin(t *testing.T) {
	if (*User)(nil).IsAdmin() {
		t.Fatal("nil user must not be admin")
	}
	if (&User{Role: "user"}).IsAdmin() {
		t.Fatal("user role must not be admin")
	}
	if !(&User{Role: "admin"}).IsAdmin() {
		t.Fatal("admin role must be admin")
	}
}
