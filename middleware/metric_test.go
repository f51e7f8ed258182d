package middleware

import "testing"

func TestResourceLabel(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/api/bookings/:id/status", "bookings"},
		{"/api/inventory", "inventory"},
		{"/api/users/verify-email/:token", "users"},
		{"/metrics", "other"},
		{"undefined", "other"},
		{"/api/", "other"},
	}
	for _, c := range cases {
		if got := resourceLabel(c.path); got != c.want {
			t.Fatalf("resourceLabel(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}
