package app_test

import (
	"testing"

	"hotelbook/internal/app"
	"hotelbook/internal/domain"
)

func ident(id string, r domain.Role) domain.Identity {
	return domain.Identity{UserID: id, Role: r}
}

func TestBookingMutationPolicy(t *testing.T) {
	owner := "u1"
	cases := []struct {
		name   string
		caller domain.Identity
		want   bool
	}{
		{"owner", ident("u1", domain.RoleUser), true},
		{"other user", ident("u2", domain.RoleUser), false},
		{"employee non-owner", ident("u2", domain.RoleEmployee), false},
		{"admin non-owner", ident("u2", domain.RoleAdmin), true},
	}
	for _, c := range cases {
		if got := app.CanMutateBooking(c.caller, owner); got != c.want {
			t.Errorf("%s: CanMutateBooking = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestGlobalBookingListingRequiresAdmin(t *testing.T) {
	if app.CanListAllBookings(ident("u", domain.RoleEmployee)) {
		t.Fatal("employee must not list all bookings")
	}
	if !app.CanListAllBookings(ident("u", domain.RoleAdmin)) {
		t.Fatal("admin must list all bookings")
	}
}

func TestHotelManagementRequiresAdmin(t *testing.T) {
	for _, r := range []domain.Role{domain.RoleUser, domain.RoleEmployee} {
		if app.CanManageHotels(ident("u", r)) {
			t.Fatalf("role %v must not manage hotels", r)
		}
	}
	if !app.CanManageHotels(ident("u", domain.RoleAdmin)) {
		t.Fatal("admin must manage hotels")
	}
}

func TestUserAccessPolicy(t *testing.T) {
	// self access always works
	if !app.CanReadUser(ident("u1", domain.RoleUser), "u1") ||
		!app.CanUpdateUser(ident("u1", domain.RoleUser), "u1") {
		t.Fatal("self access must be allowed")
	}
	// reading someone else needs employee or better
	if app.CanReadUser(ident("u1", domain.RoleUser), "u2") {
		t.Fatal("plain user must not read others")
	}
	if !app.CanReadUser(ident("u1", domain.RoleEmployee), "u2") {
		t.Fatal("employee must read others")
	}
	// updating someone else needs admin, employee is not enough
	if app.CanUpdateUser(ident("u1", domain.RoleEmployee), "u2") {
		t.Fatal("employee must not update others")
	}
	if !app.CanUpdateUser(ident("u1", domain.RoleAdmin), "u2") {
		t.Fatal("admin must update others")
	}
}
