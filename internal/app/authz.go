package app

import "hotelbook/internal/domain"

// Authorization policy. Pure predicates over the caller's verified
// identity; the services call these before touching the store.
//
// Role order: User(0) < Employee(1) < Admin(2).

// CanMutateBooking: the owning user or an Admin. Employee alone is not
// enough for booking mutation (unlike user reads below).
func CanMutateBooking(caller domain.Identity, ownerID string) bool {
	return caller.UserID == ownerID || caller.Role.AtLeast(domain.RoleAdmin)
}

// CanListAllBookings gates the global admin listing.
func CanListAllBookings(caller domain.Identity) bool {
	return caller.Role.AtLeast(domain.RoleAdmin)
}

// CanManageHotels covers hotel create/update/delete and image handling.
func CanManageHotels(caller domain.Identity) bool {
	return caller.Role.AtLeast(domain.RoleAdmin)
}

// CanReadUser: own record always; someone else's needs at least Employee.
func CanReadUser(caller domain.Identity, targetID string) bool {
	return caller.UserID == targetID || caller.Role.AtLeast(domain.RoleEmployee)
}

// CanUpdateUser: own record always; someone else's needs Admin.
func CanUpdateUser(caller domain.Identity, targetID string) bool {
	return caller.UserID == targetID || caller.Role.AtLeast(domain.RoleAdmin)
}

func CanListUsers(caller domain.Identity) bool {
	return caller.Role.AtLeast(domain.RoleAdmin)
}

// CanSetRole: only Admin may elevate or change roles.
func CanSetRole(caller domain.Identity) bool {
	return caller.Role.AtLeast(domain.RoleAdmin)
}
