package models

const (
	// BoxesPerUser is the fixed number of boxes created at registration.
	BoxesPerUser = 16
	// BoxCapacity is the storage ceiling of a single box.
	BoxCapacity = 30
)

// Box is one fixed-capacity container of creatures. All 16 boxes of a user
// are created together with the user and are never deleted.
type Box struct {
	// ID is the global box identifier.
	ID int64
	// UserID is the owning user.
	UserID string
	// Number is the per-user box number in [1, BoxesPerUser].
	Number int
	// NumStored counts the creatures currently assigned to the box.
	// It is maintained in the same transaction as any membership change.
	NumStored int
}
