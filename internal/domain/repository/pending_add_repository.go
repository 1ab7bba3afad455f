package repository

// PendingAddRepository holds flight codes waiting for a "<date> <origin> <dest>"
// follow-up, one per owner. Lock serializes all work for one owner; the
// returned func releases it.
type PendingAddRepository interface {
	Lock(ownerID int64) (unlock func())
	Get(ownerID int64) (string, bool)
	Put(ownerID int64, flightCode string)
	Delete(ownerID int64) bool
}
