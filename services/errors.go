package services

import "errors"

// Service-level outcomes. Handlers translate these into HTTP statuses;
// none of them should ever take the process down.
var (
	// ErrNotFound means the referenced round or game does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNotPermitted means the acting user does not own the resource.
	ErrNotPermitted = errors.New("not permitted")

	// ErrRoundAlreadyInGame is the soft rejection for a duplicate membership.
	ErrRoundAlreadyInGame = errors.New("round is already in the game")
)

// CanModify is the single ownership predicate applied by every mutating
// round/game operation.
func CanModify(actingUserID, ownerID uint) bool {
	return actingUserID == ownerID
}
