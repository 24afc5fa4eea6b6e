// Package authz is the authorization engine: a pure decision function over
// (action, role, ownership) with no I/O. Callers fetch the resource first, so
// a missing article surfaces as not-found before the permission check runs;
// this reveals existence to unauthorized callers and is a deliberate,
// documented product decision rather than an oversight.
package authz

import "pressroom/internal/model"

// Action enumerates the operations gated by the engine.
type Action int

const (
	ActionCreateArticle Action = iota
	ActionViewArticles
	ActionEditArticle
	ActionDeleteArticle
	ActionViewOwnArticles
)

// Can decides whether an actor with the given role may perform action on a
// resource owned by ownerID. actorID and ownerID are only consulted for
// ownership-scoped actions; pass zero values otherwise.
func Can(action Action, role model.Role, actorID, ownerID uint) bool {
	switch action {
	case ActionCreateArticle:
		return role == model.RoleAdmin || role == model.RoleEditor
	case ActionViewArticles:
		return role == model.RoleAdmin || role == model.RoleEditor || role == model.RoleViewer
	case ActionEditArticle:
		if role == model.RoleAdmin {
			return true
		}
		return role == model.RoleEditor && actorID != 0 && actorID == ownerID
	case ActionDeleteArticle:
		return role == model.RoleAdmin
	case ActionViewOwnArticles:
		// Any authenticated actor; the listing is scoped to actorID upstream.
		return role.Valid()
	}
	return false
}
