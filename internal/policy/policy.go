// Package policy holds the pure permission rules for questionnaires.
// Functions here never touch storage and never fail; callers translate a
// false result into an access-denied or redirect outcome.
package policy

import (
	"github.com/lshigami/Quillback/internal/model"
)

// CanAccess reports whether the actor may view a questionnaire. A nil user
// is an anonymous visitor and only sees public questionnaires.
func CanAccess(user *model.User, q *model.Questionnaire) bool {
	if user == nil {
		return q.IsPublic
	}
	if user.IsAdmin() {
		return true
	}
	if q.CreatorID == user.ID {
		return true
	}
	return q.IsPublic
}

// CanEdit gates question CRUD, settings, analytics, response listing, export
// and deletion. Only the creator and admins pass.
func CanEdit(user *model.User, q *model.Questionnaire) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin() {
		return true
	}
	return q.CreatorID == user.ID
}

// CanRespond reports whether the actor may submit answers. hasCompleted is
// the caller-supplied fact of whether the actor already has a complete
// response to q; it is ignored for anonymous actors.
func CanRespond(user *model.User, q *model.Questionnaire, hasCompleted bool) bool {
	if !q.IsActive {
		return false
	}
	if user == nil {
		return q.AllowAnonymous
	}
	if !q.AllowMultipleResponses && hasCompleted {
		return false
	}
	return true
}

// CanCreate reports whether the actor may create questionnaires.
func CanCreate(user *model.User) bool {
	return user != nil && user.IsCreator()
}
