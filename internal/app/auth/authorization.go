// Package auth holds the authorization predicates. They are pure functions
// over already-loaded entities: no hidden state, no I/O. Callers translate a
// false result into apperrors.ErrPermissionDenied.
package auth

import (
	"github.com/emre/communia/internal/app/models"
	"github.com/emre/communia/internal/pkg/helpers"
)

// IsCommunityAdmin reports whether userID is in the community's admin set.
func IsCommunityAdmin(community *models.Community, userID int64) bool {
	if community == nil {
		return false
	}
	return helpers.ContainsID(community.AdminIDs, userID)
}

// IsCommunityMember reports whether userID is in the community's member set.
func IsCommunityMember(community *models.Community, userID int64) bool {
	if community == nil {
		return false
	}
	return helpers.ContainsID(community.MemberIDs, userID)
}

// IsChatCreatorOrCommunityAdmin reports whether userID created the chat or
// administers the community the chat belongs to.
func IsChatCreatorOrCommunityAdmin(chat *models.Chat, community *models.Community, userID int64) bool {
	if chat == nil {
		return false
	}
	if chat.CreatorID == userID {
		return true
	}
	return IsCommunityAdmin(community, userID)
}

// IsChatMember reports whether userID is a participant of the chat.
func IsChatMember(chat *models.Chat, userID int64) bool {
	if chat == nil {
		return false
	}
	return helpers.ContainsID(chat.UserIDs, userID)
}

// AnyCommunityAdmin reports whether any of userIDs is in the community's
// admin set.
func AnyCommunityAdmin(community *models.Community, userIDs []int64) bool {
	if community == nil {
		return false
	}
	return helpers.AnyOverlap(community.AdminIDs, userIDs)
}
