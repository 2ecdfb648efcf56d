// Package policy is the single place channel access is decided. Handlers
// resolve the channel themselves (so a missing channel can still be a 404)
// and then ask this package whether the user may view or post.
package policy

import (
	"github.com/jambohub/jambohub/internal/models"
	"github.com/jambohub/jambohub/internal/types"
)

// CanView reports whether user may read channel. Admins bypass every check,
// including the active flag and the unit match.
func CanView(user models.User, channel models.Channel) bool {
	if user.Role == types.RoleAdmin {
		return true
	}

	if !channel.Active {
		return false
	}

	if !channel.AllowsRole(user.Role) {
		return false
	}

	if channel.Type == types.ChannelTypeUnit && channel.Unit != user.Unit {
		return false
	}

	return true
}

// CanPost reports whether user may post to channel. Same precedence as
// CanView with the post-role list in place of the view list; the unit match
// applies to posting as well.
func CanPost(user models.User, channel models.Channel) bool {
	if user.Role == types.RoleAdmin {
		return true
	}

	if !channel.Active {
		return false
	}

	if !channel.AllowsPosting(user.Role) {
		return false
	}

	if channel.Type == types.ChannelTypeUnit && channel.Unit != user.Unit {
		return false
	}

	return true
}
