package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type FriendsController struct {
	store FriendStore
}

func NewFriendsController(store FriendStore) *FriendsController {
	return &FriendsController{store: store}
}

type addFriendRequest struct {
	FriendID uint `json:"friend_id" validate:"required"`
}

// AddFriend befriends two members.
// POST /api/users/:id/friends
func (fc *FriendsController) AddFriend(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req addFriendRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := fc.store.AddFriend(id, req.FriendID); err != nil {
		respondStoreError(c, err, "add friend")
		return
	}
	respondCreated(c, SuccessResponse{Message: "friendship created"})
}

// RemoveFriend ends a friendship from either side.
// DELETE /api/users/:id/friends/:friendId
func (fc *FriendsController) RemoveFriend(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	friendID, ok := parseIDParam(c, "friendId")
	if !ok {
		return
	}

	if err := fc.store.RemoveFriend(id, friendID); err != nil {
		respondStoreError(c, err, "remove friend")
		return
	}
	respondSuccess(c, "friendship removed")
}

// CheckFriendship reports whether two members are friends.
// GET /api/users/:id/friends/:friendId
func (fc *FriendsController) CheckFriendship(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	friendID, ok := parseIDParam(c, "friendId")
	if !ok {
		return
	}

	friends, err := fc.store.AreFriends(id, friendID)
	if err != nil {
		respondInternalError(c, err, "check friendship")
		return
	}
	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

// ListFriends returns the member's friends ordered by name.
// GET /api/users/:id/friends
func (fc *FriendsController) ListFriends(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	friends, err := fc.store.ListFriends(id)
	if err != nil {
		respondInternalError(c, err, "list friends")
		return
	}
	c.JSON(http.StatusOK, gin.H{"friends": friends})
}
