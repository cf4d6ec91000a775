package engagement

import (
	"slices"

	"github.com/samber/lo"
)

// Reaction is the kind of engagement a user has with a post
type Reaction string

const (
	ReactionLike   Reaction = "like"
	ReactionUnlike Reaction = "unlike"
)

// Reactions holds the like and unlike sets of a single post.
// A user ID is a member of at most one of the two sets.
type Reactions struct {
	likes   map[int64]struct{}
	unlikes map[int64]struct{}
	PostID  int64
}

// NewReactions builds the reaction sets of a post from stored membership lists
func NewReactions(postID int64, likes, unlikes []int64) *Reactions {
	r := &Reactions{
		PostID:  postID,
		likes:   make(map[int64]struct{}, len(likes)),
		unlikes: make(map[int64]struct{}, len(unlikes)),
	}
	for _, id := range likes {
		r.likes[id] = struct{}{}
	}
	for _, id := range unlikes {
		r.unlikes[id] = struct{}{}
	}
	return r
}

// Likes returns the IDs of users who like the post, ascending
func (r *Reactions) Likes() []int64 {
	return sortedKeys(r.likes)
}

// Unlikes returns the IDs of users who unlike the post, ascending
func (r *Reactions) Unlikes() []int64 {
	return sortedKeys(r.unlikes)
}

// HasLiked reports whether userID is in the like set
func (r *Reactions) HasLiked(userID int64) bool {
	_, ok := r.likes[userID]
	return ok
}

// HasUnliked reports whether userID is in the unlike set
func (r *Reactions) HasUnliked(userID int64) bool {
	_, ok := r.unlikes[userID]
	return ok
}

// Clone returns a deep copy
func (r *Reactions) Clone() *Reactions {
	return NewReactions(r.PostID, r.Likes(), r.Unlikes())
}

// apply moves userID into the set for reaction and out of the opposite set.
// It fails without touching either set when the user already holds that reaction.
func (r *Reactions) apply(userID int64, reaction Reaction) error {
	target, opposite := r.likes, r.unlikes
	if reaction == ReactionUnlike {
		target, opposite = r.unlikes, r.likes
	}

	if _, ok := target[userID]; ok {
		return &AlreadyInStateError{Reaction: reaction}
	}

	target[userID] = struct{}{}
	delete(opposite, userID)
	return nil
}

// Changes lists the membership rows a store must add and remove to go from one state to another
type Changes struct {
	AddLikes      []int64
	RemoveLikes   []int64
	AddUnlikes    []int64
	RemoveUnlikes []int64
}

// Empty reports whether there is nothing to persist
func (c Changes) Empty() bool {
	return len(c.AddLikes) == 0 && len(c.RemoveLikes) == 0 &&
		len(c.AddUnlikes) == 0 && len(c.RemoveUnlikes) == 0
}

// Diff computes the changes between two states of the same post
func Diff(before, after *Reactions) Changes {
	beforeLikes, afterLikes := before.Likes(), after.Likes()
	beforeUnlikes, afterUnlikes := before.Unlikes(), after.Unlikes()

	return Changes{
		AddLikes:      lo.Without(afterLikes, beforeLikes...),
		RemoveLikes:   lo.Without(beforeLikes, afterLikes...),
		AddUnlikes:    lo.Without(afterUnlikes, beforeUnlikes...),
		RemoveUnlikes: lo.Without(beforeUnlikes, afterUnlikes...),
	}
}

func sortedKeys(set map[int64]struct{}) []int64 {
	keys := lo.Keys(set)
	slices.Sort(keys)
	return keys
}
