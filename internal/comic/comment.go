// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

package comic

// # Comment Forest

// Comment is a node in the nested discussion tree of a comic or chapter.
//
// The author display fields (Username, UserAvatar, UserTitle, UserRankSystem)
// are snapshotted at post time and never rewritten when the author's profile
// changes later. Replies are only ever appended, never re-parented, so the
// forest is cycle-free by construction.
type Comment struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	Username       string `json:"username"`
	UserAvatar     string `json:"user_avatar,omitempty"`
	UserTitle      string `json:"user_title,omitempty"`
	UserRankSystem string `json:"user_rank_system,omitempty"`

	// Content is the raw body as typed; ContentHTML is the sanitized
	// rendering produced once at post time.
	Content     string `json:"content"`
	ContentHTML string `json:"content_html,omitempty"`

	// Likes holds user ids with set semantics (no duplicates).
	Likes []string `json:"likes,omitempty"`

	CreatedAt int64 `json:"created_at"`

	// Replies nest recursively with unbounded depth.
	Replies []Comment `json:"replies,omitempty"`
}

// # Forest Rewrites
//
// Both operations are total over well-formed forests and observe immutability:
// the caller's forest is never mutated; untouched subtrees are shared.

// AddReply appends reply under the first node (in pre-order) whose id matches
// parentID, and reports whether a target was found.
//
// An empty parentID appends the reply at the top level of the forest. A
// parentID matching no node is a no-op returning the original forest with
// found=false, so callers can detect a dangling reply target.
func AddReply(forest []Comment, parentID string, reply Comment) ([]Comment, bool) {
	if parentID == "" {
		out := make([]Comment, len(forest), len(forest)+1)
		copy(out, forest)
		return append(out, reply), true
	}

	return addReply(forest, parentID, reply)
}

func addReply(nodes []Comment, parentID string, reply Comment) ([]Comment, bool) {
	for i := range nodes {
		if nodes[i].ID == parentID {
			out := make([]Comment, len(nodes))
			copy(out, nodes)

			node := nodes[i]
			node.Replies = make([]Comment, len(nodes[i].Replies), len(nodes[i].Replies)+1)
			copy(node.Replies, nodes[i].Replies)
			node.Replies = append(node.Replies, reply)

			out[i] = node
			return out, true
		}

		if rewritten, found := addReply(nodes[i].Replies, parentID, reply); found {
			out := make([]Comment, len(nodes))
			copy(out, nodes)

			node := nodes[i]
			node.Replies = rewritten
			out[i] = node
			return out, true
		}
	}

	return nodes, false
}

// ToggleLike flips the membership of userID in the likes set of the comment
// with the given id, leaving every other node value-equal.
//
// The whole forest is rewritten along every path; a commentID matching no
// node yields a forest equal to the input.
func ToggleLike(forest []Comment, commentID, userID string) []Comment {
	if len(forest) == 0 {
		return forest
	}

	out := make([]Comment, len(forest))
	for i, n := range forest {
		node := n
		if node.ID == commentID {
			node.Likes = toggleMember(node.Likes, userID)
		}
		node.Replies = ToggleLike(node.Replies, commentID, userID)
		out[i] = node
	}

	return out
}

// CountComments returns the total number of nodes in the forest.
func CountComments(forest []Comment) int {
	total := 0
	for i := range forest {
		total += 1 + CountComments(forest[i].Replies)
	}
	return total
}

// FindComment returns the first node (in pre-order) with the given id, or nil.
func FindComment(forest []Comment, commentID string) *Comment {
	for i := range forest {
		if forest[i].ID == commentID {
			return &forest[i]
		}
		if found := FindComment(forest[i].Replies, commentID); found != nil {
			return found
		}
	}
	return nil
}

// toggleMember removes member if present, appends it otherwise.
// The result collapses to nil when empty so value equality holds for
// round-trips (toggle twice == original).
func toggleMember(set []string, member string) []string {
	for i, m := range set {
		if m == member {
			if len(set) == 1 {
				return nil
			}
			out := make([]string, 0, len(set)-1)
			out = append(out, set[:i]...)
			return append(out, set[i+1:]...)
		}
	}

	out := make([]string, len(set), len(set)+1)
	copy(out, set)
	return append(out, member)
}
