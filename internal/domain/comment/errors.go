package comment

import "errors"

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotAuthor       = errors.New("not authorized to modify this comment")
)
