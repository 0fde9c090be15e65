package showcase

import "context"

// ListOptions filter and page the public project listing.
type ListOptions struct {
	Page   int
	Limit  int
	Status string
	SortBy string // createdAt (default), views or title
}

// ProjectStore is the persistence contract for projects and their likes.
type ProjectStore interface {
	Create(ctx context.Context, p *Project) error
	Find(ctx context.Context, id string) (*Project, error)
	// List returns one page of projects plus the total count of matches.
	List(ctx context.Context, opts ListOptions) ([]*Project, int, error)
	ListByUser(ctx context.Context, userID string) ([]*Project, error)
	// SetLike adds or removes a single user's like. Idempotent.
	SetLike(ctx context.Context, projectID, userID string, liked bool) error
	// IncrementViews bumps the view counter atomically.
	IncrementViews(ctx context.Context, projectID string) error
}

// CommentStore is the persistence contract for comments.
type CommentStore interface {
	Create(ctx context.Context, c *Comment) error
	ListByProject(ctx context.Context, projectID string) ([]*Comment, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*Comment, error)
	CountByProject(ctx context.Context, projectID string) (int, error)
}
