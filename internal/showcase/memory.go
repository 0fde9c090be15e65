package showcase

import (
	"context"
	"sort"
	"sync"
)

// InMemoryProjects implements ProjectStore with in-process concurrency safety.
type InMemoryProjects struct {
	mu       sync.RWMutex
	projects map[string]*Project
}

// NewInMemoryProjects creates an empty project store.
func NewInMemoryProjects() *InMemoryProjects {
	return &InMemoryProjects{projects: make(map[string]*Project)}
}

func (s *InMemoryProjects) Create(ctx context.Context, p *Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := copyProject(p)
	s.projects[p.ID] = cp
	return nil
}

func (s *InMemoryProjects) Find(ctx context.Context, id string) (*Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyProject(p), nil
}

func (s *InMemoryProjects) List(ctx context.Context, opts ListOptions) ([]*Project, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []*Project
	for _, p := range s.projects {
		if opts.Status != "" && p.Status != opts.Status {
			continue
		}
		matches = append(matches, copyProject(p))
	}

	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		switch opts.SortBy {
		case "views":
			if a.Views != b.Views {
				return a.Views > b.Views
			}
		case "title":
			if a.Title != b.Title {
				return a.Title > b.Title
			}
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		}
		// ULIDs sort by creation time, keeps paging stable.
		return a.ID > b.ID
	})

	total := len(matches)
	start := (opts.Page - 1) * opts.Limit
	if start >= total {
		return nil, total, nil
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}
	return matches[start:end], total, nil
}

func (s *InMemoryProjects) ListByUser(ctx context.Context, userID string) ([]*Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Project
	for _, p := range s.projects {
		if p.CreatedBy == userID {
			out = append(out, copyProject(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *InMemoryProjects) SetLike(ctx context.Context, projectID, userID string, liked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[projectID]
	if !ok {
		return ErrNotFound
	}
	idx := -1
	for i, id := range p.Likes {
		if id == userID {
			idx = i
			break
		}
	}
	switch {
	case liked && idx == -1:
		p.Likes = append(p.Likes, userID)
	case !liked && idx >= 0:
		p.Likes = append(p.Likes[:idx], p.Likes[idx+1:]...)
	}
	return nil
}

func (s *InMemoryProjects) IncrementViews(ctx context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[projectID]
	if !ok {
		return ErrNotFound
	}
	p.Views++
	return nil
}

func copyProject(p *Project) *Project {
	cp := *p
	cp.Tags = append([]string(nil), p.Tags...)
	cp.Likes = append([]string(nil), p.Likes...)
	return &cp
}

// InMemoryComments implements CommentStore with in-process concurrency safety.
type InMemoryComments struct {
	mu       sync.RWMutex
	comments []*Comment
}

// NewInMemoryComments creates an empty comment store.
func NewInMemoryComments() *InMemoryComments {
	return &InMemoryComments{}
}

func (s *InMemoryComments) Create(ctx context.Context, c *Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.comments = append(s.comments, &cp)
	return nil
}

func (s *InMemoryComments) ListByProject(ctx context.Context, projectID string) ([]*Comment, error) {
	return s.filter(func(c *Comment) bool { return c.ProjectID == projectID }), nil
}

func (s *InMemoryComments) ListByAuthor(ctx context.Context, authorID string) ([]*Comment, error) {
	return s.filter(func(c *Comment) bool { return c.AuthorID == authorID }), nil
}

func (s *InMemoryComments) CountByProject(ctx context.Context, projectID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, c := range s.comments {
		if c.ProjectID == projectID {
			n++
		}
	}
	return n, nil
}

func (s *InMemoryComments) filter(keep func(*Comment) bool) []*Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Comment
	for _, c := range s.comments {
		if keep(c) {
			cp := *c
			out = append(out, &cp)
		}
	}
	// newest first
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
