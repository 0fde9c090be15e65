package showcase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/toonami2907/showcase-api/internal/auth"
	"github.com/toonami2907/showcase-api/internal/ids"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 2000
	maxCommentLen     = 500
)

var (
	githubLinkRe = regexp.MustCompile(`^https?://(www\.)?github\.com/.+$`)
	driveLinkRe  = regexp.MustCompile(`^https?://(www\.)?(drive\.google\.com|docs\.google\.com)/.+$`)
)

// Service implements the showcase operations: publishing projects and
// engaging with them through likes, views and comments. Authentication is
// resolved upstream; every method trusts the caller-supplied user id.
type Service struct {
	projects ProjectStore
	comments CommentStore
	users    auth.UserStore
	now      func() time.Time
}

// ServiceOption configures Service behavior.
type ServiceOption func(*Service)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewService constructs the showcase service.
func NewService(projects ProjectStore, comments CommentStore, users auth.UserStore, opts ...ServiceOption) *Service {
	svc := &Service{
		projects: projects,
		comments: comments,
		users:    users,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// CreateProjectInput carries the fields accepted when publishing a project.
type CreateProjectInput struct {
	Title       string
	Description string
	Status      string
	GithubLink  string
	DriveLink   string
	CoverImage  string
	Tags        []string
}

// CreateProject publishes a new project owned by the given user.
func (s *Service) CreateProject(ctx context.Context, userID string, in CreateProjectInput) (ProjectSummary, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	switch {
	case title == "" || len(title) > maxTitleLen:
		return ProjectSummary{}, fmt.Errorf("%w: title", ErrInvalidInput)
	case description == "" || len(description) > maxDescriptionLen:
		return ProjectSummary{}, fmt.Errorf("%w: description", ErrInvalidInput)
	case !validStatus(in.Status):
		return ProjectSummary{}, fmt.Errorf("%w: status", ErrInvalidInput)
	}
	if link := strings.TrimSpace(in.GithubLink); link != "" && !githubLinkRe.MatchString(link) {
		return ProjectSummary{}, fmt.Errorf("%w: githubLink", ErrInvalidInput)
	}
	if link := strings.TrimSpace(in.DriveLink); link != "" && !driveLinkRe.MatchString(link) {
		return ProjectSummary{}, fmt.Errorf("%w: driveLink", ErrInvalidInput)
	}

	now := s.now().UTC()
	project := &Project{
		ID:          ids.New(),
		Title:       title,
		Description: description,
		Status:      in.Status,
		GithubLink:  strings.TrimSpace(in.GithubLink),
		DriveLink:   strings.TrimSpace(in.DriveLink),
		CoverImage:  strings.TrimSpace(in.CoverImage),
		Tags:        normalizeTags(in.Tags),
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return ProjectSummary{}, err
	}
	return s.summary(ctx, project)
}

// ListProjects returns one page of the public listing, newest first by
// default, each item enriched with the author name and engagement counts.
func (s *Service) ListProjects(ctx context.Context, opts ListOptions) (ProjectPage, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 10
	}
	if opts.SortBy == "" {
		opts.SortBy = "createdAt"
	}

	projects, total, err := s.projects.List(ctx, opts)
	if err != nil {
		return ProjectPage{}, err
	}

	summaries := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		sum, err := s.summary(ctx, p)
		if err != nil {
			return ProjectPage{}, err
		}
		summaries = append(summaries, sum)
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	return ProjectPage{
		Projects:    summaries,
		TotalPages:  totalPages,
		CurrentPage: opts.Page,
	}, nil
}

// ToggleLike flips the caller's like on a project and returns the updated
// summary. Two consecutive calls restore the original state.
func (s *Service) ToggleLike(ctx context.Context, projectID, userID string) (ProjectSummary, error) {
	project, err := s.projects.Find(ctx, projectID)
	if err != nil {
		return ProjectSummary{}, err
	}
	if err := s.projects.SetLike(ctx, projectID, userID, !project.Liked(userID)); err != nil {
		return ProjectSummary{}, err
	}
	project, err = s.projects.Find(ctx, projectID)
	if err != nil {
		return ProjectSummary{}, err
	}
	return s.summary(ctx, project)
}

// AddComment attaches a comment to a project.
func (s *Service) AddComment(ctx context.Context, projectID, authorID, text string) (CommentView, error) {
	text = strings.TrimSpace(text)
	if text == "" || len(text) > maxCommentLen {
		return CommentView{}, fmt.Errorf("%w: text", ErrInvalidInput)
	}
	if _, err := s.projects.Find(ctx, projectID); err != nil {
		return CommentView{}, err
	}

	comment := &Comment{
		ID:        ids.New(),
		ProjectID: projectID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: s.now().UTC(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return CommentView{}, err
	}
	return s.commentView(ctx, comment)
}

// Comments lists a project's comments, newest first, with author names.
func (s *Service) Comments(ctx context.Context, projectID string) ([]CommentView, error) {
	if _, err := s.projects.Find(ctx, projectID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		view, err := s.commentView(ctx, c)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// RecordView bumps a project's view counter and returns the updated summary.
func (s *Service) RecordView(ctx context.Context, projectID string) (ProjectSummary, error) {
	if _, err := s.projects.Find(ctx, projectID); err != nil {
		return ProjectSummary{}, err
	}
	if err := s.projects.IncrementViews(ctx, projectID); err != nil {
		return ProjectSummary{}, err
	}
	project, err := s.projects.Find(ctx, projectID)
	if err != nil {
		return ProjectSummary{}, err
	}
	return s.summary(ctx, project)
}

// Dashboard aggregates the caller's own projects and comments.
func (s *Service) Dashboard(ctx context.Context, userID string) (Dashboard, error) {
	projects, err := s.projects.ListByUser(ctx, userID)
	if err != nil {
		return Dashboard{}, err
	}
	comments, err := s.comments.ListByAuthor(ctx, userID)
	if err != nil {
		return Dashboard{}, err
	}

	out := Dashboard{
		Projects: make([]DashboardProject, 0, len(projects)),
		Comments: make([]DashboardComment, 0, len(comments)),
	}
	for _, p := range projects {
		out.Projects = append(out.Projects, DashboardProject{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Status:      p.Status,
			CreatedAt:   p.CreatedAt,
		})
	}
	for _, c := range comments {
		title := ""
		if p, err := s.projects.Find(ctx, c.ProjectID); err == nil {
			title = p.Title
		}
		out.Comments = append(out.Comments, DashboardComment{
			Text:         c.Text,
			ProjectTitle: title,
			CreatedAt:    c.CreatedAt,
		})
	}
	return out, nil
}

// Profile returns another user's public profile.
func (s *Service) Profile(ctx context.Context, userID string) (PublicProfile, error) {
	user, err := s.users.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return PublicProfile{}, ErrNotFound
		}
		return PublicProfile{}, err
	}
	return PublicProfile{
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

// UpdateProfile patches the caller's own name and/or email. Empty fields are
// left unchanged.
func (s *Service) UpdateProfile(ctx context.Context, userID, name, email string) (auth.Profile, error) {
	user, err := s.users.Find(ctx, userID)
	if err != nil {
		return auth.Profile{}, err
	}

	if name = strings.TrimSpace(name); name != "" {
		if len(name) > 50 {
			return auth.Profile{}, fmt.Errorf("%w: name", ErrInvalidInput)
		}
		user.Name = name
	}
	if email = strings.TrimSpace(strings.ToLower(email)); email != "" {
		user.Email = email
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.users.Save(ctx, user); err != nil {
		if errors.Is(err, auth.ErrAlreadyExists) {
			return auth.Profile{}, ErrEmailTaken
		}
		return auth.Profile{}, err
	}
	return user.Profile(), nil
}

func (s *Service) summary(ctx context.Context, p *Project) (ProjectSummary, error) {
	author := Author{ID: p.CreatedBy}
	if user, err := s.users.Find(ctx, p.CreatedBy); err == nil {
		author.Name = user.Name
	}
	count, err := s.comments.CountByProject(ctx, p.ID)
	if err != nil {
		return ProjectSummary{}, err
	}
	return ProjectSummary{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Status:        p.Status,
		GithubLink:    p.GithubLink,
		DriveLink:     p.DriveLink,
		CoverImage:    p.CoverImage,
		Tags:          p.Tags,
		CreatedBy:     author,
		LikesCount:    len(p.Likes),
		CommentsCount: count,
		Views:         p.Views,
		CreatedAt:     p.CreatedAt,
	}, nil
}

func (s *Service) commentView(ctx context.Context, c *Comment) (CommentView, error) {
	author := Author{ID: c.AuthorID}
	if user, err := s.users.Find(ctx, c.AuthorID); err == nil {
		author.Name = user.Name
	}
	return CommentView{
		ID:        c.ID,
		Text:      c.Text,
		Author:    author,
		CreatedAt: c.CreatedAt,
	}, nil
}

func validStatus(status string) bool {
	switch status {
	case StatusOngoing, StatusNeedHelp, StatusCollaborators:
		return true
	}
	return false
}

func normalizeTags(tags []string) []string {
	var out []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	return out
}
