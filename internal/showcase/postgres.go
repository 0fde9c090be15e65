package showcase

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/toonami2907/showcase-api/internal/ids"
)

var (
	_ ProjectStore = (*PGProjects)(nil)
	_ CommentStore = (*PGComments)(nil)
)

// PGProjects implements ProjectStore using PostgreSQL.
type PGProjects struct {
	db *sql.DB
}

func NewPGProjects(db *sql.DB) *PGProjects {
	return &PGProjects{db: db}
}

const projectColumns = `id, title, description, status, github_link, drive_link, cover_image, tags, created_by, views, created_at, updated_at`

func (s *PGProjects) Create(ctx context.Context, p *Project) error {
	if p.ID == "" {
		p.ID = ids.New()
	}
	tags, _ := json.Marshal(p.Tags)
	_, err := s.db.ExecContext(ctx,
		`insert into projects(id, title, description, status, github_link, drive_link, cover_image, tags, created_by, views, created_at, updated_at)
		 values($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		p.ID, p.Title, p.Description, p.Status, p.GithubLink, p.DriveLink, p.CoverImage, tags, p.CreatedBy, p.Views, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (s *PGProjects) Find(ctx context.Context, id string) (*Project, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+projectColumns+` from projects where id=$1`, id)
	p, err := scanProject(row.Scan)
	if err != nil {
		return nil, err
	}
	if err := s.loadLikes(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PGProjects) List(ctx context.Context, opts ListOptions) ([]*Project, int, error) {
	order := "created_at desc, id desc"
	switch opts.SortBy {
	case "views":
		order = "views desc, id desc"
	case "title":
		order = "title desc, id desc"
	}

	where := ""
	args := []any{opts.Limit, (opts.Page - 1) * opts.Limit}
	if opts.Status != "" {
		where = "where status=$3"
		args = append(args, opts.Status)
	}

	rows, err := s.db.QueryContext(ctx,
		`select `+projectColumns+` from projects `+where+` order by `+order+` limit $1 offset $2`,
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for _, p := range projects {
		if err := s.loadLikes(ctx, p); err != nil {
			return nil, 0, err
		}
	}

	var total int
	countQuery := `select count(*) from projects`
	countArgs := []any{}
	if opts.Status != "" {
		countQuery += ` where status=$1`
		countArgs = append(countArgs, opts.Status)
	}
	if err := s.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (s *PGProjects) ListByUser(ctx context.Context, userID string) ([]*Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`select `+projectColumns+` from projects where created_by=$1 order by id desc`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *PGProjects) SetLike(ctx context.Context, projectID, userID string, liked bool) error {
	if liked {
		_, err := s.db.ExecContext(ctx,
			`insert into project_likes(project_id, user_id) values($1,$2)
			 on conflict do nothing`, projectID, userID)
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`delete from project_likes where project_id=$1 and user_id=$2`, projectID, userID)
	return err
}

func (s *PGProjects) IncrementViews(ctx context.Context, projectID string) error {
	res, err := s.db.ExecContext(ctx,
		`update projects set views = views + 1 where id=$1`, projectID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGProjects) loadLikes(ctx context.Context, p *Project) error {
	rows, err := s.db.QueryContext(ctx,
		`select user_id from project_likes where project_id=$1`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return err
		}
		p.Likes = append(p.Likes, userID)
	}
	return rows.Err()
}

func scanProject(scan func(dest ...any) error) (*Project, error) {
	var p Project
	var tags []byte
	err := scan(&p.ID, &p.Title, &p.Description, &p.Status, &p.GithubLink, &p.DriveLink,
		&p.CoverImage, &tags, &p.CreatedBy, &p.Views, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		_ = json.Unmarshal(tags, &p.Tags)
	}
	return &p, nil
}

// PGComments implements CommentStore using PostgreSQL.
type PGComments struct {
	db *sql.DB
}

func NewPGComments(db *sql.DB) *PGComments {
	return &PGComments{db: db}
}

func (s *PGComments) Create(ctx context.Context, c *Comment) error {
	if c.ID == "" {
		c.ID = ids.New()
	}
	_, err := s.db.ExecContext(ctx,
		`insert into comments(id, project_id, author_id, text, created_at)
		 values($1,$2,$3,$4,$5)`,
		c.ID, c.ProjectID, c.AuthorID, c.Text, c.CreatedAt,
	)
	return err
}

func (s *PGComments) ListByProject(ctx context.Context, projectID string) ([]*Comment, error) {
	return s.list(ctx, `project_id=$1`, projectID)
}

func (s *PGComments) ListByAuthor(ctx context.Context, authorID string) ([]*Comment, error) {
	return s.list(ctx, `author_id=$1`, authorID)
}

func (s *PGComments) CountByProject(ctx context.Context, projectID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`select count(*) from comments where project_id=$1`, projectID).Scan(&n)
	return n, err
}

func (s *PGComments) list(ctx context.Context, where string, arg any) ([]*Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, project_id, author_id, text, created_at from comments
		 where `+where+` order by created_at desc, id desc`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.AuthorID, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}
