package showcase

import "time"

// Project statuses accepted from clients.
const (
	StatusOngoing       = "Ongoing"
	StatusNeedHelp      = "Need Help"
	StatusCollaborators = "Looking for Collaborators"
)

// Project is a published showcase entry.
type Project struct {
	ID          string
	Title       string
	Description string
	Status      string
	GithubLink  string
	DriveLink   string
	CoverImage  string
	Tags        []string
	CreatedBy   string
	// Likes holds the ids of users who currently like the project.
	Likes     []string
	Views     int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Liked reports whether the given user currently likes the project.
func (p *Project) Liked(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Comment is a user comment attached to a project.
type Comment struct {
	ID        string
	ProjectID string
	AuthorID  string
	Text      string
	CreatedAt time.Time
}

// Author is the minimal user view embedded in listings.
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProjectSummary is a listing item enriched with counts and the author name.
type ProjectSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	GithubLink    string    `json:"githubLink,omitempty"`
	DriveLink     string    `json:"driveLink,omitempty"`
	CoverImage    string    `json:"coverImage,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	CreatedBy     Author    `json:"createdBy"`
	LikesCount    int       `json:"likesCount"`
	CommentsCount int       `json:"commentsCount"`
	Views         int64     `json:"views"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ProjectPage is one page of the public listing.
type ProjectPage struct {
	Projects    []ProjectSummary `json:"projects"`
	TotalPages  int              `json:"totalPages"`
	CurrentPage int              `json:"currentPage"`
}

// CommentView is a comment enriched with its author name.
type CommentView struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// DashboardProject is the owner's compact view of their project.
type DashboardProject struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DashboardComment is a comment the user left, with the project title resolved.
type DashboardComment struct {
	Text         string    `json:"text"`
	ProjectTitle string    `json:"projectTitle"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Dashboard aggregates the caller's own activity.
type Dashboard struct {
	Projects []DashboardProject `json:"projects"`
	Comments []DashboardComment `json:"comments"`
}

// PublicProfile is the profile view exposed to other authenticated users.
type PublicProfile struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
