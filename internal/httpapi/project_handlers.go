package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/toonami2907/showcase-api/internal/audit"
	"github.com/toonami2907/showcase-api/internal/ids"
	"github.com/toonami2907/showcase-api/internal/showcase"
)

type createProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	GithubLink  string `json:"githubLink"`
	DriveLink   string `json:"driveLink"`
	CoverImage  string `json:"coverImage"`
	// Tags arrive as a comma separated string, matching the form field the
	// frontend already sends.
	Tags string `json:"tags"`
}

type addCommentRequest struct {
	Text string `json:"text"`
}

func (a *API) handleProjectsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		a.createProject(w, r)
	case http.MethodGet:
		a.listProjects(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleProjectResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/projects/")
	if path == "" || strings.Count(path, "/") != 1 {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	id, action, _ := strings.Cut(path, "/")
	if !ids.Valid(id) {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	switch action {
	case "like":
		if r.Method != http.MethodPost {
			methodNotAllowed(w, r, http.MethodPost)
			return
		}
		a.toggleLike(w, r, id)
	case "views":
		if r.Method != http.MethodPost {
			methodNotAllowed(w, r, http.MethodPost)
			return
		}
		a.recordView(w, r, id)
	case "comments":
		switch r.Method {
		case http.MethodPost:
			a.addComment(w, r, id)
		case http.MethodGet:
			a.listComments(w, r, id)
		default:
			methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
		}
	default:
		writeError(w, r, http.StatusNotFound, "resource not found")
	}
}

func (a *API) createProject(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}

	var req createProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	project, err := a.projects.CreateProject(r.Context(), user.ID, showcase.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		GithubLink:  req.GithubLink,
		DriveLink:   req.DriveLink,
		CoverImage:  req.CoverImage,
		Tags:        strings.Split(req.Tags, ","),
	})
	if err != nil {
		handleShowcaseError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "project.created", map[string]any{
		"project_id": project.ID,
		"title":      project.Title,
	})

	writeJSON(w, http.StatusCreated, project)
}

func (a *API) listProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := showcase.ListOptions{
		Status: q.Get("status"),
		SortBy: q.Get("sortBy"),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		opts.Limit = limit
	}

	page, err := a.projects.ListProjects(r.Context(), opts)
	if err != nil {
		handleShowcaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (a *API) toggleLike(w http.ResponseWriter, r *http.Request, projectID string) {
	user, ok := principal(w, r)
	if !ok {
		return
	}

	project, err := a.projects.ToggleLike(r.Context(), projectID, user.ID)
	if err != nil {
		handleShowcaseError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "project.liked", map[string]any{
		"project_id": projectID,
	})

	writeJSON(w, http.StatusOK, project)
}

func (a *API) recordView(w http.ResponseWriter, r *http.Request, projectID string) {
	project, err := a.projects.RecordView(r.Context(), projectID)
	if err != nil {
		handleShowcaseError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "project.viewed", map[string]any{
		"project_id": projectID,
	})

	writeJSON(w, http.StatusOK, project)
}

func (a *API) addComment(w http.ResponseWriter, r *http.Request, projectID string) {
	user, ok := principal(w, r)
	if !ok {
		return
	}

	var req addCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := a.projects.AddComment(r.Context(), projectID, user.ID, req.Text)
	if err != nil {
		handleShowcaseError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "comment.added", map[string]any{
		"project_id": projectID,
		"comment_id": comment.ID,
	})

	writeJSON(w, http.StatusCreated, comment)
}

func (a *API) listComments(w http.ResponseWriter, r *http.Request, projectID string) {
	comments, err := a.projects.Comments(r.Context(), projectID)
	if err != nil {
		handleShowcaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}
