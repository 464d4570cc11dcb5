package dto

// CreateProjectRequest datos para crear un proyecto.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	RepoURL     string `json:"repoUrl"`
}

// UpdateProjectRequest datos editables de un proyecto.
type UpdateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	RepoURL     string `json:"repoUrl"`
}

// MemberRequest alta de un miembro en un proyecto.
type MemberRequest struct {
	Username string `json:"username"`
}
