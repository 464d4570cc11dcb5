package dto

// CreateTaskRequest datos para crear una tarea.
type CreateTaskRequest struct {
	ProjectID  string   `json:"projectId"`
	Title      string   `json:"title"`
	Status     string   `json:"status"`
	Priority   string   `json:"priority"`
	Tags       []string `json:"tags"`
	AssignedTo []string `json:"assignedTo"`
	DueDate    string   `json:"dueDate"`
	Notes      string   `json:"notes"`
}

// UpdateTaskRequest edición completa de una tarea.
type UpdateTaskRequest struct {
	Title      string   `json:"title"`
	Status     string   `json:"status"`
	Priority   string   `json:"priority"`
	Tags       []string `json:"tags"`
	AssignedTo []string `json:"assignedTo"`
	DueDate    string   `json:"dueDate"`
	Notes      string   `json:"notes"`
}

// UpdateStatusRequest cambio de estado de una tarea.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// CommentRequest nuevo comentario sobre una tarea.
type CommentRequest struct {
	Content string `json:"content"`
}
