package dto

// GenerateTasksRequest asks the AI to build training tasks from guidelines.
type GenerateTasksRequest struct {
	Rules string `json:"rules" validate:"required"`
}

// GenerateTasksResponse carries the generated training plan text.
type GenerateTasksResponse struct {
	Tasks string `json:"tasks"`
}
