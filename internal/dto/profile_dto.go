package dto

// UserRulesRequest asks for the guideline profile bound to an account.
type UserRulesRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserRulesResponse carries the intern's profile as shown by the commit
// hook before a review: display name, company, position, the guideline
// text, and the accumulated rating score.
type UserRulesResponse struct {
	Name     string `json:"name"`
	Company  string `json:"company"`
	Position string `json:"position"`
	Rules    string `json:"rules"`
	Score    int    `json:"score"`
}
