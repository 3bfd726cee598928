package report

type CreateReportRequest struct {
	Type        string  `json:"type" binding:"required,max=50"`
	Description string  `json:"description" binding:"required,min=10"`
	Latitude    float64 `json:"latitude" binding:"required,latitude"`
	Longitude   float64 `json:"longitude" binding:"required,longitude"`
	PhotoURL    *string `json:"photo_url" binding:"omitempty,url"`
}

type ReportResponse struct {
	ID             string  `json:"id"`
	Type           string  `json:"type"`
	Description    string  `json:"description"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	PhotoURL       *string `json:"photo_url,omitempty"`
	Status         string  `json:"status"`
	AdminHandlerID *string `json:"admin_handler_id,omitempty"`
	CreatedAt      string  `json:"created_at"`
}
