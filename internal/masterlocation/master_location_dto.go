package masterlocation

type CreateMasterLocationRequest struct {
	Latitude          float64 `json:"latitude" binding:"required,latitude"`
	Longitude         float64 `json:"longitude" binding:"required,longitude"`
	PenandaName       string  `json:"penanda_name" binding:"required,max=255"`
	Restricted        bool    `json:"restricted"`
	ReasonRestriction *string `json:"reason_restriction"`
}

type RestrictMasterLocationRequest struct {
	ReasonRestriction string `json:"reason_restriction" binding:"required"`
}

type MasterLocationResponse struct {
	ID                string  `json:"id"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	Status            string  `json:"status"`
	ReasonRestriction *string `json:"reason_restriction,omitempty"`
	PenandaName       string  `json:"penanda_name"`
	CreatedAt         string  `json:"created_at"`
}
