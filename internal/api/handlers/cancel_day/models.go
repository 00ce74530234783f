package cancel_day

type CancelDayRequest struct {
	Establecimiento string  `json:"establecimiento"`
	Fecha           string  `json:"fecha"`
	Motivo          *string `json:"motivo,omitempty"`
}

type CancelDayResponse struct {
	Fecha  string `json:"fecha"`
	Creado bool   `json:"creado"`
}
