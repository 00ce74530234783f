package restore_day

type RestoreDayResponse struct {
	Fecha             string `json:"fecha"`
	Eliminado         bool   `json:"eliminado"`
	DomingoRestaurado bool   `json:"domingoRestaurado"`
}
