package region

type RegionRequest struct {
	Name      string  `json:"name" binding:"required"`
	DateDebut string  `json:"date_debut" binding:"required,isodate"`
	DateFin   *string `json:"date_fin" binding:"omitempty,isodate"`
}
