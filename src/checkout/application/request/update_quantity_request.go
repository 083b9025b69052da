package request

// UpdateQuantityRequest representa el delta de cantidad de una línea
// Delta positivo incrementa, negativo decrementa; resultado < 1 elimina
// la línea y resultado sobre el stock del snapshot es no-op silencioso
type UpdateQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}
