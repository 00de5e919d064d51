package metadomain

// BatchRequest é uma sub-requisição do protocolo de batch da Graph API:
// várias chamadas independentes empacotadas em um único POST.
type BatchRequest struct {
	Method      string `json:"method"`
	RelativeURL string `json:"relative_url"`
}

// BatchResponse é o resultado posicional de uma sub-requisição. Body vem
// como string JSON escapada. A API pode retornar null para sub-itens que
// expiraram no lado dela.
type BatchResponse struct {
	Code int    `json:"code"`
	Body string `json:"body"`
}
