package entity

// CustomerDetails datos del cliente facturado. Phone y Company son opcionales.
type CustomerDetails struct {
	Name    string
	Email   string
	Address string
	Phone   string
	Company string
}
