package dto

type CrearClienteRequest struct {
	TipoDoc   string `json:"tipo_doc"  validate:"required,oneof=DNI RUC CE PASAPORTE"`
	NumDoc    string `json:"num_doc"   validate:"required,min=8,max=15"`
	Nombre    string `json:"nombre"    validate:"required,min=2,max=120"`
	Telefono  string `json:"telefono"  validate:"omitempty,min=6,max=20"`
	Email     string `json:"email"     validate:"omitempty,email"`
	Direccion string `json:"direccion" validate:"omitempty,max=200"`
}

type ActualizarClienteRequest struct {
	Nombre    *string `json:"nombre"    validate:"omitempty,min=2,max=120"`
	Telefono  *string `json:"telefono"  validate:"omitempty,min=6,max=20"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Direccion *string `json:"direccion" validate:"omitempty,max=200"`
}

type ClienteResponse struct {
	ID        string `json:"id"`
	TipoDoc   string `json:"tipo_doc"`
	NumDoc    string `json:"num_doc"`
	Nombre    string `json:"nombre"`
	Telefono  string `json:"telefono,omitempty"`
	Email     string `json:"email,omitempty"`
	Direccion string `json:"direccion,omitempty"`
	Estado    string `json:"estado"`
}
