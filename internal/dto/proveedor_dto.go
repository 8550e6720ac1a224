package dto

type CrearProveedorRequest struct {
	RazonSocial string `json:"razon_social" validate:"required,min=2,max=150"`
	RUC         string `json:"ruc"          validate:"required,len=11,numeric"`
	Telefono    string `json:"telefono"     validate:"omitempty,min=6,max=20"`
	Email       string `json:"email"        validate:"omitempty,email"`
	Direccion   string `json:"direccion"    validate:"omitempty,max=200"`
}

type ActualizarProveedorRequest struct {
	RazonSocial *string `json:"razon_social" validate:"omitempty,min=2,max=150"`
	Telefono    *string `json:"telefono"     validate:"omitempty,min=6,max=20"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Direccion   *string `json:"direccion"    validate:"omitempty,max=200"`
}

type ProveedorResponse struct {
	ID          string `json:"id"`
	RazonSocial string `json:"razon_social"`
	RUC         string `json:"ruc"`
	Telefono    string `json:"telefono,omitempty"`
	Email       string `json:"email,omitempty"`
	Direccion   string `json:"direccion,omitempty"`
	Estado      string `json:"estado"`
}
