package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	Usuario      UsuarioResponse `json:"usuario"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CrearUsuarioRequest struct {
	Username string `json:"username" validate:"required,min=3,max=40"`
	Nombre   string `json:"nombre"   validate:"required,min=2,max=120"`
	Email    string `json:"email"    validate:"required,email"`
	Rol      string `json:"rol"      validate:"required,oneof=Administrador Vendedor"`
	CargoID  string `json:"cargo_id" validate:"omitempty,uuid"`
	// Password: optional — when empty one is generated and mailed to the user.
	Password string `json:"password" validate:"omitempty,min=8"`
}

type ActualizarUsuarioRequest struct {
	Nombre   *string `json:"nombre"   validate:"omitempty,min=2,max=120"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Rol      *string `json:"rol"      validate:"omitempty,oneof=Administrador Vendedor"`
	CargoID  *string `json:"cargo_id" validate:"omitempty,uuid"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

type UsuarioResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Rol      string `json:"rol"`
	Cargo    string `json:"cargo,omitempty"`
	Activo   bool   `json:"activo"`
}

type CrearCargoRequest struct {
	Nombre      string `json:"nombre"      validate:"required,min=2,max=80"`
	Descripcion string `json:"descripcion" validate:"omitempty,max=200"`
}

type CargoResponse struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
	Activo      bool   `json:"activo"`
}
