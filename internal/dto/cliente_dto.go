package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type GuardarClienteRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=1,max=150"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
	Notas     *string `json:"notas"`
}

type GuardarProveedorRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=1,max=150"`
	Contacto  *string `json:"contacto"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Email     *string `json:"email,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
	Notas     *string `json:"notas,omitempty"`
}

type ProveedorResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Contacto  *string `json:"contacto,omitempty"`
	Email     *string `json:"email,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
}
