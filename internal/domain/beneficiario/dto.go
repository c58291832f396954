package beneficiario

import "time"

// CreateInput is the request body for creating a beneficiário.
type CreateInput struct {
	Identificador  string     `json:"identificador"`
	Sexo           *string    `json:"sexo"`
	DataNascimento *time.Time `json:"data_nascimento"`
}

func (in CreateInput) toModel() *Beneficiario {
	now := time.Now().UTC()
	return &Beneficiario{
		Identificador:  in.Identificador,
		Sexo:           in.Sexo,
		DataNascimento: in.DataNascimento,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// UpdateInput carries the updatable fields. Nil leaves a field unchanged.
type UpdateInput struct {
	Identificador  *string    `json:"identificador"`
	Sexo           *string    `json:"sexo"`
	DataNascimento *time.Time `json:"data_nascimento"`
}

func (in UpdateInput) apply(b *Beneficiario) {
	if in.Identificador != nil {
		b.Identificador = *in.Identificador
	}
	if in.Sexo != nil {
		b.Sexo = in.Sexo
	}
	if in.DataNascimento != nil {
		b.DataNascimento = in.DataNascimento
	}
}
